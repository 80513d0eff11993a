package dto

import (
	"medisync/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// PrescriptionLine is one pending medicine line in a ticket group.
type PrescriptionLine struct {
	ID           int64           `json:"id"`
	MedicineName string          `json:"medicine_name"`
	Unit         string          `json:"unit,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Notes        *string         `json:"notes,omitempty"`
	LineFee      decimal.Decimal `json:"line_fee"`
}

// PrescriptionGroup is the pharmacy queue unit: every pending line of one
// ticket, with enough context to hand the medicines over.
type PrescriptionGroup struct {
	TicketID    int64              `json:"ticket_id"`
	PatientName string             `json:"patient_name"`
	NIK         string             `json:"nik,omitempty"`
	FoNote      string             `json:"fo_note"`
	DoctorNote  *string            `json:"doctor_note,omitempty"`
	Items       []PrescriptionLine `json:"items"`
	MedicineFee decimal.Decimal    `json:"medicine_fee"`
}

type MedicineResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Unit  string          `json:"unit,omitempty"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Band  string          `json:"band"`
}

// InventoryResponse is the pharmacy inventory tab with stock-band counts.
type InventoryResponse struct {
	Medicines   []MedicineResponse `json:"medicines"`
	Available   int                `json:"available"`
	LowStock    int                `json:"low_stock"`
	AlmostEmpty int                `json:"almost_empty"`
}

// DispenseResponse reports the completed hand-over.
type DispenseResponse struct {
	TicketID       int64               `json:"ticket_id"`
	LinesDispensed int64               `json:"lines_dispensed"`
	MedicineFee    decimal.Decimal     `json:"medicine_fee"`
	TicketStatus   entity.TicketStatus `json:"ticket_status"`
}
