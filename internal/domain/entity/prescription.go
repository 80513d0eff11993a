package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PrescriptionStatus tracks the dispensing axis, independent of ticket status.
type PrescriptionStatus string

const (
	PrescriptionStatusPending   PrescriptionStatus = "pending"
	PrescriptionStatusDispensed PrescriptionStatus = "dispensed"
)

// Prescription is one medicine line on a ticket.
type Prescription struct {
	ID         int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketID   int64              `gorm:"not null;index" json:"ticket_id"`
	MedicineID int64              `gorm:"not null;index" json:"medicine_id"`
	Quantity   int                `gorm:"not null" json:"quantity"`
	Notes      *string            `gorm:"type:text" json:"notes,omitempty"`
	Status     PrescriptionStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time          `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Ticket   Ticket   `gorm:"foreignKey:TicketID" json:"ticket,omitempty"`
	Medicine Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// IsPending checks whether the line still awaits dispensing.
func (p *Prescription) IsPending() bool {
	return p.Status == PrescriptionStatusPending
}

// LineFee is the line's contribution to the invoice medicine fee.
func (p *Prescription) LineFee() decimal.Decimal {
	return p.Medicine.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Medicine is one catalog entry with unit price and stock on hand.
type Medicine struct {
	ID    int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string          `gorm:"type:varchar(255);not null" json:"name"`
	Unit  string          `gorm:"type:varchar(50)" json:"unit"`
	Price decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock int             `gorm:"default:0" json:"stock"`
}

func (Medicine) TableName() string {
	return "catalog_medicines"
}

// Stock bands used by the pharmacy inventory summary.
const (
	StockLowThreshold   = 20
	StockEmptyThreshold = 5
)

// StockBand buckets the medicine by remaining stock.
func (m *Medicine) StockBand() string {
	switch {
	case m.Stock <= StockEmptyThreshold:
		return "almost_empty"
	case m.Stock <= StockLowThreshold:
		return "low"
	default:
		return "available"
	}
}
