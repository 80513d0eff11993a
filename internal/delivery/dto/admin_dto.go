package dto

import (
	"time"

	"medisync/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdminStatsResponse is the hospital overview summary.
type AdminStatsResponse struct {
	TotalPatients   int64             `json:"total_patients"`
	TotalDoctors    int64             `json:"total_doctors"`
	TotalTickets    int64             `json:"total_tickets"`
	TotalRevenue    decimal.Decimal   `json:"total_revenue"`
	TicketsByStatus []StatusBreakdown `json:"tickets_by_status,omitempty"`
	// Source records whether the numbers came from the gateway or the
	// direct-query fallback.
	Source string `json:"source"`
}

type StatusBreakdown struct {
	Status entity.TicketStatus `json:"status"`
	Count  int64               `json:"count"`
}

type StaffMemberResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Role      entity.Role `json:"role"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type InvoiceResponse struct {
	ID          int64                `json:"id"`
	TicketID    int64                `json:"ticket_id"`
	DoctorFee   decimal.Decimal      `json:"doctor_fee"`
	MedicineFee decimal.Decimal      `json:"medicine_fee"`
	RoomFee     decimal.Decimal      `json:"room_fee"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Status      entity.InvoiceStatus `json:"status"`
	PatientName string               `json:"patient_name,omitempty"`
	FoNote      string               `json:"fo_note,omitempty"`
	IssuedAt    time.Time            `json:"issued_at"`
}

// FinanceResponse is the admin finance tab: recent invoices plus settled /
// outstanding counts.
type FinanceResponse struct {
	Invoices    []InvoiceResponse `json:"invoices"`
	TotalBilled decimal.Decimal   `json:"total_billed"`
	PaidCount   int               `json:"paid_count"`
	UnpaidCount int               `json:"unpaid_count"`
}
