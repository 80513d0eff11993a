package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusUnpaid InvoiceStatus = "unpaid"
)

// Invoice carries the three fee components for one ticket. The total is
// always derived from the components, never trusted from storage.
type Invoice struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketID    int64           `gorm:"not null;uniqueIndex" json:"ticket_id"`
	DoctorFee   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"doctor_fee"`
	MedicineFee decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"medicine_fee"`
	RoomFee     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"room_fee"`
	Status      InvoiceStatus   `gorm:"type:varchar(16);not null;default:'unpaid';index" json:"status"`
	IssuedAt    time.Time       `gorm:"autoCreateTime;index" json:"issued_at"`

	// Relationships
	Ticket Ticket `gorm:"foreignKey:TicketID" json:"ticket,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// Total sums the fee components.
func (i *Invoice) Total() decimal.Decimal {
	return i.DoctorFee.Add(i.MedicineFee).Add(i.RoomFee)
}

// IsPaid checks whether the invoice has been settled.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}
