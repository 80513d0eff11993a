package repository

import (
	"context"

	"medisync/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	// FindRecent returns the newest invoices with ticket and patient embedded.
	FindRecent(ctx context.Context, limit int) ([]entity.Invoice, error)
	// FindByPatient returns invoices whose ticket belongs to the patient.
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Invoice, error)
	// SumFees adds up all three fee components across every invoice.
	SumFees(ctx context.Context) (decimal.Decimal, error)
	// UpdateMedicineFee sets the medicine fee on the ticket's invoice;
	// returns affected rows so callers can detect a missing invoice.
	UpdateMedicineFee(ctx context.Context, ticketID int64, fee decimal.Decimal) (int64, error)
}
