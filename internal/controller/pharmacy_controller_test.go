package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"medisync/internal/delivery/dto"
	"medisync/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func pendingLines() []entity.Prescription {
	paracetamol := entity.Medicine{ID: 1, Name: "Paracetamol", Unit: "tablet", Price: decimal.NewFromInt(500)}
	amoxicillin := entity.Medicine{ID: 2, Name: "Amoxicillin", Unit: "capsule", Price: decimal.NewFromInt(1500)}
	ticketA := entity.Ticket{ID: 10, FoNote: "fever", Patient: entity.Profile{ID: uuid.New(), Name: "Budi Santoso", NIK: "3173051234567890"}}
	ticketB := entity.Ticket{ID: 11, FoNote: "infection", Patient: entity.Profile{ID: uuid.New(), Name: "Siti Aminah", NIK: "3173059876543210"}}

	return []entity.Prescription{
		{ID: 1, TicketID: 10, Quantity: 2, Medicine: paracetamol, Ticket: ticketA, Status: entity.PrescriptionStatusPending},
		{ID: 2, TicketID: 11, Quantity: 1, Medicine: amoxicillin, Ticket: ticketB, Status: entity.PrescriptionStatusPending},
		{ID: 3, TicketID: 10, Quantity: 1, Medicine: amoxicillin, Ticket: ticketA, Status: entity.PrescriptionStatusPending},
	}
}

func TestPharmacyQueueGroupsByTicketWithFeeSum(t *testing.T) {
	prescriptions := &MockPrescriptionRepository{
		FindPendingFunc: func(ctx context.Context) ([]entity.Prescription, error) {
			return pendingLines(), nil
		},
	}

	c := NewPharmacyController(testLogger(), prescriptions, &MockMedicineRepository{}, &MockTicketRepository{}, &MockInvoiceRepository{}, &MockAuditService{}, uuid.New())

	assert.NoError(t, c.Load(context.Background()))
	groups := c.State().([]dto.PrescriptionGroup)

	assert.Len(t, groups, 2)
	// First-seen ticket order is kept.
	assert.Equal(t, int64(10), groups[0].TicketID)
	assert.Equal(t, int64(11), groups[1].TicketID)

	// Ticket 10: 2 x 500 + 1 x 1500 = 2500.
	assert.Len(t, groups[0].Items, 2)
	assert.True(t, groups[0].MedicineFee.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, "Budi Santoso", groups[0].PatientName)

	assert.Len(t, groups[1].Items, 1)
	assert.True(t, groups[1].MedicineFee.Equal(decimal.NewFromInt(1500)))
}

func TestDispenseRunsAllThreeWrites(t *testing.T) {
	prescriptions := &MockPrescriptionRepository{
		FindPendingFunc: func(ctx context.Context) ([]entity.Prescription, error) {
			return pendingLines(), nil
		},
		MarkDispensedByTicketFunc: func(ctx context.Context, ticketID int64) (int64, error) {
			assert.Equal(t, int64(10), ticketID)
			return 2, nil
		},
	}
	tickets := &MockTicketRepository{
		UpdateStatusFunc: func(ctx context.Context, id int64, status entity.TicketStatus) (int64, error) {
			assert.Equal(t, entity.TicketStatusCompleted, status)
			return 1, nil
		},
	}

	var writtenFee decimal.Decimal
	invoices := &MockInvoiceRepository{
		UpdateMedicineFeeFunc: func(ctx context.Context, ticketID int64, fee decimal.Decimal) (int64, error) {
			writtenFee = fee
			return 1, nil
		},
	}
	audit := &MockAuditService{}

	c := NewPharmacyController(testLogger(), prescriptions, &MockMedicineRepository{}, tickets, invoices, audit, uuid.New())

	result, err := c.Dispense(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.LinesDispensed)
	assert.True(t, result.MedicineFee.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, entity.TicketStatusCompleted, result.TicketStatus)
	assert.True(t, writtenFee.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, int32(1), atomic.LoadInt32(&tickets.UpdateStatusCallCount))
	assert.Equal(t, []string{entity.AuditActionDispenseComplete}, audit.Records)
	// Invoice existed, so no insert.
	assert.Equal(t, int32(0), atomic.LoadInt32(&invoices.CreateCallCount))
}

func TestDispenseCreatesInvoiceWhenMissing(t *testing.T) {
	prescriptions := &MockPrescriptionRepository{
		FindPendingFunc: func(ctx context.Context) ([]entity.Prescription, error) {
			return pendingLines(), nil
		},
		MarkDispensedByTicketFunc: func(ctx context.Context, ticketID int64) (int64, error) {
			return 1, nil
		},
	}
	invoices := &MockInvoiceRepository{
		UpdateMedicineFeeFunc: func(ctx context.Context, ticketID int64, fee decimal.Decimal) (int64, error) {
			return 0, nil
		},
		CreateFunc: func(ctx context.Context, invoice *entity.Invoice) error {
			assert.Equal(t, int64(11), invoice.TicketID)
			assert.True(t, invoice.MedicineFee.Equal(decimal.NewFromInt(1500)))
			assert.Equal(t, entity.InvoiceStatusUnpaid, invoice.Status)
			return nil
		},
	}

	c := NewPharmacyController(testLogger(), prescriptions, &MockMedicineRepository{}, &MockTicketRepository{}, invoices, &MockAuditService{}, uuid.New())

	_, err := c.Dispense(context.Background(), 11)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&invoices.CreateCallCount))
}

func TestDispenseNothingPending(t *testing.T) {
	prescriptions := &MockPrescriptionRepository{
		FindPendingFunc: func(ctx context.Context) ([]entity.Prescription, error) {
			return nil, nil
		},
	}

	c := NewPharmacyController(testLogger(), prescriptions, &MockMedicineRepository{}, &MockTicketRepository{}, &MockInvoiceRepository{}, &MockAuditService{}, uuid.New())

	_, err := c.Dispense(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNothingToDispense)
}

func TestDispenseStopsAfterFailedWrite(t *testing.T) {
	writeErr := errors.New("deadlock detected")
	prescriptions := &MockPrescriptionRepository{
		FindPendingFunc: func(ctx context.Context) ([]entity.Prescription, error) {
			return pendingLines(), nil
		},
		MarkDispensedByTicketFunc: func(ctx context.Context, ticketID int64) (int64, error) {
			return 0, writeErr
		},
	}
	tickets := &MockTicketRepository{}

	c := NewPharmacyController(testLogger(), prescriptions, &MockMedicineRepository{}, tickets, &MockInvoiceRepository{}, &MockAuditService{}, uuid.New())

	_, err := c.Dispense(context.Background(), 10)
	assert.ErrorIs(t, err, writeErr)
	// The later writes never run once an earlier one fails.
	assert.Equal(t, int32(0), atomic.LoadInt32(&tickets.UpdateStatusCallCount))
}

func TestInventoryBandsAndCounts(t *testing.T) {
	medicines := &MockMedicineRepository{
		FindAllFunc: func(ctx context.Context) ([]entity.Medicine, error) {
			return []entity.Medicine{
				{ID: 1, Name: "Paracetamol", Stock: 100, Price: decimal.NewFromInt(500)},
				{ID: 2, Name: "Amoxicillin", Stock: 15, Price: decimal.NewFromInt(1500)},
				{ID: 3, Name: "Insulin", Stock: 3, Price: decimal.NewFromInt(90000)},
				{ID: 4, Name: "Ibuprofen", Stock: 20, Price: decimal.NewFromInt(800)},
			}, nil
		},
	}

	c := NewPharmacyController(testLogger(), &MockPrescriptionRepository{}, medicines, &MockTicketRepository{}, &MockInvoiceRepository{}, &MockAuditService{}, uuid.New())

	inventory, err := c.Inventory(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, inventory.Available)
	assert.Equal(t, 2, inventory.LowStock)
	assert.Equal(t, 1, inventory.AlmostEmpty)
	assert.Equal(t, "available", inventory.Medicines[0].Band)
	assert.Equal(t, "low", inventory.Medicines[1].Band)
	assert.Equal(t, "almost_empty", inventory.Medicines[2].Band)
	assert.Equal(t, "low", inventory.Medicines[3].Band)
}

func TestDispenseStillWritesFeeWhenStatusAlreadyPast(t *testing.T) {
	prescriptions := &MockPrescriptionRepository{
		FindPendingFunc: func(ctx context.Context) ([]entity.Prescription, error) {
			return pendingLines(), nil
		},
		MarkDispensedByTicketFunc: func(ctx context.Context, ticketID int64) (int64, error) {
			return 2, nil
		},
	}
	// The monotonic guard refuses the transition: zero rows, no error.
	tickets := &MockTicketRepository{
		UpdateStatusFunc: func(ctx context.Context, id int64, status entity.TicketStatus) (int64, error) {
			return 0, nil
		},
	}

	var writtenFee decimal.Decimal
	invoices := &MockInvoiceRepository{
		UpdateMedicineFeeFunc: func(ctx context.Context, ticketID int64, fee decimal.Decimal) (int64, error) {
			writtenFee = fee
			return 1, nil
		},
	}

	c := NewPharmacyController(testLogger(), prescriptions, &MockMedicineRepository{}, tickets, invoices, &MockAuditService{}, uuid.New())

	result, err := c.Dispense(context.Background(), 10)
	assert.NoError(t, err)
	assert.True(t, writtenFee.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, int64(2), result.LinesDispensed)
}
