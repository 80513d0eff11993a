package repository

import (
	"context"

	"medisync/internal/domain/entity"
	domainRepo "medisync/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) FindRecent(ctx context.Context, limit int) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Ticket").
		Preload("Ticket.Patient").
		Order("issued_at DESC").
		Limit(limit).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Joins("JOIN tickets ON tickets.id = invoices.ticket_id").
		Where("tickets.patient_id = ?", patientID).
		Preload("Ticket").
		Order("issued_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) SumFees(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Select("COALESCE(SUM(doctor_fee + medicine_fee + room_fee), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *invoiceRepository) UpdateMedicineFee(ctx context.Context, ticketID int64, fee decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Where("ticket_id = ?", ticketID).
		Update("medicine_fee", fee)
	return result.RowsAffected, result.Error
}
