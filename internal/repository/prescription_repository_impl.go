package repository

import (
	"context"

	"medisync/internal/domain/entity"
	domainRepo "medisync/internal/domain/repository"

	"gorm.io/gorm"
)

type prescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) domainRepo.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) FindPending(ctx context.Context) ([]entity.Prescription, error) {
	var lines []entity.Prescription
	err := r.db.WithContext(ctx).
		Preload("Medicine").
		Preload("Ticket").
		Preload("Ticket.Patient").
		Where("status = ?", entity.PrescriptionStatusPending).
		Order("id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *prescriptionRepository) MarkDispensedByTicket(ctx context.Context, ticketID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Prescription{}).
		Where("ticket_id = ? AND status = ?", ticketID, entity.PrescriptionStatusPending).
		Update("status", entity.PrescriptionStatusDispensed)
	return result.RowsAffected, result.Error
}
