package repository

import (
	"context"
	"errors"

	"medisync/internal/domain/entity"
	domainRepo "medisync/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) domainRepo.TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) FindByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor.Profile").
		Preload("Room").
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindRecent(ctx context.Context, limit int) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Order("created_at DESC").
		Limit(limit).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) FindByDoctor(ctx context.Context, doctorID uuid.UUID) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Room").
		Where("doctor_id = ? AND status != ?", doctorID, entity.TicketStatusCompleted).
		Order("created_at ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) FindByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := r.db.WithContext(ctx).
		Preload("Doctor.Profile").
		Preload("Room").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) FindByNurseTeam(ctx context.Context, teamID int64, statuses []entity.TicketStatus) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Room").
		Where("nurse_team_id = ? AND status IN ?", teamID, statuses).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Ticket{}).Count(&count).Error
	return count, err
}

func (r *ticketRepository) CountByStatus(ctx context.Context) (map[entity.TicketStatus]int64, error) {
	type row struct {
		Status entity.TicketStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&entity.Ticket{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	breakdown := make(map[entity.TicketStatus]int64, len(rows))
	for _, r := range rows {
		breakdown[r.Status] = r.Count
	}
	return breakdown, nil
}

// UpdateStatus guards monotonicity in SQL: the row only changes when the
// stored status ranks strictly below the new one.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id int64, status entity.TicketStatus) (int64, error) {
	regressed := regressionGuard(status)
	result := r.db.WithContext(ctx).
		Model(&entity.Ticket{}).
		Where("id = ? AND status NOT IN ?", id, regressed).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// regressionGuard lists the statuses that are at or past the target, i.e.
// the ones an update to target would illegally regress or repeat.
func regressionGuard(target entity.TicketStatus) []entity.TicketStatus {
	all := []entity.TicketStatus{
		entity.TicketStatusDraft,
		entity.TicketStatusAssignedDoctor,
		entity.TicketStatusInProgress,
		entity.TicketStatusInpatient,
		entity.TicketStatusOperation,
		entity.TicketStatusWaitingPharmacy,
		entity.TicketStatusCompleted,
	}
	var blocked []entity.TicketStatus
	for _, s := range all {
		if !s.CanAdvanceTo(target) {
			blocked = append(blocked, s)
		}
	}
	return blocked
}
