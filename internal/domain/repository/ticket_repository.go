package repository

import (
	"context"

	"medisync/internal/domain/entity"

	"github.com/google/uuid"
)

type TicketRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Ticket, error)
	// FindRecent returns the newest tickets with patient profiles embedded.
	FindRecent(ctx context.Context, limit int) ([]entity.Ticket, error)
	// FindByDoctor returns the doctor's open queue: status != completed,
	// oldest first, patient profiles embedded.
	FindByDoctor(ctx context.Context, doctorID uuid.UUID) ([]entity.Ticket, error)
	// FindByPatient returns a patient's visit history, newest first.
	FindByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]entity.Ticket, error)
	// FindByNurseTeam returns ward tickets for a team filtered to the given
	// statuses, with patient and room embedded.
	FindByNurseTeam(ctx context.Context, teamID int64, statuses []entity.TicketStatus) ([]entity.Ticket, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[entity.TicketStatus]int64, error)
	// UpdateStatus moves a ticket forward; returns affected rows.
	UpdateStatus(ctx context.Context, id int64, status entity.TicketStatus) (int64, error)
}
