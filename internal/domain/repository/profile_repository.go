package repository

import (
	"context"

	"medisync/internal/domain/entity"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	FindByEmail(ctx context.Context, email string) (*entity.Profile, error)
	// FindPatientByNIK looks up a patient by national id; nil when no match.
	FindPatientByNIK(ctx context.Context, nik string) (*entity.Profile, error)
	// FindStaff lists every non-patient profile ordered by role.
	FindStaff(ctx context.Context) ([]entity.Profile, error)
	CountByRole(ctx context.Context, role entity.Role) (int64, error)
}
