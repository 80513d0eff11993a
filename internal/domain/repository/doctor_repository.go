package repository

import (
	"context"

	"medisync/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error)
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	Count(ctx context.Context) (int64, error)
}
