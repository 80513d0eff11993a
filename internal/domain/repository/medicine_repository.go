package repository

import (
	"context"

	"medisync/internal/domain/entity"
)

type MedicineRepository interface {
	FindAll(ctx context.Context) ([]entity.Medicine, error)
}
