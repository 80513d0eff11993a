package repository

import (
	"context"

	"medisync/internal/domain/entity"
	domainRepo "medisync/internal/domain/repository"

	"gorm.io/gorm"
)

type medicineRepository struct {
	db *gorm.DB
}

func NewMedicineRepository(db *gorm.DB) domainRepo.MedicineRepository {
	return &medicineRepository{db: db}
}

func (r *medicineRepository) FindAll(ctx context.Context) ([]entity.Medicine, error) {
	var medicines []entity.Medicine
	err := r.db.WithContext(ctx).Order("name ASC").Find(&medicines).Error
	if err != nil {
		return nil, err
	}
	return medicines, nil
}
