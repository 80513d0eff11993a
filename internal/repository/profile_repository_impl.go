package repository

import (
	"context"
	"errors"

	"medisync/internal/domain/entity"
	domainRepo "medisync/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) domainRepo.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).Preload("Doctor").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindPatientByNIK(ctx context.Context, nik string) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).
		Where("nik = ? AND role = ?", nik, entity.RolePatient).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindStaff(ctx context.Context) ([]entity.Profile, error) {
	var staff []entity.Profile
	err := r.db.WithContext(ctx).
		Where("role != ?", entity.RolePatient).
		Order("role ASC, name ASC").
		Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *profileRepository) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Profile{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}
