package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"medisync/internal/delivery/dto"
	"medisync/internal/domain/entity"
	domainRepo "medisync/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type mockProfileRepository struct {
	CreateFunc           func(ctx context.Context, profile *entity.Profile) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	FindByEmailFunc      func(ctx context.Context, email string) (*entity.Profile, error)
	FindPatientByNIKFunc func(ctx context.Context, nik string) (*entity.Profile, error)
	FindStaffFunc        func(ctx context.Context) ([]entity.Profile, error)
	CountByRoleFunc      func(ctx context.Context, role entity.Role) (int64, error)
}

var _ domainRepo.ProfileRepository = (*mockProfileRepository)(nil)

func (m *mockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return errors.New("CreateFunc not implemented in mock")
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("FindByIDFunc not implemented in mock")
}

func (m *mockProfileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, errors.New("FindByEmailFunc not implemented in mock")
}

func (m *mockProfileRepository) FindPatientByNIK(ctx context.Context, nik string) (*entity.Profile, error) {
	if m.FindPatientByNIKFunc != nil {
		return m.FindPatientByNIKFunc(ctx, nik)
	}
	return nil, errors.New("FindPatientByNIKFunc not implemented in mock")
}

func (m *mockProfileRepository) FindStaff(ctx context.Context) ([]entity.Profile, error) {
	if m.FindStaffFunc != nil {
		return m.FindStaffFunc(ctx)
	}
	return nil, errors.New("FindStaffFunc not implemented in mock")
}

func (m *mockProfileRepository) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, role)
	}
	return 0, errors.New("CountByRoleFunc not implemented in mock")
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:    "budi@example.com",
		Password: "rahasia123",
		Name:     "Budi Santoso",
		NIK:      "3173051234567890",
		Phone:    "081234567890",
		Age:      34,
	}
}

func TestRegisterHashesPasswordAndFixesPatientRole(t *testing.T) {
	var created *entity.Profile
	profiles := &mockProfileRepository{
		CreateFunc: func(ctx context.Context, profile *entity.Profile) error {
			created = profile
			return nil
		},
	}

	u := NewAuthUsecase(testLogger(), profiles, nil, nil, nil)

	user, err := u.Register(context.Background(), registerRequest())
	assert.NoError(t, err)
	assert.Equal(t, entity.RolePatient, user.Role)
	assert.Equal(t, entity.RolePatient, created.Role)
	assert.NotEqual(t, "rahasia123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("rahasia123")))
}

func TestRegisterMapsUniqueViolations(t *testing.T) {
	cases := []struct {
		name       string
		constraint string
		want       error
	}{
		{"duplicate email", "profiles_email_key", ErrEmailAlreadyExists},
		{"duplicate nik", "profiles_nik_key", ErrNIKAlreadyExists},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profiles := &mockProfileRepository{
				CreateFunc: func(ctx context.Context, profile *entity.Profile) error {
					return &pgconn.PgError{Code: "23505", ConstraintName: tc.constraint}
				},
			}

			u := NewAuthUsecase(testLogger(), profiles, nil, nil, nil)

			_, err := u.Register(context.Background(), registerRequest())
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterPassesThroughOtherErrors(t *testing.T) {
	dbErr := errors.New("connection reset")
	profiles := &mockProfileRepository{
		CreateFunc: func(ctx context.Context, profile *entity.Profile) error {
			return dbErr
		},
	}

	u := NewAuthUsecase(testLogger(), profiles, nil, nil, nil)

	_, err := u.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, dbErr)
}

func TestCurrentUserUnknownID(t *testing.T) {
	profiles := &mockProfileRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
			return nil, nil
		},
	}

	u := NewAuthUsecase(testLogger(), profiles, nil, nil, nil)

	_, err := u.CurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
