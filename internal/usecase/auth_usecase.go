package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medisync/internal/converter"
	"medisync/internal/delivery/dto"
	"medisync/internal/domain/entity"
	"medisync/internal/domain/repository"
	"medisync/internal/session"
	"medisync/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrNIKAlreadyExists   = errors.New("NIK already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	// Register creates a self-service account; the role is always patient.
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	log         *logrus.Logger
	profileRepo repository.ProfileRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	resolver    *session.Resolver
}

func NewAuthUsecase(
	log *logrus.Logger,
	profileRepo repository.ProfileRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	resolver *session.Resolver,
) AuthUsecase {
	return &authUsecase{
		log:         log,
		profileRepo: profileRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
		resolver:    resolver,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	profile := &entity.Profile{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
		NIK:      req.NIK,
		Role:     entity.RolePatient,
		Phone:    req.Phone,
		Age:      req.Age,
	}

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "nik") {
			return nil, ErrNIKAlreadyExists
		}
		u.log.Warnf("Failed to create profile: %+v", err)
		return nil, err
	}

	return converter.ProfileToUserResponse(profile), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	profile, err := u.profileRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find profile by email: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", profile.ID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", profile.ID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	u.resolver.Publish(ctx, session.Event{Kind: session.EventSignedIn, UserID: profile.ID})

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error {
	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	// Revoke every refresh token for the user as well.
	refreshPattern := fmt.Sprintf("refresh_token:%s:*", userID.String())
	refreshKeys, err := u.redisClient.Keys(ctx, refreshPattern).Result()
	if err != nil {
		u.log.Warnf("Failed to list refresh tokens: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete refresh tokens: %+v", err)
			return err
		}
	}

	u.resolver.Publish(ctx, session.Event{Kind: session.EventSignedOut, UserID: userID})
	return nil
}

func (u *authUsecase) CurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	profile, err := u.profileRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile by ID: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return converter.ProfileToUserResponse(profile), nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
