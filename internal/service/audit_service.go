package service

import (
	"context"

	"medisync/internal/domain/entity"
	"medisync/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService records dashboard actions best-effort: a failed audit write
// never fails the action it describes.
type AuditService interface {
	Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}
	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to write audit log for %s: %+v", action, err)
	}
}
