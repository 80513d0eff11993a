package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"medisync/internal/converter"
	"medisync/internal/delivery/dto"
	"medisync/internal/domain/entity"
	"medisync/internal/domain/repository"
	"medisync/internal/gateway"
	"medisync/internal/service"
)

var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrTicketNotOwned      = errors.New("ticket is not in this doctor's queue")
	ErrTicketAlreadyClosed = errors.New("ticket is already completed")
)

type doctorGateway interface {
	DoctorAssist(ctx context.Context, nik, doctorDraft string) (string, error)
	CompleteCheckup(ctx context.Context, ticketID int64, req gateway.CompleteCheckupRequest) error
}

// DoctorController backs the examination queue: open tickets assigned to this
// doctor, per-patient visit history, an optional AI note assistant and the
// complete-checkup action.
type DoctorController struct {
	log        *logrus.Logger
	gw         doctorGateway
	ticketRepo repository.TicketRepository
	audit      service.AuditService
	doctorID   uuid.UUID

	mu    sync.Mutex
	queue []dto.TicketResponse
}

func NewDoctorController(log *logrus.Logger, gw doctorGateway,
	ticketRepo repository.TicketRepository, audit service.AuditService,
	doctorID uuid.UUID) *DoctorController {
	return &DoctorController{
		log:        log,
		gw:         gw,
		ticketRepo: ticketRepo,
		audit:      audit,
		doctorID:   doctorID,
	}
}

func (c *DoctorController) Name() string { return "doctor" }

func (c *DoctorController) Load(ctx context.Context) error {
	tickets, err := c.ticketRepo.FindByDoctor(ctx, c.doctorID)
	if err != nil {
		c.log.Warnf("Failed to load doctor queue : %+v", err)
		return err
	}

	c.mu.Lock()
	c.queue = converter.TicketsToResponses(tickets)
	c.mu.Unlock()
	return nil
}

func (c *DoctorController) Refresh(ctx context.Context) error { return c.Load(ctx) }

func (c *DoctorController) State() interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue
}

// PatientHistory returns the patient's last visits for the side panel.
func (c *DoctorController) PatientHistory(ctx context.Context, patientID uuid.UUID) ([]dto.TicketResponse, error) {
	tickets, err := c.ticketRepo.FindByPatient(ctx, patientID, 10)
	if err != nil {
		c.log.Warnf("Failed to load patient history : %+v", err)
		return nil, err
	}
	return converter.TicketsToResponses(tickets), nil
}

// Assist asks the AI for a diagnosis-note suggestion. The assistant is
// strictly optional: any failure is logged and an empty suggestion returned,
// the examination flow never blocks on it.
func (c *DoctorController) Assist(ctx context.Context, nik, doctorDraft string) string {
	suggestion, err := c.gw.DoctorAssist(ctx, nik, doctorDraft)
	if err != nil {
		c.log.Warnf("AI assist unavailable : %+v", err)
		return ""
	}
	return suggestion
}

// CompleteCheckup closes the examination for a ticket in this doctor's
// queue. The backend decides the next status from the pharmacy and inpatient
// flags; already-completed tickets are rejected here before the call.
func (c *DoctorController) CompleteCheckup(ctx context.Context, ticketID int64, request *dto.CompleteCheckupRequest) error {
	ticket, err := c.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return ErrTicketNotFound
	}
	if ticket.DoctorID == nil || *ticket.DoctorID != c.doctorID {
		return ErrTicketNotOwned
	}
	if ticket.IsCompleted() {
		return ErrTicketAlreadyClosed
	}

	err = c.gw.CompleteCheckup(ctx, ticketID, gateway.CompleteCheckupRequest{
		DoctorNote:        request.DoctorNote,
		RequirePharmacy:   request.RequirePharmacy,
		RequiresInpatient: request.RequiresInpatient,
	})
	if err != nil {
		c.log.Warnf("Failed to complete checkup for ticket %d : %+v", ticketID, err)
		return err
	}

	c.audit.Record(ctx, &c.doctorID, entity.AuditActionCheckupComplete, entity.JSON{
		"ticket_id": ticketID,
	})

	if err := c.Refresh(ctx); err != nil {
		c.log.Warnf("Failed to refresh queue after checkup : %+v", err)
	}
	return nil
}
