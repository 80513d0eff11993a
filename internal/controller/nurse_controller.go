package controller

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"medisync/internal/converter"
	"medisync/internal/delivery/dto"
	"medisync/internal/domain/entity"
	"medisync/internal/domain/repository"
)

// NurseController backs the ward board: active inpatient and operation
// tickets for the nurse's team. The view is strictly read-only; nurses have
// no lifecycle actions.
type NurseController struct {
	log         *logrus.Logger
	profileRepo repository.ProfileRepository
	ticketRepo  repository.TicketRepository
	nurseID     uuid.UUID

	mu     sync.Mutex
	teamID *int64
	board  []dto.TicketResponse
}

func NewNurseController(log *logrus.Logger, profileRepo repository.ProfileRepository,
	ticketRepo repository.TicketRepository, nurseID uuid.UUID) *NurseController {
	return &NurseController{
		log:         log,
		profileRepo: profileRepo,
		ticketRepo:  ticketRepo,
		nurseID:     nurseID,
	}
}

func (c *NurseController) Name() string { return "nurse" }

// Load resolves the nurse's team then fetches the team's ward tickets. A
// nurse without a team assignment sees an empty board, not an error.
func (c *NurseController) Load(ctx context.Context) error {
	profile, err := c.profileRepo.FindByID(ctx, c.nurseID)
	if err != nil {
		c.log.Warnf("Failed to resolve nurse profile : %+v", err)
		return err
	}

	if profile == nil || profile.TeamID == nil {
		c.mu.Lock()
		c.teamID, c.board = nil, nil
		c.mu.Unlock()
		return nil
	}

	tickets, err := c.ticketRepo.FindByNurseTeam(ctx, *profile.TeamID, []entity.TicketStatus{
		entity.TicketStatusInpatient,
		entity.TicketStatusOperation,
	})
	if err != nil {
		c.log.Warnf("Failed to load ward board : %+v", err)
		return err
	}

	c.mu.Lock()
	c.teamID = profile.TeamID
	c.board = converter.TicketsToResponses(tickets)
	c.mu.Unlock()
	return nil
}

func (c *NurseController) Refresh(ctx context.Context) error { return c.Load(ctx) }

func (c *NurseController) State() interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &dto.WardBoardResponse{TeamID: c.teamID, Tickets: c.board}
}
