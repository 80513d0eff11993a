package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"medisync/internal/converter"
	"medisync/internal/delivery/dto"
	"medisync/internal/domain/entity"
	"medisync/internal/domain/repository"
	"medisync/internal/gateway"
)

type adminGateway interface {
	AdminStats(ctx context.Context) (*gateway.AdminStats, error)
}

// AdminController backs the hospital-wide overview: headline stats, staff
// roster, finance and ticket status breakdown.
type AdminController struct {
	log         *logrus.Logger
	gw          adminGateway
	profileRepo repository.ProfileRepository
	doctorRepo  repository.DoctorRepository
	ticketRepo  repository.TicketRepository
	invoiceRepo repository.InvoiceRepository

	mu    sync.Mutex
	stats *dto.AdminStatsResponse
	err   error
}

func NewAdminController(log *logrus.Logger, gw adminGateway,
	profileRepo repository.ProfileRepository, doctorRepo repository.DoctorRepository,
	ticketRepo repository.TicketRepository, invoiceRepo repository.InvoiceRepository) *AdminController {
	return &AdminController{
		log:         log,
		gw:          gw,
		profileRepo: profileRepo,
		doctorRepo:  doctorRepo,
		ticketRepo:  ticketRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (c *AdminController) Name() string { return "admin" }

func (c *AdminController) Load(ctx context.Context) error {
	stats, err := c.Stats(ctx)

	c.mu.Lock()
	c.stats, c.err = stats, err
	c.mu.Unlock()

	return err
}

func (c *AdminController) Refresh(ctx context.Context) error { return c.Load(ctx) }

func (c *AdminController) State() interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Stats serves the headline numbers from the stats endpoint when it answers,
// and falls back to direct aggregate queries only when the endpoint itself
// rejected the call. Transport failures and decode mismatches propagate.
func (c *AdminController) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	resp := &dto.AdminStatsResponse{Source: "gateway"}

	stats, err := c.gw.AdminStats(ctx)
	if err != nil {
		var apiErr *gateway.APIError
		if !errors.As(err, &apiErr) {
			return nil, err
		}
		c.log.Warnf("admin stats endpoint failed, falling back to direct aggregates : %+v", err)
		if err := c.fallbackStats(ctx, resp); err != nil {
			return nil, err
		}
		resp.Source = "fallback"
	} else {
		resp.TotalPatients = stats.Patients
		resp.TotalDoctors = stats.Doctors
		resp.TotalTickets = stats.Tickets
		resp.TotalRevenue = stats.Revenue
	}

	breakdown, err := c.statusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	resp.TicketsByStatus = breakdown

	return resp, nil
}

func (c *AdminController) fallbackStats(ctx context.Context, resp *dto.AdminStatsResponse) error {
	patients, err := c.profileRepo.CountByRole(ctx, entity.RolePatient)
	if err != nil {
		return err
	}
	doctors, err := c.doctorRepo.Count(ctx)
	if err != nil {
		return err
	}
	tickets, err := c.ticketRepo.Count(ctx)
	if err != nil {
		return err
	}
	revenue, err := c.invoiceRepo.SumFees(ctx)
	if err != nil {
		return err
	}

	resp.TotalPatients = patients
	resp.TotalDoctors = doctors
	resp.TotalTickets = tickets
	resp.TotalRevenue = revenue
	return nil
}

func (c *AdminController) statusBreakdown(ctx context.Context) ([]dto.StatusBreakdown, error) {
	counts, err := c.ticketRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	statuses := []entity.TicketStatus{
		entity.TicketStatusDraft,
		entity.TicketStatusAssignedDoctor,
		entity.TicketStatusInProgress,
		entity.TicketStatusInpatient,
		entity.TicketStatusOperation,
		entity.TicketStatusWaitingPharmacy,
		entity.TicketStatusCompleted,
	}

	breakdown := make([]dto.StatusBreakdown, 0, len(statuses))
	for _, status := range statuses {
		breakdown = append(breakdown, dto.StatusBreakdown{Status: status, Count: counts[status]})
	}
	return breakdown, nil
}

// Staff lists every non-patient profile for the roster tab.
func (c *AdminController) Staff(ctx context.Context) ([]dto.StaffMemberResponse, error) {
	profiles, err := c.profileRepo.FindStaff(ctx)
	if err != nil {
		c.log.Warnf("Failed to load staff roster : %+v", err)
		return nil, err
	}

	responses := make([]dto.StaffMemberResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, converter.ProfileToStaffResponse(&profiles[i]))
	}
	return responses, nil
}

// Finance lists recent invoices with paid and unpaid counts. The per-invoice
// total is always re-derived from the three fee columns.
func (c *AdminController) Finance(ctx context.Context) (*dto.FinanceResponse, error) {
	invoices, err := c.invoiceRepo.FindRecent(ctx, 50)
	if err != nil {
		c.log.Warnf("Failed to load invoices : %+v", err)
		return nil, err
	}

	resp := &dto.FinanceResponse{
		Invoices:    converter.InvoicesToResponses(invoices),
		TotalBilled: decimal.Zero,
	}
	for i := range invoices {
		resp.TotalBilled = resp.TotalBilled.Add(invoices[i].Total())
		if invoices[i].IsPaid() {
			resp.PaidCount++
		} else {
			resp.UnpaidCount++
		}
	}
	return resp, nil
}
