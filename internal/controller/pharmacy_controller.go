package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"medisync/internal/converter"
	"medisync/internal/delivery/dto"
	"medisync/internal/domain/entity"
	"medisync/internal/domain/repository"
	"medisync/internal/service"
)

var ErrNothingToDispense = errors.New("no pending prescriptions for this ticket")

// PharmacyController backs the dispensing queue (pending prescriptions
// grouped per ticket) and the inventory tab, plus the dispense action.
type PharmacyController struct {
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	medicineRepo     repository.MedicineRepository
	ticketRepo       repository.TicketRepository
	invoiceRepo      repository.InvoiceRepository
	audit            service.AuditService
	pharmacistID     uuid.UUID

	mu    sync.Mutex
	queue []dto.PrescriptionGroup
}

func NewPharmacyController(log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository, medicineRepo repository.MedicineRepository,
	ticketRepo repository.TicketRepository, invoiceRepo repository.InvoiceRepository,
	audit service.AuditService, pharmacistID uuid.UUID) *PharmacyController {
	return &PharmacyController{
		log:              log,
		prescriptionRepo: prescriptionRepo,
		medicineRepo:     medicineRepo,
		ticketRepo:       ticketRepo,
		invoiceRepo:      invoiceRepo,
		audit:            audit,
		pharmacistID:     pharmacistID,
	}
}

func (c *PharmacyController) Name() string { return "pharmacy" }

func (c *PharmacyController) Load(ctx context.Context) error {
	groups, err := c.pendingGroups(ctx)
	if err != nil {
		c.log.Warnf("Failed to load pharmacy queue : %+v", err)
		return err
	}

	c.mu.Lock()
	c.queue = groups
	c.mu.Unlock()
	return nil
}

func (c *PharmacyController) Refresh(ctx context.Context) error { return c.Load(ctx) }

func (c *PharmacyController) State() interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue
}

// pendingGroups folds pending prescription lines into per-ticket groups,
// keeping first-seen ticket order. The group fee is the sum of line fees,
// quantity times catalog unit price.
func (c *PharmacyController) pendingGroups(ctx context.Context) ([]dto.PrescriptionGroup, error) {
	pending, err := c.prescriptionRepo.FindPending(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]dto.PrescriptionGroup, 0)
	index := make(map[int64]int)
	for i := range pending {
		line := &pending[i]
		pos, ok := index[line.TicketID]
		if !ok {
			pos = len(groups)
			index[line.TicketID] = pos
			groups = append(groups, dto.PrescriptionGroup{
				TicketID:    line.TicketID,
				PatientName: line.Ticket.Patient.Name,
				NIK:         line.Ticket.Patient.NIK,
				FoNote:      line.Ticket.FoNote,
				DoctorNote:  line.Ticket.DoctorNote,
				MedicineFee: decimal.Zero,
			})
		}

		fee := line.LineFee()
		groups[pos].Items = append(groups[pos].Items, dto.PrescriptionLine{
			ID:           line.ID,
			MedicineName: line.Medicine.Name,
			Unit:         line.Medicine.Unit,
			UnitPrice:    line.Medicine.Price,
			Quantity:     line.Quantity,
			Notes:        line.Notes,
			LineFee:      fee,
		})
		groups[pos].MedicineFee = groups[pos].MedicineFee.Add(fee)
	}
	return groups, nil
}

// Inventory lists the catalog with stock bands and per-band counts.
func (c *PharmacyController) Inventory(ctx context.Context) (*dto.InventoryResponse, error) {
	medicines, err := c.medicineRepo.FindAll(ctx)
	if err != nil {
		c.log.Warnf("Failed to load medicine catalog : %+v", err)
		return nil, err
	}

	resp := &dto.InventoryResponse{Medicines: make([]dto.MedicineResponse, 0, len(medicines))}
	for i := range medicines {
		item := converter.MedicineToResponse(&medicines[i])
		resp.Medicines = append(resp.Medicines, item)
		switch item.Band {
		case "almost_empty":
			resp.AlmostEmpty++
		case "low":
			resp.LowStock++
		default:
			resp.Available++
		}
	}
	return resp, nil
}

// Dispense hands a ticket's medicines over: marks every pending line
// dispensed, moves the ticket to completed and writes the medicine fee onto
// the ticket's invoice. The three writes run in order without a surrounding
// transaction; a failure mid-sequence leaves the earlier writes in place and
// is reported to the caller.
func (c *PharmacyController) Dispense(ctx context.Context, ticketID int64) (*dto.DispenseResponse, error) {
	groups, err := c.pendingGroups(ctx)
	if err != nil {
		return nil, err
	}

	var fee decimal.Decimal
	var found bool
	for i := range groups {
		if groups[i].TicketID == ticketID {
			fee, found = groups[i].MedicineFee, true
			break
		}
	}
	if !found {
		return nil, ErrNothingToDispense
	}

	lines, err := c.prescriptionRepo.MarkDispensedByTicket(ctx, ticketID)
	if err != nil {
		c.log.Warnf("Failed to mark prescriptions dispensed for ticket %d : %+v", ticketID, err)
		return nil, err
	}

	advanced, err := c.ticketRepo.UpdateStatus(ctx, ticketID, entity.TicketStatusCompleted)
	if err != nil {
		c.log.Warnf("Failed to complete ticket %d : %+v", ticketID, err)
		return nil, err
	}
	if advanced == 0 {
		// The monotonic guard refused the transition; the fee still has to
		// reach the invoice, so only record the skip.
		c.log.Warnf("Ticket %d was not advanced to completed, status already at or past it", ticketID)
	}

	affected, err := c.invoiceRepo.UpdateMedicineFee(ctx, ticketID, fee)
	if err != nil {
		c.log.Warnf("Failed to update invoice medicine fee for ticket %d : %+v", ticketID, err)
		return nil, err
	}
	if affected == 0 {
		invoice := &entity.Invoice{
			TicketID:    ticketID,
			MedicineFee: fee,
			Status:      entity.InvoiceStatusUnpaid,
			IssuedAt:    time.Now(),
		}
		if err := c.invoiceRepo.Create(ctx, invoice); err != nil {
			c.log.Warnf("Failed to create invoice for ticket %d : %+v", ticketID, err)
			return nil, err
		}
	}

	c.audit.Record(ctx, &c.pharmacistID, entity.AuditActionDispenseComplete, entity.JSON{
		"ticket_id":    ticketID,
		"medicine_fee": fee.String(),
	})

	if err := c.Refresh(ctx); err != nil {
		c.log.Warnf("Failed to refresh pharmacy queue after dispense : %+v", err)
	}

	return &dto.DispenseResponse{
		TicketID:       ticketID,
		LinesDispensed: lines,
		MedicineFee:    fee,
		TicketStatus:   entity.TicketStatusCompleted,
	}, nil
}
