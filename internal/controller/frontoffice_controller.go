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
	ErrNewPatientIncomplete = errors.New("new patient form requires name, age and phone")
	ErrPatientUnresolved    = errors.New("patient could not be resolved for this nik")
	ErrTicketNotDraft       = errors.New("ticket already has a doctor assigned")
)

type frontOfficeGateway interface {
	AnalyzeTicket(ctx context.Context, foNote string, patientID *uuid.UUID) (*gateway.AIAnalysis, error)
	RegisterPatient(ctx context.Context, req gateway.RegisterPatientRequest) (*gateway.RegisteredPatient, error)
	CreateTicket(ctx context.Context, req gateway.CreateTicketRequest) (*gateway.CreateTicketResult, error)
	AssignDoctor(ctx context.Context, ticketID int64, doctorID uuid.UUID) error
}

// FrontOfficeController backs patient intake: NIK lookup, AI triage of the
// intake note, inline registration of unknown patients and ticket creation.
type FrontOfficeController struct {
	log         *logrus.Logger
	gw          frontOfficeGateway
	profileRepo repository.ProfileRepository
	doctorRepo  repository.DoctorRepository
	ticketRepo  repository.TicketRepository
	audit       service.AuditService
	operatorID  uuid.UUID

	mu      sync.Mutex
	tickets []dto.TicketResponse
}

func NewFrontOfficeController(log *logrus.Logger, gw frontOfficeGateway,
	profileRepo repository.ProfileRepository, doctorRepo repository.DoctorRepository,
	ticketRepo repository.TicketRepository, audit service.AuditService,
	operatorID uuid.UUID) *FrontOfficeController {
	return &FrontOfficeController{
		log:         log,
		gw:          gw,
		profileRepo: profileRepo,
		doctorRepo:  doctorRepo,
		ticketRepo:  ticketRepo,
		audit:       audit,
		operatorID:  operatorID,
	}
}

func (c *FrontOfficeController) Name() string { return "front_office" }

func (c *FrontOfficeController) Load(ctx context.Context) error {
	tickets, err := c.ticketRepo.FindRecent(ctx, 10)
	if err != nil {
		c.log.Warnf("Failed to load recent tickets : %+v", err)
		return err
	}

	c.mu.Lock()
	c.tickets = converter.TicketsToResponses(tickets)
	c.mu.Unlock()
	return nil
}

func (c *FrontOfficeController) Refresh(ctx context.Context) error { return c.Load(ctx) }

func (c *FrontOfficeController) State() interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickets
}

// SearchPatient looks a patient up by NIK. A lookup failure degrades to
// "not found" so the operator falls through to the new-patient form instead
// of being blocked.
func (c *FrontOfficeController) SearchPatient(ctx context.Context, nik string) *dto.PatientSearchResponse {
	patient, err := c.profileRepo.FindPatientByNIK(ctx, nik)
	if err != nil {
		c.log.Warnf("Patient lookup failed for nik %s : %+v", nik, err)
		return &dto.PatientSearchResponse{Found: false}
	}
	if patient == nil {
		return &dto.PatientSearchResponse{Found: false}
	}
	return &dto.PatientSearchResponse{
		Found: true,
		Patient: &dto.PatientRef{
			ID:   patient.ID,
			Name: patient.Name,
			NIK:  patient.NIK,
			Age:  patient.Age,
		},
	}
}

// Doctors lists the doctor roster for the assignment dropdown.
func (c *FrontOfficeController) Doctors(ctx context.Context) ([]dto.DoctorRef, error) {
	doctors, err := c.doctorRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	refs := make([]dto.DoctorRef, 0, len(doctors))
	for i := range doctors {
		refs = append(refs, dto.DoctorRef{
			ID:             doctors[i].UserID,
			Name:           doctors[i].Profile.Name,
			Specialization: doctors[i].Specialization,
		})
	}
	return refs, nil
}

// TicketDraft is the intake form state. AI analysis pre-fills the suggestion
// fields; the operator's later edits always win because creation reads the
// draft, never the analysis.
type TicketDraft struct {
	NIK          string
	FoNote       string
	PatientID    *uuid.UUID
	IsNewPatient bool
	NewPatient   dto.NewPatientForm

	DoctorID          *uuid.UUID
	RequiresInpatient bool
	SeverityLevel     string
	AIReasoning       string
}

// ApplyAnalysis pre-fills the editable triage fields from an AI suggestion.
func (d *TicketDraft) ApplyAnalysis(analysis *gateway.AIAnalysis) {
	if analysis == nil {
		return
	}
	d.RequiresInpatient = analysis.RequiresInpatient
	d.SeverityLevel = analysis.SeverityLevel
	d.AIReasoning = analysis.Reasoning
	if analysis.RecommendedDoctorID != nil {
		d.DoctorID = analysis.RecommendedDoctorID
	}
}

// CanCreate reports whether the draft is complete enough to submit: an intake
// note plus either a known patient or a fully filled new-patient form.
func (d *TicketDraft) CanCreate() bool {
	if d.FoNote == "" || d.NIK == "" {
		return false
	}
	if d.PatientID != nil {
		return true
	}
	if !d.IsNewPatient {
		return false
	}
	return d.NewPatient.Name != "" && d.NewPatient.Age > 0 && d.NewPatient.Phone != ""
}

// Analyze runs AI triage over the draft's intake note and pre-fills the
// draft's triage fields with the result.
func (c *FrontOfficeController) Analyze(ctx context.Context, draft *TicketDraft) (*gateway.AIAnalysis, error) {
	analysis, err := c.gw.AnalyzeTicket(ctx, draft.FoNote, draft.PatientID)
	if err != nil {
		c.log.Warnf("AI analysis failed : %+v", err)
		return nil, err
	}
	draft.ApplyAnalysis(analysis)
	return analysis, nil
}

// CreateTicket submits the draft. Unknown patients are registered first
// through the backend so the ticket always references a real profile.
func (c *FrontOfficeController) CreateTicket(ctx context.Context, draft *TicketDraft) (*dto.CreateTicketResponse, error) {
	if !draft.CanCreate() {
		return nil, ErrNewPatientIncomplete
	}

	patientID := draft.PatientID
	if patientID == nil {
		registered, err := c.gw.RegisterPatient(ctx, gateway.RegisterPatientRequest{
			NIK:   draft.NIK,
			Name:  draft.NewPatient.Name,
			Age:   draft.NewPatient.Age,
			Phone: draft.NewPatient.Phone,
		})
		if err != nil {
			c.log.Warnf("Failed to register patient : %+v", err)
			return nil, err
		}
		patientID = &registered.ID
		c.audit.Record(ctx, &c.operatorID, entity.AuditActionPatientRegister, entity.JSON{
			"patient_id": registered.ID.String(),
			"nik":        draft.NIK,
		})
	}

	if patientID == nil {
		return nil, ErrPatientUnresolved
	}

	result, err := c.gw.CreateTicket(ctx, gateway.CreateTicketRequest{
		PatientID:         *patientID,
		FoNote:            draft.FoNote,
		DoctorID:          draft.DoctorID,
		RequiresInpatient: draft.RequiresInpatient,
		SeverityLevel:     draft.SeverityLevel,
		AIReasoning:       draft.AIReasoning,
	})
	if err != nil {
		c.log.Warnf("Failed to create ticket : %+v", err)
		return nil, err
	}

	c.audit.Record(ctx, &c.operatorID, entity.AuditActionTicketCreate, entity.JSON{
		"ticket_id":  result.Ticket.ID,
		"patient_id": patientID.String(),
	})

	if err := c.Refresh(ctx); err != nil {
		c.log.Warnf("Failed to refresh ticket list after create : %+v", err)
	}

	return &dto.CreateTicketResponse{
		TicketID:          result.Ticket.ID,
		Status:            result.Ticket.Status,
		AssignedNurseTeam: result.AssignedNurseTeam,
	}, nil
}

// AssignDoctor places a draft ticket in a doctor's queue. Tickets created
// with a doctor already chosen never pass through here.
func (c *FrontOfficeController) AssignDoctor(ctx context.Context, ticketID int64, doctorID uuid.UUID) error {
	ticket, err := c.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		c.log.Warnf("Failed to find ticket %d : %+v", ticketID, err)
		return err
	}
	if ticket == nil {
		return ErrTicketNotFound
	}
	if ticket.Status != entity.TicketStatusDraft {
		return ErrTicketNotDraft
	}

	if err := c.gw.AssignDoctor(ctx, ticketID, doctorID); err != nil {
		c.log.Warnf("Failed to assign doctor to ticket %d : %+v", ticketID, err)
		return err
	}

	c.audit.Record(ctx, &c.operatorID, entity.AuditActionDoctorAssign, entity.JSON{
		"ticket_id": ticketID,
		"doctor_id": doctorID.String(),
	})

	if err := c.Refresh(ctx); err != nil {
		c.log.Warnf("Failed to refresh ticket list after assign : %+v", err)
	}
	return nil
}
