package controller

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"medisync/internal/converter"
	"medisync/internal/delivery/dto"
	"medisync/internal/domain/repository"
	"medisync/internal/gateway"
)

var (
	ErrTicketNotOwnedByPatient = errors.New("ticket does not belong to this patient")
	ErrUnansweredQuestions     = errors.New("every question needs an answer")
)

type patientGateway interface {
	PatientChat(ctx context.Context, ticketID, message string) (string, error)
	GeneratePreAssessmentQuestions(ctx context.Context, complaint string) ([]string, error)
	SubmitPreAssessment(ctx context.Context, history []gateway.QAEntry) (*gateway.PreAssessmentResult, error)
}

// PatientController backs the patient portal: visit history, invoices, the
// per-ticket AI chat and the pre-assessment intake flow.
type PatientController struct {
	log         *logrus.Logger
	gw          patientGateway
	ticketRepo  repository.TicketRepository
	invoiceRepo repository.InvoiceRepository
	patientID   uuid.UUID

	mu     sync.Mutex
	visits []dto.TicketResponse
}

func NewPatientController(log *logrus.Logger, gw patientGateway,
	ticketRepo repository.TicketRepository, invoiceRepo repository.InvoiceRepository,
	patientID uuid.UUID) *PatientController {
	return &PatientController{
		log:         log,
		gw:          gw,
		ticketRepo:  ticketRepo,
		invoiceRepo: invoiceRepo,
		patientID:   patientID,
	}
}

func (c *PatientController) Name() string { return "patient" }

func (c *PatientController) Load(ctx context.Context) error {
	tickets, err := c.ticketRepo.FindByPatient(ctx, c.patientID, 50)
	if err != nil {
		c.log.Warnf("Failed to load visit history : %+v", err)
		return err
	}

	c.mu.Lock()
	c.visits = converter.TicketsToResponses(tickets)
	c.mu.Unlock()
	return nil
}

func (c *PatientController) Refresh(ctx context.Context) error { return c.Load(ctx) }

func (c *PatientController) State() interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visits
}

// Invoices lists the patient's own invoices, totals re-derived.
func (c *PatientController) Invoices(ctx context.Context) ([]dto.InvoiceResponse, error) {
	invoices, err := c.invoiceRepo.FindByPatient(ctx, c.patientID)
	if err != nil {
		c.log.Warnf("Failed to load invoices : %+v", err)
		return nil, err
	}
	return converter.InvoicesToResponses(invoices), nil
}

// Chat sends one message about the patient's own ticket to the AI assistant.
func (c *PatientController) Chat(ctx context.Context, ticketID int64, message string) (string, error) {
	ticket, err := c.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return "", err
	}
	if ticket == nil {
		return "", ErrTicketNotFound
	}
	if ticket.PatientID != c.patientID {
		return "", ErrTicketNotOwnedByPatient
	}

	reply, err := c.gw.PatientChat(ctx, strconv.FormatInt(ticketID, 10), message)
	if err != nil {
		c.log.Warnf("Patient chat failed for ticket %d : %+v", ticketID, err)
		return "", err
	}
	return reply, nil
}

// StartPreAssessment turns a free-text complaint into follow-up questions.
func (c *PatientController) StartPreAssessment(ctx context.Context, complaint string) ([]string, error) {
	questions, err := c.gw.GeneratePreAssessmentQuestions(ctx, complaint)
	if err != nil {
		c.log.Warnf("Failed to generate pre-assessment questions : %+v", err)
		return nil, err
	}
	return questions, nil
}

// BuildQAHistory interleaves the complaint, questions and answers into the
// alternating dialogue the triage endpoint expects: user complaint first,
// then assistant question / user answer pairs. For N questions the history
// has 2N+1 entries and both starts and ends with a user turn.
func BuildQAHistory(complaint string, questions, answers []string) ([]gateway.QAEntry, error) {
	if len(questions) == 0 || len(questions) != len(answers) {
		return nil, ErrUnansweredQuestions
	}
	for _, answer := range answers {
		if answer == "" {
			return nil, ErrUnansweredQuestions
		}
	}

	history := make([]gateway.QAEntry, 0, 2*len(questions)+1)
	history = append(history, gateway.QAEntry{Role: "user", Content: complaint})
	for i := range questions {
		history = append(history,
			gateway.QAEntry{Role: "assistant", Content: questions[i]},
			gateway.QAEntry{Role: "user", Content: answers[i]},
		)
	}
	return history, nil
}

// SubmitPreAssessment sends the full dialogue for triage. A successful
// submission may open a draft ticket; the visit list is refreshed so it
// shows up immediately.
func (c *PatientController) SubmitPreAssessment(ctx context.Context, request *dto.SubmitPreAssessmentRequest) (*dto.PreAssessmentResponse, error) {
	history, err := BuildQAHistory(request.Complaint, request.Questions, request.Answers)
	if err != nil {
		return nil, err
	}

	result, err := c.gw.SubmitPreAssessment(ctx, history)
	if err != nil {
		c.log.Warnf("Pre-assessment submission failed : %+v", err)
		return nil, err
	}
	if result.Status == "error" {
		message := result.Detail
		if message == "" {
			message = "pre-assessment failed"
		}
		return nil, &gateway.APIError{Status: 200, Message: message}
	}

	if result.TicketID != nil {
		if err := c.Refresh(ctx); err != nil {
			c.log.Warnf("Failed to refresh visits after pre-assessment : %+v", err)
		}
	}

	return &dto.PreAssessmentResponse{
		SeverityLevel:           result.SeverityLevel,
		PredictedSpecialization: result.PredictedSpecialization,
		Summary:                 result.Summary,
		TicketID:                result.TicketID,
	}, nil
}
