package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medisync/internal/controller"
	"medisync/internal/delivery/dto"
	"medisync/internal/delivery/http/middleware"
	"medisync/internal/gateway"
	"medisync/internal/session"
	"medisync/pkg/response"
	"medisync/pkg/validator"
)

type PatientHandler struct {
	controllers func(sess *session.Session) *controller.PatientController
	validator   *validator.CustomValidator
}

func NewPatientHandler(controllers func(sess *session.Session) *controller.PatientController,
	validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		controllers: controllers,
		validator:   validator,
	}
}

// GetVisits lists the patient's own visit history
// @Summary Visit history
// @Tags Patient
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient/visits [get]
func (h *PatientHandler) GetVisits(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	c := h.controllers(sess)
	if err := c.Load(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to load visits")
		return
	}

	response.Success(w, http.StatusOK, "Visit history", c.State())
}

// GetInvoices lists the patient's own invoices
// @Summary Patient invoices
// @Tags Patient
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient/invoices [get]
func (h *PatientHandler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	invoices, err := h.controllers(sess).Invoices(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load invoices")
		return
	}

	response.Success(w, http.StatusOK, "Invoices", invoices)
}

// Chat sends one message about a ticket to the AI assistant
// @Summary Ticket chat
// @Tags Patient
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /patient/chat [post]
func (h *PatientHandler) Chat(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	reply, err := h.controllers(sess).Chat(r.Context(), req.TicketID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrTicketNotFound):
			response.NotFound(w, "Ticket not found")
		case errors.Is(err, controller.ErrTicketNotOwnedByPatient):
			response.Forbidden(w, "Ticket does not belong to you")
		default:
			var apiErr *gateway.APIError
			if errors.As(err, &apiErr) {
				response.BadGateway(w, apiErr.Message)
				return
			}
			response.InternalServerError(w, "Failed to send chat message")
		}
		return
	}

	response.Success(w, http.StatusOK, "Chat reply", dto.ChatResponse{Reply: reply})
}

// StartPreAssessment turns a complaint into follow-up questions
// @Summary Start pre-assessment
// @Tags Patient
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ComplaintRequest true "Complaint"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /patient/pre-assessment/questions [post]
func (h *PatientHandler) StartPreAssessment(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.ComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	questions, err := h.controllers(sess).StartPreAssessment(r.Context(), req.Complaint)
	if err != nil {
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			response.BadGateway(w, apiErr.Message)
			return
		}
		response.InternalServerError(w, "Failed to start pre-assessment")
		return
	}

	response.Success(w, http.StatusOK, "Follow-up questions", dto.QuestionsResponse{Questions: questions})
}

// SubmitPreAssessment submits the answered questionnaire for triage
// @Summary Submit pre-assessment
// @Description Every question needs a non-empty answer, in the original order
// @Tags Patient
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SubmitPreAssessmentRequest true "Submit Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /patient/pre-assessment/submit [post]
func (h *PatientHandler) SubmitPreAssessment(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.SubmitPreAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.controllers(sess).SubmitPreAssessment(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrUnansweredQuestions):
			response.BadRequest(w, "Every question needs an answer")
		default:
			var apiErr *gateway.APIError
			if errors.As(err, &apiErr) {
				response.BadGateway(w, apiErr.Message)
				return
			}
			response.InternalServerError(w, "Failed to submit pre-assessment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Pre-assessment result", result)
}
