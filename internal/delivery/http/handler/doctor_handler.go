package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"medisync/internal/controller"
	"medisync/internal/delivery/dto"
	"medisync/internal/delivery/http/middleware"
	"medisync/internal/gateway"
	"medisync/internal/session"
	"medisync/pkg/response"
	"medisync/pkg/validator"
)

type DoctorHandler struct {
	controllers func(sess *session.Session) *controller.DoctorController
	validator   *validator.CustomValidator
}

func NewDoctorHandler(controllers func(sess *session.Session) *controller.DoctorController,
	validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		controllers: controllers,
		validator:   validator,
	}
}

// GetQueue lists the doctor's open tickets, oldest first
// @Summary Examination queue
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/queue [get]
func (h *DoctorHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	c := h.controllers(sess)
	if err := c.Load(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to load queue")
		return
	}

	response.Success(w, http.StatusOK, "Examination queue", c.State())
}

// GetPatientHistory lists a patient's past visits
// @Summary Patient visit history
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Param patientId path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctor/patients/{patientId}/history [get]
func (h *DoctorHandler) GetPatientHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	vars := mux.Vars(r)
	patientID, err := uuid.Parse(vars["patientId"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	history, err := h.controllers(sess).PatientHistory(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to load patient history")
		return
	}

	response.Success(w, http.StatusOK, "Patient history", history)
}

// Assist asks the AI for a diagnosis-note suggestion
// @Summary AI note assistant
// @Description Best-effort; an unavailable assistant returns an empty suggestion, never an error
// @Tags Doctor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.DoctorAssistRequest true "Assist Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctor/assist [post]
func (h *DoctorHandler) Assist(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.DoctorAssistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	suggestion := h.controllers(sess).Assist(r.Context(), req.NIK, req.DoctorDraft)
	response.Success(w, http.StatusOK, "Assist suggestion", map[string]string{"suggestion": suggestion})
}

// CompleteCheckup closes the examination for a queued ticket
// @Summary Complete a checkup
// @Description Records the diagnosis and routes the ticket onward based on the pharmacy and inpatient flags
// @Tags Doctor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body dto.CompleteCheckupRequest true "Complete Checkup Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /doctor/tickets/{id}/complete [post]
func (h *DoctorHandler) CompleteCheckup(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	vars := mux.Vars(r)
	ticketID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid ticket ID")
		return
	}

	var req dto.CompleteCheckupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.controllers(sess).CompleteCheckup(r.Context(), ticketID, &req); err != nil {
		switch {
		case errors.Is(err, controller.ErrTicketNotFound):
			response.NotFound(w, "Ticket not found")
		case errors.Is(err, controller.ErrTicketNotOwned):
			response.Forbidden(w, "Ticket is not in your queue")
		case errors.Is(err, controller.ErrTicketAlreadyClosed):
			response.Conflict(w, "Ticket is already completed")
		default:
			var apiErr *gateway.APIError
			if errors.As(err, &apiErr) {
				response.BadGateway(w, apiErr.Message)
				return
			}
			response.InternalServerError(w, "Failed to complete checkup")
		}
		return
	}

	response.Success(w, http.StatusOK, "Checkup completed", nil)
}
