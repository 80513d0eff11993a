package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"medisync/internal/controller"
	"medisync/internal/delivery/dto"
	"medisync/internal/delivery/http/middleware"
	"medisync/internal/gateway"
	"medisync/internal/session"
	"medisync/pkg/response"
	"medisync/pkg/validator"
)

type FrontOfficeHandler struct {
	controllers func(sess *session.Session) *controller.FrontOfficeController
	validator   *validator.CustomValidator
}

func NewFrontOfficeHandler(controllers func(sess *session.Session) *controller.FrontOfficeController,
	validator *validator.CustomValidator) *FrontOfficeHandler {
	return &FrontOfficeHandler{
		controllers: controllers,
		validator:   validator,
	}
}

// SearchPatient looks a patient up by NIK
// @Summary Search patient by NIK
// @Description Returns found=false when no patient matches, signalling the new-patient form
// @Tags FrontOffice
// @Security BearerAuth
// @Produce json
// @Param nik query string true "16-digit national id"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /front-office/patients/search [get]
func (h *FrontOfficeHandler) SearchPatient(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	nik := r.URL.Query().Get("nik")
	if nik == "" {
		response.BadRequest(w, "nik query parameter is required")
		return
	}

	result := h.controllers(sess).SearchPatient(r.Context(), nik)
	response.Success(w, http.StatusOK, "Patient search result", result)
}

// GetDoctors lists doctors for the assignment dropdown
// @Summary List doctors
// @Tags FrontOffice
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /front-office/doctors [get]
func (h *FrontOfficeHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	doctors, err := h.controllers(sess).Doctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctor list", doctors)
}

// AnalyzeNote runs AI triage over an intake note
// @Summary Analyze an intake note
// @Description Returns a triage suggestion; the operator can override every field before creating the ticket
// @Tags FrontOffice
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeNoteRequest true "Analyze Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /front-office/tickets/analyze [post]
func (h *FrontOfficeHandler) AnalyzeNote(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.AnalyzeNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	draft := &controller.TicketDraft{FoNote: req.FoNote, PatientID: req.PatientID}
	analysis, err := h.controllers(sess).Analyze(r.Context(), draft)
	if err != nil {
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			response.BadGateway(w, apiErr.Message)
			return
		}
		response.InternalServerError(w, "Failed to analyze note")
		return
	}

	response.Success(w, http.StatusOK, "Analysis complete", analysis)
}

// CreateTicket opens a care episode
// @Summary Create a ticket
// @Description Registers the patient first when the NIK is unknown and the new-patient form is filled
// @Tags FrontOffice
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTicketRequest true "Create Ticket Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /front-office/tickets [post]
func (h *FrontOfficeHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	c := h.controllers(sess)

	draft := &controller.TicketDraft{
		NIK:               req.NIK,
		FoNote:            req.FoNote,
		DoctorID:          req.DoctorID,
		RequiresInpatient: req.RequiresInpatient,
		SeverityLevel:     req.SeverityLevel,
		AIReasoning:       req.AIReasoning,
	}

	// Resolve the patient up front so the draft knows which branch it is on.
	search := c.SearchPatient(r.Context(), req.NIK)
	if search.Found {
		draft.PatientID = &search.Patient.ID
	} else {
		draft.IsNewPatient = true
		if req.NewPatient != nil {
			draft.NewPatient = *req.NewPatient
		}
	}

	result, err := c.CreateTicket(r.Context(), draft)
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrNewPatientIncomplete):
			response.BadRequest(w, "New patient requires name, age and phone")
		default:
			var apiErr *gateway.APIError
			if errors.As(err, &apiErr) {
				response.BadGateway(w, apiErr.Message)
				return
			}
			response.InternalServerError(w, "Failed to create ticket")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Ticket created", result)
}

// AssignDoctor assigns a doctor to a draft ticket
// @Summary Assign a doctor
// @Description Only draft tickets can be assigned; tickets created with a doctor never pass through here
// @Tags FrontOffice
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body dto.AssignDoctorRequest true "Assign Doctor Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /front-office/tickets/{id}/assign [post]
func (h *FrontOfficeHandler) AssignDoctor(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	ticketID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid ticket id")
		return
	}

	var req dto.AssignDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.controllers(sess).AssignDoctor(r.Context(), ticketID, req.DoctorID); err != nil {
		switch {
		case errors.Is(err, controller.ErrTicketNotFound):
			response.NotFound(w, "Ticket not found")
		case errors.Is(err, controller.ErrTicketNotDraft):
			response.Error(w, http.StatusConflict, "Ticket already has a doctor assigned", nil)
		default:
			var apiErr *gateway.APIError
			if errors.As(err, &apiErr) {
				response.BadGateway(w, apiErr.Message)
				return
			}
			response.InternalServerError(w, "Failed to assign doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor assigned", nil)
}

// GetTickets lists recent tickets
// @Summary Recent tickets
// @Tags FrontOffice
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /front-office/tickets [get]
func (h *FrontOfficeHandler) GetTickets(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	c := h.controllers(sess)
	if err := c.Load(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to load tickets")
		return
	}

	response.Success(w, http.StatusOK, "Recent tickets", c.State())
}
