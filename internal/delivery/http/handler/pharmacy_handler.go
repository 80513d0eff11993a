package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"medisync/internal/controller"
	"medisync/internal/delivery/http/middleware"
	"medisync/internal/session"
	"medisync/pkg/response"
)

type PharmacyHandler struct {
	controllers func(sess *session.Session) *controller.PharmacyController
}

func NewPharmacyHandler(controllers func(sess *session.Session) *controller.PharmacyController) *PharmacyHandler {
	return &PharmacyHandler{controllers: controllers}
}

// GetQueue lists pending prescriptions grouped per ticket
// @Summary Dispensing queue
// @Tags Pharmacy
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /pharmacy/queue [get]
func (h *PharmacyHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	c := h.controllers(sess)
	if err := c.Load(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to load dispensing queue")
		return
	}

	response.Success(w, http.StatusOK, "Dispensing queue", c.State())
}

// GetInventory lists the medicine catalog with stock bands
// @Summary Medicine inventory
// @Tags Pharmacy
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /pharmacy/inventory [get]
func (h *PharmacyHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	inventory, err := h.controllers(sess).Inventory(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load inventory")
		return
	}

	response.Success(w, http.StatusOK, "Medicine inventory", inventory)
}

// Dispense hands a ticket's medicines over
// @Summary Dispense a ticket's prescriptions
// @Description Marks pending lines dispensed, completes the ticket and writes the medicine fee onto the invoice
// @Tags Pharmacy
// @Security BearerAuth
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pharmacy/tickets/{id}/dispense [post]
func (h *PharmacyHandler) Dispense(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.controllers(sess).Dispense(r.Context(), ticketID)
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrNothingToDispense):
			response.NotFound(w, "No pending prescriptions for this ticket")
		default:
			response.InternalServerError(w, "Failed to dispense")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dispense completed", result)
}
