package handler

import (
	"errors"
	"net/http"

	"medisync/internal/controller"
	"medisync/internal/delivery/http/middleware"
	"medisync/internal/gateway"
	"medisync/internal/session"
	"medisync/pkg/response"
)

type AdminHandler struct {
	controllers func(sess *session.Session) *controller.AdminController
}

func NewAdminHandler(controllers func(sess *session.Session) *controller.AdminController) *AdminHandler {
	return &AdminHandler{controllers: controllers}
}

// GetStats returns the hospital overview summary
// @Summary Hospital-wide stats
// @Description Headline counts and revenue, with a direct-query fallback when the stats endpoint rejects the call
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	stats, err := h.controllers(sess).Stats(r.Context())
	if err != nil {
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			response.BadGateway(w, apiErr.Message)
			return
		}
		response.InternalServerError(w, "Failed to load stats")
		return
	}

	response.Success(w, http.StatusOK, "Hospital stats", stats)
}

// GetStaff returns the staff roster
// @Summary Staff roster
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/staff [get]
func (h *AdminHandler) GetStaff(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	staff, err := h.controllers(sess).Staff(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load staff")
		return
	}

	response.Success(w, http.StatusOK, "Staff roster", staff)
}

// GetFinance returns recent invoices with settlement counts
// @Summary Finance overview
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/finance [get]
func (h *AdminHandler) GetFinance(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	finance, err := h.controllers(sess).Finance(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load finance data")
		return
	}

	response.Success(w, http.StatusOK, "Finance overview", finance)
}
