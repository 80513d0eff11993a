package handler

import (
	"errors"
	"net/http"

	"medisync/internal/controller"
	"medisync/internal/delivery/http/middleware"
	"medisync/internal/gateway"
	"medisync/pkg/response"
)

// dashboardPayload wraps a view snapshot with the view's name so clients
// know which role screen to render.
type dashboardPayload struct {
	View  string      `json:"view"`
	State interface{} `json:"state"`
}

type DashboardHandler struct {
	views *controller.Router
}

func NewDashboardHandler(views *controller.Router) *DashboardHandler {
	return &DashboardHandler{views: views}
}

// GetDashboard loads the role-appropriate view for the session
// @Summary Get the dashboard for the caller's role
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	view := h.views.Resolve(sess)
	if err := view.Load(r.Context()); err != nil {
		writeViewError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Dashboard loaded", dashboardPayload{
		View:  view.Name(),
		State: view.State(),
	})
}

// Refresh refetches the role view on demand
// @Summary Refresh the caller's dashboard
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/refresh [post]
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	view := h.views.Resolve(sess)
	if err := view.Refresh(r.Context()); err != nil {
		writeViewError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Dashboard refreshed", dashboardPayload{
		View:  view.Name(),
		State: view.State(),
	})
}

// writeViewError maps controller errors to HTTP statuses. Upstream failures
// keep the upstream message; everything else is a plain 500.
func writeViewError(w http.ResponseWriter, err error) {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		response.BadGateway(w, apiErr.Message)
		return
	}
	response.InternalServerError(w, "Failed to load dashboard data")
}
