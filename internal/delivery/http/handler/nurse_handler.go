package handler

import (
	"net/http"

	"medisync/internal/controller"
	"medisync/internal/delivery/http/middleware"
	"medisync/internal/session"
	"medisync/pkg/response"
)

type NurseHandler struct {
	controllers func(sess *session.Session) *controller.NurseController
}

func NewNurseHandler(controllers func(sess *session.Session) *controller.NurseController) *NurseHandler {
	return &NurseHandler{controllers: controllers}
}

// GetBoard lists the team's active ward tickets
// @Summary Ward board
// @Description Inpatient and operation tickets for the nurse's team; empty when the nurse has no team
// @Tags Nurse
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /nurse/board [get]
func (h *NurseHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	c := h.controllers(sess)
	if err := c.Load(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to load ward board")
		return
	}

	response.Success(w, http.StatusOK, "Ward board", c.State())
}
