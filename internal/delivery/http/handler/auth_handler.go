package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"medisync/internal/delivery/dto"
	"medisync/internal/delivery/http/middleware"
	"medisync/internal/session"
	"medisync/internal/usecase"
	"medisync/pkg/response"
	"medisync/pkg/validator"
)

// sessionWatchTimeout bounds one long-poll cycle; clients reconnect after
// each response.
const sessionWatchTimeout = 25 * time.Second

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	sessions    *session.Resolver
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, sessions *session.Resolver, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		sessions:    sessions,
		validator:   validator,
	}
}

// Register handles patient self-registration
// @Summary Register a new patient account
// @Description Register with email, password, name and NIK; the role is always patient
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		case usecase.ErrNIKAlreadyExists:
			response.Error(w, http.StatusConflict, "NIK already registered", nil)
		default:
			response.InternalServerError(w, "Failed to register user")
		}
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", user)
}

// Login handles user login
// @Summary Login user
// @Description Login with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Error(w, http.StatusUnauthorized, "Invalid email or password", nil)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokens)
}

// Logout handles user logout
// @Summary Logout user
// @Description Logout and revoke the session's tokens
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), sess.UserID, sess.TokenID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// GetCurrentUser returns the authenticated user's profile
// @Summary Get current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	user, err := h.authUsecase.CurrentUser(r.Context(), sess.UserID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to load user")
		}
		return
	}

	response.Success(w, http.StatusOK, "Current user", user)
}

// WatchSession long-polls the caller's session state
// @Summary Watch the current session
// @Description Holds the request open and returns as soon as the session is revoked, or after the poll window with the current state
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/session/watch [get]
func (h *AuthHandler) WatchSession(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetRawTokenFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	watcher := h.sessions.Watch(r.Context(), token)
	defer watcher.Close()

	timeout := time.NewTimer(sessionWatchTimeout)
	defer timeout.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-timeout.C:
			response.Success(w, http.StatusOK, "Session state", sessionState(watcher))
			return
		case status := <-watcher.Updates():
			if status == session.StatusUnauthenticated {
				response.Success(w, http.StatusOK, "Session state", sessionState(watcher))
				return
			}
		}
	}
}

func sessionState(watcher *session.Watcher) *dto.SessionStateResponse {
	status, sess := watcher.Snapshot()
	if status != session.StatusAuthenticated || sess == nil {
		return &dto.SessionStateResponse{Status: "unauthenticated"}
	}
	return &dto.SessionStateResponse{
		Status: "authenticated",
		UserID: &sess.UserID,
		Role:   sess.Role,
	}
}
