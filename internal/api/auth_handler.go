package api

import (
	"log/slog"
	"net/http"

	"github.com/tasknest/tasknest/internal/api/shared"
	"github.com/tasknest/tasknest/internal/service"
	"github.com/tasknest/tasknest/internal/service/auth"
)

// AuthHandler handles account HTTP requests.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService service.UserService, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// Register handles POST /api/v1/auth/register requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Validation error", shared.WithDetails(err.Error()))
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to issue token after registration",
			"error", err,
			"user_id", user.ID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			CodeInternalError, "Failed to issue token", err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, "Account created", AuthResponse{
		Token: token,
		User:  ToUserResponse(user),
	})
}

// Login handles POST /api/v1/auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Validation error", shared.WithDetails(err.Error()))
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to issue token after login",
			"error", err,
			"user_id", user.ID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			CodeInternalError, "Failed to issue token", err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Logged in", AuthResponse{
		Token: token,
		User:  ToUserResponse(user),
	})
}

// Me handles GET /api/v1/auth/me requests.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "", ToUserResponse(user))
}

// DeleteAccount handles DELETE /api/v1/auth/me requests. All of the user's
// tasks go with the account.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Account deleted", nil)
}
