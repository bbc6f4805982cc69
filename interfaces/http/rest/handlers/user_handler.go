package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trustnet-backend/application/services"
	"trustnet-backend/domain/user"
	"trustnet-backend/pkg/auth"
	"trustnet-backend/pkg/common"
	"trustnet-backend/pkg/utils"
)

// UserHandler handles account endpoints. Registration and login are public;
// everything else requires authentication. Account deletion runs the full
// cascade over the user's threats, likes, articles, and reports.
type UserHandler struct {
	users   *services.UserService
	cascade *services.CascadeService
	logger  *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService, cascade *services.CascadeService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:   users,
		cascade: cascade,
		logger:  logger,
	}
}

// RegisterRequest is the account creation payload
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	u, err := h.users.Register(r.Context(), req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, u)
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token and the account it belongs to
type LoginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, LoginResponse{Token: token, User: u})
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	u, err := h.users.Get(r.Context(), caller.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, u)
}

// Get handles GET /users/{userID}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	u, err := h.users.Get(r.Context(), userID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, u)
}

// UpdateUserRequest carries editable profile fields
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Picture   *string `json:"picture,omitempty" validate:"omitempty,max=500"`
}

// Update handles PUT /users/{userID}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}
	userID := chi.URLParam(r, "userID")

	var req UpdateUserRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	u, err := h.users.Update(r.Context(), caller.UserID, caller.IsAdmin(), userID, services.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Picture:   req.Picture,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, u)
}

// Delete handles DELETE /users/{userID}. Every dependent record falls with
// the account; partial failures come back as warnings.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}
	userID := chi.URLParam(r, "userID")

	result, err := h.cascade.DeleteUser(r.Context(), caller.UserID, caller.IsAdmin(), userID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondWithMeta(w, http.StatusOK, result, &common.MetaInfo{Warnings: result.Warnings})
}
