package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trustnet-backend/application/services"
	"trustnet-backend/domain/threat"
	"trustnet-backend/pkg/auth"
	"trustnet-backend/pkg/common"
	"trustnet-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20 // 1MB

// ThreatHandler handles threat report endpoints, including the like toggle
// and the cascading delete.
type ThreatHandler struct {
	threats *services.ThreatService
	likes   *services.LikeService
	cascade *services.CascadeService
	logger  *zap.Logger
}

// NewThreatHandler creates a new threat handler
func NewThreatHandler(
	threats *services.ThreatService,
	likes *services.LikeService,
	cascade *services.CascadeService,
	logger *zap.Logger,
) *ThreatHandler {
	return &ThreatHandler{
		threats: threats,
		likes:   likes,
		cascade: cascade,
		logger:  logger,
	}
}

// CreateThreatRequest is the submission payload
type CreateThreatRequest struct {
	Artifact    string `json:"artifact" validate:"required,min=3,max=500"`
	Type        string `json:"type" validate:"required,oneof=url email phone"`
	Description string `json:"description" validate:"max=5000"`
}

// Create handles POST /threats
func (h *ThreatHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	var req CreateThreatRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	t, err := h.threats.Create(r.Context(), user.UserID, req.Artifact, threat.ArtifactType(req.Type), req.Description)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, t)
}

// List handles GET /threats with an optional status filter
func (h *ThreatHandler) List(w http.ResponseWriter, r *http.Request) {
	status := threat.Status(r.URL.Query().Get("status"))
	if status != "" && status != threat.StatusUnverified && status != threat.StatusVerified {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "status must be unverified or verified")
		return
	}

	items, err := h.threats.List(r.Context(), status)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	page := common.ExtractPaginationParams(r)
	start, end := page.Slice(len(items))
	common.RespondWithMeta(w, http.StatusOK, items[start:end], &common.MetaInfo{
		Pagination: common.BuildPaginationMeta(page.Page, page.PageSize, len(items)),
	})
}

// ListMine handles GET /threats/mine
func (h *ThreatHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	items, err := h.threats.ListBySubmitter(r.Context(), user.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, items)
}

// Get handles GET /threats/{threatID}
func (h *ThreatHandler) Get(w http.ResponseWriter, r *http.Request) {
	key, ok := threatKeyFromRequest(w, r)
	if !ok {
		return
	}

	t, err := h.threats.Get(r.Context(), key)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, t)
}

// UpdateThreatRequest carries the editable threat fields
type UpdateThreatRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Type        *string `json:"type,omitempty" validate:"omitempty,oneof=url email phone"`
}

// Update handles PUT /threats/{threatID}
func (h *ThreatHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	key, ok := threatKeyFromRequest(w, r)
	if !ok {
		return
	}

	var req UpdateThreatRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	input := services.UpdateInput{Description: req.Description}
	if req.Type != nil {
		artifactType := threat.ArtifactType(*req.Type)
		input.Type = &artifactType
	}

	t, err := h.threats.Update(r.Context(), user.UserID, user.IsAdmin(), key, input)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, t)
}

// ToggleStatus handles POST /threats/{threatID}/status (admin only)
func (h *ThreatHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	key, ok := threatKeyFromRequest(w, r)
	if !ok {
		return
	}

	t, err := h.threats.ToggleStatus(r.Context(), user.UserID, user.IsAdmin(), key)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /threats/{threatID}. The cascade removes the threat's
// like rows first; partial failures come back as warnings in the response
// metadata, not errors.
func (h *ThreatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	key, ok := threatKeyFromRequest(w, r)
	if !ok {
		return
	}

	result, err := h.cascade.DeleteThreat(r.Context(), user.UserID, user.IsAdmin(), key)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondWithMeta(w, http.StatusOK, result, &common.MetaInfo{Warnings: result.Warnings})
}

// Like handles POST /threats/{threatID}/like
func (h *ThreatHandler) Like(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	key, ok := threatKeyFromRequest(w, r)
	if !ok {
		return
	}

	result, err := h.likes.Like(r.Context(), user.UserID, key)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// Unlike handles DELETE /threats/{threatID}/like
func (h *ThreatHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	key, ok := threatKeyFromRequest(w, r)
	if !ok {
		return
	}

	result, err := h.likes.Unlike(r.Context(), user.UserID, key)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// threatKeyFromRequest assembles the composite key from the path and the
// createdAt query parameter; writes the error response itself on failure.
func threatKeyFromRequest(w http.ResponseWriter, r *http.Request) (threat.Key, bool) {
	threatID := chi.URLParam(r, "threatID")
	createdAt := r.URL.Query().Get("createdAt")
	if threatID == "" || createdAt == "" {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "threatID and createdAt are required")
		return threat.Key{}, false
	}
	if _, err := utils.ParseRFC3339(createdAt); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "createdAt must be an RFC3339 timestamp")
		return threat.Key{}, false
	}
	return threat.Key{ThreatID: threatID, CreatedAt: createdAt}, true
}
