package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trustnet-backend/application/services"
	"trustnet-backend/domain/content"
	"trustnet-backend/pkg/auth"
	"trustnet-backend/pkg/common"
	"trustnet-backend/pkg/utils"
)

// ReportHandler handles scam report endpoints
type ReportHandler struct {
	reports *services.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *services.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger,
	}
}

// CreateReportRequest is the submission payload
type CreateReportRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
	ImageKey    string `json:"imageKey" validate:"omitempty,max=500"`
}

// Create handles POST /reports
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	var req CreateReportRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	report, err := h.reports.Create(r.Context(), user.UserID, req.Title, req.Description, req.ImageKey)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, report)
}

// List handles GET /reports, optionally filtered to one author
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	if author := r.URL.Query().Get("author"); author != "" {
		items, err := h.reports.ListByAuthor(r.Context(), author)
		if err != nil {
			common.RespondAppError(w, err)
			return
		}
		common.RespondJSON(w, http.StatusOK, items)
		return
	}

	items, err := h.reports.List(r.Context())
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

// Get handles GET /reports/{reportID}
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	key, ok := reportKeyFromRequest(w, r)
	if !ok {
		return
	}

	report, err := h.reports.Get(r.Context(), key)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, report)
}

// UpdateReportRequest carries editable report fields
type UpdateReportRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	ImageKey    *string `json:"imageKey,omitempty" validate:"omitempty,max=500"`
}

// Update handles PUT /reports/{reportID}
func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	key, ok := reportKeyFromRequest(w, r)
	if !ok {
		return
	}

	var req UpdateReportRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	report, err := h.reports.Update(r.Context(), user.UserID, user.IsAdmin(), key, services.UpdateReportInput{
		Title:       req.Title,
		Description: req.Description,
		ImageKey:    req.ImageKey,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, report)
}

// Delete handles DELETE /reports/{reportID}
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	key, ok := reportKeyFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.reports.Delete(r.Context(), user.UserID, user.IsAdmin(), key); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Report deleted"})
}

// reportKeyFromRequest assembles the composite key from the path and the
// createdAt query parameter; writes the error response itself on failure.
func reportKeyFromRequest(w http.ResponseWriter, r *http.Request) (content.ReportKey, bool) {
	reportID := chi.URLParam(r, "reportID")
	createdAt := r.URL.Query().Get("createdAt")
	if reportID == "" || createdAt == "" {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "reportID and createdAt are required")
		return content.ReportKey{}, false
	}
	if _, err := utils.ParseRFC3339(createdAt); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "createdAt must be an RFC3339 timestamp")
		return content.ReportKey{}, false
	}
	return content.ReportKey{ReportID: reportID, CreatedAt: createdAt}, true
}
