package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trustnet-backend/application/services"
	"trustnet-backend/pkg/auth"
	"trustnet-backend/pkg/common"
	"trustnet-backend/pkg/utils"
)

// ArticleHandler handles education hub article endpoints
type ArticleHandler struct {
	articles *services.ArticleService
	logger   *zap.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articles *services.ArticleService, logger *zap.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
		logger:   logger,
	}
}

// CreateArticleRequest is the publication payload
type CreateArticleRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Body     string `json:"body" validate:"required"`
	ImageKey string `json:"imageKey" validate:"omitempty,max=500"`
}

// Create handles POST /articles
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	var req CreateArticleRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	a, err := h.articles.Create(r.Context(), user.UserID, req.Title, req.Body, req.ImageKey)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, a)
}

// List handles GET /articles, optionally filtered to one author
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	if author := r.URL.Query().Get("author"); author != "" {
		items, err := h.articles.ListByAuthor(r.Context(), author)
		if err != nil {
			common.RespondAppError(w, err)
			return
		}
		common.RespondJSON(w, http.StatusOK, items)
		return
	}

	items, err := h.articles.List(r.Context())
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

// Get handles GET /articles/{articleID}
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.articles.Get(r.Context(), chi.URLParam(r, "articleID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, a)
}

// UpdateArticleRequest carries editable article fields
type UpdateArticleRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Body     *string `json:"body,omitempty"`
	ImageKey *string `json:"imageKey,omitempty" validate:"omitempty,max=500"`
}

// Update handles PUT /articles/{articleID}
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	var req UpdateArticleRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	a, err := h.articles.Update(r.Context(), user.UserID, user.IsAdmin(), chi.URLParam(r, "articleID"), services.UpdateArticleInput{
		Title:    req.Title,
		Body:     req.Body,
		ImageKey: req.ImageKey,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, a)
}

// Delete handles DELETE /articles/{articleID}
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	if err := h.articles.Delete(r.Context(), user.UserID, user.IsAdmin(), chi.URLParam(r, "articleID")); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Article deleted"})
}
