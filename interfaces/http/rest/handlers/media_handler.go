package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/pkg/auth"
	"trustnet-backend/pkg/common"
	"trustnet-backend/pkg/utils"
)

// presignTTL bounds how long an issued upload URL stays valid.
const presignTTL = 15 * time.Minute

// MediaHandler issues presigned upload URLs so image uploads go straight
// from the client to the bucket.
type MediaHandler struct {
	blobs  ports.BlobStore
	logger *zap.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(blobs ports.BlobStore, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		blobs:  blobs,
		logger: logger,
	}
}

// PresignRequest asks for an upload slot
type PresignRequest struct {
	ContentType string `json:"contentType" validate:"required,oneof=image/jpeg image/png image/webp"`
	Purpose     string `json:"purpose" validate:"required,oneof=profile article report"`
}

// PresignResponse carries the upload URL and the key to store on the record
type PresignResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

// Presign handles POST /media/presign
func (h *MediaHandler) Presign(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	var req PresignRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	key := fmt.Sprintf("%s/%s/%s", req.Purpose, user.UserID, uuid.NewString())

	url, err := h.blobs.PresignUpload(r.Context(), key, req.ContentType, presignTTL)
	if err != nil {
		h.logger.Error("Failed to presign upload", zap.Error(err), zap.String("key", key))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to issue upload URL")
		return
	}

	common.RespondJSON(w, http.StatusOK, PresignResponse{
		UploadURL: url,
		Key:       key,
		ExpiresIn: int(presignTTL.Seconds()),
	})
}
