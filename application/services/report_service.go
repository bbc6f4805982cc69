package services

import (
	"context"

	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/content"
	pkgerrors "trustnet-backend/pkg/errors"
)

// ReportService handles user-submitted scam reports
type ReportService struct {
	reports ports.ReportRepository
	blobs   ports.BlobStore
	logger  *zap.Logger
}

// NewReportService creates a new scam report service
func NewReportService(reports ports.ReportRepository, blobs ports.BlobStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		reports: reports,
		blobs:   blobs,
		logger:  logger,
	}
}

// Create submits a new scam report
func (s *ReportService) Create(ctx context.Context, userID, title, description, imageKey string) (*content.ScamReport, error) {
	r, err := content.NewScamReport(userID, title, description, imageKey)
	if err != nil {
		return nil, err
	}

	if err := s.reports.Save(ctx, r); err != nil {
		return nil, pkgerrors.NewDatabaseError("save report", err)
	}

	s.logger.Info("Scam report created",
		zap.String("reportID", r.ReportID),
		zap.String("userID", userID),
	)
	return r, nil
}

// Get retrieves a report by its composite key
func (s *ReportService) Get(ctx context.Context, key content.ReportKey) (*content.ScamReport, error) {
	r, err := s.reports.GetByKey(ctx, key)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get report", err)
	}
	if r == nil {
		return nil, pkgerrors.NewNotFoundError("report")
	}
	return r, nil
}

// List retrieves all scam reports
func (s *ReportService) List(ctx context.Context) ([]*content.ScamReport, error) {
	items, err := s.reports.List(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list reports", err)
	}
	return items, nil
}

// ListByAuthor retrieves a user's scam reports
func (s *ReportService) ListByAuthor(ctx context.Context, userID string) ([]*content.ScamReport, error) {
	items, err := s.reports.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list reports by author", err)
	}
	return items, nil
}

// UpdateReportInput carries editable report fields
type UpdateReportInput struct {
	Title       *string
	Description *string
	ImageKey    *string
}

// Update edits a report; only the author or an admin may edit
func (s *ReportService) Update(ctx context.Context, callerID string, isAdmin bool, key content.ReportKey, input UpdateReportInput) (*content.ScamReport, error) {
	r, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if r.UserID != callerID && !isAdmin {
		return nil, pkgerrors.NewForbiddenError("only the author or an admin can edit a report")
	}

	if input.Title != nil {
		r.Title = *input.Title
	}
	if input.Description != nil {
		r.Description = *input.Description
	}
	if input.ImageKey != nil {
		r.ImageKey = *input.ImageKey
	}
	r.Touch()

	if err := s.reports.Save(ctx, r); err != nil {
		return nil, pkgerrors.NewDatabaseError("update report", err)
	}
	return r, nil
}

// Delete removes a report and best-effort deletes its evidence image
func (s *ReportService) Delete(ctx context.Context, callerID string, isAdmin bool, key content.ReportKey) error {
	r, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if r.UserID != callerID && !isAdmin {
		return pkgerrors.NewForbiddenError("only the author or an admin can delete a report")
	}

	if r.ImageKey != "" {
		if err := s.blobs.DeleteObject(ctx, r.ImageKey); err != nil {
			s.logger.Warn("Failed to delete report image",
				zap.String("reportID", key.ReportID),
				zap.String("imageKey", r.ImageKey),
				zap.Error(err),
			)
		}
	}

	if err := s.reports.Delete(ctx, key); err != nil {
		return pkgerrors.NewDatabaseError("delete report", err)
	}
	return nil
}
