package services

import (
	"context"

	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/events"
	"trustnet-backend/domain/threat"
	pkgerrors "trustnet-backend/pkg/errors"
)

// ThreatService handles threat submission, lookup, editing, and the
// verification status transition with its notification side-channel.
type ThreatService struct {
	threats  ports.ThreatRepository
	users    ports.UserRepository
	notifier ports.Notifier
	events   ports.EventPublisher
	logger   *zap.Logger
}

// NewThreatService creates a new threat service
func NewThreatService(
	threats ports.ThreatRepository,
	users ports.UserRepository,
	notifier ports.Notifier,
	events ports.EventPublisher,
	logger *zap.Logger,
) *ThreatService {
	return &ThreatService{
		threats:  threats,
		users:    users,
		notifier: notifier,
		events:   events,
		logger:   logger,
	}
}

// Create submits a new threat report. Artifact uniqueness is enforced by an
// existence check before the insert; the check and the write are not atomic,
// so a narrow duplicate race window exists and is accepted.
func (s *ThreatService) Create(ctx context.Context, submittedBy, artifact string, artifactType threat.ArtifactType, description string) (*threat.Threat, error) {
	existing, err := s.threats.GetByArtifact(ctx, artifact)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("check artifact", err)
	}
	if existing != nil {
		return nil, pkgerrors.NewConflictError("artifact has already been reported")
	}

	t, err := threat.New(submittedBy, artifact, artifactType, description)
	if err != nil {
		return nil, err
	}

	if err := s.threats.Save(ctx, t); err != nil {
		return nil, pkgerrors.NewDatabaseError("save threat", err)
	}

	// Subscribe the submitter to verification notifications. Duplicate
	// subscribes are harmless and failures never fail the create.
	if submitter, lookupErr := s.users.GetByID(ctx, submittedBy); lookupErr == nil && submitter != nil {
		if subErr := s.notifier.Subscribe(ctx, submitter.Email); subErr != nil {
			s.logger.Warn("Failed to subscribe submitter to notifications",
				zap.String("userID", submittedBy),
				zap.Error(subErr),
			)
		}
	}

	if err := s.events.Publish(ctx, events.NewThreatCreated(t.ThreatID, submittedBy, t.Artifact, string(t.Type))); err != nil {
		s.logger.Warn("Failed to publish threat.created event", zap.Error(err))
	}

	s.logger.Info("Threat created",
		zap.String("threatID", t.ThreatID),
		zap.String("submittedBy", submittedBy),
		zap.String("type", string(t.Type)),
	)

	return t, nil
}

// Get retrieves a threat by its composite key
func (s *ThreatService) Get(ctx context.Context, key threat.Key) (*threat.Threat, error) {
	t, err := s.threats.GetByKey(ctx, key)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get threat", err)
	}
	if t == nil {
		return nil, pkgerrors.NewNotFoundError("threat")
	}
	return t, nil
}

// List retrieves all threats, optionally filtered by status
func (s *ThreatService) List(ctx context.Context, status threat.Status) ([]*threat.Threat, error) {
	var (
		items []*threat.Threat
		err   error
	)
	if status == "" {
		items, err = s.threats.List(ctx)
	} else {
		items, err = s.threats.ListByStatus(ctx, status)
	}
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list threats", err)
	}
	return items, nil
}

// ListBySubmitter retrieves the threats a user has submitted
func (s *ThreatService) ListBySubmitter(ctx context.Context, userID string) ([]*threat.Threat, error) {
	items, err := s.threats.ListBySubmitter(ctx, userID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list threats by submitter", err)
	}
	return items, nil
}

// UpdateInput carries the editable threat fields
type UpdateInput struct {
	Description *string
	Type        *threat.ArtifactType
}

// Update edits a threat's mutable fields. Only the submitter or an admin may
// edit; the artifact itself is immutable once reported.
func (s *ThreatService) Update(ctx context.Context, callerID string, isAdmin bool, key threat.Key, input UpdateInput) (*threat.Threat, error) {
	t, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if t.SubmittedBy != callerID && !isAdmin {
		return nil, pkgerrors.NewForbiddenError("only the submitter or an admin can edit a threat")
	}

	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, pkgerrors.NewValidationError("type must be one of url, email, phone")
		}
		t.Type = *input.Type
	}
	t.Touch()

	if err := s.threats.Save(ctx, t); err != nil {
		return nil, pkgerrors.NewDatabaseError("update threat", err)
	}
	return t, nil
}

// ToggleStatus flips a threat's verification state. Admin only. When the new
// state is verified, the notification side-channel fires: the submitter is
// looked up and the topic's confirmed subscribers are messaged. Side-channel
// failures are logged, never surfaced.
func (s *ThreatService) ToggleStatus(ctx context.Context, callerID string, isAdmin bool, key threat.Key) (*threat.Threat, error) {
	if !isAdmin {
		return nil, pkgerrors.NewForbiddenError("only admins can change threat status")
	}

	t, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	newStatus := t.ToggleStatus()
	if err := s.threats.Save(ctx, t); err != nil {
		return nil, pkgerrors.NewDatabaseError("update threat status", err)
	}

	s.logger.Info("Threat status changed",
		zap.String("threatID", t.ThreatID),
		zap.String("status", string(newStatus)),
		zap.String("changedBy", callerID),
	)

	if newStatus == threat.StatusVerified {
		s.notifyVerified(ctx, t, callerID)
	}

	return t, nil
}

// notifyVerified runs the best-effort verification side-channel
func (s *ThreatService) notifyVerified(ctx context.Context, t *threat.Threat, verifiedBy string) {
	submitterEmail := ""
	if submitter, err := s.users.GetByID(ctx, t.SubmittedBy); err == nil && submitter != nil {
		submitterEmail = submitter.Email
	} else {
		s.logger.Warn("Could not resolve submitter for verification notice",
			zap.String("threatID", t.ThreatID),
			zap.String("submittedBy", t.SubmittedBy),
		)
	}

	if err := s.notifier.PublishThreatVerified(ctx, t, submitterEmail); err != nil {
		s.logger.Warn("Failed to publish verification notice",
			zap.String("threatID", t.ThreatID),
			zap.Error(err),
		)
	}

	if err := s.events.Publish(ctx, events.NewThreatVerified(t.ThreatID, t.SubmittedBy, verifiedBy)); err != nil {
		s.logger.Warn("Failed to publish threat.verified event", zap.Error(err))
	}
}
