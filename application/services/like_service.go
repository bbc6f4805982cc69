package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/threat"
	pkgerrors "trustnet-backend/pkg/errors"
	"trustnet-backend/pkg/observability"
)

// LikeOutcome tags the result of a like or unlike call. Both idempotent
// variants are successes: a caller racing itself must never see an error.
type LikeOutcome string

const (
	OutcomeLiked          LikeOutcome = "liked"
	OutcomeAlreadyLiked   LikeOutcome = "already_liked"
	OutcomeUnliked        LikeOutcome = "unliked"
	OutcomeAlreadyUnliked LikeOutcome = "already_unliked"
)

// LikeResult is the tagged outcome of a like toggle operation
type LikeResult struct {
	Outcome LikeOutcome `json:"outcome"`
	Message string      `json:"message"`
}

// LikeService implements the like toggle protocol: an idempotent like/unlike
// against the denormalized counter on the threat record and the per-(user,
// threat) membership row, kept consistent by the repository's conditional
// transactions.
type LikeService struct {
	threats ports.ThreatRepository
	likes   ports.LikeRepository
	metrics *observability.Metrics
	tracer  *observability.Tracer
	logger  *zap.Logger
}

// NewLikeService creates a new like service
func NewLikeService(
	threats ports.ThreatRepository,
	likes ports.LikeRepository,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *LikeService {
	return &LikeService{
		threats: threats,
		likes:   likes,
		metrics: metrics,
		tracer:  tracer,
		logger:  logger,
	}
}

// Like records userID's like on the threat identified by key, incrementing
// the counter exactly once per distinct user.
//
// The membership read up front is a latency optimization for the common
// repeat-call case, not the correctness mechanism: two concurrent first-time
// calls both pass it, and the transaction's membership-row guard decides
// which one commits. The loser's guard failure is converted to the same
// idempotent success the fast path returns.
func (s *LikeService) Like(ctx context.Context, userID string, key threat.Key) (*LikeResult, error) {
	existing, err := s.likes.Get(ctx, userID, key.ThreatID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}
	if existing != nil {
		s.metrics.RecordLikeOutcome(ctx, string(OutcomeAlreadyLiked))
		return &LikeResult{Outcome: OutcomeAlreadyLiked, Message: "Already liked"}, nil
	}

	err = s.tracer.Capture(ctx, "like.transact", func(ctx context.Context) error {
		return s.likes.Like(ctx, userID, key)
	})
	switch {
	case err == nil:
		s.logger.Info("Threat liked",
			zap.String("userID", userID),
			zap.String("threatID", key.ThreatID),
		)
		s.metrics.RecordLikeOutcome(ctx, string(OutcomeLiked))
		return &LikeResult{Outcome: OutcomeLiked, Message: "Liked successfully"}, nil

	case errors.Is(err, ports.ErrAlreadyLiked):
		// Lost the race against an identical request; the store is unchanged.
		s.metrics.RecordLikeOutcome(ctx, string(OutcomeAlreadyLiked))
		return &LikeResult{Outcome: OutcomeAlreadyLiked, Message: "Already liked"}, nil

	case errors.Is(err, ports.ErrThreatGone):
		return nil, pkgerrors.NewNotFoundError("threat").WithCause(err)

	default:
		return nil, fmt.Errorf("like transaction failed: %w", err)
	}
}

// Unlike removes userID's like, decrementing the counter. The counter guard
// in the transaction keeps likes from going negative even if the counter and
// membership table have drifted apart.
func (s *LikeService) Unlike(ctx context.Context, userID string, key threat.Key) (*LikeResult, error) {
	existing, err := s.likes.Get(ctx, userID, key.ThreatID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}
	if existing == nil {
		s.metrics.RecordLikeOutcome(ctx, string(OutcomeAlreadyUnliked))
		return &LikeResult{Outcome: OutcomeAlreadyUnliked, Message: "Already unliked"}, nil
	}

	err = s.tracer.Capture(ctx, "unlike.transact", func(ctx context.Context) error {
		return s.likes.Unlike(ctx, userID, key)
	})
	switch {
	case err == nil:
		s.logger.Info("Threat unliked",
			zap.String("userID", userID),
			zap.String("threatID", key.ThreatID),
		)
		s.metrics.RecordLikeOutcome(ctx, string(OutcomeUnliked))
		return &LikeResult{Outcome: OutcomeUnliked, Message: "Unliked successfully"}, nil

	case errors.Is(err, ports.ErrNotLiked):
		s.metrics.RecordLikeOutcome(ctx, string(OutcomeAlreadyUnliked))
		return &LikeResult{Outcome: OutcomeAlreadyUnliked, Message: "Already unliked"}, nil

	case errors.Is(err, ports.ErrThreatGone):
		return nil, pkgerrors.NewNotFoundError("threat").WithCause(err)

	default:
		return nil, fmt.Errorf("unlike transaction failed: %w", err)
	}
}
