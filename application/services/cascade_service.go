package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/events"
	"trustnet-backend/domain/threat"
	pkgerrors "trustnet-backend/pkg/errors"
	"trustnet-backend/pkg/observability"
)

// CascadeResult reports a completed cascade delete. Warnings carry the
// non-fatal failures (partial batches, unreachable images) the caller should
// surface without treating the delete as failed.
type CascadeResult struct {
	Deleted  int      `json:"deleted"`
	Warnings []string `json:"warnings,omitempty"`
}

// CascadeService orchestrates root entity deletion: it discovers every
// dependent record across tables, removes stored images best-effort, issues
// bounded batch deletes, and deletes the root last.
//
// The failure policy is deliberate: the root must go away even if some
// debris remains. Discovery and batch failures become warnings; only a
// failure to delete the root record itself is an error.
type CascadeService struct {
	threats  ports.ThreatRepository
	likes    ports.LikeRepository
	users    ports.UserRepository
	articles ports.ArticleRepository
	reports  ports.ReportRepository
	batch    ports.BatchDeleter
	blobs    ports.BlobStore
	events   ports.EventPublisher
	metrics  *observability.Metrics
	tracer   *observability.Tracer
	logger   *zap.Logger
}

// NewCascadeService creates a new cascade delete orchestrator
func NewCascadeService(
	threats ports.ThreatRepository,
	likes ports.LikeRepository,
	users ports.UserRepository,
	articles ports.ArticleRepository,
	reports ports.ReportRepository,
	batch ports.BatchDeleter,
	blobs ports.BlobStore,
	events ports.EventPublisher,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *CascadeService {
	return &CascadeService{
		threats:  threats,
		likes:    likes,
		users:    users,
		articles: articles,
		reports:  reports,
		batch:    batch,
		blobs:    blobs,
		events:   events,
		metrics:  metrics,
		tracer:   tracer,
		logger:   logger,
	}
}

// DeleteThreat removes a threat and every like row referencing it.
// Only the submitter or an admin may delete a threat.
func (s *CascadeService) DeleteThreat(ctx context.Context, callerID string, isAdmin bool, key threat.Key) (*CascadeResult, error) {
	t, err := s.threats.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, pkgerrors.NewNotFoundError("threat")
	}
	if t.SubmittedBy != callerID && !isAdmin {
		return nil, pkgerrors.NewForbiddenError("only the submitter or an admin can delete a threat")
	}

	s.tracer.AddAnnotation(ctx, "threatId", key.ThreatID)
	collector := newWarningCollector(s.logger)

	var likeRows []threat.Like
	collector.bestEffort(fmt.Sprintf("discover likes for threat %s", key.ThreatID), func() error {
		var listErr error
		likeRows, listErr = s.likes.ListByThreat(ctx, key.ThreatID)
		return listErr
	})

	records := make([]ports.DeletableRecord, 0, len(likeRows))
	for _, like := range likeRows {
		records = append(records, ports.LikeRecord(like.UserID, like.ThreatID))
	}
	s.batchDelete(ctx, collector, records)

	// The root delete is the one step that is allowed to fail the call.
	if err := s.threats.Delete(ctx, key); err != nil {
		return nil, pkgerrors.NewDatabaseError("delete threat", err)
	}

	s.logger.Info("Threat deleted",
		zap.String("threatID", key.ThreatID),
		zap.String("deletedBy", callerID),
		zap.Int("likesRemoved", len(likeRows)),
		zap.Int("warnings", len(collector.warnings)),
	)

	if err := s.events.Publish(ctx, events.NewThreatDeleted(key.ThreatID, callerID, len(likeRows))); err != nil {
		s.logger.Warn("Failed to publish threat.deleted event", zap.Error(err))
	}

	deleted := len(likeRows) + 1
	s.metrics.RecordCascade(ctx, "threat", deleted, len(collector.warnings))

	return &CascadeResult{Deleted: deleted, Warnings: collector.warnings}, nil
}

// DeleteUser removes a user and every record that references them: their
// threats, the likes those threats accumulated from other users, the likes
// they placed themselves, and their articles and scam reports along with the
// associated stored images.
func (s *CascadeService) DeleteUser(ctx context.Context, callerID string, isAdmin bool, userID string) (*CascadeResult, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, pkgerrors.NewNotFoundError("user")
	}
	if callerID != userID && !isAdmin {
		return nil, pkgerrors.NewForbiddenError("only the account owner or an admin can delete a user")
	}

	s.tracer.AddAnnotation(ctx, "userId", userID)
	collector := newWarningCollector(s.logger)

	if u.Picture != "" {
		collector.bestEffort("delete profile image", func() error {
			return s.blobs.DeleteObject(ctx, u.Picture)
		})
	}

	var records []ports.DeletableRecord

	// Threats submitted by this user, plus the likes other users left on
	// them. Those orphan likes must be purged or they become dangling
	// references once their threat is gone.
	var ownThreats []*threat.Threat
	collector.bestEffort("discover submitted threats", func() error {
		var listErr error
		ownThreats, listErr = s.threats.ListBySubmitter(ctx, userID)
		return listErr
	})

	seenLikes := make(map[ports.LikeKey]bool)
	for _, t := range ownThreats {
		records = append(records, ports.ThreatRecord(t.Key()))

		threatID := t.ThreatID
		collector.bestEffort(fmt.Sprintf("discover likes for threat %s", threatID), func() error {
			orphans, listErr := s.likes.ListByThreat(ctx, threatID)
			if listErr != nil {
				return listErr
			}
			for _, like := range orphans {
				lk := ports.LikeKey{UserID: like.UserID, ThreatID: like.ThreatID}
				if !seenLikes[lk] {
					seenLikes[lk] = true
					records = append(records, ports.LikeRecord(like.UserID, like.ThreatID))
				}
			}
			return nil
		})
	}

	// Likes the user placed on other users' threats. A like on one of their
	// own threats was already collected above; the seen set keeps the delete
	// list free of duplicates.
	collector.bestEffort("discover own likes", func() error {
		ownLikes, listErr := s.likes.ListByUser(ctx, userID)
		if listErr != nil {
			return listErr
		}
		for _, like := range ownLikes {
			lk := ports.LikeKey{UserID: like.UserID, ThreatID: like.ThreatID}
			if !seenLikes[lk] {
				seenLikes[lk] = true
				records = append(records, ports.LikeRecord(like.UserID, like.ThreatID))
			}
		}
		return nil
	})

	collector.bestEffort("discover articles", func() error {
		articles, listErr := s.articles.ListByAuthor(ctx, userID)
		if listErr != nil {
			return listErr
		}
		for _, a := range articles {
			records = append(records, ports.ArticleRecord(a.ArticleID))
			if a.ImageKey != "" {
				imageKey := a.ImageKey
				collector.bestEffort(fmt.Sprintf("delete article image %s", imageKey), func() error {
					return s.blobs.DeleteObject(ctx, imageKey)
				})
			}
		}
		return nil
	})

	collector.bestEffort("discover scam reports", func() error {
		reports, listErr := s.reports.ListByAuthor(ctx, userID)
		if listErr != nil {
			return listErr
		}
		for _, r := range reports {
			records = append(records, ports.ReportRecord(r.Key()))
			if r.ImageKey != "" {
				imageKey := r.ImageKey
				collector.bestEffort(fmt.Sprintf("delete report image %s", imageKey), func() error {
					return s.blobs.DeleteObject(ctx, imageKey)
				})
			}
		}
		return nil
	})

	s.batchDelete(ctx, collector, records)

	// The user record goes last, after the fan-out, and is the only step
	// that can fail the operation.
	if err := s.users.Delete(ctx, userID); err != nil {
		return nil, pkgerrors.NewDatabaseError("delete user", err)
	}

	s.logger.Info("User deleted",
		zap.String("userID", userID),
		zap.String("deletedBy", callerID),
		zap.Int("dependentRecords", len(records)),
		zap.Int("warnings", len(collector.warnings)),
	)

	if err := s.events.Publish(ctx, events.NewUserDeleted(userID, callerID, len(records), len(collector.warnings))); err != nil {
		s.logger.Warn("Failed to publish user.deleted event", zap.Error(err))
	}

	deleted := len(records) + 1
	s.metrics.RecordCascade(ctx, "user", deleted, len(collector.warnings))

	return &CascadeResult{Deleted: deleted, Warnings: collector.warnings}, nil
}

// batchDelete pushes the aggregated record list through the bounded batch
// writer, downgrading failures and unprocessed leftovers to warnings.
func (s *CascadeService) batchDelete(ctx context.Context, collector *warningCollector, records []ports.DeletableRecord) {
	if len(records) == 0 {
		return
	}

	var unprocessed []ports.DeletableRecord
	err := s.tracer.Capture(ctx, "cascade.batch", func(ctx context.Context) error {
		var batchErr error
		unprocessed, batchErr = s.batch.BatchDelete(ctx, records)
		return batchErr
	})
	if err != nil {
		collector.warnf("batch delete of %d dependent records failed: %v", len(records), err)
		return
	}
	for _, record := range unprocessed {
		collector.warnf("dependent record not deleted: %s", record.String())
	}
}
