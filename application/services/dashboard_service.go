package services

import (
	"context"

	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/threat"
	pkgerrors "trustnet-backend/pkg/errors"
)

// DashboardStats aggregates entity counts for the admin dashboard
type DashboardStats struct {
	Threats         int            `json:"threats"`
	ThreatsByStatus map[string]int `json:"threatsByStatus"`
	ThreatsByType   map[string]int `json:"threatsByType"`
	TotalLikes      int            `json:"totalLikes"`
	Users           int            `json:"users"`
	Articles        int            `json:"articles"`
	Reports         int            `json:"reports"`
}

// DashboardService computes admin dashboard aggregates. These are plain
// scans; the tables are small enough that no counter denormalization beyond
// the like counter is kept.
type DashboardService struct {
	threats  ports.ThreatRepository
	users    ports.UserRepository
	articles ports.ArticleRepository
	reports  ports.ReportRepository
	logger   *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	threats ports.ThreatRepository,
	users ports.UserRepository,
	articles ports.ArticleRepository,
	reports ports.ReportRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		threats:  threats,
		users:    users,
		articles: articles,
		reports:  reports,
		logger:   logger,
	}
}

// Stats computes the dashboard aggregates; admin only
func (s *DashboardService) Stats(ctx context.Context, isAdmin bool) (*DashboardStats, error) {
	if !isAdmin {
		return nil, pkgerrors.NewForbiddenError("only admins can view dashboard stats")
	}

	stats := &DashboardStats{
		ThreatsByStatus: map[string]int{
			string(threat.StatusUnverified): 0,
			string(threat.StatusVerified):   0,
		},
		ThreatsByType: map[string]int{
			string(threat.TypeURL):   0,
			string(threat.TypeEmail): 0,
			string(threat.TypePhone): 0,
		},
	}

	threats, err := s.threats.List(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list threats", err)
	}
	stats.Threats = len(threats)
	for _, t := range threats {
		stats.ThreatsByStatus[string(t.Status)]++
		stats.ThreatsByType[string(t.Type)]++
		stats.TotalLikes += t.Likes
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list users", err)
	}
	stats.Users = len(users)

	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list articles", err)
	}
	stats.Articles = len(articles)

	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list reports", err)
	}
	stats.Reports = len(reports)

	return stats, nil
}
