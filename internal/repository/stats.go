package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/baravibes/baravibes/internal/domain"
)

// StatsRepository aggregates dashboard counts.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// SiteStats returns the aggregate counts shown on the admin dashboard.
func (r *StatsRepository) SiteStats(ctx context.Context) (domain.SiteStats, error) {
	if r.db == nil {
		return domain.SiteStats{}, domain.ErrStoreUnavailable
	}

	var stats domain.SiteStats
	err := r.db.GetContext(ctx, &stats,
		`SELECT (SELECT COUNT(*) FROM users)                                        AS total_users,
		        (SELECT COUNT(*) FROM newsletter_subscribers)                       AS total_subscribers,
		        (SELECT COUNT(*) FROM newsletter_subscribers WHERE active = 1)      AS active_subscribers,
		        (SELECT COUNT(*) FROM users WHERE role = 'admin')                   AS admin_count`)
	if err != nil {
		return domain.SiteStats{}, fmt.Errorf("site stats: %w", err)
	}
	return stats, nil
}
