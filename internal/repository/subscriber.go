package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/baravibes/baravibes/internal/domain"
)

// SubscriberRepository handles newsletter subscriber rows.
type SubscriberRepository struct {
	db *sqlx.DB
}

// NewSubscriberRepository creates a new SubscriberRepository.
func NewSubscriberRepository(db *sqlx.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Upsert records a signup. Re-subscribing an existing email reactivates the
// row rather than erroring on the unique constraint.
func (r *SubscriberRepository) Upsert(ctx context.Context, email string) error {
	if r.db == nil {
		return domain.ErrStoreUnavailable
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscribers (email) VALUES ($1)
		 ON CONFLICT (email) DO UPDATE SET active = 1`, email); err != nil {
		return fmt.Errorf("upsert subscriber: %w", err)
	}
	return nil
}

// List returns every subscriber row, including inactive ones.
func (r *SubscriberRepository) List(ctx context.Context) ([]domain.Subscriber, error) {
	if r.db == nil {
		return nil, domain.ErrStoreUnavailable
	}

	subs := []domain.Subscriber{}
	err := r.db.SelectContext(ctx, &subs,
		`SELECT id, email, subscribed_at, active FROM newsletter_subscribers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return subs, nil
}

// Deactivate flips a subscriber's active flag to 0. The row is never
// hard-deleted.
func (r *SubscriberRepository) Deactivate(ctx context.Context, id int64) error {
	if r.db == nil {
		return domain.ErrStoreUnavailable
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE newsletter_subscribers SET active = 0 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deactivate subscriber %d: %w", id, err)
	}
	return nil
}
