package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/baravibes/baravibes/internal/domain"
)

// SubscriberStore defines the newsletter data access interface.
type SubscriberStore interface {
	Upsert(ctx context.Context, email string) error
	List(ctx context.Context) ([]domain.Subscriber, error)
	Deactivate(ctx context.Context, id int64) error
}

// NewsletterService handles newsletter signups.
type NewsletterService struct {
	subscribers SubscriberStore
}

// NewNewsletterService creates a new NewsletterService.
func NewNewsletterService(subscribers SubscriberStore) *NewsletterService {
	return &NewsletterService{subscribers: subscribers}
}

// Subscribe records a signup, reactivating a previously removed address.
// Delivery is out of scope; a subscription is just a row.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) domain.OpResult {
	if err := s.subscribers.Upsert(ctx, email); err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return domain.OpResult{Success: false, Message: "database not available"}
		}
		slog.Error("newsletter subscribe failed", "error", err)
		return domain.OpResult{Success: false, Message: "failed to subscribe"}
	}
	return domain.OpResult{Success: true, Message: "subscribed successfully"}
}
