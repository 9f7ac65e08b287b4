package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/baravibes/baravibes/internal/domain"
)

// AdminUserStore defines the user operations available to admins.
type AdminUserStore interface {
	List(ctx context.Context) ([]domain.UserSummary, error)
	UpdateRole(ctx context.Context, userID int64, role domain.Role) error
	Delete(ctx context.Context, userID int64) error
}

// StatsStore defines the aggregate-count interface.
type StatsStore interface {
	SiteStats(ctx context.Context) (domain.SiteStats, error)
}

// AdminService backs the admin dashboard. Destructive user operations refuse
// self-targeting with a soft failure rather than an error, so the dashboard
// can show the message without an exception path.
type AdminService struct {
	users       AdminUserStore
	subscribers SubscriberStore
	stats       StatsStore
}

// NewAdminService creates a new AdminService.
func NewAdminService(users AdminUserStore, subscribers SubscriberStore, stats StatsStore) *AdminService {
	return &AdminService{users: users, subscribers: subscribers, stats: stats}
}

// Stats returns the dashboard counts, or all zeros when the store is
// unavailable.
func (s *AdminService) Stats(ctx context.Context) (domain.SiteStats, error) {
	stats, err := s.stats.SiteStats(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return domain.SiteStats{}, nil
		}
		return domain.SiteStats{}, err
	}
	return stats, nil
}

// ListUsers returns every user, or an empty list when the store is
// unavailable.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return []domain.UserSummary{}, nil
		}
		return nil, err
	}
	return users, nil
}

// UpdateRole changes a user's role. An admin demoting their own account is
// refused softly.
func (s *AdminService) UpdateRole(ctx context.Context, caller *domain.User, userID int64, role domain.Role) domain.OpResult {
	if userID == caller.ID && role == domain.RoleUser {
		return domain.OpResult{Success: false, Message: "you can't remove your own admin access"}
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			slog.Error("update user role failed", "user_id", userID, "error", err)
		}
		return domain.OpResult{Success: false}
	}
	return domain.OpResult{Success: true}
}

// DeleteUser removes a user and their preferences. Self-deletion is refused
// softly.
func (s *AdminService) DeleteUser(ctx context.Context, caller *domain.User, userID int64) domain.OpResult {
	if userID == caller.ID {
		return domain.OpResult{Success: false, Message: "you can't delete your own account from here"}
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			slog.Error("delete user failed", "user_id", userID, "error", err)
		}
		return domain.OpResult{Success: false}
	}
	return domain.OpResult{Success: true}
}

// ListSubscribers returns every subscriber row, including inactive ones, or
// an empty list when the store is unavailable.
func (s *AdminService) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	subs, err := s.subscribers.List(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return []domain.Subscriber{}, nil
		}
		return nil, err
	}
	return subs, nil
}

// RemoveSubscriber deactivates a subscriber row. The row itself is kept so a
// later re-subscribe reactivates it.
func (s *AdminService) RemoveSubscriber(ctx context.Context, id int64) domain.OpResult {
	if err := s.subscribers.Deactivate(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			slog.Error("remove subscriber failed", "subscriber_id", id, "error", err)
		}
		return domain.OpResult{Success: false}
	}
	return domain.OpResult{Success: true}
}
