package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/baravibes/baravibes/internal/domain"
)

// PreferenceStore defines the preference data access interface.
type PreferenceStore interface {
	FindByUserID(ctx context.Context, userID int64) (*domain.Preferences, error)
	Upsert(ctx context.Context, userID int64, u domain.PreferencesUpdate) error
}

// PreferencesService serves per-user display preferences.
type PreferencesService struct {
	store PreferenceStore
}

// NewPreferencesService creates a new PreferencesService.
func NewPreferencesService(store PreferenceStore) *PreferencesService {
	return &PreferencesService{store: store}
}

// Get returns the caller's stored tuple, or the default tuple when no row
// exists or the store is unavailable. A defaulted read never creates a row.
func (s *PreferencesService) Get(ctx context.Context, userID int64) (domain.Preferences, error) {
	prefs, err := s.store.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		return *prefs, nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrStoreUnavailable):
		return domain.DefaultPreferences(userID), nil
	default:
		return domain.Preferences{}, err
	}
}

// Save merges the supplied fields over the stored row. Store failures are a
// soft failure so the client can keep its local copy.
func (s *PreferencesService) Save(ctx context.Context, userID int64, u domain.PreferencesUpdate) domain.OpResult {
	if err := s.store.Upsert(ctx, userID, u); err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			slog.Error("save preferences failed", "user_id", userID, "error", err)
		}
		return domain.OpResult{Success: false}
	}
	return domain.OpResult{Success: true}
}
