package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/baravibes/baravibes/internal/domain"
)

// PreferenceRepository handles per-user display preference rows.
type PreferenceRepository struct {
	db *sqlx.DB
}

// NewPreferenceRepository creates a new PreferenceRepository.
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// FindByUserID retrieves the preferences row for a user.
func (r *PreferenceRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Preferences, error) {
	if r.db == nil {
		return nil, domain.ErrStoreUnavailable
	}

	var prefs domain.Preferences
	err := r.db.GetContext(ctx, &prefs,
		`SELECT user_id, theme, accent_color, font_size, show_cursor_trail
		 FROM user_preferences WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find preferences for user %d: %w", userID, err)
	}
	return &prefs, nil
}

// Upsert creates or updates a user's preferences row. Each field coalesces
// against the stored value in the conflict update set, so absent fields in a
// partial save keep whatever was previously stored.
func (r *PreferenceRepository) Upsert(ctx context.Context, userID int64, u domain.PreferencesUpdate) error {
	if r.db == nil {
		return domain.ErrStoreUnavailable
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, theme, accent_color, font_size, show_cursor_trail)
		 VALUES ($1, COALESCE($2, 'light'), COALESCE($3, 'brown'), COALESCE($4, 'medium'), COALESCE($5, 1))
		 ON CONFLICT (user_id)
		 DO UPDATE SET theme = COALESCE($2, user_preferences.theme),
		               accent_color = COALESCE($3, user_preferences.accent_color),
		               font_size = COALESCE($4, user_preferences.font_size),
		               show_cursor_trail = COALESCE($5, user_preferences.show_cursor_trail),
		               updated_at = NOW()`,
		userID, u.Theme, u.AccentColor, u.FontSize, u.ShowCursorTrail)
	if err != nil {
		return fmt.Errorf("upsert preferences for user %d: %w", userID, err)
	}
	return nil
}
