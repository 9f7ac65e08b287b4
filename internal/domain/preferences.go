package domain

// Theme is a display theme choice.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// FontSize is a display font size choice.
type FontSize string

const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
)

// Preferences is a user's display preference tuple. A user without a stored
// row is served DefaultPreferences; the row is only created on first save.
type Preferences struct {
	UserID          int64    `json:"userId" db:"user_id"`
	Theme           Theme    `json:"theme" db:"theme"`
	AccentColor     string   `json:"accentColor" db:"accent_color"`
	FontSize        FontSize `json:"fontSize" db:"font_size"`
	ShowCursorTrail int      `json:"showCursorTrail" db:"show_cursor_trail"`
}

// DefaultPreferences is the tuple implied by a missing preferences row.
func DefaultPreferences(userID int64) Preferences {
	return Preferences{
		UserID:          userID,
		Theme:           ThemeLight,
		AccentColor:     "brown",
		FontSize:        FontSizeMedium,
		ShowCursorTrail: 1,
	}
}

// PreferencesUpdate is a partial preference change. Nil fields keep the
// stored values, so saves merge rather than overwrite.
type PreferencesUpdate struct {
	Theme           *Theme
	AccentColor     *string
	FontSize        *FontSize
	ShowCursorTrail *int
}
