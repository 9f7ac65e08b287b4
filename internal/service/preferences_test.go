package service

import (
	"context"
	"testing"

	"github.com/baravibes/baravibes/internal/domain"
)

// fakePreferenceStore mirrors the repository's merge contract: each upsert
// coalesces supplied fields over the stored row, inserting defaults first.
type fakePreferenceStore struct {
	rows        map[int64]domain.Preferences
	unavailable bool
}

func newFakePreferenceStore() *fakePreferenceStore {
	return &fakePreferenceStore{rows: map[int64]domain.Preferences{}}
}

func (f *fakePreferenceStore) FindByUserID(_ context.Context, userID int64) (*domain.Preferences, error) {
	if f.unavailable {
		return nil, domain.ErrStoreUnavailable
	}
	row, ok := f.rows[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func (f *fakePreferenceStore) Upsert(_ context.Context, userID int64, u domain.PreferencesUpdate) error {
	if f.unavailable {
		return domain.ErrStoreUnavailable
	}
	row, ok := f.rows[userID]
	if !ok {
		row = domain.DefaultPreferences(userID)
	}
	if u.Theme != nil {
		row.Theme = *u.Theme
	}
	if u.AccentColor != nil {
		row.AccentColor = *u.AccentColor
	}
	if u.FontSize != nil {
		row.FontSize = *u.FontSize
	}
	if u.ShowCursorTrail != nil {
		row.ShowCursorTrail = *u.ShowCursorTrail
	}
	f.rows[userID] = row
	return nil
}

func TestGetReturnsDefaultsWithoutCreatingRow(t *testing.T) {
	store := newFakePreferenceStore()
	svc := NewPreferencesService(store)

	prefs, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}

	want := domain.DefaultPreferences(7)
	if prefs != want {
		t.Fatalf("expected default tuple %+v, got %+v", want, prefs)
	}
	if len(store.rows) != 0 {
		t.Fatal("expected no row to be created by a defaulted read")
	}
}

func TestGetReturnsDefaultsWhenStoreUnavailable(t *testing.T) {
	store := newFakePreferenceStore()
	store.unavailable = true
	svc := NewPreferencesService(store)

	prefs, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if prefs != domain.DefaultPreferences(7) {
		t.Fatalf("expected default tuple, got %+v", prefs)
	}
}

func TestSaveMergesPartialUpdate(t *testing.T) {
	store := newFakePreferenceStore()
	svc := NewPreferencesService(store)
	ctx := context.Background()

	dark := domain.ThemeDark
	green := "green"
	large := domain.FontSizeLarge
	off := 0
	if result := svc.Save(ctx, 7, domain.PreferencesUpdate{
		Theme:           &dark,
		AccentColor:     &green,
		FontSize:        &large,
		ShowCursorTrail: &off,
	}); !result.Success {
		t.Fatalf("expected full save to succeed, got %+v", result)
	}

	light := domain.ThemeLight
	if result := svc.Save(ctx, 7, domain.PreferencesUpdate{Theme: &light}); !result.Success {
		t.Fatalf("expected partial save to succeed, got %+v", result)
	}

	prefs, err := svc.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if prefs.Theme != domain.ThemeLight {
		t.Fatalf("expected theme to reflect the partial save, got %q", prefs.Theme)
	}
	if prefs.AccentColor != "green" || prefs.FontSize != domain.FontSizeLarge || prefs.ShowCursorTrail != 0 {
		t.Fatalf("expected untouched fields to keep stored values, got %+v", prefs)
	}
}

func TestSaveSoftFailsWhenStoreUnavailable(t *testing.T) {
	store := newFakePreferenceStore()
	store.unavailable = true
	svc := NewPreferencesService(store)

	result := svc.Save(context.Background(), 7, domain.PreferencesUpdate{})
	if result.Success {
		t.Fatal("expected soft failure when the store is unavailable")
	}
}
