package service

import (
	"context"
	"testing"

	"github.com/baravibes/baravibes/internal/domain"
)

type fakeAdminUserStore struct {
	users       []domain.UserSummary
	prefRows    map[int64]bool
	unavailable bool
}

func (f *fakeAdminUserStore) List(_ context.Context) ([]domain.UserSummary, error) {
	if f.unavailable {
		return nil, domain.ErrStoreUnavailable
	}
	return append([]domain.UserSummary{}, f.users...), nil
}

func (f *fakeAdminUserStore) UpdateRole(_ context.Context, userID int64, role domain.Role) error {
	if f.unavailable {
		return domain.ErrStoreUnavailable
	}
	for i := range f.users {
		if f.users[i].ID == userID {
			f.users[i].Role = role
		}
	}
	return nil
}

func (f *fakeAdminUserStore) Delete(_ context.Context, userID int64) error {
	if f.unavailable {
		return domain.ErrStoreUnavailable
	}
	delete(f.prefRows, userID)
	kept := f.users[:0]
	for _, u := range f.users {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return nil
}

type fakeStatsStore struct {
	stats       domain.SiteStats
	unavailable bool
}

func (f *fakeStatsStore) SiteStats(_ context.Context) (domain.SiteStats, error) {
	if f.unavailable {
		return domain.SiteStats{}, domain.ErrStoreUnavailable
	}
	return f.stats, nil
}

func adminCaller() *domain.User {
	return &domain.User{ID: 1, OpenID: "admin-1", Role: domain.RoleAdmin}
}

func seededUserStore() *fakeAdminUserStore {
	return &fakeAdminUserStore{
		users: []domain.UserSummary{
			{ID: 1, Role: domain.RoleAdmin},
			{ID: 2, Role: domain.RoleUser},
		},
		prefRows: map[int64]bool{1: true, 2: true},
	}
}

func TestUpdateRoleRefusesSelfDemotion(t *testing.T) {
	store := seededUserStore()
	svc := NewAdminService(store, &fakeSubscriberStore{}, &fakeStatsStore{})

	result := svc.UpdateRole(context.Background(), adminCaller(), 1, domain.RoleUser)
	if result.Success {
		t.Fatal("expected self-demotion to be refused")
	}
	if result.Message == "" {
		t.Fatal("expected a refusal message")
	}
	if store.users[0].Role != domain.RoleAdmin {
		t.Fatal("expected the caller's role to be untouched")
	}
}

func TestUpdateRolePromotesAndDemotesOthers(t *testing.T) {
	store := seededUserStore()
	svc := NewAdminService(store, &fakeSubscriberStore{}, &fakeStatsStore{})
	ctx := context.Background()

	if result := svc.UpdateRole(ctx, adminCaller(), 2, domain.RoleAdmin); !result.Success {
		t.Fatalf("expected promotion to succeed, got %+v", result)
	}
	if store.users[1].Role != domain.RoleAdmin {
		t.Fatal("expected target role to change")
	}

	if result := svc.UpdateRole(ctx, adminCaller(), 2, domain.RoleUser); !result.Success {
		t.Fatalf("expected demotion of another user to succeed, got %+v", result)
	}
	if store.users[1].Role != domain.RoleUser {
		t.Fatal("expected target role to change back")
	}
}

func TestUpdateRoleAllowsSelfPromotion(t *testing.T) {
	// Re-asserting admin on yourself is a no-op, not a refusal.
	store := seededUserStore()
	svc := NewAdminService(store, &fakeSubscriberStore{}, &fakeStatsStore{})

	if result := svc.UpdateRole(context.Background(), adminCaller(), 1, domain.RoleAdmin); !result.Success {
		t.Fatalf("expected self re-promotion to succeed, got %+v", result)
	}
}

func TestDeleteUserRefusesSelfTarget(t *testing.T) {
	store := seededUserStore()
	svc := NewAdminService(store, &fakeSubscriberStore{}, &fakeStatsStore{})

	result := svc.DeleteUser(context.Background(), adminCaller(), 1)
	if result.Success {
		t.Fatal("expected self-deletion to be refused")
	}
	if len(store.users) != 2 {
		t.Fatal("expected no rows to be removed")
	}
}

func TestDeleteUserRemovesUserAndPreferences(t *testing.T) {
	store := seededUserStore()
	svc := NewAdminService(store, &fakeSubscriberStore{}, &fakeStatsStore{})

	result := svc.DeleteUser(context.Background(), adminCaller(), 2)
	if !result.Success {
		t.Fatalf("expected deletion to succeed, got %+v", result)
	}
	if len(store.users) != 1 || store.users[0].ID != 1 {
		t.Fatalf("expected user 2 to be removed, got %+v", store.users)
	}
	if store.prefRows[2] {
		t.Fatal("expected the preferences row to be removed as well")
	}
}

func TestStatsZeroWhenStoreUnavailable(t *testing.T) {
	svc := NewAdminService(seededUserStore(), &fakeSubscriberStore{}, &fakeStatsStore{unavailable: true})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("expected degraded stats, got error %v", err)
	}
	if stats != (domain.SiteStats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestListsEmptyWhenStoreUnavailable(t *testing.T) {
	svc := NewAdminService(
		&fakeAdminUserStore{unavailable: true},
		&fakeSubscriberStore{unavailable: true},
		&fakeStatsStore{},
	)
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	if err != nil || len(users) != 0 {
		t.Fatalf("expected empty user list, got %v users, err %v", users, err)
	}
	subs, err := svc.ListSubscribers(ctx)
	if err != nil || len(subs) != 0 {
		t.Fatalf("expected empty subscriber list, got %v subs, err %v", subs, err)
	}
}

func TestRemoveSubscriberKeepsRow(t *testing.T) {
	subs := &fakeSubscriberStore{}
	svc := NewAdminService(seededUserStore(), subs, &fakeStatsStore{})
	ctx := context.Background()

	if err := subs.Upsert(ctx, "capyfan@example.com"); err != nil {
		t.Fatalf("seed subscriber: %v", err)
	}

	result := svc.RemoveSubscriber(ctx, 1)
	if !result.Success {
		t.Fatalf("expected removal to succeed, got %+v", result)
	}
	if len(subs.rows) != 1 {
		t.Fatal("expected the row to be kept")
	}
	if subs.rows[0].Active != 0 {
		t.Fatal("expected the row to be deactivated")
	}
}
