package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/baravibes/baravibes/internal/domain"
)

// UserRepository handles user data access operations. The db handle may be
// nil when the store could not be reached at startup; every method then
// reports domain.ErrStoreUnavailable instead of panicking.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByOpenID retrieves a user by their external identity.
func (r *UserRepository) FindByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	if r.db == nil {
		return nil, domain.ErrStoreUnavailable
	}

	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in
		 FROM users WHERE open_id = $1`, openID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by open id: %w", err)
	}
	return &user, nil
}

// Upsert creates or updates a user keyed on open_id. Nil fields in the
// upsert leave the stored column values untouched, including the role.
func (r *UserRepository) Upsert(ctx context.Context, u domain.UserUpsert) (*domain.User, error) {
	if r.db == nil {
		return nil, domain.ErrStoreUnavailable
	}

	var result domain.User
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (open_id, name, email, login_method, role, last_signed_in)
		 VALUES ($1, $2, $3, $4, COALESCE($5, 'user'), $6)
		 ON CONFLICT (open_id)
		 DO UPDATE SET name = COALESCE(EXCLUDED.name, users.name),
		               email = COALESCE(EXCLUDED.email, users.email),
		               login_method = COALESCE(EXCLUDED.login_method, users.login_method),
		               role = COALESCE($5, users.role),
		               last_signed_in = EXCLUDED.last_signed_in,
		               updated_at = NOW()
		 RETURNING id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in`,
		u.OpenID, u.Name, u.Email, u.LoginMethod, u.Role, u.LastSignedIn,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &result, nil
}

// List returns every user in admin-summary form.
func (r *UserRepository) List(ctx context.Context) ([]domain.UserSummary, error) {
	if r.db == nil {
		return nil, domain.ErrStoreUnavailable
	}

	users := []domain.UserSummary{}
	err := r.db.SelectContext(ctx, &users,
		`SELECT id, name, email, role, login_method, created_at, last_signed_in
		 FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateRole sets a user's role.
func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role domain.Role) error {
	if r.db == nil {
		return domain.ErrStoreUnavailable
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`, userID, role); err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	return nil
}

// Delete removes a user and their preferences row in a single transaction,
// so a partial failure never leaves an orphaned half-deleted account.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	if r.db == nil {
		return domain.ErrStoreUnavailable
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM user_preferences WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user preferences: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete user: %w", err)
	}
	return nil
}
