package domain

import "time"

// Role is a user's authorization tier.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a site member resolved from an OAuth identity.
type User struct {
	ID           int64      `json:"id" db:"id"`
	OpenID       string     `json:"openId" db:"open_id"`
	Name         *string    `json:"name" db:"name"`
	Email        *string    `json:"email" db:"email"`
	LoginMethod  *string    `json:"loginMethod" db:"login_method"`
	Role         Role       `json:"role" db:"role"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	LastSignedIn *time.Time `json:"lastSignedIn" db:"last_signed_in"`
}

// UserSummary is the admin-facing view of a user. It deliberately excludes
// the external identity key.
type UserSummary struct {
	ID           int64      `json:"id" db:"id"`
	Name         *string    `json:"name" db:"name"`
	Email        *string    `json:"email" db:"email"`
	Role         Role       `json:"role" db:"role"`
	LoginMethod  *string    `json:"loginMethod" db:"login_method"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	LastSignedIn *time.Time `json:"lastSignedIn" db:"last_signed_in"`
}

// UserUpsert carries the fields written when an identity signs in. Nil fields
// leave existing column values untouched.
type UserUpsert struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *Role
	LastSignedIn time.Time
}
