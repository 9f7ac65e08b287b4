package domain

import "time"

// Subscriber is a newsletter signup row. Removed subscribers are kept with
// active=0 so a later re-subscribe reactivates the same row.
type Subscriber struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	SubscribedAt time.Time `json:"subscribedAt" db:"subscribed_at"`
	Active       int       `json:"active" db:"active"`
}

// SiteStats aggregates the admin dashboard counts.
type SiteStats struct {
	TotalUsers        int64 `json:"totalUsers" db:"total_users"`
	TotalSubscribers  int64 `json:"totalSubscribers" db:"total_subscribers"`
	ActiveSubscribers int64 `json:"activeSubscribers" db:"active_subscribers"`
	AdminCount        int64 `json:"adminCount" db:"admin_count"`
}
