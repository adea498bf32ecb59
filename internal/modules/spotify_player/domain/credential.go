package domain

import "time"

// AccessCredential is a catalog bearer token and the instant it stops being valid.
type AccessCredential struct {
	Token     string
	ExpiresAt time.Time
}

// IsUsable reports whether the credential can be sent at the given time.
func (c AccessCredential) IsUsable(now time.Time) bool {
	return c.Token != "" && now.Before(c.ExpiresAt)
}
