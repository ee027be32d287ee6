package entity

import "time"

// EmailCode is a one-time code mailed to a user, either to verify the
// address or to authorize a password change. Codes carry no expiry.
type EmailCode struct {
	ID        string
	Code      string
	UserID    string
	CreatedAt time.Time
}
