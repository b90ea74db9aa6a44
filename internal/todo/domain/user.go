package domain

import "time"

// User is a local account lazily created on first successful authentication.
// Users are never hard-deleted, only disabled.
type User struct {
	ID           string     `json:"id"`
	SubID        string     `json:"sub_id"` // identity provider subject, unique
	Email        string     `json:"email"`
	StatusID     UserStatus `json:"status_id"`
	CreatedDate  time.Time  `json:"created_date"`
	ModifiedDate time.Time  `json:"modified_date"`
}

// Enabled reports whether the user may authenticate.
func (u *User) Enabled() bool {
	return u.StatusID == UserEnabled
}
