package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password always holds a bcrypt hash once the user has been created.
type User struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Country    string
	Image      string
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ProfileUpdate carries the mutable profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Country   *string
	Image     *string
}

// Apply copies the non-nil fields onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Country != nil {
		u.Country = *p.Country
	}
	if p.Image != nil {
		u.Image = *p.Image
	}
}
