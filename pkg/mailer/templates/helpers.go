package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithAppName(name string) Option { return func(d *EmailData) { d.AppName = name } }
func WithTime(t time.Time) Option    { return func(d *EmailData) { d.Year = t.UTC().Year() } }

// NewBaseEmailData fills the recipient fields, then applies opts.
func NewBaseEmailData(typ, firstName, lastName, email, link string, opts ...Option) EmailData {
	d := EmailData{
		Type:      typ,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Link:      link,
		Year:      time.Now().UTC().Year(),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewVerifyEmailData(firstName, lastName, email, link string, opts ...Option) EmailData {
	return NewBaseEmailData(VerifyEmail, firstName, lastName, email, link, opts...)
}

func NewResetPasswordData(firstName, lastName, email, link string, opts ...Option) EmailData {
	return NewBaseEmailData(ResetPassword, firstName, lastName, email, link, opts...)
}

// BuildLink joins the front-end base URL, a route and the code.
func BuildLink(frontBaseURL, route, code string) string {
	return strings.TrimRight(frontBaseURL, "/") + "/" + strings.Trim(route, "/") + "/" + code
}
