package application

import "expvar"

// Counters published under /debug/vars as "accounts".
var stats = expvar.NewMap("accounts")

const (
	statRegistrations = "registrations"
	statVerifications = "verifications"
	statLogins        = "logins"
	statLoginFailures = "login_failures"
	statResetRequests = "reset_requests"
	statResets        = "resets"
	statMailsSent     = "mails_sent"
	statMailFailures  = "mail_failures"
)
