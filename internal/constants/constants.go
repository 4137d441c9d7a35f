package constants

import "time"

// Session
const (
	SessionCookieName  = "brf_portal_session"
	ContextKeyUserID   = "user_id"
	ContextKeyIdentity = "identity"
)

// Validation
const (
	MinPasswordLength = 6
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Token lifetimes
const (
	InvitationTTL    = 7 * 24 * time.Hour
	PasswordResetTTL = 2 * time.Hour
)

// Dashboard
const (
	UpcomingDueWindowDays = 30
	UpcomingDueLimit      = 5
)

// DefaultCurrency is used when an invoice is created without an explicit currency.
const DefaultCurrency = "SEK"
