package domain

import "time"

// Session timing policy. The watchdog polls every PollInterval, starts
// warning once the remaining lifetime drops to WarningThreshold, and an
// explicit extension pushes the expiry forward by RenewalWindow.
const (
	PollInterval     = time.Second
	WarningThreshold = 5 * time.Minute
	RenewalWindow    = 8 * time.Hour
)

// Session is the client-held proof of authentication: an opaque bearer token
// and its absolute expiry. Token and expiry are always set and cleared
// together.
type Session struct {
	Token  string
	Expiry time.Time
}

// Remaining returns the lifetime left at the given instant. Negative when
// already expired.
func (s Session) Remaining(now time.Time) time.Duration {
	return s.Expiry.Sub(now)
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return s.Remaining(now) <= 0
}
