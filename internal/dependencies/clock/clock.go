package clock

import "time"

// Clock supplies the current time to session cookie issuance and can be mocked
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock in UTC
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}
