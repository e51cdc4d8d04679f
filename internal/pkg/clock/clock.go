package clock

import "time"

// Clock is an interface for time operations to enable testability.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// RealClock is the production implementation using actual system time.
type RealClock struct{}

// NewRealClock creates a new RealClock.
func NewRealClock() Clock {
	return &RealClock{}
}

// Now returns the current system time in UTC.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Since returns the time elapsed since t.
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// MockClock is a test implementation with a manually driven current time.
// Every call to Now advances the clock by the configured step, which lets
// tests observe non-zero durations deterministically.
type MockClock struct {
	current time.Time
	step    time.Duration
}

// NewMockClock creates a new MockClock starting at the given time.
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{current: startTime}
}

// Now returns the mock current time, then applies the step.
func (m *MockClock) Now() time.Time {
	now := m.current
	m.current = m.current.Add(m.step)
	return now
}

// Since returns the mock elapsed time since t.
func (m *MockClock) Since(t time.Time) time.Duration {
	return m.current.Sub(t)
}

// Set sets the mock current time.
func (m *MockClock) Set(t time.Time) {
	m.current = t
}

// SetStep sets how far each call to Now advances the clock.
func (m *MockClock) SetStep(d time.Duration) {
	m.step = d
}

// Advance advances the mock clock by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}
