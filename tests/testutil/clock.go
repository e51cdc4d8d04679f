package testutil

import (
	"time"

	"github.com/light-bringer/pricecomp-service/internal/pkg/clock"
)

// FixedTime is the reference instant used by tests that need a stable clock.
var FixedTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// NewMockClock creates a mock clock at FixedTime that advances by step on every read.
func NewMockClock(step time.Duration) *clock.MockClock {
	c := clock.NewMockClock(FixedTime)
	c.SetStep(step)
	return c
}
