package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_NowIsUTC(t *testing.T) {
	c := NewRealClock()

	now := c.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.GreaterOrEqual(t, c.Since(now), time.Duration(0))
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("fixed without step", func(t *testing.T) {
		c := NewMockClock(start)

		assert.Equal(t, start, c.Now())
		assert.Equal(t, start, c.Now())
		assert.Zero(t, c.Since(start))
	})

	t.Run("step advances on every read", func(t *testing.T) {
		c := NewMockClock(start)
		c.SetStep(time.Second)

		first := c.Now()
		second := c.Now()

		assert.Equal(t, start, first)
		assert.Equal(t, time.Second, second.Sub(first))
		assert.Equal(t, 2*time.Second, c.Since(start))
	})

	t.Run("set and advance", func(t *testing.T) {
		c := NewMockClock(start)
		c.Advance(time.Hour)
		assert.Equal(t, start.Add(time.Hour), c.Now())

		later := start.Add(48 * time.Hour)
		c.Set(later)
		assert.Equal(t, later, c.Now())
	})
}
