package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	c := RealClock{}

	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before), "clock.Now() should not return time before actual time.Now()")
	assert.False(t, got.After(after), "clock.Now() should not return time after actual time.Now()")
}

func TestRealClock_Sleep(t *testing.T) {
	c := RealClock{}

	start := time.Now()
	c.Sleep(10 * time.Millisecond)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
}

// MockClock is a Clock implementation for testing that returns a fixed time
// advanced by every Sleep call.
type MockClock struct {
	FixedTime time.Time
	Slept     []time.Duration
}

// Now returns the fixed time.
func (m *MockClock) Now() time.Time {
	return m.FixedTime
}

// Sleep records the requested duration and advances the fixed time.
func (m *MockClock) Sleep(d time.Duration) {
	m.Slept = append(m.Slept, d)
	m.FixedTime = m.FixedTime.Add(d)
}

func TestMockClock(t *testing.T) {
	fixedTime := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	c := &MockClock{FixedTime: fixedTime}

	assert.Equal(t, fixedTime, c.Now())

	c.Sleep(time.Second)
	assert.Equal(t, fixedTime.Add(time.Second), c.Now())
	assert.Equal(t, []time.Duration{time.Second}, c.Slept)
}
