package systems

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickClock_FiresOnPeriod(t *testing.T) {
	c := NewTickClock(90 * time.Millisecond)

	assert.False(t, c.Advance(50*time.Millisecond))
	assert.False(t, c.Fired())
	assert.True(t, c.Advance(50*time.Millisecond))
	assert.True(t, c.Fired())
	assert.Equal(t, 1, c.TimesFinished())
	assert.Equal(t, 80*time.Millisecond, c.Remaining(), "10ms carries over")

	assert.False(t, c.Advance(70*time.Millisecond))
	assert.True(t, c.Advance(10*time.Millisecond))
	assert.Equal(t, uint64(2), c.Ticks())
}

func TestTickClock_LongFrameFiresOnce(t *testing.T) {
	c := NewTickClock(90 * time.Millisecond)

	assert.True(t, c.Advance(300*time.Millisecond))
	assert.Equal(t, 3, c.TimesFinished())
	assert.Equal(t, uint64(1), c.Ticks())
	assert.Equal(t, 60*time.Millisecond, c.Remaining())
}

func TestTickClock_InvalidPeriod(t *testing.T) {
	assert.Panics(t, func() { NewTickClock(0) })
}
