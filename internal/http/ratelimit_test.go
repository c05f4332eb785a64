package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPLimiter(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	l := newIPLimiter(1, 2)
	l.now = func() time.Time { return now }
	l.lastCleanup = now

	a := l.get("10.0.0.1")
	assert.Same(t, a, l.get("10.0.0.1"))
	assert.NotSame(t, a, l.get("10.0.0.2"))

	assert.True(t, a.AllowN(now, 1))
	assert.True(t, a.AllowN(now, 1))
	assert.False(t, a.AllowN(now, 1))
	assert.True(t, a.AllowN(now.Add(time.Second), 1))

	now = now.Add(limiterTTL + time.Minute)
	assert.NotSame(t, a, l.get("10.0.0.1"))
	assert.Len(t, l.limiters, 1)
}
