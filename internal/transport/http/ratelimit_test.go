package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLimiter_ReusesPerIPEntry(t *testing.T) {
	rl := NewRateLimiter(10, 20)

	first := rl.GetLimiter("10.0.0.1")
	second := rl.GetLimiter("10.0.0.1")
	other := rl.GetLimiter("10.0.0.2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestSweep_DropsStaleEntries(t *testing.T) {
	rl := NewRateLimiter(10, 20)

	rl.GetLimiter("10.0.0.1")
	rl.GetLimiter("10.0.0.2")

	rl.mu.Lock()
	rl.ips["10.0.0.1"].lastSeen = time.Now().Add(-rl.cleanupInterval - time.Minute)
	rl.mu.Unlock()

	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	_, stale := rl.ips["10.0.0.1"]
	_, fresh := rl.ips["10.0.0.2"]
	require.False(t, stale)
	assert.True(t, fresh)
}
