package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Without a Redis connection every helper must degrade to a no-op so
// dashboards recompute instead of failing.
func TestNilClientDegradation(t *testing.T) {
	client = nil
	ctx := context.Background()

	assert.EqualValues(t, 0, DataVersion(ctx))
	assert.NotPanics(t, func() { BumpDataVersion(ctx) })

	data, ok := GetCached(ctx, "dashboard:metrics:v0")
	assert.False(t, ok)
	assert.Nil(t, data)

	assert.NotPanics(t, func() { SetCached(ctx, "dashboard:metrics:v0", []byte("{}"), time.Minute) })
	assert.False(t, IsHealthy())
}
