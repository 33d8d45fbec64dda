package redirect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benetrip/pkg/cache"
)

func newClockedCache() (*Cache, *time.Time) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewCacheWithClock(cache.NewMemoryCacheWithClock(clock), clock)
	return c, &now
}

func sampleDescriptor(obtainedAt time.Time) Descriptor {
	return Descriptor{
		TargetURL:  "https://partner.example/book",
		Method:     "GET",
		Partner:    "gate-12",
		ObtainedAt: obtainedAt,
	}
}

func TestCache_HitJustBeforeTTL(t *testing.T) {
	c, now := newClockedCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "offer-1", sampleDescriptor(*now)))

	*now = now.Add(14*time.Minute + 59*time.Second)

	got, err := c.Get(ctx, "offer-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://partner.example/book", got.TargetURL)
}

func TestCache_MissJustAfterTTL(t *testing.T) {
	c, now := newClockedCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "offer-1", sampleDescriptor(*now)))

	*now = now.Add(15*time.Minute + time.Second)

	got, err := c.Get(ctx, "offer-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// The expired entry was evicted, not only hidden.
	*now = now.Add(-10 * time.Minute)
	got, err = c.Get(ctx, "offer-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_PutOverwrites(t *testing.T) {
	c, now := newClockedCache()
	ctx := context.Background()

	first := sampleDescriptor(*now)
	require.NoError(t, c.Put(ctx, "offer-1", first))

	second := sampleDescriptor(*now)
	second.TargetURL = "https://partner.example/other"
	require.NoError(t, c.Put(ctx, "offer-1", second))

	got, err := c.Get(ctx, "offer-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://partner.example/other", got.TargetURL)
}

func TestCache_ClearAll(t *testing.T) {
	c, now := newClockedCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "offer-1", sampleDescriptor(*now)))
	require.NoError(t, c.Put(ctx, "offer-2", sampleDescriptor(*now)))

	require.NoError(t, c.ClearAll(ctx))

	got, err := c.Get(ctx, "offer-1")
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = c.Get(ctx, "offer-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	c, _ := newClockedCache()

	got, err := c.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIsExpired(t *testing.T) {
	obtained := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := Descriptor{ObtainedAt: obtained}

	assert.False(t, isExpired(d, obtained.Add(14*time.Minute+59*time.Second)))
	assert.False(t, isExpired(d, obtained.Add(15*time.Minute)))
	assert.True(t, isExpired(d, obtained.Add(15*time.Minute+time.Second)))
}
