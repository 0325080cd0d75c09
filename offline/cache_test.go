package offline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingKV struct {
	*MemoryKV
	err error
}

func (f failingKV) SetMany(ctx context.Context, entries map[string][]byte) error {
	return f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCache_StoreLoad(t *testing.T) {
	ctx := context.Background()
	at := time.UnixMilli(1_700_000_000_123)
	c := New(NewMemoryKV(), WithClock(fixedClock(at)))

	prices := []remote.MandiPrice{{ID: 1, Crop: "Wheat", Price: 2000, Location: "Indore"}}
	c.Store(ctx, "mandiPrices", prices)

	got, ok := LoadAs[[]remote.MandiPrice](ctx, c, "mandiPrices")
	require.True(t, ok)
	assert.Equal(t, prices, got)

	ts, ok := c.Timestamp(ctx, "mandiPrices")
	require.True(t, ok)
	assert.Equal(t, at.UnixMilli(), ts.UnixMilli())
}

func TestCache_StoreOverwrites(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryKV())

	c.Store(ctx, "governmentSchemes", []remote.GovernmentScheme{{ID: 1, Name: "PM-KISAN"}})
	c.Store(ctx, "governmentSchemes", []remote.GovernmentScheme{{ID: 2, Name: "PMFBY"}})

	got, ok := LoadAs[[]remote.GovernmentScheme](ctx, c, "governmentSchemes")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "PMFBY", got[0].Name)
}

func TestCache_OptionalFieldsSurvive(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryKV())

	queries := []remote.ExpertQuery{
		{ID: 1, Question: "Yellow leaves?", Response: remote.Some("Add nitrogen")},
		{ID: 2, Question: "When to sow?"},
	}
	c.Store(ctx, "expertQueries", queries)

	got, ok := LoadAs[[]remote.ExpertQuery](ctx, c, "expertQueries")
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.False(t, got[0].Pending())
	assert.True(t, got[1].Pending())
	assert.True(t, got[1].Attachment.IsNone())
}

func TestCache_LoadAbsentOrCorrupt(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(kv *MemoryKV)
	}{
		{name: "missing", setup: func(*MemoryKV) {}},
		{name: "not msgpack", setup: func(kv *MemoryKV) {
			_ = kv.SetMany(ctx, map[string][]byte{ValueKey("soilReports"): []byte("{not json")})
		}},
		{name: "checksum mismatch", setup: func(kv *MemoryKV) {
			c := New(kv)
			c.Store(ctx, "soilReports", []remote.SoilReport{{ID: 1, PH: 6.5}})
			data, _, _ := kv.Get(ctx, ValueKey("soilReports"))
			data[len(data)-1] ^= 0xff
			_ = kv.SetMany(ctx, map[string][]byte{ValueKey("soilReports"): data})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			tt.setup(kv)
			c := New(kv)

			_, ok := LoadAs[[]remote.SoilReport](ctx, c, "soilReports")
			assert.False(t, ok)
		})
	}
}

func TestCache_TimestampUnparseable(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.SetMany(ctx, map[string][]byte{TimestampKey("cropAdvisories"): []byte("yesterday")}))

	_, ok := New(kv).Timestamp(ctx, "cropAdvisories")
	assert.False(t, ok)
}

func TestCache_StoreFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	kv := failingKV{MemoryKV: NewMemoryKV(), err: errors.New("quota exceeded")}
	c := New(kv, WithLogger(zap.New(core)))

	c.Store(ctx, "cropAdvisories", []remote.CropAdvisory{{ID: 1}})

	_, ok := LoadAs[[]remote.CropAdvisory](ctx, c, "cropAdvisories")
	assert.False(t, ok)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "offline cache write failed", logs.All()[0].Message)
}

func TestCache_Resources(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryKV())

	c.Store(ctx, "mandiPrices", []remote.MandiPrice{})
	c.Store(ctx, "cropAdvisories", []remote.CropAdvisory{})

	assert.Equal(t, []string{"cropAdvisories", "mandiPrices"}, c.Resources(ctx))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "cache_mandiPrices", ValueKey("mandiPrices"))
	assert.Equal(t, "cache_mandiPrices_timestamp", TimestampKey("mandiPrices"))
}
