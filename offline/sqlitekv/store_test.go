package sqlitekv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-krishi-portal/offline"
	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "offline.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_GetSetMany(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetMany(ctx, map[string][]byte{
		"cache_mandiPrices":           []byte("v1"),
		"cache_mandiPrices_timestamp": []byte("1"),
	}))
	require.NoError(t, s.SetMany(ctx, map[string][]byte{
		"cache_mandiPrices": []byte("v2"),
	}))

	v, ok, err := s.Get(ctx, "cache_mandiPrices")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), v)

	require.NoError(t, s.SetMany(ctx, nil))
}

func TestStore_KeysPrefixIsLiteral(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	require.NoError(t, s.SetMany(ctx, map[string][]byte{
		"cache_b":           []byte("x"),
		"cache_a":           []byte("x"),
		"cacheXa":           []byte("x"),
		"preferredLanguage": []byte("hi"),
	}))

	keys, err := s.Keys(ctx, "cache_")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache_a", "cache_b"}, keys)

	all, err := s.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)

	c := offline.New(s)
	c.Store(ctx, "cropAdvisories", []remote.CropAdvisory{{ID: 1, Crop: "Rice", Season: "Kharif"}})
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := offline.LoadAs[[]remote.CropAdvisory](ctx, offline.New(reopened), "cropAdvisories")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Rice", got[0].Crop)

	_, ok = offline.New(reopened).Timestamp(ctx, "cropAdvisories")
	assert.True(t, ok)
}
