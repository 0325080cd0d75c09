package query

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingBackend fails every price list read with err.
type failingBackend struct {
	Backend
	err error
}

func (f failingBackend) GetMandiPrices(ctx context.Context) ([]remote.MandiPrice, error) {
	return nil, f.err
}

func TestListView_Online(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, farmer)

	view, err := h.o.CropAdvisoriesView(ctx)
	require.NoError(t, err)
	assert.False(t, view.Offline)
	assert.True(t, view.CachedAt.IsZero())
	assert.Len(t, view.Items, 1)
}

func TestListView_NetworkFailureServesLastGoodValue(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, farmer)

	online, err := h.o.MandiPricesView(ctx)
	require.NoError(t, err)

	h.backend.SetOffline(true)
	h.o.Invalidate(ctx, ResourcePrices)

	view, err := h.o.MandiPricesView(ctx)
	require.NoError(t, err)
	assert.True(t, view.Offline)
	assert.False(t, view.CachedAt.IsZero())
	assert.Equal(t, online.Items, view.Items)
}

func TestListView_NetworkFailureWithoutCopySurfaces(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, farmer)
	h.backend.SetOffline(true)

	_, err := h.o.SoilReportsView(ctx)
	assert.ErrorIs(t, err, remote.ErrNetwork)
}

func TestListView_DisabledSessionUsesOfflineCopy(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, farmer)

	_, err := h.o.GovernmentSchemesView(ctx)
	require.NoError(t, err)

	h.client.Disconnect()
	h.o.ResetSession(ctx)

	view, err := h.o.GovernmentSchemesView(ctx)
	require.NoError(t, err)
	assert.True(t, view.Offline)
	assert.Len(t, view.Items, 1)
}

func TestListView_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		online      bool
		wantOffline bool
	}{
		{name: "rejected is never masked", err: remote.Rejected("getMandiPrices", remote.ErrUnauthorized), online: false, wantOffline: false},
		{name: "untyped fetch failure", err: errors.New("TypeError: Failed to fetch"), online: true, wantOffline: true},
		{name: "untyped failure while host offline", err: errors.New("canister stopped"), online: false, wantOffline: true},
		{name: "untyped failure while host online", err: errors.New("canister stopped"), online: true, wantOffline: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			h := newHarness(t, farmer)
			h.offline.Store(ctx, ResourcePrices, []remote.MandiPrice{{ID: 9, Crop: "Gram", Price: 5100, Location: "Indore"}})
			h.reach.Set(tt.online)

			o := New(failingBackend{Backend: h.client, err: tt.err}, h.cache, h.offline, WithReachability(h.reach))
			view, err := o.MandiPricesView(ctx)

			if !tt.wantOffline {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, view.Offline)
			require.Len(t, view.Items, 1)
			assert.Equal(t, "Gram", view.Items[0].Crop)
		})
	}
}
