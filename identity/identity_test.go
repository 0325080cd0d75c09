package identity

import (
	"context"
	"testing"

	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevProvider_LoginClear(t *testing.T) {
	ctx := context.Background()
	p := NewDevProvider("farmer-1")

	assert.Equal(t, StatusIdle, p.Status())
	assert.True(t, p.Identity().IsNone())

	require.NoError(t, p.Login(ctx))
	assert.Equal(t, StatusLoggedIn, p.Status())
	id, ok := p.Identity().Get()
	require.True(t, ok)
	assert.Equal(t, remote.Principal("farmer-1"), id.Principal)

	assert.ErrorIs(t, p.Login(ctx), ErrAlreadyAuthenticated)

	require.NoError(t, p.Clear(ctx))
	assert.True(t, p.Identity().IsNone())
	assert.Equal(t, "idle", p.Status().String())
}

func TestDevProvider_MintsPrincipalWhenUnset(t *testing.T) {
	ctx := context.Background()
	p := NewDevProvider("")

	require.NoError(t, p.Login(ctx))
	first, _ := p.Identity().Get()
	require.NoError(t, p.Clear(ctx))
	require.NoError(t, p.Login(ctx))
	second, _ := p.Identity().Get()

	assert.NotEmpty(t, first.Principal)
	assert.NotEqual(t, first.Principal, second.Principal)
}

func TestDevProvider_SwitchTo(t *testing.T) {
	ctx := context.Background()
	p := NewDevProvider("farmer-1")
	p.SwitchTo("officer-1")

	require.NoError(t, p.Login(ctx))
	assert.Equal(t, remote.Some[remote.Principal]("officer-1"), PrincipalOf(p.Identity()))
}

func TestDevProvider_CancelledLogin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewDevProvider("farmer-1")
	assert.ErrorIs(t, p.Login(ctx), context.Canceled)
	assert.True(t, PrincipalOf(p.Identity()).IsNone())
}
