// Package identity defines the identity-provider collaborator the portal
// logs in through, plus a development provider that mints principals locally.
package identity

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/google/uuid"
)

// ErrAlreadyAuthenticated is returned by Login when a session already exists.
// Callers must Clear and retry.
var ErrAlreadyAuthenticated = errors.New("identity: already authenticated")

// LoginStatus mirrors the provider's login lifecycle.
type LoginStatus int

const (
	StatusIdle LoginStatus = iota
	StatusLoggingIn
	StatusLoggedIn
)

func (s LoginStatus) String() string {
	switch s {
	case StatusLoggingIn:
		return "logging-in"
	case StatusLoggedIn:
		return "logged-in"
	default:
		return "idle"
	}
}

// Identity is an authenticated caller.
type Identity struct {
	Principal remote.Principal
}

// Provider is the external identity collaborator.
type Provider interface {
	Login(ctx context.Context) error
	Clear(ctx context.Context) error
	Identity() remote.Option[Identity]
	Status() LoginStatus
}

// DevProvider logs in as a fixed principal, or a random one when none is set.
type DevProvider struct {
	mu        sync.Mutex
	principal remote.Principal
	current   remote.Option[Identity]
	status    LoginStatus
}

// NewDevProvider returns a provider that authenticates as principal.
// An empty principal makes every login mint a fresh one.
func NewDevProvider(principal remote.Principal) *DevProvider {
	return &DevProvider{principal: principal}
}

// Login authenticates. It fails if a session already exists.
func (p *DevProvider) Login(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current.IsSome() {
		return ErrAlreadyAuthenticated
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	principal := p.principal
	if principal == "" {
		principal = remote.Principal(uuid.NewString())
	}
	p.current = remote.Some(Identity{Principal: principal})
	p.status = StatusLoggedIn
	return nil
}

// Clear ends the session unconditionally.
func (p *DevProvider) Clear(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = remote.None[Identity]()
	p.status = StatusIdle
	return nil
}

// SwitchTo changes the principal used by the next Login.
func (p *DevProvider) SwitchTo(principal remote.Principal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.principal = principal
}

func (p *DevProvider) Identity() remote.Option[Identity] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *DevProvider) Status() LoginStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// PrincipalOf maps an optional identity to an optional principal.
func PrincipalOf(id remote.Option[Identity]) remote.Option[remote.Principal] {
	if v, ok := id.Get(); ok {
		return remote.Some(v.Principal)
	}
	return remote.None[remote.Principal]()
}
