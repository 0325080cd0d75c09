// Package session joins the caller's profile and role reads into the state
// the view router decides from.
package session

import (
	"context"
	"sync"

	"github.com/goliatone/go-krishi-portal/remote"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Reader is the part of the query orchestrator the resolver uses.
type Reader interface {
	CallerProfile(ctx context.Context) (remote.Option[remote.FarmerProfile], error)
	IsAdmin(ctx context.Context) (bool, error)
	ResetSession(ctx context.Context)
}

// Resolver holds the session's profile and role state.
type Resolver struct {
	reader Reader
	logger *zap.Logger

	mu      sync.RWMutex
	snap    Snapshot
	profile remote.Option[remote.FarmerProfile]
	// seq identifies the session; reads started in an older one are dropped
	seq uint64
}

// NewResolver creates a Resolver with no session.
func NewResolver(reader Reader, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		reader: reader,
		logger: logger,
		snap:   Snapshot{Profile: ProfileAnonymous},
	}
}

// Start records a new session. Both reads restart from unresolved.
func (r *Resolver) Start(authenticated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.snap = Snapshot{
		Authenticated: authenticated,
		Profile:       Begin(authenticated),
		Role:          RoleUnresolved,
	}
	if !authenticated {
		r.snap.Role = RoleResolved
	}
	r.profile = remote.None[remote.FarmerProfile]()
}

// Refresh runs the profile and role reads concurrently and returns once
// both have reached a terminal state. A failed role read resolves to
// non-admin. A failed profile read leaves the profile unknown so the setup
// prompt is not shown on a guess.
func (r *Resolver) Refresh(ctx context.Context) error {
	r.mu.RLock()
	authenticated, seq := r.snap.Authenticated, r.seq
	r.mu.RUnlock()
	if !authenticated {
		return nil
	}

	var g errgroup.Group
	g.Go(func() error {
		p, err := r.reader.CallerProfile(ctx)
		if err != nil {
			r.logger.Debug("profile read failed", zap.Error(err))
			return err
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.seq == seq {
			r.profile = p
			r.snap.Profile = ProfileRead(r.snap.Profile, p.IsSome())
		}
		return nil
	})
	g.Go(func() error {
		isAdmin, err := r.reader.IsAdmin(ctx)
		if err != nil {
			r.logger.Debug("role read failed", zap.Error(err))
			isAdmin = false
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.seq == seq {
			r.snap.Role = RoleResolved
			r.snap.IsAdmin = isAdmin
		}
		return err
	})
	return g.Wait()
}

// ProfileSaved records a successful profile save.
func (r *Resolver) ProfileSaved(p remote.FarmerProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Profile = ProfileSaved(r.snap.Profile)
	r.profile = remote.Some(p)
}

// End drops the session. The role resets to non-admin at once and every
// cached read of the old session is discarded.
func (r *Resolver) End(ctx context.Context) {
	r.mu.Lock()
	r.seq++
	r.snap = Snapshot{Profile: Ended(r.snap.Profile), Role: RoleResolved}
	r.profile = remote.None[remote.FarmerProfile]()
	r.mu.Unlock()

	r.reader.ResetSession(ctx)
}

// Snapshot returns the current state.
func (r *Resolver) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// Profile returns the caller's profile once it is known to exist.
func (r *Resolver) Profile() remote.Option[remote.FarmerProfile] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profile
}

// Derived is shorthand for Derive(r.Snapshot()).
func (r *Resolver) Derived() Derived {
	return Derive(r.Snapshot())
}
