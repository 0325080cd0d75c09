// Package memory provides an in-process implementation of the backend RPC
// surface. It enforces the same authorization rules as the real service and
// can simulate transport failures, which makes it the collaborator used by
// tests and by the demo CLI.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/puzpuzpuz/xsync/v3"
)

// Interface assertion to ensure Backend can open sessions for remote.Client
var _ remote.Connector = (*Backend)(nil)

// Backend holds every table of the fake service.
type Backend struct {
	profiles   *xsync.MapOf[remote.Principal, remote.FarmerProfile]
	roles      *xsync.MapOf[remote.Principal, remote.Role]
	advisories *xsync.MapOf[uint64, remote.CropAdvisory]
	prices     *xsync.MapOf[uint64, remote.MandiPrice]
	schemes    *xsync.MapOf[uint64, remote.GovernmentScheme]
	soil       *xsync.MapOf[uint64, remote.SoilReport]
	queries    *xsync.MapOf[uint64, remote.ExpertQuery]

	farmerSeq   atomic.Uint64
	advisorySeq atomic.Uint64
	priceSeq    atomic.Uint64
	schemeSeq   atomic.Uint64
	soilSeq     atomic.Uint64
	querySeq    atomic.Uint64

	offline atomic.Bool
	calls   *xsync.MapOf[string, int]

	// respond serializes the pending -> resolved transition of queries
	respond sync.Mutex
}

// Option configures a Backend.
type Option func(*Backend)

// WithAdmins grants the admin role to the given principals.
func WithAdmins(principals ...remote.Principal) Option {
	return func(b *Backend) {
		for _, p := range principals {
			b.roles.Store(p, remote.RoleAdmin)
		}
	}
}

// New creates an empty backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		profiles:   xsync.NewMapOf[remote.Principal, remote.FarmerProfile](),
		roles:      xsync.NewMapOf[remote.Principal, remote.Role](),
		advisories: xsync.NewMapOf[uint64, remote.CropAdvisory](),
		prices:     xsync.NewMapOf[uint64, remote.MandiPrice](),
		schemes:    xsync.NewMapOf[uint64, remote.GovernmentScheme](),
		soil:       xsync.NewMapOf[uint64, remote.SoilReport](),
		queries:    xsync.NewMapOf[uint64, remote.ExpertQuery](),
		calls:      xsync.NewMapOf[string, int](),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Connect opens a service bound to principal. None connects anonymously.
func (b *Backend) Connect(ctx context.Context, principal remote.Option[remote.Principal]) (remote.Service, error) {
	if b.offline.Load() {
		return nil, remote.Network("connect", errUnreachable)
	}
	return &service{backend: b, caller: principal.OrElse(remote.Anonymous)}, nil
}

// SetOffline makes every subsequent call fail with a network error.
func (b *Backend) SetOffline(offline bool) {
	b.offline.Store(offline)
}

// Calls returns how many times op reached the backend.
func (b *Backend) Calls(op string) int {
	n, _ := b.calls.Load(op)
	return n
}

// Seed loads reference records, assigning fresh ids.
func (b *Backend) Seed(seed Seed) {
	for _, a := range seed.Advisories {
		a.ID = b.advisorySeq.Add(1)
		b.advisories.Store(a.ID, a)
	}
	for _, p := range seed.Prices {
		p.ID = b.priceSeq.Add(1)
		b.prices.Store(p.ID, p)
	}
	for _, s := range seed.Schemes {
		s.ID = b.schemeSeq.Add(1)
		b.schemes.Store(s.ID, s)
	}
}

// Seed is the reference data a backend can start with.
type Seed struct {
	Advisories []remote.CropAdvisory     `json:"advisories"`
	Prices     []remote.MandiPrice       `json:"prices"`
	Schemes    []remote.GovernmentScheme `json:"schemes"`
}

func (b *Backend) enter(op string) error {
	b.calls.Compute(op, func(n int, _ bool) (int, bool) {
		return n + 1, false
	})
	if b.offline.Load() {
		return remote.Network(op, errUnreachable)
	}
	return nil
}

func (b *Backend) roleOf(p remote.Principal) remote.Role {
	if p.IsAnonymous() {
		return remote.RoleGuest
	}
	if r, ok := b.roles.Load(p); ok {
		return r
	}
	return remote.RoleUser
}

func sorted[T any](m *xsync.MapOf[uint64, T], keep func(T) bool) []T {
	type row struct {
		id  uint64
		val T
	}
	var rows []row
	m.Range(func(id uint64, v T) bool {
		if keep == nil || keep(v) {
			rows = append(rows, row{id, v})
		}
		return true
	})
	slices.SortFunc(rows, func(a, b row) int { return cmp.Compare(a.id, b.id) })

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.val)
	}
	return out
}
