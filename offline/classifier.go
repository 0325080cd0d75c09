package offline

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/goliatone/go-krishi-portal/remote"
)

// Reachability reports whether the host believes it has connectivity.
type Reachability interface {
	Online() bool
}

// ReachabilityFunc adapts a function to Reachability.
type ReachabilityFunc func() bool

func (f ReachabilityFunc) Online() bool { return f() }

// AlwaysOnline never reports the host as disconnected.
var AlwaysOnline Reachability = ReachabilityFunc(func() bool { return true })

// Switch is a Reachability flipped by hand.
type Switch struct {
	online atomic.Bool
}

// NewSwitch returns a Switch in the given state.
func NewSwitch(online bool) *Switch {
	s := &Switch{}
	s.online.Store(online)
	return s
}

func (s *Switch) Set(online bool) { s.online.Store(online) }

func (s *Switch) Online() bool { return s.online.Load() }

var offlineMarkers = []string{"network", "fetch", "session unavailable"}

// IsOffline reports whether err should be treated as a connectivity failure.
// Typed remote errors decide on their own; untyped errors are matched on
// their text and finally on r.
func IsOffline(err error, r Reachability) bool {
	if err == nil {
		return false
	}

	switch remote.KindOf(err) {
	case remote.KindRejected:
		return false
	case remote.KindNetwork, remote.KindSessionUnavailable:
		return true
	}
	if errors.Is(err, remote.ErrSessionUnavailable) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, m := range offlineMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}

	if r == nil {
		return false
	}
	return !r.Online()
}
