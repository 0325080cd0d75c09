package session

// ProfileState tracks whether the caller still has to create a profile.
type ProfileState int

const (
	// ProfileUnknown means the profile read has not completed.
	ProfileUnknown ProfileState = iota
	// ProfileAnonymous means there is no authenticated session.
	ProfileAnonymous
	// ProfileNeedsSetup means the read completed and no profile exists.
	ProfileNeedsSetup
	// ProfileReady means the caller has a profile.
	ProfileReady
)

func (s ProfileState) String() string {
	switch s {
	case ProfileAnonymous:
		return "anonymous"
	case ProfileNeedsSetup:
		return "needs-setup"
	case ProfileReady:
		return "ready"
	default:
		return "unknown"
	}
}

// RoleState tracks the admin-role read.
type RoleState int

const (
	// RoleUnresolved means the role read has not completed.
	RoleUnresolved RoleState = iota
	// RoleResolved means IsAdmin holds the answer.
	RoleResolved
)

// Snapshot is the joined state of the profile and role reads.
type Snapshot struct {
	Authenticated bool
	Profile       ProfileState
	Role          RoleState
	IsAdmin       bool
}

// Derived is what routing decisions are made from.
type Derived struct {
	Authenticated      bool
	IsAdmin            bool
	AdminLoading       bool
	ProfileExists      bool
	ProfileSetupNeeded bool
}

// Derive computes the routing inputs from s. IsAdmin is false until the
// role is resolved and whenever the session is not authenticated.
func Derive(s Snapshot) Derived {
	if !s.Authenticated {
		return Derived{}
	}
	resolved := s.Role == RoleResolved
	return Derived{
		Authenticated:      true,
		IsAdmin:            resolved && s.IsAdmin,
		AdminLoading:       !resolved,
		ProfileExists:      s.Profile == ProfileReady,
		ProfileSetupNeeded: s.Profile == ProfileNeedsSetup,
	}
}

// Transitions of the profile state machine.

// Begin is the state a new session starts in.
func Begin(authenticated bool) ProfileState {
	if !authenticated {
		return ProfileAnonymous
	}
	return ProfileUnknown
}

// ProfileRead applies a completed profile read.
func ProfileRead(s ProfileState, exists bool) ProfileState {
	if s != ProfileUnknown {
		return s
	}
	if exists {
		return ProfileReady
	}
	return ProfileNeedsSetup
}

// ProfileSaved applies a successful profile save.
func ProfileSaved(s ProfileState) ProfileState {
	if s == ProfileNeedsSetup {
		return ProfileReady
	}
	return s
}

// Ended is the state after the session ends, from any state.
func Ended(ProfileState) ProfileState {
	return ProfileAnonymous
}
