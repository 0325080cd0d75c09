// Package router picks the top-level view from session and role state.
package router

// View is one of the top-level screens.
type View int

const (
	PublicView View = iota
	Loading
	AdminView
	AccessDenied
)

func (v View) String() string {
	switch v {
	case Loading:
		return "loading"
	case AdminView:
		return "admin"
	case AccessDenied:
		return "access-denied"
	default:
		return "public"
	}
}

// Input is everything a routing decision depends on.
type Input struct {
	Authenticated      bool
	IsAdmin            bool
	AdminLoading       bool
	AdminViewRequested bool
	ProfileSetupNeeded bool
}

// Decision is the routed view plus its overlays.
type Decision struct {
	View         View
	ProfileSetup bool
	AdminToggle  bool
}

// Route is a pure function of in.
//
// An authenticated caller whose role resolved to non-admin is denied access
// whether or not the admin view was requested.
func Route(in Input) Decision {
	switch {
	case in.Authenticated && in.AdminViewRequested && in.AdminLoading:
		return Decision{View: Loading}
	case in.Authenticated && in.IsAdmin && in.AdminViewRequested:
		return Decision{View: AdminView, ProfileSetup: in.ProfileSetupNeeded, AdminToggle: true}
	case in.Authenticated && !in.IsAdmin && !in.AdminLoading:
		return Decision{View: AccessDenied}
	}
	return Decision{
		View:         PublicView,
		ProfileSetup: in.Authenticated && in.ProfileSetupNeeded,
		AdminToggle:  in.Authenticated && in.IsAdmin && !in.AdminLoading,
	}
}
