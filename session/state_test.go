package session

import "testing"

func TestDerive_ProfileSetupOverlay(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{name: "session live, profile read pending", snap: Snapshot{Authenticated: true, Profile: ProfileUnknown}, want: false},
		{name: "session live, profile absent", snap: Snapshot{Authenticated: true, Profile: ProfileNeedsSetup}, want: true},
		{name: "session live, profile present", snap: Snapshot{Authenticated: true, Profile: ProfileReady}, want: false},
		{name: "no session", snap: Snapshot{Profile: ProfileAnonymous}, want: false},
		{name: "no session with leftover state", snap: Snapshot{Authenticated: false, Profile: ProfileNeedsSetup}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(tt.snap).ProfileSetupNeeded; got != tt.want {
				t.Errorf("ProfileSetupNeeded = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDerive_Role(t *testing.T) {
	tests := []struct {
		name        string
		snap        Snapshot
		wantAdmin   bool
		wantLoading bool
	}{
		{name: "unauthenticated", snap: Snapshot{IsAdmin: true, Role: RoleResolved}, wantAdmin: false, wantLoading: false},
		{name: "role in flight", snap: Snapshot{Authenticated: true, Role: RoleUnresolved, IsAdmin: true}, wantAdmin: false, wantLoading: true},
		{name: "resolved admin", snap: Snapshot{Authenticated: true, Role: RoleResolved, IsAdmin: true}, wantAdmin: true},
		{name: "resolved user", snap: Snapshot{Authenticated: true, Role: RoleResolved}, wantAdmin: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Derive(tt.snap)
			if d.IsAdmin != tt.wantAdmin {
				t.Errorf("IsAdmin = %v, want %v", d.IsAdmin, tt.wantAdmin)
			}
			if d.AdminLoading != tt.wantLoading {
				t.Errorf("AdminLoading = %v, want %v", d.AdminLoading, tt.wantLoading)
			}
		})
	}
}

func TestProfileTransitions(t *testing.T) {
	if got := Begin(false); got != ProfileAnonymous {
		t.Errorf("Begin(false) = %v", got)
	}
	if got := Begin(true); got != ProfileUnknown {
		t.Errorf("Begin(true) = %v", got)
	}
	if got := ProfileRead(ProfileUnknown, false); got != ProfileNeedsSetup {
		t.Errorf("read absent = %v", got)
	}
	if got := ProfileRead(ProfileUnknown, true); got != ProfileReady {
		t.Errorf("read present = %v", got)
	}
	if got := ProfileRead(ProfileAnonymous, false); got != ProfileAnonymous {
		t.Errorf("read without session = %v", got)
	}
	if got := ProfileSaved(ProfileNeedsSetup); got != ProfileReady {
		t.Errorf("saved = %v", got)
	}
	if got := ProfileSaved(ProfileUnknown); got != ProfileUnknown {
		t.Errorf("saved before read = %v", got)
	}
	for _, s := range []ProfileState{ProfileUnknown, ProfileAnonymous, ProfileNeedsSetup, ProfileReady} {
		if got := Ended(s); got != ProfileAnonymous {
			t.Errorf("Ended(%v) = %v", s, got)
		}
	}
}

func TestProfileState_String(t *testing.T) {
	if ProfileNeedsSetup.String() != "needs-setup" {
		t.Errorf("unexpected %q", ProfileNeedsSetup.String())
	}
	if ProfileState(99).String() != "unknown" {
		t.Errorf("unexpected %q", ProfileState(99).String())
	}
}
