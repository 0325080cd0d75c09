// Package portal is the application facade: it drives login and logout
// through the identity provider, keeps the backend session and the resolver
// in step, and routes to a view.
package portal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-krishi-portal/forms"
	"github.com/goliatone/go-krishi-portal/identity"
	"github.com/goliatone/go-krishi-portal/prefs"
	"github.com/goliatone/go-krishi-portal/query"
	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/goliatone/go-krishi-portal/router"
	"github.com/goliatone/go-krishi-portal/session"
	"go.uber.org/zap"
)

// Session is the backend session the App opens and closes.
// *remote.Client satisfies it.
type Session interface {
	Connect(ctx context.Context, principal remote.Option[remote.Principal]) (remote.Session, error)
	Disconnect()
}

// App is one portal client.
type App struct {
	provider identity.Provider
	session  Session
	orch     *query.Orchestrator
	resolver *session.Resolver
	prefs    *prefs.Store
	logger   *zap.Logger

	mu        sync.Mutex
	adminView bool
}

// New wires an App. The orchestrator must be built over the same client
// that sess controls.
func New(provider identity.Provider, sess Session, orch *query.Orchestrator, store *prefs.Store, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		provider: provider,
		session:  sess,
		orch:     orch,
		resolver: session.NewResolver(orch, logger),
		prefs:    store,
		logger:   logger,
	}
}

// Start opens a session for whatever identity the provider already holds.
// A connect failure leaves the App usable from the offline cache.
func (a *App) Start(ctx context.Context) error {
	return a.open(ctx, identity.PrincipalOf(a.provider.Identity()))
}

// Login authenticates and opens an authenticated session. If the provider
// reports an existing session it is cleared and the login retried once.
// The admin-view request never survives a login.
func (a *App) Login(ctx context.Context) error {
	err := a.provider.Login(ctx)
	if errors.Is(err, identity.ErrAlreadyAuthenticated) {
		a.logger.Debug("clearing stale identity before login")
		if err := a.provider.Clear(ctx); err != nil {
			return fmt.Errorf("portal: clear identity: %w", err)
		}
		err = a.provider.Login(ctx)
	}
	if err != nil {
		return fmt.Errorf("portal: login: %w", err)
	}

	a.mu.Lock()
	a.adminView = false
	a.mu.Unlock()

	a.resolver.End(ctx)
	return a.open(ctx, identity.PrincipalOf(a.provider.Identity()))
}

// Logout ends the authenticated session and reconnects anonymously.
func (a *App) Logout(ctx context.Context) error {
	if err := a.provider.Clear(ctx); err != nil {
		return fmt.Errorf("portal: logout: %w", err)
	}

	a.mu.Lock()
	a.adminView = false
	a.mu.Unlock()

	a.resolver.End(ctx)
	return a.open(ctx, remote.None[remote.Principal]())
}

// open connects for principal. On failure the App runs unauthenticated even
// if the provider still holds an identity; the next Login or Start retries.
func (a *App) open(ctx context.Context, principal remote.Option[remote.Principal]) error {
	if _, err := a.session.Connect(ctx, principal); err != nil {
		a.session.Disconnect()
		a.resolver.Start(false)
		if p, ok := principal.Get(); ok {
			a.logger.Warn("identity held but backend session unavailable, continuing unauthenticated",
				zap.String("principal", string(p)), zap.Error(err))
		} else {
			a.logger.Warn("backend session unavailable", zap.Error(err))
		}
		return fmt.Errorf("portal: connect: %w", err)
	}
	a.resolver.Start(principal.IsSome())
	return a.Refresh(ctx)
}

// Refresh re-reads the caller's profile and role and adopts the profile's
// language. Read failures are logged; the resolver already holds the
// terminal state they produce.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.resolver.Refresh(ctx); err != nil {
		a.logger.Info("session refresh incomplete", zap.Error(err))
	}
	a.adoptProfileLanguage(ctx)
	return nil
}

func (a *App) adoptProfileLanguage(ctx context.Context) {
	p, ok := a.resolver.Profile().Get()
	if !ok || p.PreferredLanguage == "" {
		return
	}
	if lang := prefs.ParseLanguage(p.PreferredLanguage); lang != a.prefs.Language(ctx) {
		a.prefs.SetLanguage(ctx, lang)
	}
}

// RequestAdminView sets the local admin-view preference.
func (a *App) RequestAdminView(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.adminView = on
}

// CompleteProfile saves the caller's profile and closes the setup prompt.
// An invalid form never reaches the backend.
func (a *App) CompleteProfile(ctx context.Context, profile remote.UserProfile) error {
	if err := forms.ValidateProfile(profile); err != nil {
		return err
	}
	if err := a.orch.SaveProfile(ctx, profile); err != nil {
		return err
	}

	saved := remote.FarmerProfile{
		Name:              profile.Name,
		Location:          profile.Location,
		LandSize:          profile.LandSize,
		PreferredLanguage: profile.PreferredLanguage,
	}
	if p, err := a.orch.CallerProfile(ctx); err == nil {
		saved = p.OrElse(saved)
	} else {
		a.logger.Debug("profile re-read failed after save", zap.Error(err))
	}
	a.resolver.ProfileSaved(saved)
	a.adoptProfileLanguage(ctx)
	return nil
}

// PublishAdvisory adds an advisory, or replaces id when it is set.
func (a *App) PublishAdvisory(ctx context.Context, id remote.Option[remote.AdvisoryID], crop, guidance, season string) (remote.AdvisoryID, error) {
	if err := forms.ValidateAdvisory(crop, guidance, season); err != nil {
		return 0, err
	}
	if existing, ok := id.Get(); ok {
		return existing, a.orch.UpdateCropAdvisory(ctx, existing, crop, guidance, season)
	}
	return a.orch.AddCropAdvisory(ctx, crop, guidance, season)
}

// PublishPrice adds a mandi price, or replaces id when it is set.
func (a *App) PublishPrice(ctx context.Context, id remote.Option[remote.PriceID], crop string, price uint64, location string) (remote.PriceID, error) {
	if err := forms.ValidatePrice(crop, price, location); err != nil {
		return 0, err
	}
	if existing, ok := id.Get(); ok {
		return existing, a.orch.UpdateMandiPrice(ctx, existing, crop, price, location)
	}
	return a.orch.AddMandiPrice(ctx, crop, price, location)
}

// PublishScheme adds a government scheme, or replaces id when it is set.
func (a *App) PublishScheme(ctx context.Context, id remote.Option[remote.SchemeID], name, description, eligibility string) (remote.SchemeID, error) {
	if err := forms.ValidateScheme(name, description, eligibility); err != nil {
		return 0, err
	}
	if existing, ok := id.Get(); ok {
		return existing, a.orch.UpdateGovernmentScheme(ctx, existing, name, description, eligibility)
	}
	return a.orch.AddGovernmentScheme(ctx, name, description, eligibility)
}

func (a *App) AddSoilReport(ctx context.Context, ph float64, nutrients, recommendations string) (remote.SoilReportID, error) {
	if err := forms.ValidateSoilReport(ph, nutrients, recommendations); err != nil {
		return 0, err
	}
	return a.orch.AddSoilReport(ctx, ph, nutrients, recommendations)
}

// AskExpert submits a question with an optional image data URL.
func (a *App) AskExpert(ctx context.Context, question string, attachment remote.Option[string]) (remote.QueryID, error) {
	if err := forms.ValidateQuestion(question, attachment); err != nil {
		return 0, err
	}
	return a.orch.SubmitExpertQuery(ctx, question, attachment)
}

func (a *App) RespondToQuery(ctx context.Context, id remote.QueryID, response string) error {
	if err := forms.ValidateResponse(response); err != nil {
		return err
	}
	return a.orch.RespondToExpertQuery(ctx, id, response)
}

// AssignRole sets user's role. A successful change to the caller's own
// role is picked up by the next Refresh.
func (a *App) AssignRole(ctx context.Context, user remote.Principal, role remote.Role) error {
	if err := forms.ValidateRole(role); err != nil {
		return err
	}
	return a.orch.AssignRole(ctx, user, role)
}

// Language returns the current UI language.
func (a *App) Language(ctx context.Context) prefs.Language {
	return a.prefs.Language(ctx)
}

// SetLanguage changes the UI language. When the caller has a profile it is
// saved again with the new language.
func (a *App) SetLanguage(ctx context.Context, lang prefs.Language) error {
	a.prefs.SetLanguage(ctx, lang)
	lang = a.prefs.Language(ctx)

	p, ok := a.resolver.Profile().Get()
	if !ok || !a.resolver.Snapshot().Authenticated || prefs.ParseLanguage(p.PreferredLanguage) == lang {
		return nil
	}

	update := p.ToUserProfile()
	update.PreferredLanguage = string(lang)
	if err := a.orch.SaveProfile(ctx, update); err != nil {
		return fmt.Errorf("portal: save language: %w", err)
	}
	p.PreferredLanguage = string(lang)
	a.resolver.ProfileSaved(p)
	return nil
}

// View routes the current state.
func (a *App) View() router.Decision {
	d := a.resolver.Derived()

	a.mu.Lock()
	requested := a.adminView
	a.mu.Unlock()

	return router.Route(router.Input{
		Authenticated:      d.Authenticated,
		IsAdmin:            d.IsAdmin,
		AdminLoading:       d.AdminLoading,
		AdminViewRequested: requested,
		ProfileSetupNeeded: d.ProfileSetupNeeded,
	})
}

// Snapshot exposes the resolver state.
func (a *App) Snapshot() session.Snapshot {
	return a.resolver.Snapshot()
}

// Profile returns the caller's profile once it has been read or saved.
func (a *App) Profile() remote.Option[remote.FarmerProfile] {
	return a.resolver.Profile()
}

// Queries returns the orchestrator for reads and writes.
func (a *App) Queries() *query.Orchestrator {
	return a.orch
}
