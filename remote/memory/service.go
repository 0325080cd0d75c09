package memory

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/puzpuzpuz/xsync/v3"
)

var (
	errUnreachable     = errors.New("failed to fetch: backend unreachable")
	errAlreadyResolved = errors.New("query already has a response")
	errEmpty           = errors.New("required field is empty")
)

// service is a Backend view bound to one caller.
type service struct {
	backend *Backend
	caller  remote.Principal
}

func (s *service) requireUser(op string) error {
	if err := s.backend.enter(op); err != nil {
		return err
	}
	if s.caller.IsAnonymous() {
		return remote.Rejected(op, remote.ErrUnauthorized)
	}
	return nil
}

func (s *service) requireAdmin(op string) error {
	if err := s.backend.enter(op); err != nil {
		return err
	}
	if s.backend.roleOf(s.caller) != remote.RoleAdmin {
		return remote.Rejected(op, remote.ErrUnauthorized)
	}
	return nil
}

func (s *service) isAdmin() bool {
	return s.backend.roleOf(s.caller) == remote.RoleAdmin
}

func (s *service) GetCallerUserProfile(ctx context.Context) (remote.Option[remote.FarmerProfile], error) {
	if err := s.backend.enter("getCallerUserProfile"); err != nil {
		return remote.None[remote.FarmerProfile](), err
	}
	p, ok := s.backend.profiles.Load(s.caller)
	if !ok {
		return remote.None[remote.FarmerProfile](), nil
	}
	return remote.Some(p), nil
}

func (s *service) SaveCallerUserProfile(ctx context.Context, profile remote.UserProfile) error {
	const op = "saveCallerUserProfile"
	if err := s.requireUser(op); err != nil {
		return err
	}
	if strings.TrimSpace(profile.Name) == "" || profile.LandSize <= 0 {
		return remote.Rejected(op, errEmpty)
	}
	s.backend.profiles.Compute(s.caller, func(old remote.FarmerProfile, loaded bool) (remote.FarmerProfile, bool) {
		id := old.ID
		if !loaded {
			id = s.backend.farmerSeq.Add(1)
		}
		return remote.FarmerProfile{
			ID:                id,
			Name:              profile.Name,
			Location:          profile.Location,
			LandSize:          profile.LandSize,
			PreferredLanguage: profile.PreferredLanguage,
		}, false
	})
	return nil
}

func (s *service) GetUserProfile(ctx context.Context, user remote.Principal) (remote.Option[remote.FarmerProfile], error) {
	const op = "getUserProfile"
	if err := s.backend.enter(op); err != nil {
		return remote.None[remote.FarmerProfile](), err
	}
	if user != s.caller && !s.isAdmin() {
		return remote.None[remote.FarmerProfile](), remote.Rejected(op, remote.ErrUnauthorized)
	}
	p, ok := s.backend.profiles.Load(user)
	if !ok {
		return remote.None[remote.FarmerProfile](), nil
	}
	return remote.Some(p), nil
}

func (s *service) GetCallerUserRole(ctx context.Context) (remote.Role, error) {
	if err := s.backend.enter("getCallerUserRole"); err != nil {
		return "", err
	}
	return s.backend.roleOf(s.caller), nil
}

func (s *service) IsCallerAdmin(ctx context.Context) (bool, error) {
	if err := s.backend.enter("isCallerAdmin"); err != nil {
		return false, err
	}
	return s.isAdmin(), nil
}

func (s *service) AssignCallerUserRole(ctx context.Context, user remote.Principal, role remote.Role) error {
	const op = "assignCallerUserRole"
	if err := s.requireAdmin(op); err != nil {
		return err
	}
	if !role.Valid() || user.IsAnonymous() {
		return remote.Rejected(op, errEmpty)
	}
	s.backend.roles.Store(user, role)
	return nil
}

func (s *service) GetCropAdvisories(ctx context.Context) ([]remote.CropAdvisory, error) {
	if err := s.backend.enter("getCropAdvisories"); err != nil {
		return nil, err
	}
	return sorted(s.backend.advisories, nil), nil
}

func (s *service) GetCropAdvisory(ctx context.Context, id remote.AdvisoryID) (remote.Option[remote.CropAdvisory], error) {
	if err := s.backend.enter("getCropAdvisory"); err != nil {
		return remote.None[remote.CropAdvisory](), err
	}
	a, ok := s.backend.advisories.Load(id)
	if !ok {
		return remote.None[remote.CropAdvisory](), nil
	}
	return remote.Some(a), nil
}

func (s *service) AddCropAdvisory(ctx context.Context, crop, guidance, season string) (remote.AdvisoryID, error) {
	if err := s.requireAdmin("addCropAdvisory"); err != nil {
		return 0, err
	}
	id := s.backend.advisorySeq.Add(1)
	s.backend.advisories.Store(id, remote.CropAdvisory{ID: id, Crop: crop, Season: season, Guidance: guidance})
	return id, nil
}

func (s *service) UpdateCropAdvisory(ctx context.Context, id remote.AdvisoryID, crop, guidance, season string) error {
	const op = "updateCropAdvisory"
	if err := s.requireAdmin(op); err != nil {
		return err
	}
	return replace(s.backend.advisories, op, id, remote.CropAdvisory{ID: id, Crop: crop, Season: season, Guidance: guidance})
}

func (s *service) DeleteCropAdvisory(ctx context.Context, id remote.AdvisoryID) error {
	const op = "deleteCropAdvisory"
	if err := s.requireAdmin(op); err != nil {
		return err
	}
	return remove(s.backend.advisories, op, id)
}

func (s *service) GetMandiPrices(ctx context.Context) ([]remote.MandiPrice, error) {
	if err := s.backend.enter("getMandiPrices"); err != nil {
		return nil, err
	}
	return sorted(s.backend.prices, nil), nil
}

func (s *service) GetMandiPrice(ctx context.Context, id remote.PriceID) (remote.Option[remote.MandiPrice], error) {
	if err := s.backend.enter("getMandiPrice"); err != nil {
		return remote.None[remote.MandiPrice](), err
	}
	p, ok := s.backend.prices.Load(id)
	if !ok {
		return remote.None[remote.MandiPrice](), nil
	}
	return remote.Some(p), nil
}

func (s *service) AddMandiPrice(ctx context.Context, crop string, price uint64, location string) (remote.PriceID, error) {
	if err := s.requireAdmin("addMandiPrice"); err != nil {
		return 0, err
	}
	id := s.backend.priceSeq.Add(1)
	s.backend.prices.Store(id, remote.MandiPrice{ID: id, Crop: crop, Price: price, Location: location})
	return id, nil
}

func (s *service) UpdateMandiPrice(ctx context.Context, id remote.PriceID, crop string, price uint64, location string) error {
	const op = "updateMandiPrice"
	if err := s.requireAdmin(op); err != nil {
		return err
	}
	return replace(s.backend.prices, op, id, remote.MandiPrice{ID: id, Crop: crop, Price: price, Location: location})
}

func (s *service) DeleteMandiPrice(ctx context.Context, id remote.PriceID) error {
	const op = "deleteMandiPrice"
	if err := s.requireAdmin(op); err != nil {
		return err
	}
	return remove(s.backend.prices, op, id)
}

func (s *service) GetGovernmentSchemes(ctx context.Context) ([]remote.GovernmentScheme, error) {
	if err := s.backend.enter("getGovernmentSchemes"); err != nil {
		return nil, err
	}
	return sorted(s.backend.schemes, nil), nil
}

func (s *service) GetGovernmentScheme(ctx context.Context, id remote.SchemeID) (remote.Option[remote.GovernmentScheme], error) {
	if err := s.backend.enter("getGovernmentScheme"); err != nil {
		return remote.None[remote.GovernmentScheme](), err
	}
	g, ok := s.backend.schemes.Load(id)
	if !ok {
		return remote.None[remote.GovernmentScheme](), nil
	}
	return remote.Some(g), nil
}

func (s *service) AddGovernmentScheme(ctx context.Context, name, description, eligibility string) (remote.SchemeID, error) {
	if err := s.requireAdmin("addGovernmentScheme"); err != nil {
		return 0, err
	}
	id := s.backend.schemeSeq.Add(1)
	s.backend.schemes.Store(id, remote.GovernmentScheme{ID: id, Name: name, Description: description, Eligibility: eligibility})
	return id, nil
}

func (s *service) UpdateGovernmentScheme(ctx context.Context, id remote.SchemeID, name, description, eligibility string) error {
	const op = "updateGovernmentScheme"
	if err := s.requireAdmin(op); err != nil {
		return err
	}
	return replace(s.backend.schemes, op, id, remote.GovernmentScheme{ID: id, Name: name, Description: description, Eligibility: eligibility})
}

func (s *service) DeleteGovernmentScheme(ctx context.Context, id remote.SchemeID) error {
	const op = "deleteGovernmentScheme"
	if err := s.requireAdmin(op); err != nil {
		return err
	}
	return remove(s.backend.schemes, op, id)
}

func (s *service) GetSoilReports(ctx context.Context) ([]remote.SoilReport, error) {
	if err := s.backend.enter("getSoilReports"); err != nil {
		return nil, err
	}
	if s.isAdmin() {
		return sorted(s.backend.soil, nil), nil
	}
	return sorted(s.backend.soil, func(r remote.SoilReport) bool { return r.Owner == s.caller }), nil
}

func (s *service) GetSoilReport(ctx context.Context, id remote.SoilReportID) (remote.Option[remote.SoilReport], error) {
	const op = "getSoilReport"
	if err := s.backend.enter(op); err != nil {
		return remote.None[remote.SoilReport](), err
	}
	r, ok := s.backend.soil.Load(id)
	if !ok {
		return remote.None[remote.SoilReport](), nil
	}
	if r.Owner != s.caller && !s.isAdmin() {
		return remote.None[remote.SoilReport](), remote.Rejected(op, remote.ErrUnauthorized)
	}
	return remote.Some(r), nil
}

func (s *service) AddSoilReport(ctx context.Context, ph float64, nutrients, recommendations string) (remote.SoilReportID, error) {
	const op = "addSoilReport"
	if err := s.requireUser(op); err != nil {
		return 0, err
	}
	if ph < 0 || ph > 14 {
		return 0, remote.Rejected(op, errors.New("pH out of range"))
	}
	profile, _ := s.backend.profiles.Load(s.caller)
	id := s.backend.soilSeq.Add(1)
	s.backend.soil.Store(id, remote.SoilReport{
		ID:              id,
		PH:              ph,
		Nutrients:       nutrients,
		Recommendations: recommendations,
		FarmerID:        profile.ID,
		Owner:           s.caller,
	})
	return id, nil
}

func (s *service) GetExpertQueries(ctx context.Context) ([]remote.ExpertQuery, error) {
	if err := s.backend.enter("getExpertQueries"); err != nil {
		return nil, err
	}
	if s.isAdmin() {
		return sorted(s.backend.queries, nil), nil
	}
	return sorted(s.backend.queries, func(q remote.ExpertQuery) bool { return q.Owner == s.caller }), nil
}

func (s *service) GetExpertQuery(ctx context.Context, id remote.QueryID) (remote.Option[remote.ExpertQuery], error) {
	const op = "getExpertQuery"
	if err := s.backend.enter(op); err != nil {
		return remote.None[remote.ExpertQuery](), err
	}
	q, ok := s.backend.queries.Load(id)
	if !ok {
		return remote.None[remote.ExpertQuery](), nil
	}
	if q.Owner != s.caller && !s.isAdmin() {
		return remote.None[remote.ExpertQuery](), remote.Rejected(op, remote.ErrUnauthorized)
	}
	return remote.Some(q), nil
}

func (s *service) SubmitExpertQuery(ctx context.Context, question string, attachment remote.Option[string]) (remote.QueryID, error) {
	const op = "submitExpertQuery"
	if err := s.requireUser(op); err != nil {
		return 0, err
	}
	if strings.TrimSpace(question) == "" {
		return 0, remote.Rejected(op, errEmpty)
	}
	profile, _ := s.backend.profiles.Load(s.caller)
	id := s.backend.querySeq.Add(1)
	s.backend.queries.Store(id, remote.ExpertQuery{
		ID:         id,
		FarmerID:   profile.ID,
		Question:   question,
		Owner:      s.caller,
		Attachment: attachment,
	})
	return id, nil
}

func (s *service) RespondToExpertQuery(ctx context.Context, id remote.QueryID, response string) error {
	const op = "respondToExpertQuery"
	if err := s.requireAdmin(op); err != nil {
		return err
	}
	if strings.TrimSpace(response) == "" {
		return remote.Rejected(op, errEmpty)
	}

	s.backend.respond.Lock()
	defer s.backend.respond.Unlock()

	q, ok := s.backend.queries.Load(id)
	if !ok {
		return remote.Rejected(op, remote.ErrNotFound)
	}
	if !q.Pending() {
		return remote.Rejected(op, errAlreadyResolved)
	}
	q.Response = remote.Some(response)
	s.backend.queries.Store(id, q)
	return nil
}

func replace[T any](m *xsync.MapOf[uint64, T], op string, id uint64, next T) error {
	found := false
	m.Compute(id, func(old T, loaded bool) (T, bool) {
		if !loaded {
			return old, true
		}
		found = true
		return next, false
	})
	if !found {
		return remote.Rejected(op, remote.ErrNotFound)
	}
	return nil
}

func remove[T any](m *xsync.MapOf[uint64, T], op string, id uint64) error {
	if _, ok := m.LoadAndDelete(id); !ok {
		return remote.Rejected(op, remote.ErrNotFound)
	}
	return nil
}
