package query

import (
	"context"

	"github.com/goliatone/go-krishi-portal/remote"
	"go.uber.org/zap"
)

// write runs call and, on success only, invalidates the keys it returns.
// Writes do not check Ready or validate input; the backend reports a missing
// session or a refused value itself.
func (o *Orchestrator) write(ctx context.Context, op string, call func(context.Context) ([]string, error)) error {
	stale, err := call(ctx)
	if err != nil {
		o.logger.Debug("remote write failed", zap.String("op", op), zap.Error(err))
		return err
	}
	o.Invalidate(ctx, stale...)
	return nil
}

// SaveProfile creates or replaces the caller's profile.
func (o *Orchestrator) SaveProfile(ctx context.Context, profile remote.UserProfile) error {
	return o.write(ctx, "saveCallerUserProfile", func(ctx context.Context) ([]string, error) {
		return profileKeys(), o.backend.SaveCallerUserProfile(ctx, profile)
	})
}

// AssignRole sets user's role. The backend restricts this to admins.
func (o *Orchestrator) AssignRole(ctx context.Context, user remote.Principal, role remote.Role) error {
	return o.write(ctx, "assignCallerUserRole", func(ctx context.Context) ([]string, error) {
		return roleKeys(), o.backend.AssignCallerUserRole(ctx, user, role)
	})
}

func (o *Orchestrator) AddCropAdvisory(ctx context.Context, crop, guidance, season string) (remote.AdvisoryID, error) {
	var id remote.AdvisoryID
	err := o.write(ctx, "addCropAdvisory", func(ctx context.Context) (_ []string, err error) {
		id, err = o.backend.AddCropAdvisory(ctx, crop, guidance, season)
		return advisoryKeys(id), err
	})
	return id, err
}

func (o *Orchestrator) UpdateCropAdvisory(ctx context.Context, id remote.AdvisoryID, crop, guidance, season string) error {
	return o.write(ctx, "updateCropAdvisory", func(ctx context.Context) ([]string, error) {
		return advisoryKeys(id), o.backend.UpdateCropAdvisory(ctx, id, crop, guidance, season)
	})
}

func (o *Orchestrator) DeleteCropAdvisory(ctx context.Context, id remote.AdvisoryID) error {
	return o.write(ctx, "deleteCropAdvisory", func(ctx context.Context) ([]string, error) {
		return advisoryKeys(id), o.backend.DeleteCropAdvisory(ctx, id)
	})
}

func (o *Orchestrator) AddMandiPrice(ctx context.Context, crop string, price uint64, location string) (remote.PriceID, error) {
	var id remote.PriceID
	err := o.write(ctx, "addMandiPrice", func(ctx context.Context) (_ []string, err error) {
		id, err = o.backend.AddMandiPrice(ctx, crop, price, location)
		return priceKeys(id), err
	})
	return id, err
}

func (o *Orchestrator) UpdateMandiPrice(ctx context.Context, id remote.PriceID, crop string, price uint64, location string) error {
	return o.write(ctx, "updateMandiPrice", func(ctx context.Context) ([]string, error) {
		return priceKeys(id), o.backend.UpdateMandiPrice(ctx, id, crop, price, location)
	})
}

func (o *Orchestrator) DeleteMandiPrice(ctx context.Context, id remote.PriceID) error {
	return o.write(ctx, "deleteMandiPrice", func(ctx context.Context) ([]string, error) {
		return priceKeys(id), o.backend.DeleteMandiPrice(ctx, id)
	})
}

func (o *Orchestrator) AddGovernmentScheme(ctx context.Context, name, description, eligibility string) (remote.SchemeID, error) {
	var id remote.SchemeID
	err := o.write(ctx, "addGovernmentScheme", func(ctx context.Context) (_ []string, err error) {
		id, err = o.backend.AddGovernmentScheme(ctx, name, description, eligibility)
		return schemeKeys(id), err
	})
	return id, err
}

func (o *Orchestrator) UpdateGovernmentScheme(ctx context.Context, id remote.SchemeID, name, description, eligibility string) error {
	return o.write(ctx, "updateGovernmentScheme", func(ctx context.Context) ([]string, error) {
		return schemeKeys(id), o.backend.UpdateGovernmentScheme(ctx, id, name, description, eligibility)
	})
}

func (o *Orchestrator) DeleteGovernmentScheme(ctx context.Context, id remote.SchemeID) error {
	return o.write(ctx, "deleteGovernmentScheme", func(ctx context.Context) ([]string, error) {
		return schemeKeys(id), o.backend.DeleteGovernmentScheme(ctx, id)
	})
}

func (o *Orchestrator) AddSoilReport(ctx context.Context, ph float64, nutrients, recommendations string) (remote.SoilReportID, error) {
	var id remote.SoilReportID
	err := o.write(ctx, "addSoilReport", func(ctx context.Context) (_ []string, err error) {
		id, err = o.backend.AddSoilReport(ctx, ph, nutrients, recommendations)
		return soilReportKeys(id), err
	})
	return id, err
}

func (o *Orchestrator) SubmitExpertQuery(ctx context.Context, question string, attachment remote.Option[string]) (remote.QueryID, error) {
	var id remote.QueryID
	err := o.write(ctx, "submitExpertQuery", func(ctx context.Context) (_ []string, err error) {
		id, err = o.backend.SubmitExpertQuery(ctx, question, attachment)
		return queryKeys(id), err
	})
	return id, err
}

func (o *Orchestrator) RespondToExpertQuery(ctx context.Context, id remote.QueryID, response string) error {
	return o.write(ctx, "respondToExpertQuery", func(ctx context.Context) ([]string, error) {
		return queryKeys(id), o.backend.RespondToExpertQuery(ctx, id, response)
	})
}

// Invalidation sets. A write never touches keys outside its own resource.

func profileKeys() []string { return []string{ResourceProfile} }

func roleKeys() []string { return []string{ResourceRole, ResourceIsAdmin} }

func advisoryKeys(id remote.AdvisoryID) []string {
	return []string{ResourceAdvisories, ItemKey(ResourceAdvisory, id)}
}

func priceKeys(id remote.PriceID) []string {
	return []string{ResourcePrices, ItemKey(ResourcePrice, id)}
}

func schemeKeys(id remote.SchemeID) []string {
	return []string{ResourceSchemes, ItemKey(ResourceScheme, id)}
}

func soilReportKeys(id remote.SoilReportID) []string {
	return []string{ResourceSoilReports, ItemKey(ResourceSoilReport, id)}
}

func queryKeys(id remote.QueryID) []string {
	return []string{ResourceQueries, ItemKey(ResourceQuery, id)}
}
