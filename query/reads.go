package query

import (
	"context"

	"github.com/goliatone/go-krishi-portal/remote"
)

// CallerProfile reads the caller's own profile. None means no profile exists yet.
func (o *Orchestrator) CallerProfile(ctx context.Context) (remote.Option[remote.FarmerProfile], error) {
	return read(ctx, o, ResourceProfile, "", o.backend.GetCallerUserProfile)
}

// UserProfile reads another principal's profile.
func (o *Orchestrator) UserProfile(ctx context.Context, user remote.Principal) (remote.Option[remote.FarmerProfile], error) {
	return read(ctx, o, userProfileKey(user), "", func(ctx context.Context) (remote.Option[remote.FarmerProfile], error) {
		return o.backend.GetUserProfile(ctx, user)
	})
}

// CallerRole reads the caller's role.
func (o *Orchestrator) CallerRole(ctx context.Context) (remote.Role, error) {
	return read(ctx, o, ResourceRole, "", o.backend.GetCallerUserRole)
}

// IsAdmin reads whether the caller holds the admin role.
func (o *Orchestrator) IsAdmin(ctx context.Context) (bool, error) {
	return read(ctx, o, ResourceIsAdmin, "", o.backend.IsCallerAdmin)
}

func (o *Orchestrator) CropAdvisories(ctx context.Context) ([]remote.CropAdvisory, error) {
	return read(ctx, o, ResourceAdvisories, ResourceAdvisories, o.backend.GetCropAdvisories)
}

func (o *Orchestrator) CropAdvisory(ctx context.Context, id remote.AdvisoryID) (remote.Option[remote.CropAdvisory], error) {
	return read(ctx, o, ItemKey(ResourceAdvisory, id), "", func(ctx context.Context) (remote.Option[remote.CropAdvisory], error) {
		return o.backend.GetCropAdvisory(ctx, id)
	})
}

func (o *Orchestrator) MandiPrices(ctx context.Context) ([]remote.MandiPrice, error) {
	return read(ctx, o, ResourcePrices, ResourcePrices, o.backend.GetMandiPrices)
}

func (o *Orchestrator) MandiPrice(ctx context.Context, id remote.PriceID) (remote.Option[remote.MandiPrice], error) {
	return read(ctx, o, ItemKey(ResourcePrice, id), "", func(ctx context.Context) (remote.Option[remote.MandiPrice], error) {
		return o.backend.GetMandiPrice(ctx, id)
	})
}

func (o *Orchestrator) GovernmentSchemes(ctx context.Context) ([]remote.GovernmentScheme, error) {
	return read(ctx, o, ResourceSchemes, ResourceSchemes, o.backend.GetGovernmentSchemes)
}

func (o *Orchestrator) GovernmentScheme(ctx context.Context, id remote.SchemeID) (remote.Option[remote.GovernmentScheme], error) {
	return read(ctx, o, ItemKey(ResourceScheme, id), "", func(ctx context.Context) (remote.Option[remote.GovernmentScheme], error) {
		return o.backend.GetGovernmentScheme(ctx, id)
	})
}

func (o *Orchestrator) SoilReports(ctx context.Context) ([]remote.SoilReport, error) {
	return read(ctx, o, ResourceSoilReports, ResourceSoilReports, o.backend.GetSoilReports)
}

func (o *Orchestrator) SoilReport(ctx context.Context, id remote.SoilReportID) (remote.Option[remote.SoilReport], error) {
	return read(ctx, o, ItemKey(ResourceSoilReport, id), "", func(ctx context.Context) (remote.Option[remote.SoilReport], error) {
		return o.backend.GetSoilReport(ctx, id)
	})
}

func (o *Orchestrator) ExpertQueries(ctx context.Context) ([]remote.ExpertQuery, error) {
	return read(ctx, o, ResourceQueries, ResourceQueries, o.backend.GetExpertQueries)
}

func (o *Orchestrator) ExpertQuery(ctx context.Context, id remote.QueryID) (remote.Option[remote.ExpertQuery], error) {
	return read(ctx, o, ItemKey(ResourceQuery, id), "", func(ctx context.Context) (remote.Option[remote.ExpertQuery], error) {
		return o.backend.GetExpertQuery(ctx, id)
	})
}
