package remote

import "context"

// Service is the RPC surface of the backend, bound to one caller.
// Single-item getters return None when the id does not exist.
type Service interface {
	GetCallerUserProfile(ctx context.Context) (Option[FarmerProfile], error)
	SaveCallerUserProfile(ctx context.Context, profile UserProfile) error
	GetUserProfile(ctx context.Context, user Principal) (Option[FarmerProfile], error)
	GetCallerUserRole(ctx context.Context) (Role, error)
	IsCallerAdmin(ctx context.Context) (bool, error)
	AssignCallerUserRole(ctx context.Context, user Principal, role Role) error

	GetCropAdvisories(ctx context.Context) ([]CropAdvisory, error)
	GetCropAdvisory(ctx context.Context, id AdvisoryID) (Option[CropAdvisory], error)
	AddCropAdvisory(ctx context.Context, crop, guidance, season string) (AdvisoryID, error)
	UpdateCropAdvisory(ctx context.Context, id AdvisoryID, crop, guidance, season string) error
	DeleteCropAdvisory(ctx context.Context, id AdvisoryID) error

	GetMandiPrices(ctx context.Context) ([]MandiPrice, error)
	GetMandiPrice(ctx context.Context, id PriceID) (Option[MandiPrice], error)
	AddMandiPrice(ctx context.Context, crop string, price uint64, location string) (PriceID, error)
	UpdateMandiPrice(ctx context.Context, id PriceID, crop string, price uint64, location string) error
	DeleteMandiPrice(ctx context.Context, id PriceID) error

	GetGovernmentSchemes(ctx context.Context) ([]GovernmentScheme, error)
	GetGovernmentScheme(ctx context.Context, id SchemeID) (Option[GovernmentScheme], error)
	AddGovernmentScheme(ctx context.Context, name, description, eligibility string) (SchemeID, error)
	UpdateGovernmentScheme(ctx context.Context, id SchemeID, name, description, eligibility string) error
	DeleteGovernmentScheme(ctx context.Context, id SchemeID) error

	GetSoilReports(ctx context.Context) ([]SoilReport, error)
	GetSoilReport(ctx context.Context, id SoilReportID) (Option[SoilReport], error)
	AddSoilReport(ctx context.Context, ph float64, nutrients, recommendations string) (SoilReportID, error)

	GetExpertQueries(ctx context.Context) ([]ExpertQuery, error)
	GetExpertQuery(ctx context.Context, id QueryID) (Option[ExpertQuery], error)
	SubmitExpertQuery(ctx context.Context, question string, attachment Option[string]) (QueryID, error)
	RespondToExpertQuery(ctx context.Context, id QueryID, response string) error
}

// Connector opens a Service bound to a principal. None means anonymous.
type Connector interface {
	Connect(ctx context.Context, principal Option[Principal]) (Service, error)
}

// ConnectorFunc adapts a function to Connector.
type ConnectorFunc func(ctx context.Context, principal Option[Principal]) (Service, error)

func (f ConnectorFunc) Connect(ctx context.Context, principal Option[Principal]) (Service, error) {
	return f(ctx, principal)
}
