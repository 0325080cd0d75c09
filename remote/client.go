package remote

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Interface assertion to ensure Client implements Service
var _ Service = (*Client)(nil)

// Session describes the live session a Client is bound to.
type Session struct {
	ID        string
	Principal Principal
}

// Authenticated reports whether the session carries a real identity.
func (s Session) Authenticated() bool {
	return !s.Principal.IsAnonymous()
}

// Client is the session-gated facade over the backend. Every call made
// while no session is established fails with ErrSessionUnavailable.
// Calls are never retried.
type Client struct {
	connector Connector
	logger    *zap.Logger

	mu      sync.RWMutex
	svc     Service
	session Session
}

// NewClient creates a Client without a session.
func NewClient(connector Connector, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{connector: connector, logger: logger}
}

// Connect establishes a session for principal, replacing any previous one.
func (c *Client) Connect(ctx context.Context, principal Option[Principal]) (Session, error) {
	svc, err := c.connector.Connect(ctx, principal)
	if err != nil {
		return Session{}, err
	}

	s := Session{ID: uuid.NewString(), Principal: principal.OrElse(Anonymous)}

	c.mu.Lock()
	c.svc = svc
	c.session = s
	c.mu.Unlock()

	c.logger.Debug("session established",
		zap.String("session", s.ID),
		zap.Bool("authenticated", s.Authenticated()))
	return s, nil
}

// Disconnect drops the current session.
func (c *Client) Disconnect() {
	c.mu.Lock()
	prev := c.session
	c.svc = nil
	c.session = Session{}
	c.mu.Unlock()

	if prev.ID != "" {
		c.logger.Debug("session closed", zap.String("session", prev.ID))
	}
}

// Ready reports whether a session is established.
func (c *Client) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.svc != nil
}

// Session returns the current session, if any.
func (c *Client) Session() Option[Session] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.svc == nil {
		return None[Session]()
	}
	return Some(c.session)
}

func (c *Client) service(op string) (Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.svc == nil {
		return nil, NewError(KindSessionUnavailable, op, nil)
	}
	return c.svc, nil
}

func (c *Client) GetCallerUserProfile(ctx context.Context) (Option[FarmerProfile], error) {
	svc, err := c.service("getCallerUserProfile")
	if err != nil {
		return None[FarmerProfile](), err
	}
	return svc.GetCallerUserProfile(ctx)
}

func (c *Client) SaveCallerUserProfile(ctx context.Context, profile UserProfile) error {
	svc, err := c.service("saveCallerUserProfile")
	if err != nil {
		return err
	}
	return svc.SaveCallerUserProfile(ctx, profile)
}

func (c *Client) GetUserProfile(ctx context.Context, user Principal) (Option[FarmerProfile], error) {
	svc, err := c.service("getUserProfile")
	if err != nil {
		return None[FarmerProfile](), err
	}
	return svc.GetUserProfile(ctx, user)
}

func (c *Client) GetCallerUserRole(ctx context.Context) (Role, error) {
	svc, err := c.service("getCallerUserRole")
	if err != nil {
		return "", err
	}
	return svc.GetCallerUserRole(ctx)
}

func (c *Client) IsCallerAdmin(ctx context.Context) (bool, error) {
	svc, err := c.service("isCallerAdmin")
	if err != nil {
		return false, err
	}
	return svc.IsCallerAdmin(ctx)
}

func (c *Client) AssignCallerUserRole(ctx context.Context, user Principal, role Role) error {
	svc, err := c.service("assignCallerUserRole")
	if err != nil {
		return err
	}
	return svc.AssignCallerUserRole(ctx, user, role)
}

func (c *Client) GetCropAdvisories(ctx context.Context) ([]CropAdvisory, error) {
	svc, err := c.service("getCropAdvisories")
	if err != nil {
		return nil, err
	}
	return svc.GetCropAdvisories(ctx)
}

func (c *Client) GetCropAdvisory(ctx context.Context, id AdvisoryID) (Option[CropAdvisory], error) {
	svc, err := c.service("getCropAdvisory")
	if err != nil {
		return None[CropAdvisory](), err
	}
	return svc.GetCropAdvisory(ctx, id)
}

func (c *Client) AddCropAdvisory(ctx context.Context, crop, guidance, season string) (AdvisoryID, error) {
	svc, err := c.service("addCropAdvisory")
	if err != nil {
		return 0, err
	}
	return svc.AddCropAdvisory(ctx, crop, guidance, season)
}

func (c *Client) UpdateCropAdvisory(ctx context.Context, id AdvisoryID, crop, guidance, season string) error {
	svc, err := c.service("updateCropAdvisory")
	if err != nil {
		return err
	}
	return svc.UpdateCropAdvisory(ctx, id, crop, guidance, season)
}

func (c *Client) DeleteCropAdvisory(ctx context.Context, id AdvisoryID) error {
	svc, err := c.service("deleteCropAdvisory")
	if err != nil {
		return err
	}
	return svc.DeleteCropAdvisory(ctx, id)
}

func (c *Client) GetMandiPrices(ctx context.Context) ([]MandiPrice, error) {
	svc, err := c.service("getMandiPrices")
	if err != nil {
		return nil, err
	}
	return svc.GetMandiPrices(ctx)
}

func (c *Client) GetMandiPrice(ctx context.Context, id PriceID) (Option[MandiPrice], error) {
	svc, err := c.service("getMandiPrice")
	if err != nil {
		return None[MandiPrice](), err
	}
	return svc.GetMandiPrice(ctx, id)
}

func (c *Client) AddMandiPrice(ctx context.Context, crop string, price uint64, location string) (PriceID, error) {
	svc, err := c.service("addMandiPrice")
	if err != nil {
		return 0, err
	}
	return svc.AddMandiPrice(ctx, crop, price, location)
}

func (c *Client) UpdateMandiPrice(ctx context.Context, id PriceID, crop string, price uint64, location string) error {
	svc, err := c.service("updateMandiPrice")
	if err != nil {
		return err
	}
	return svc.UpdateMandiPrice(ctx, id, crop, price, location)
}

func (c *Client) DeleteMandiPrice(ctx context.Context, id PriceID) error {
	svc, err := c.service("deleteMandiPrice")
	if err != nil {
		return err
	}
	return svc.DeleteMandiPrice(ctx, id)
}

func (c *Client) GetGovernmentSchemes(ctx context.Context) ([]GovernmentScheme, error) {
	svc, err := c.service("getGovernmentSchemes")
	if err != nil {
		return nil, err
	}
	return svc.GetGovernmentSchemes(ctx)
}

func (c *Client) GetGovernmentScheme(ctx context.Context, id SchemeID) (Option[GovernmentScheme], error) {
	svc, err := c.service("getGovernmentScheme")
	if err != nil {
		return None[GovernmentScheme](), err
	}
	return svc.GetGovernmentScheme(ctx, id)
}

func (c *Client) AddGovernmentScheme(ctx context.Context, name, description, eligibility string) (SchemeID, error) {
	svc, err := c.service("addGovernmentScheme")
	if err != nil {
		return 0, err
	}
	return svc.AddGovernmentScheme(ctx, name, description, eligibility)
}

func (c *Client) UpdateGovernmentScheme(ctx context.Context, id SchemeID, name, description, eligibility string) error {
	svc, err := c.service("updateGovernmentScheme")
	if err != nil {
		return err
	}
	return svc.UpdateGovernmentScheme(ctx, id, name, description, eligibility)
}

func (c *Client) DeleteGovernmentScheme(ctx context.Context, id SchemeID) error {
	svc, err := c.service("deleteGovernmentScheme")
	if err != nil {
		return err
	}
	return svc.DeleteGovernmentScheme(ctx, id)
}

func (c *Client) GetSoilReports(ctx context.Context) ([]SoilReport, error) {
	svc, err := c.service("getSoilReports")
	if err != nil {
		return nil, err
	}
	return svc.GetSoilReports(ctx)
}

func (c *Client) GetSoilReport(ctx context.Context, id SoilReportID) (Option[SoilReport], error) {
	svc, err := c.service("getSoilReport")
	if err != nil {
		return None[SoilReport](), err
	}
	return svc.GetSoilReport(ctx, id)
}

func (c *Client) AddSoilReport(ctx context.Context, ph float64, nutrients, recommendations string) (SoilReportID, error) {
	svc, err := c.service("addSoilReport")
	if err != nil {
		return 0, err
	}
	return svc.AddSoilReport(ctx, ph, nutrients, recommendations)
}

func (c *Client) GetExpertQueries(ctx context.Context) ([]ExpertQuery, error) {
	svc, err := c.service("getExpertQueries")
	if err != nil {
		return nil, err
	}
	return svc.GetExpertQueries(ctx)
}

func (c *Client) GetExpertQuery(ctx context.Context, id QueryID) (Option[ExpertQuery], error) {
	svc, err := c.service("getExpertQuery")
	if err != nil {
		return None[ExpertQuery](), err
	}
	return svc.GetExpertQuery(ctx, id)
}

func (c *Client) SubmitExpertQuery(ctx context.Context, question string, attachment Option[string]) (QueryID, error) {
	svc, err := c.service("submitExpertQuery")
	if err != nil {
		return 0, err
	}
	return svc.SubmitExpertQuery(ctx, question, attachment)
}

func (c *Client) RespondToExpertQuery(ctx context.Context, id QueryID, response string) error {
	svc, err := c.service("respondToExpertQuery")
	if err != nil {
		return err
	}
	return svc.RespondToExpertQuery(ctx, id, response)
}
