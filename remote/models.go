package remote

// Principal identifies a caller. The empty principal is anonymous.
type Principal string

// Anonymous is the principal used by sessions without an identity.
const Anonymous Principal = "2vxsx-fae"

// IsAnonymous reports whether p is the anonymous principal.
func (p Principal) IsAnonymous() bool {
	return p == "" || p == Anonymous
}

// Record ids are auto-incremented by the backend.
type (
	FarmerID     = uint64
	AdvisoryID   = uint64
	PriceID      = uint64
	SchemeID     = uint64
	SoilReportID = uint64
	QueryID      = uint64
)

// Role is the access level the backend assigns to a principal.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// FarmerProfile is the profile owned by exactly one principal.
type FarmerProfile struct {
	ID                FarmerID `json:"id" msgpack:"id"`
	Name              string   `json:"name" msgpack:"name"`
	Location          string   `json:"location" msgpack:"location"`
	LandSize          float64  `json:"landSize" msgpack:"landSize"`
	PreferredLanguage string   `json:"preferredLanguage" msgpack:"preferredLanguage"`
}

// UserProfile is the save payload for a caller profile. The backend assigns the id.
type UserProfile struct {
	Name              string  `json:"name"`
	Location          string  `json:"location"`
	LandSize          float64 `json:"landSize"`
	PreferredLanguage string  `json:"preferredLanguage"`
}

// ToUserProfile drops the id so the profile can be saved again.
func (p FarmerProfile) ToUserProfile() UserProfile {
	return UserProfile{
		Name:              p.Name,
		Location:          p.Location,
		LandSize:          p.LandSize,
		PreferredLanguage: p.PreferredLanguage,
	}
}

type CropAdvisory struct {
	ID       AdvisoryID `json:"id" msgpack:"id"`
	Crop     string     `json:"crop" msgpack:"crop"`
	Season   string     `json:"season" msgpack:"season"`
	Guidance string     `json:"guidance" msgpack:"guidance"`
}

type GovernmentScheme struct {
	ID          SchemeID `json:"id" msgpack:"id"`
	Name        string   `json:"name" msgpack:"name"`
	Description string   `json:"description" msgpack:"description"`
	Eligibility string   `json:"eligibility" msgpack:"eligibility"`
}

// MandiPrice is a market price in rupees per quintal.
type MandiPrice struct {
	ID       PriceID `json:"id" msgpack:"id"`
	Crop     string  `json:"crop" msgpack:"crop"`
	Price    uint64  `json:"price" msgpack:"price"`
	Location string  `json:"location" msgpack:"location"`
}

// SoilReport is append-only from the client's point of view.
type SoilReport struct {
	ID              SoilReportID `json:"id" msgpack:"id"`
	PH              float64      `json:"ph" msgpack:"ph"`
	Nutrients       string       `json:"nutrients" msgpack:"nutrients"`
	Recommendations string       `json:"recommendations" msgpack:"recommendations"`
	FarmerID        FarmerID     `json:"farmerId" msgpack:"farmerId"`
	Owner           Principal    `json:"owner" msgpack:"owner"`
}

// ExpertQuery is pending until an admin responds. A response is never cleared.
type ExpertQuery struct {
	ID         QueryID        `json:"id" msgpack:"id"`
	FarmerID   FarmerID       `json:"farmerId" msgpack:"farmerId"`
	Question   string         `json:"question" msgpack:"question"`
	Owner      Principal      `json:"owner" msgpack:"owner"`
	Response   Option[string] `json:"response" msgpack:"response"`
	Attachment Option[string] `json:"attachment" msgpack:"attachment"`
}

// Pending reports whether the query still waits for a response.
func (q ExpertQuery) Pending() bool {
	return q.Response.IsNone()
}
