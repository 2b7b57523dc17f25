package domain

// ListingRole distinguishes independently bookable properties from their
// channel-specific projections.
type ListingRole string

const (
	RolePrimary   ListingRole = "primary"
	RoleSecondary ListingRole = "secondary"
)

type Listing struct {
	ID   int64       `json:"id"`
	Name string      `json:"name"`
	Role ListingRole `json:"role"`
	// ParentID is the owning primary listing; zero for primaries.
	ParentID int64 `json:"parentId,omitempty"`
}

// Catalog is the complete addressable listing set for a campaign.
// Listings holds every listing exactly once, each primary immediately
// followed by its secondaries in discovery order.
type Catalog struct {
	PrimaryIDs []int64   `json:"primaryIds"`
	Listings   []Listing `json:"listings"`
}

func (c *Catalog) Size() int {
	return len(c.Listings)
}
