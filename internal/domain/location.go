package domain

// Role a location plays in the transport triangle.
type LocationKind string

const (
	LocationDepot       LocationKind = "DEPOT"
	LocationStaging     LocationKind = "STAGING"
	LocationDestination LocationKind = "DESTINATION"
)

// A named point of the transport triangle: the source depot (Tirano),
// the staging/parking point, or the remote destination (Livigno).
type Location struct {
	LocationID string
	Name       string
	Kind       LocationKind
	Address    string
	Coords     Coordinates
}
