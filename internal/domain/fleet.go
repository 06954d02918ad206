package domain

// A truck with a fixed fuel tank, ADR-certified for hazardous goods.
type Vehicle struct {
	VehicleID          string
	Plate              string
	TankCapacityLiters int
	ADRCertified       bool
}

// A tanker trailer from the shared pool parked at the staging point.
type Trailer struct {
	TrailerID      string
	Plate          string
	CapacityLiters int
}
