package dto

type LocationResponse struct {
	LocationID string  `json:"location_id"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Address    string  `json:"address,omitempty"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
}

type VehicleResponse struct {
	VehicleID          string `json:"vehicle_id"`
	Plate              string `json:"plate"`
	TankCapacityLiters int    `json:"tank_capacity_liters"`
	ADRCertified       bool   `json:"adr_certified"`
}

type TrailerResponse struct {
	TrailerID      string `json:"trailer_id"`
	Plate          string `json:"plate"`
	CapacityLiters int    `json:"capacity_liters"`
}

// FleetResponse is the hardware snapshot behind the default simulation
// counts: locations of the triangle, trucks and the shared trailer pool.
type FleetResponse struct {
	Locations []LocationResponse `json:"locations"`
	Vehicles  []VehicleResponse  `json:"vehicles"`
	Trailers  []TrailerResponse  `json:"trailers"`
}
