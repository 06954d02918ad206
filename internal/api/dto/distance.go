package dto

type DistanceResponse struct {
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
}
