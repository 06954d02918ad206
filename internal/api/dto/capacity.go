package dto

type ShiftRequest struct {
	DriverID string  `json:"driver_id"`
	Hours    float64 `json:"hours"`
}

// SimulateRequest describes one capacity question: either uniform driver
// counts (expanded to identical shifts every day) or explicit per-day shift
// lists. Explicit lists take precedence over the counts.
type SimulateRequest struct {
	Days int `json:"days"`

	NumTiranoDrivers   int     `json:"num_tirano_drivers"`
	TiranoDriverHours  float64 `json:"tirano_driver_hours"`
	NumLivignoDrivers  int     `json:"num_livigno_drivers"`
	LivignoDriverHours float64 `json:"livigno_driver_hours"`

	TiranoShifts  [][]ShiftRequest `json:"tirano_shifts"`
	LivignoShifts [][]ShiftRequest `json:"livigno_shifts"`

	NumTrailers         int `json:"num_trailers"`
	NumVehicles         int `json:"num_vehicles"`
	InitialFullTrailers int `json:"initial_full_trailers"`
	InitialFullTanks    int `json:"initial_full_tanks"`
}

type ResourceStateResponse struct {
	FullTrailers  int `json:"full_trailers"`
	EmptyTrailers int `json:"empty_trailers"`
	FullTanks     int `json:"full_tanks"`
	EmptyTanks    int `json:"empty_tanks"`
}

type DayPlanResponse struct {
	Day             int                   `json:"day"`
	TripCounts      map[string]int        `json:"trip_counts"`
	LitersDelivered int                   `json:"liters_delivered"`
	HoursUsed       map[string]float64    `json:"hours_used"`
	Resources       ResourceStateResponse `json:"resources"`
}

type SimulateResponse struct {
	TotalLiters        int               `json:"total_liters"`
	DaysWithDeliveries int               `json:"days_with_deliveries"`
	Breakdown          map[string]int    `json:"breakdown"`
	DayPlans           []DayPlanResponse `json:"day_plans"`
}
