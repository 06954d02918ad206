package dto

import "time"

type ValidateScheduleRequest struct {
	ScheduleID string `json:"schedule_id"`
}

type FindingResponse struct {
	Type       string     `json:"type"`
	Severity   string     `json:"severity"`
	Message    string     `json:"message"`
	DriverID   string     `json:"driver_id"`
	DriverName string     `json:"driver_name"`
	Date       *time.Time `json:"date,omitempty"`
	Value      float64    `json:"value,omitempty"`
	Limit      float64    `json:"limit,omitempty"`
}

type ValidationResponse struct {
	IsValid    bool              `json:"is_valid"`
	Violations []FindingResponse `json:"violations"`
	Warnings   []FindingResponse `json:"warnings"`
}

// SelfCheckRequest replays a stored schedule's planning input through the
// external solver and compares the outcome against the realized volume.
type SelfCheckRequest struct {
	ScheduleID       string          `json:"schedule_id"`
	Capacity         SimulateRequest `json:"capacity"`
	TimeLimitSeconds int             `json:"time_limit_seconds"`
	NumSearchWorkers int             `json:"num_search_workers"`
}

type SelfCheckResponse struct {
	ScheduleID     string `json:"schedule_id"`
	RealizedLiters int    `json:"realized_liters"`
	SolvedLiters   int    `json:"solved_liters"`
	DeltaLiters    int    `json:"delta_liters"`
	Matches        bool   `json:"matches"`
}

// TripPrecheckRequest asks whether one more trip fits a driver's day and
// week. Dates use the YYYY-MM-DD layout; schedule_end defaults to date.
type TripPrecheckRequest struct {
	DriverID            string  `json:"driver_id"`
	Date                string  `json:"date"`
	ScheduleEnd         string  `json:"schedule_end"`
	ExistingDailyHours  float64 `json:"existing_daily_hours"`
	ExistingWeeklyHours float64 `json:"existing_weekly_hours"`
}
