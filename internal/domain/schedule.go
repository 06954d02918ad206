package domain

import "time"

// A committed multi-day delivery plan covering a date range.
type Schedule struct {
	ScheduleID string
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	Status     string
	Trips      []*Trip
}

// Daily work-log entry recorded for a driver outside the planner,
// used by the compliance validator as pre-existing driving time.
type WorkLog struct {
	DriverID     string
	Date         time.Time
	DrivingHours float64
	WorkingHours float64
	WeekNumber   int
}
