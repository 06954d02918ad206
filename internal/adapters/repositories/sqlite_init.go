package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		location_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lon REAL NOT NULL,
		lat REAL NOT NULL
	);
	`

	createDriversQuery := `
	CREATE TABLE IF NOT EXISTS drivers (
		driver_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		hourly_cost REAL NOT NULL DEFAULT 0,
		base_location_id TEXT,
		adr_license_expiry TEXT,
		adr_cistern_expiry TEXT,
		weekly_working_days INTEGER NOT NULL DEFAULT 5
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id TEXT PRIMARY KEY,
		plate TEXT NOT NULL,
		tank_capacity_liters INTEGER NOT NULL,
		adr_certified INTEGER NOT NULL DEFAULT 1
	);
	`

	createTrailersQuery := `
	CREATE TABLE IF NOT EXISTS trailers (
		trailer_id TEXT PRIMARY KEY,
		plate TEXT NOT NULL,
		capacity_liters INTEGER NOT NULL
	);
	`

	createSchedulesQuery := `
	CREATE TABLE IF NOT EXISTS schedules (
		schedule_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'DRAFT'
	);
	`

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL REFERENCES schedules(schedule_id),
		date TEXT NOT NULL,
		departure_time TEXT NOT NULL DEFAULT '',
		return_time TEXT NOT NULL DEFAULT '',
		driver_id TEXT NOT NULL REFERENCES drivers(driver_id),
		vehicle_id TEXT NOT NULL DEFAULT '',
		trailer_id TEXT NOT NULL DEFAULT '',
		trip_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PLANNED'
	);
	`

	createWorkLogsQuery := `
	CREATE TABLE IF NOT EXISTS work_logs (
		driver_id TEXT NOT NULL REFERENCES drivers(driver_id),
		date TEXT NOT NULL,
		driving_hours REAL NOT NULL DEFAULT 0,
		working_hours REAL NOT NULL DEFAULT 0,
		week_number INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (driver_id, date)
	);
	`

	createTravelCacheQuery := `
	CREATE TABLE IF NOT EXISTS travel_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createTripIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_schedule_driver
	ON trips(schedule_id, driver_id);
	`

	statements := []string{
		createLocationsQuery,
		createDriversQuery,
		createVehiclesQuery,
		createTrailersQuery,
		createSchedulesQuery,
		createTripsQuery,
		createWorkLogsQuery,
		createTravelCacheQuery,
		createTripIndexQuery,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}

	return nil
}

type seedLocation struct {
	LocationID string  `json:"location_id"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Address    string  `json:"address"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
}

type seedDriver struct {
	DriverID          string  `json:"driver_id"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	HourlyCost        float64 `json:"hourly_cost"`
	BaseLocationID    string  `json:"base_location_id"`
	ADRLicenseExpiry  string  `json:"adr_license_expiry"`
	ADRCisternExpiry  string  `json:"adr_cistern_expiry"`
	WeeklyWorkingDays int     `json:"weekly_working_days"`
}

type seedVehicle struct {
	VehicleID          string `json:"vehicle_id"`
	Plate              string `json:"plate"`
	TankCapacityLiters int    `json:"tank_capacity_liters"`
	ADRCertified       bool   `json:"adr_certified"`
}

type seedTrailer struct {
	TrailerID      string `json:"trailer_id"`
	Plate          string `json:"plate"`
	CapacityLiters int    `json:"capacity_liters"`
}

type seedSchedule struct {
	ScheduleID string `json:"schedule_id"`
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
}

type seedTrip struct {
	TripID        string `json:"trip_id"`
	ScheduleID    string `json:"schedule_id"`
	Date          string `json:"date"`
	DepartureTime string `json:"departure_time"`
	ReturnTime    string `json:"return_time"`
	DriverID      string `json:"driver_id"`
	VehicleID     string `json:"vehicle_id"`
	TrailerID     string `json:"trailer_id"`
	TripType      string `json:"trip_type"`
	Status        string `json:"status"`
}

type seedWorkLog struct {
	DriverID     string  `json:"driver_id"`
	Date         string  `json:"date"`
	DrivingHours float64 `json:"driving_hours"`
	WorkingHours float64 `json:"working_hours"`
	WeekNumber   int     `json:"week_number"`
}

type seedFile struct {
	Locations []seedLocation `json:"locations"`
	Drivers   []seedDriver   `json:"drivers"`
	Vehicles  []seedVehicle  `json:"vehicles"`
	Trailers  []seedTrailer  `json:"trailers"`
	Schedules []seedSchedule `json:"schedules"`
	Trips     []seedTrip     `json:"trips"`
	WorkLogs  []seedWorkLog  `json:"work_logs"`
}

// SeedFromJSON loads fleet records from a JSON seed file. Existing rows are
// replaced, so reseeding is idempotent. A missing seed file is not an error:
// local runs may start from an empty store.
func SeedFromJSON(db *sql.DB, seedPath string) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}
	if strings.TrimSpace(seedPath) == "" {
		return nil
	}

	raw, err := os.ReadFile(seedPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("seed: read %q: %w", seedPath, err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed: parse %q: %w", seedPath, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, l := range seed.Locations {
		_, err := tx.Exec(`
		INSERT OR REPLACE INTO locations (location_id, name, kind, address, lon, lat)
		VALUES (?, ?, ?, ?, ?, ?)
		`, l.LocationID, l.Name, l.Kind, l.Address, l.Lon, l.Lat)
		if err != nil {
			return fmt.Errorf("seed: location %q: %w", l.LocationID, err)
		}
	}

	for _, d := range seed.Drivers {
		_, err := tx.Exec(`
		INSERT OR REPLACE INTO drivers
			(driver_id, name, type, hourly_cost, base_location_id,
			 adr_license_expiry, adr_cistern_expiry, weekly_working_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, d.DriverID, d.Name, d.Type, d.HourlyCost, nullIfEmpty(d.BaseLocationID),
			nullIfEmpty(d.ADRLicenseExpiry), nullIfEmpty(d.ADRCisternExpiry), d.WeeklyWorkingDays)
		if err != nil {
			return fmt.Errorf("seed: driver %q: %w", d.DriverID, err)
		}
	}

	for _, v := range seed.Vehicles {
		_, err := tx.Exec(`
		INSERT OR REPLACE INTO vehicles (vehicle_id, plate, tank_capacity_liters, adr_certified)
		VALUES (?, ?, ?, ?)
		`, v.VehicleID, v.Plate, v.TankCapacityLiters, v.ADRCertified)
		if err != nil {
			return fmt.Errorf("seed: vehicle %q: %w", v.VehicleID, err)
		}
	}

	for _, t := range seed.Trailers {
		_, err := tx.Exec(`
		INSERT OR REPLACE INTO trailers (trailer_id, plate, capacity_liters)
		VALUES (?, ?, ?)
		`, t.TrailerID, t.Plate, t.CapacityLiters)
		if err != nil {
			return fmt.Errorf("seed: trailer %q: %w", t.TrailerID, err)
		}
	}

	for _, s := range seed.Schedules {
		_, err := tx.Exec(`
		INSERT OR REPLACE INTO schedules (schedule_id, name, start_date, end_date, status)
		VALUES (?, ?, ?, ?, ?)
		`, s.ScheduleID, s.Name, s.StartDate, s.EndDate, s.Status)
		if err != nil {
			return fmt.Errorf("seed: schedule %q: %w", s.ScheduleID, err)
		}
	}

	for _, t := range seed.Trips {
		_, err := tx.Exec(`
		INSERT OR REPLACE INTO trips
			(trip_id, schedule_id, date, departure_time, return_time,
			 driver_id, vehicle_id, trailer_id, trip_type, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.TripID, t.ScheduleID, t.Date, t.DepartureTime, t.ReturnTime,
			t.DriverID, t.VehicleID, t.TrailerID, t.TripType, t.Status)
		if err != nil {
			return fmt.Errorf("seed: trip %q: %w", t.TripID, err)
		}
	}

	for _, wl := range seed.WorkLogs {
		_, err := tx.Exec(`
		INSERT OR REPLACE INTO work_logs (driver_id, date, driving_hours, working_hours, week_number)
		VALUES (?, ?, ?, ?, ?)
		`, wl.DriverID, wl.Date, wl.DrivingHours, wl.WorkingHours, wl.WeekNumber)
		if err != nil {
			return fmt.Errorf("seed: work log %q/%s: %w", wl.DriverID, wl.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}

	return nil
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
