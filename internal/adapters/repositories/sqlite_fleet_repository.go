package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fuel-logistics-service/internal/domain"
)

// ErrNotFound marks a missing record (unknown schedule or driver id).
var ErrNotFound = errors.New("record not found")

const dateLayout = "2006-01-02"

// SQLite-backed implementation of the FleetRepository port.
type SqliteFleetRepository struct{ DB *sql.DB }

func NewSqliteFleetRepository(db *sql.DB) *SqliteFleetRepository {
	return &SqliteFleetRepository{DB: db}
}

// Return all drivers ordered by id.
func (s *SqliteFleetRepository) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	if s.DB == nil {
		return nil, errors.New("fleet repository: DB is nil")
	}

	query := `
	SELECT
		driver_id, name, type, hourly_cost, base_location_id,
		adr_license_expiry, adr_cistern_expiry, weekly_working_days
	FROM drivers
	ORDER BY driver_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0, 16)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("list drivers: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers: row iteration: %w", err)
	}

	return drivers, nil
}

// Return a single driver by id.
func (s *SqliteFleetRepository) GetDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if s.DB == nil {
		return nil, errors.New("fleet repository: DB is nil")
	}

	query := `
	SELECT
		driver_id, name, type, hourly_cost, base_location_id,
		adr_license_expiry, adr_cistern_expiry, weekly_working_days
	FROM drivers
	WHERE driver_id = ?;
	`
	row := s.DB.QueryRowContext(ctx, query, driverID)

	d, err := scanDriver(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get driver %q: %w", driverID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get driver %q: %w", driverID, err)
	}
	return d, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*domain.Driver, error) {
	var (
		d            domain.Driver
		baseLocation sql.NullString
		license      sql.NullString
		cistern      sql.NullString
		driverType   string
	)
	err := row.Scan(&d.DriverID, &d.Name, &driverType, &d.HourlyCost,
		&baseLocation, &license, &cistern, &d.WeeklyWorkingDays)
	if err != nil {
		return nil, err
	}

	d.Type = domain.DriverType(driverType)
	d.BaseLocationID = baseLocation.String

	if d.ADRLicenseExpiry, err = parseNullDate(license); err != nil {
		return nil, fmt.Errorf("driver %q: adr_license_expiry: %w", d.DriverID, err)
	}
	if d.ADRCisternExpiry, err = parseNullDate(cistern); err != nil {
		return nil, fmt.Errorf("driver %q: adr_cistern_expiry: %w", d.DriverID, err)
	}
	return &d, nil
}

// Return a schedule together with its trips.
func (s *SqliteFleetRepository) GetSchedule(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	if s.DB == nil {
		return nil, errors.New("fleet repository: DB is nil")
	}

	var (
		sched     domain.Schedule
		startDate string
		endDate   string
	)
	row := s.DB.QueryRowContext(ctx, `
	SELECT schedule_id, name, start_date, end_date, status
	FROM schedules
	WHERE schedule_id = ?;
	`, scheduleID)

	err := row.Scan(&sched.ScheduleID, &sched.Name, &startDate, &endDate, &sched.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get schedule %q: %w", scheduleID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule %q: scan: %w", scheduleID, err)
	}

	if sched.StartDate, err = parseDate(startDate); err != nil {
		return nil, fmt.Errorf("get schedule %q: start_date: %w", scheduleID, err)
	}
	if sched.EndDate, err = parseDate(endDate); err != nil {
		return nil, fmt.Errorf("get schedule %q: end_date: %w", scheduleID, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT trip_id, schedule_id, date, departure_time, return_time,
		driver_id, vehicle_id, trailer_id, trip_type, status
	FROM trips
	WHERE schedule_id = ?
	ORDER BY date, trip_id;
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get schedule %q: query trips: %w", scheduleID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			trip     domain.Trip
			date     string
			tripType string
			status   string
		)
		err := rows.Scan(&trip.TripID, &trip.ScheduleID, &date, &trip.DepartureTime,
			&trip.ReturnTime, &trip.DriverID, &trip.VehicleID, &trip.TrailerID,
			&tripType, &status)
		if err != nil {
			return nil, fmt.Errorf("get schedule %q: scan trip: %w", scheduleID, err)
		}
		if trip.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("get schedule %q: trip %q date: %w", scheduleID, trip.TripID, err)
		}
		trip.Type = domain.TripType(tripType)
		trip.Status = domain.TripStatus(status)
		sched.Trips = append(sched.Trips, &trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get schedule %q: trip iteration: %w", scheduleID, err)
	}

	return &sched, nil
}

// Return work-log entries for a driver within [from, to].
func (s *SqliteFleetRepository) ListWorkLogs(ctx context.Context, driverID string, from, to time.Time) ([]*domain.WorkLog, error) {
	if s.DB == nil {
		return nil, errors.New("fleet repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT driver_id, date, driving_hours, working_hours, week_number
	FROM work_logs
	WHERE driver_id = ? AND date >= ? AND date <= ?
	ORDER BY date;
	`, driverID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list work logs: query work_logs table: %w", err)
	}
	defer rows.Close()

	logs := make([]*domain.WorkLog, 0, 16)
	for rows.Next() {
		var (
			wl   domain.WorkLog
			date string
		)
		if err := rows.Scan(&wl.DriverID, &date, &wl.DrivingHours, &wl.WorkingHours, &wl.WeekNumber); err != nil {
			return nil, fmt.Errorf("list work logs: scan row: %w", err)
		}
		if wl.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("list work logs: driver %q: %w", driverID, err)
		}
		logs = append(logs, &wl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list work logs: row iteration: %w", err)
	}

	return logs, nil
}

// Return the locations of the transport triangle.
func (s *SqliteFleetRepository) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	if s.DB == nil {
		return nil, errors.New("fleet repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT location_id, name, kind, address, lon, lat
	FROM locations
	ORDER BY location_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0, 4)
	for rows.Next() {
		var (
			loc  domain.Location
			kind string
		)
		if err := rows.Scan(&loc.LocationID, &loc.Name, &kind, &loc.Address, &loc.Coords.Lon, &loc.Coords.Lat); err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		loc.Kind = domain.LocationKind(kind)
		locations = append(locations, &loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}

// Return all trucks.
func (s *SqliteFleetRepository) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	if s.DB == nil {
		return nil, errors.New("fleet repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT vehicle_id, plate, tank_capacity_liters, adr_certified
	FROM vehicles
	ORDER BY vehicle_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0, 8)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.VehicleID, &v.Plate, &v.TankCapacityLiters, &v.ADRCertified); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}

// Return the shared trailer pool.
func (s *SqliteFleetRepository) ListTrailers(ctx context.Context) ([]*domain.Trailer, error) {
	if s.DB == nil {
		return nil, errors.New("fleet repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT trailer_id, plate, capacity_liters
	FROM trailers
	ORDER BY trailer_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list trailers: query trailers table: %w", err)
	}
	defer rows.Close()

	trailers := make([]*domain.Trailer, 0, 8)
	for rows.Next() {
		var t domain.Trailer
		if err := rows.Scan(&t.TrailerID, &t.Plate, &t.CapacityLiters); err != nil {
			return nil, fmt.Errorf("list trailers: scan row: %w", err)
		}
		trailers = append(trailers, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trailers: row iteration: %w", err)
	}

	return trailers, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func parseNullDate(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
