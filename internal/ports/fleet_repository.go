package ports

import (
	"context"
	"time"

	"fuel-logistics-service/internal/domain"
)

// Port: a boundary for reading fleet records (drivers, schedules, trips,
// work logs, locations) from a data source.
type FleetRepository interface {
	// Retrieve all drivers.
	ListDrivers(ctx context.Context) ([]*domain.Driver, error)

	// Retrieve a single driver by id.
	GetDriver(ctx context.Context, driverID string) (*domain.Driver, error)

	// Retrieve a schedule together with its trips.
	GetSchedule(ctx context.Context, scheduleID string) (*domain.Schedule, error)

	// Retrieve work-log entries for a driver within [from, to].
	ListWorkLogs(ctx context.Context, driverID string, from, to time.Time) ([]*domain.WorkLog, error)

	// Retrieve the locations of the transport triangle.
	ListLocations(ctx context.Context) ([]*domain.Location, error)

	// Retrieve all trucks.
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)

	// Retrieve the shared trailer pool.
	ListTrailers(ctx context.Context) ([]*domain.Trailer, error)
}
