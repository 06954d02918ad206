package api

import (
	"net/http"

	"fuel-logistics-service/internal/api/handlers"
	"fuel-logistics-service/internal/jobs"
	"fuel-logistics-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.FleetRepository,
	estimator ports.TravelEstimator,
	checker handlers.PlanSelfChecker,
	orch *jobs.Orchestrator,
	strategies map[string]jobs.Strategy,
	defaultStrategy string,
) http.Handler {
	mux := http.NewServeMux()

	capacityHandler := &handlers.CapacityHandler{}
	scheduleHandler := &handlers.ScheduleHandler{Repo: repo, Checker: checker}
	fleetHandler := &handlers.FleetHandler{Repo: repo}
	distanceHandler := &handlers.DistanceHandler{Estimator: estimator}
	jobHandler := &handlers.JobHandler{
		Orch:       orch,
		Strategies: strategies,
		Default:    defaultStrategy,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/capacity/simulate", capacityHandler.Simulate)
	mux.HandleFunc("/schedules/validate", scheduleHandler.Validate)
	mux.HandleFunc("/schedules/selfcheck", scheduleHandler.SelfCheck)
	mux.HandleFunc("/trips/precheck", scheduleHandler.Precheck)
	mux.HandleFunc("/fleet", fleetHandler.Get)
	mux.HandleFunc("/distance", distanceHandler.Get)
	mux.HandleFunc("/jobs", jobHandler.Route)
	mux.HandleFunc("/jobs/cancel", jobHandler.Cancel)

	return loggingMiddleware(mux)
}
