package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"fuel-logistics-service/internal/adapters/repositories"
	"fuel-logistics-service/internal/adapters/solver"
	"fuel-logistics-service/internal/api/dto"
	"fuel-logistics-service/internal/domain"
	"fuel-logistics-service/internal/jobs"
	"fuel-logistics-service/internal/ports"
	"fuel-logistics-service/internal/services/capacity"
	"fuel-logistics-service/internal/services/compliance"
)

const dateLayout = "2006-01-02"

// PlanSelfChecker reruns a plan's input through the external solver and
// reports whether the realized volume still matches.
type PlanSelfChecker interface {
	SelfCheck(ctx context.Context, realizedLiters int, req jobs.Request) (*solver.SelfCheckReport, error)
}

// ScheduleHandler exposes compliance validation and the plan self-check over
// stored schedules. Checker is nil when no solver binary is configured.
type ScheduleHandler struct {
	Repo    ports.FleetRepository
	Checker PlanSelfChecker
}

// Validate loads a committed schedule with its drivers and work-log history
// and runs the full driving-hour and license rule set against it.
func (h *ScheduleHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ValidateScheduleRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	scheduleID := strings.TrimSpace(req.ScheduleID)
	if scheduleID == "" {
		writeError(w, r, http.StatusBadRequest, "schedule_id is required")
		return
	}

	ctx := r.Context()

	schedule, err := h.Repo.GetSchedule(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "schedule not found")
			return
		}
		log.Printf("load schedule failed id=%s err=%v", scheduleID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	drivers, err := h.Repo.ListDrivers(ctx)
	if err != nil {
		log.Printf("list drivers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	driversByID := make(map[string]*domain.Driver, len(drivers))
	for _, d := range drivers {
		driversByID[d.DriverID] = d
	}

	var workLogs []*domain.WorkLog
	for id := range driversByID {
		logs, err := h.Repo.ListWorkLogs(ctx, id, schedule.StartDate, schedule.EndDate)
		if err != nil {
			log.Printf("list work logs failed driver=%s err=%v", id, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		workLogs = append(workLogs, logs...)
	}

	report, err := compliance.ValidateSchedule(compliance.ScheduleInput{
		Schedule: schedule,
		Drivers:  driversByID,
		WorkLogs: workLogs,
	})
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, toValidationResponse(report))
}

// Precheck runs the single-trip variant: would one more trip on the given
// date keep the driver inside daily, weekly and license limits.
func (h *ScheduleHandler) Precheck(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.TripPrecheckRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.DriverID) == "" {
		writeError(w, r, http.StatusBadRequest, "driver_id is required")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must use the YYYY-MM-DD layout")
		return
	}
	var scheduleEnd time.Time
	if req.ScheduleEnd != "" {
		scheduleEnd, err = time.Parse(dateLayout, req.ScheduleEnd)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "schedule_end must use the YYYY-MM-DD layout")
			return
		}
	}

	driver, err := h.Repo.GetDriver(r.Context(), req.DriverID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "driver not found")
			return
		}
		log.Printf("load driver failed id=%s err=%v", req.DriverID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	report, err := compliance.ValidateSingleTrip(compliance.TripCheckInput{
		Driver:              driver,
		Date:                date,
		ScheduleEnd:         scheduleEnd,
		ExistingDailyHours:  req.ExistingDailyHours,
		ExistingWeeklyHours: req.ExistingWeeklyHours,
	})
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, toValidationResponse(report))
}

// SelfCheck sums a stored schedule's realized liters and compares them
// against a fresh dry-run solve of the plan's input.
func (h *ScheduleHandler) SelfCheck(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if h.Checker == nil {
		writeError(w, r, http.StatusServiceUnavailable, "solver not configured")
		return
	}

	var req dto.SelfCheckRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	scheduleID := strings.TrimSpace(req.ScheduleID)
	if scheduleID == "" {
		writeError(w, r, http.StatusBadRequest, "schedule_id is required")
		return
	}

	in := toCapacityInput(req.Capacity)
	if err := in.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	schedule, err := h.Repo.GetSchedule(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "schedule not found")
			return
		}
		log.Printf("load schedule failed id=%s err=%v", scheduleID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	report, err := h.Checker.SelfCheck(ctx, capacity.DeliveredLiters(schedule.Trips), jobs.Request{
		Input:            in,
		TimeLimitSeconds: req.TimeLimitSeconds,
		NumSearchWorkers: req.NumSearchWorkers,
	})
	if err != nil {
		log.Printf("self check failed schedule=%s err=%v", scheduleID, err)
		writeError(w, r, http.StatusBadGateway, "solver run failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SelfCheckResponse{
		ScheduleID:     scheduleID,
		RealizedLiters: report.RealizedLiters,
		SolvedLiters:   report.SolvedLiters,
		DeltaLiters:    report.DeltaLiters,
		Matches:        report.Matches,
	})
}
