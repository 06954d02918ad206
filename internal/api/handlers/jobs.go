package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"fuel-logistics-service/internal/api/dto"
	"fuel-logistics-service/internal/jobs"
)

// JobHandler exposes the asynchronous optimization lifecycle: submit, poll,
// cancel. Strategies is the registry of available optimizers keyed by name.
type JobHandler struct {
	Orch       *jobs.Orchestrator
	Strategies map[string]jobs.Strategy
	Default    string
}

// Route dispatches /jobs by method: POST submits, GET polls.
func (h *JobHandler) Route(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.Submit(w, r)
	case http.MethodGet:
		h.Status(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *JobHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SubmitJobRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Strategy)
	if name == "" {
		name = h.Default
	}
	strategy, ok := h.Strategies[name]
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown strategy "+name)
		return
	}

	job, err := h.Orch.Submit(strategy, toCapacityInput(req.Capacity), req.TimeLimitSeconds, req.NumSearchWorkers)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusAccepted, dto.SubmitJobResponse{
		JobID:  job.ID,
		Status: string(job.Status),
	})
}

func (h *JobHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}
	includeHistory := r.URL.Query().Get("history") == "1"

	view, err := h.Orch.Get(id, includeHistory)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			writeError(w, r, http.StatusNotFound, "job not found")
			return
		}
		log.Printf("job status failed id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toJobStatusResponse(view))
}

func (h *JobHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}

	status, err := h.Orch.Cancel(id)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			writeError(w, r, http.StatusNotFound, "job not found")
			return
		}
		log.Printf("job cancel failed id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CancelJobResponse{
		JobID:  id,
		Status: string(status),
	})
}

func toJobStatusResponse(view *jobs.StatusView) *dto.JobStatusResponse {
	res := &dto.JobStatusResponse{
		JobID:     view.ID,
		Status:    string(view.Status),
		ElapsedMs: view.ElapsedMs,
		Error:     view.Err,
	}

	if view.Result != nil {
		res.Result = &dto.JobResultResponse{
			TotalLiters:           view.Result.TotalLiters,
			TotalTrips:            view.Result.TotalTrips,
			SolverObjectiveLiters: view.Result.SolverObjectiveLiters,
			SolverStatus:          view.Result.SolverStatus,
			Warnings:              view.Result.Warnings,
		}
		if view.Result.Capacity != nil {
			res.Result.Capacity = toSimulateResponse(view.Result.Capacity)
		}
	}

	if view.Progress != nil {
		entry := toProgressEntryResponse(*view.Progress)
		res.Progress = &entry
	}
	for _, d := range view.ProgressHistory {
		res.ProgressHistory = append(res.ProgressHistory, dto.ProgressDeltaResponse{
			Entry:        toProgressEntryResponse(d.Entry),
			DeltaLiters:  d.DeltaLiters,
			DeltaSeconds: d.DeltaSeconds,
		})
	}
	if view.ProgressSummary != nil {
		s := view.ProgressSummary
		res.ProgressSummary = &dto.ProgressSummaryResponse{
			TotalSolutions:                s.TotalSolutions,
			TotalImprovements:             s.TotalImprovements,
			LastObjectiveLiters:           s.LastObjectiveLiters,
			LastBoundLiters:               s.LastBoundLiters,
			GapPercent:                    s.GapPercent,
			LastImprovementDeltaLiters:    s.LastImprovementDeltaLiters,
			SecondsSinceLastImprovement:   s.SecondsSinceLastImprovement,
			AvgDeltaLitersPerMinuteRecent: s.AvgDeltaLitersPerMinuteRecent,
		}
	}

	return res
}

func toProgressEntryResponse(e jobs.ProgressEntry) dto.ProgressEntryResponse {
	return dto.ProgressEntryResponse{
		Seq:                  e.Seq,
		Solutions:            e.Solutions,
		ObjectiveLiters:      e.ObjectiveLiters,
		ObjectiveDeliveries:  e.ObjectiveDeliveries,
		ObjectiveBoundLiters: e.ObjectiveBoundLiters,
		ElapsedSeconds:       e.ElapsedSeconds,
	}
}
