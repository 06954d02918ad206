package dto

// SubmitJobRequest starts a background optimization over the same input the
// synchronous simulate endpoint takes. Strategy selects the registered
// optimizer ("simulator" or "solver"); empty means the server default.
type SubmitJobRequest struct {
	Capacity         SimulateRequest `json:"capacity"`
	Strategy         string          `json:"strategy"`
	TimeLimitSeconds int             `json:"time_limit_seconds"`
	NumSearchWorkers int             `json:"num_search_workers"`
}

type SubmitJobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type JobResultResponse struct {
	TotalLiters           int               `json:"total_liters"`
	TotalTrips            int               `json:"total_trips"`
	SolverObjectiveLiters *int              `json:"solver_objective_liters,omitempty"`
	SolverStatus          string            `json:"solver_status"`
	Warnings              []string          `json:"warnings,omitempty"`
	Capacity              *SimulateResponse `json:"capacity,omitempty"`
}

type ProgressEntryResponse struct {
	Seq                  int     `json:"seq"`
	Solutions            int     `json:"solutions"`
	ObjectiveLiters      int     `json:"objective_liters"`
	ObjectiveDeliveries  int     `json:"objective_deliveries"`
	ObjectiveBoundLiters *int    `json:"objective_bound_liters,omitempty"`
	ElapsedSeconds       float64 `json:"elapsed_seconds"`
}

type ProgressDeltaResponse struct {
	Entry        ProgressEntryResponse `json:"entry"`
	DeltaLiters  int                   `json:"delta_liters"`
	DeltaSeconds float64               `json:"delta_seconds"`
}

type ProgressSummaryResponse struct {
	TotalSolutions                int      `json:"total_solutions"`
	TotalImprovements             int      `json:"total_improvements"`
	LastObjectiveLiters           int      `json:"last_objective_liters"`
	LastBoundLiters               *int     `json:"last_bound_liters,omitempty"`
	GapPercent                    *float64 `json:"gap_percent,omitempty"`
	LastImprovementDeltaLiters    int      `json:"last_improvement_delta_liters"`
	SecondsSinceLastImprovement   float64  `json:"seconds_since_last_improvement"`
	AvgDeltaLitersPerMinuteRecent float64  `json:"avg_delta_liters_per_minute_recent"`
}

type JobStatusResponse struct {
	JobID           string                   `json:"job_id"`
	Status          string                   `json:"status"`
	ElapsedMs       int64                    `json:"elapsed_ms"`
	Error           string                   `json:"error,omitempty"`
	Result          *JobResultResponse       `json:"result,omitempty"`
	Progress        *ProgressEntryResponse   `json:"progress,omitempty"`
	ProgressHistory []ProgressDeltaResponse  `json:"progress_history,omitempty"`
	ProgressSummary *ProgressSummaryResponse `json:"progress_summary,omitempty"`
}

type CancelJobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}
