package jobs

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ProgressEntry is one line of the append-only progress log written by a
// running optimization whenever it finds an improved solution.
type ProgressEntry struct {
	Seq                      int     `json:"seq"`
	Solutions                int     `json:"solutions"`
	ObjectiveLiters          int     `json:"objective_liters"`
	ObjectiveDeliveries      int     `json:"objective_deliveries"`
	ObjectiveBoundLiters     *int    `json:"objective_bound_liters,omitempty"`
	ObjectiveBoundDeliveries *int    `json:"objective_bound_deliveries,omitempty"`
	ElapsedSeconds           float64 `json:"elapsed_seconds"`
}

// AppendProgress writes one JSON line to the progress log, creating the file
// on first use.
func AppendProgress(path string, entry ProgressEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("append progress: marshal entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("append progress: open %q: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("append progress: write %q: %w", path, err)
	}
	return nil
}

// ReadProgress parses the progress log. A missing file yields an empty
// sequence. Malformed lines (typically a partial trailing write by the
// external solver) are treated as absent, not fatal.
func ReadProgress(path string) ([]ProgressEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read progress: open %q: %w", path, err)
	}
	defer f.Close()

	var entries []ProgressEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e ProgressEntry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read progress: scan %q: %w", path, err)
	}

	return entries, nil
}

// ProgressDelta pairs a progress entry with the gain over the previous one.
type ProgressDelta struct {
	Entry        ProgressEntry
	DeltaLiters  int
	DeltaSeconds float64
}

// History computes deltas between consecutive entries of the progress log.
func History(entries []ProgressEntry) []ProgressDelta {
	out := make([]ProgressDelta, 0, len(entries))
	for i, e := range entries {
		d := ProgressDelta{Entry: e}
		if i == 0 {
			d.DeltaLiters = e.ObjectiveLiters
			d.DeltaSeconds = e.ElapsedSeconds
		} else {
			d.DeltaLiters = e.ObjectiveLiters - entries[i-1].ObjectiveLiters
			d.DeltaSeconds = e.ElapsedSeconds - entries[i-1].ElapsedSeconds
		}
		out = append(out, d)
	}
	return out
}

// ProgressSummary is derived from the full progress log at query time.
type ProgressSummary struct {
	TotalSolutions                int
	TotalImprovements             int
	LastObjectiveLiters           int
	LastBoundLiters               *int
	GapPercent                    *float64
	LastImprovementDeltaLiters    int
	SecondsSinceLastImprovement   float64
	AvgDeltaLitersPerMinuteRecent float64
}

// Window of trailing improvements used for the recent improvement rate.
const recentImprovementWindow = 5

// Summarize derives solver statistics from the progress log. elapsedSeconds
// is the job's own elapsed time, used to compute the staleness of the last
// improvement.
func Summarize(entries []ProgressEntry, elapsedSeconds float64) *ProgressSummary {
	if len(entries) == 0 {
		return &ProgressSummary{}
	}

	last := entries[len(entries)-1]
	summary := &ProgressSummary{
		TotalSolutions:      last.Solutions,
		LastObjectiveLiters: last.ObjectiveLiters,
		LastBoundLiters:     last.ObjectiveBoundLiters,
	}

	if b := last.ObjectiveBoundLiters; b != nil && *b > 0 && *b >= last.ObjectiveLiters {
		gap := float64(*b-last.ObjectiveLiters) / float64(*b) * 100
		summary.GapPercent = &gap
	}

	var improvements []ProgressEntry
	best := 0
	for _, e := range entries {
		if e.ObjectiveLiters > best {
			best = e.ObjectiveLiters
			improvements = append(improvements, e)
		}
	}
	summary.TotalImprovements = len(improvements)
	if len(improvements) == 0 {
		return summary
	}

	lastImp := improvements[len(improvements)-1]
	if len(improvements) == 1 {
		summary.LastImprovementDeltaLiters = lastImp.ObjectiveLiters
	} else {
		summary.LastImprovementDeltaLiters = lastImp.ObjectiveLiters - improvements[len(improvements)-2].ObjectiveLiters
	}

	if since := elapsedSeconds - lastImp.ElapsedSeconds; since > 0 {
		summary.SecondsSinceLastImprovement = since
	}

	window := improvements
	if len(window) > recentImprovementWindow {
		window = window[len(window)-recentImprovementWindow:]
	}
	gained := window[len(window)-1].ObjectiveLiters
	span := window[len(window)-1].ElapsedSeconds
	if len(window) > 1 {
		gained -= window[0].ObjectiveLiters
		span -= window[0].ElapsedSeconds
	}
	if span > 0 {
		summary.AvgDeltaLitersPerMinuteRecent = float64(gained) / (span / 60)
	}

	return summary
}
