package jobs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestAppendAndReadProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.progress.jsonl")

	entries := []ProgressEntry{
		{Seq: 1, Solutions: 1, ObjectiveLiters: 17500, ElapsedSeconds: 10},
		{Seq: 2, Solutions: 5, ObjectiveLiters: 35000, ElapsedSeconds: 40},
		{Seq: 3, Solutions: 12, ObjectiveLiters: 52500, ElapsedSeconds: 100},
	}
	for _, e := range entries {
		require.NoError(t, AppendProgress(path, e))
	}

	got, err := ReadProgress(path)
	require.NoError(t, err)
	require.Equal(t, entries, got)
}

func TestReadProgressSkipsPartialTrailingWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.progress.jsonl")

	require.NoError(t, AppendProgress(path, ProgressEntry{Seq: 1, ObjectiveLiters: 17500}))
	require.NoError(t, AppendProgress(path, ProgressEntry{Seq: 2, ObjectiveLiters: 35000}))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"seq":3,"objective_`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := ReadProgress(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 2, got[1].Seq)
}

func TestReadProgressMissingFile(t *testing.T) {
	got, err := ReadProgress(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestHistoryDeltas(t *testing.T) {
	entries := []ProgressEntry{
		{Seq: 1, ObjectiveLiters: 17500, ElapsedSeconds: 10},
		{Seq: 2, ObjectiveLiters: 35000, ElapsedSeconds: 40},
		{Seq: 3, ObjectiveLiters: 35000, ElapsedSeconds: 70},
	}

	got := History(entries)
	require.Len(t, got, 3)
	require.Equal(t, 17500, got[0].DeltaLiters)
	require.Equal(t, 17500, got[1].DeltaLiters)
	require.InDelta(t, 30.0, got[1].DeltaSeconds, 1e-9)
	require.Equal(t, 0, got[2].DeltaLiters)
}

func TestSummarize(t *testing.T) {
	entries := []ProgressEntry{
		{Seq: 1, Solutions: 1, ObjectiveLiters: 17500, ElapsedSeconds: 10},
		{Seq: 2, Solutions: 5, ObjectiveLiters: 35000, ElapsedSeconds: 40},
		{Seq: 3, Solutions: 12, ObjectiveLiters: 52500, ObjectiveBoundLiters: intp(70000), ElapsedSeconds: 100},
	}

	s := Summarize(entries, 160)

	require.Equal(t, 12, s.TotalSolutions)
	require.Equal(t, 3, s.TotalImprovements)
	require.Equal(t, 52500, s.LastObjectiveLiters)
	require.Equal(t, 17500, s.LastImprovementDeltaLiters)
	require.InDelta(t, 60.0, s.SecondsSinceLastImprovement, 1e-9)

	require.NotNil(t, s.GapPercent)
	require.InDelta(t, 25.0, *s.GapPercent, 1e-9)

	// 35000 liters gained over the 90s between first and last improvement.
	require.InDelta(t, 35000/1.5, s.AvgDeltaLitersPerMinuteRecent, 1e-6)
}

func TestSummarizeCountsOnlyStrictImprovements(t *testing.T) {
	entries := []ProgressEntry{
		{Seq: 1, Solutions: 1, ObjectiveLiters: 17500, ElapsedSeconds: 10},
		{Seq: 2, Solutions: 4, ObjectiveLiters: 17500, ElapsedSeconds: 30},
		{Seq: 3, Solutions: 9, ObjectiveLiters: 35000, ElapsedSeconds: 60},
		{Seq: 4, Solutions: 15, ObjectiveLiters: 35000, ElapsedSeconds: 90},
	}

	s := Summarize(entries, 100)
	require.Equal(t, 2, s.TotalImprovements)
	require.Equal(t, 17500, s.LastImprovementDeltaLiters)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 50)
	require.Equal(t, &ProgressSummary{}, s)
}
