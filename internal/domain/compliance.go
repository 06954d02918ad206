package domain

import "time"

type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

type FindingType string

const (
	FindingLicenseExpired   FindingType = "LICENSE_EXPIRED"
	FindingLicenseExpiring  FindingType = "LICENSE_EXPIRING"
	FindingDailyDriving     FindingType = "DAILY_DRIVING"
	FindingWeeklyDriving    FindingType = "WEEKLY_DRIVING"
	FindingApproachingLimit FindingType = "APPROACHING_LIMIT"
	FindingExtendedDayUsed  FindingType = "EXTENDED_DAY_USED"
)

// A single regulatory finding produced by the compliance validator.
// Findings are structured data surfaced beside the validation verdict;
// they are never persisted and never raised as errors.
type Finding struct {
	Type       FindingType
	Severity   Severity
	Message    string
	DriverID   string
	DriverName string
	Date       *time.Time
	Value      float64
	Limit      float64
}

// Outcome of validating a committed schedule or a single candidate trip.
// IsValid is false iff at least one ERROR-severity violation exists;
// warnings alone never invalidate a plan.
type ValidationReport struct {
	IsValid    bool
	Violations []Finding
	Warnings   []Finding
}
