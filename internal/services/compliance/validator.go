package compliance

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fuel-logistics-service/internal/domain"
)

// Driving-hour rule constants. The fixed 8-hour round-trip estimate is a
// deliberate simplification for committed plans and is independent of the
// per-trip-type costs the capacity simulator uses.
const (
	HoursPerTripEstimate = 8.0

	DailyDrivingLimit      = 10.0
	StandardDayHours       = 9.0
	DailyApproachThreshold = StandardDayHours * 0.8

	WeeklyDrivingLimit      = 56.0
	WeeklyApproachThreshold = WeeklyDrivingLimit * 0.8

	licenseWarningDays = 30
)

// ScheduleInput bundles a committed schedule with the driver records and prior
// work-log history the checks run against.
type ScheduleInput struct {
	Schedule *domain.Schedule
	Drivers  map[string]*domain.Driver
	WorkLogs []*domain.WorkLog
}

// ValidateSchedule checks a committed schedule's trips against driving-hour
// and license rules, per driver. Findings are returned as data: a plan is
// valid iff it has zero ERROR-severity violations; warnings never block
// confirmation.
func ValidateSchedule(in ScheduleInput) (*domain.ValidationReport, error) {
	if in.Schedule == nil {
		return nil, errors.New("validate schedule: schedule must be non-nil")
	}

	report := &domain.ValidationReport{
		Violations: []domain.Finding{},
		Warnings:   []domain.Finding{},
	}

	tripsByDriver := make(map[string][]*domain.Trip)
	for _, trip := range in.Schedule.Trips {
		if trip.Status == domain.TripCancelled {
			continue
		}
		tripsByDriver[trip.DriverID] = append(tripsByDriver[trip.DriverID], trip)
	}

	logsByDriver := make(map[string][]*domain.WorkLog)
	for _, wl := range in.WorkLogs {
		logsByDriver[wl.DriverID] = append(logsByDriver[wl.DriverID], wl)
	}

	driverIDs := make([]string, 0, len(tripsByDriver))
	for id := range tripsByDriver {
		driverIDs = append(driverIDs, id)
	}
	slices.Sort(driverIDs)

	for _, id := range driverIDs {
		driver, ok := in.Drivers[id]
		if !ok {
			return nil, fmt.Errorf("validate schedule: trip references unknown driver %q", id)
		}

		checkLicense(report, driver, "ADR license", driver.ADRLicenseExpiry, in.Schedule.EndDate)
		checkLicense(report, driver, "ADR cistern specialization", driver.ADRCisternExpiry, in.Schedule.EndDate)
		checkDailyHours(report, driver, tripsByDriver[id], logsByDriver[id])
		checkWeeklyHours(report, driver, tripsByDriver[id], logsByDriver[id])
	}

	report.IsValid = len(report.Violations) == 0
	return report, nil
}

// TripCheckInput supports the interactive "can I add this trip" pre-check:
// the caller supplies already-known totals instead of a full schedule reload.
type TripCheckInput struct {
	Driver              *domain.Driver
	Date                time.Time
	ScheduleEnd         time.Time
	ExistingDailyHours  float64
	ExistingWeeklyHours float64
}

// ValidateSingleTrip runs the daily, weekly and license checks for one
// candidate trip against supplied existing totals.
func ValidateSingleTrip(in TripCheckInput) (*domain.ValidationReport, error) {
	if in.Driver == nil {
		return nil, errors.New("validate trip: driver must be non-nil")
	}
	if in.Date.IsZero() {
		return nil, errors.New("validate trip: date must be set")
	}

	end := in.ScheduleEnd
	if end.IsZero() {
		end = in.Date
	}

	report := &domain.ValidationReport{
		Violations: []domain.Finding{},
		Warnings:   []domain.Finding{},
	}

	checkLicense(report, in.Driver, "ADR license", in.Driver.ADRLicenseExpiry, end)
	checkLicense(report, in.Driver, "ADR cistern specialization", in.Driver.ADRCisternExpiry, end)

	date := in.Date
	addDailyFinding(report, in.Driver, &date, in.ExistingDailyHours+HoursPerTripEstimate)
	addWeeklyFinding(report, in.Driver, &date, in.ExistingWeeklyHours+HoursPerTripEstimate)

	report.IsValid = len(report.Violations) == 0
	return report, nil
}

func checkLicense(report *domain.ValidationReport, driver *domain.Driver, label string, expiry *time.Time, scheduleEnd time.Time) {
	if expiry == nil {
		return
	}

	if expiry.Before(scheduleEnd) {
		report.Violations = append(report.Violations, domain.Finding{
			Type:       domain.FindingLicenseExpired,
			Severity:   domain.SeverityError,
			DriverID:   driver.DriverID,
			DriverName: driver.Name,
			Date:       expiry,
			Message: fmt.Sprintf(
				"%s of %s expires %s, before schedule end %s",
				label, driver.Name,
				expiry.Format("2006-01-02"), scheduleEnd.Format("2006-01-02"),
			),
		})
		return
	}

	if expiry.Before(scheduleEnd.AddDate(0, 0, licenseWarningDays)) {
		report.Warnings = append(report.Warnings, domain.Finding{
			Type:       domain.FindingLicenseExpiring,
			Severity:   domain.SeverityWarning,
			DriverID:   driver.DriverID,
			DriverName: driver.Name,
			Date:       expiry,
			Message: fmt.Sprintf(
				"%s of %s expires %s, within %d days of schedule end",
				label, driver.Name,
				expiry.Format("2006-01-02"), licenseWarningDays,
			),
		})
	}
}

func checkDailyHours(report *domain.ValidationReport, driver *domain.Driver, trips []*domain.Trip, logs []*domain.WorkLog) {
	tripsPerDay := make(map[string]int)
	dayDates := make(map[string]time.Time)
	for _, trip := range trips {
		key := trip.Date.Format("2006-01-02")
		tripsPerDay[key]++
		dayDates[key] = trip.Date
	}

	loggedPerDay := make(map[string]float64)
	for _, wl := range logs {
		loggedPerDay[wl.Date.Format("2006-01-02")] += wl.DrivingHours
	}

	keys := make([]string, 0, len(tripsPerDay))
	for key := range tripsPerDay {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		date := dayDates[key]
		total := float64(tripsPerDay[key])*HoursPerTripEstimate + loggedPerDay[key]
		addDailyFinding(report, driver, &date, total)
	}
}

func addDailyFinding(report *domain.ValidationReport, driver *domain.Driver, date *time.Time, total float64) {
	switch {
	case total > DailyDrivingLimit:
		report.Violations = append(report.Violations, domain.Finding{
			Type:       domain.FindingDailyDriving,
			Severity:   domain.SeverityError,
			DriverID:   driver.DriverID,
			DriverName: driver.Name,
			Date:       date,
			Value:      total,
			Limit:      DailyDrivingLimit,
			Message: fmt.Sprintf(
				"%s would drive %.1fh on %s, over the %.0fh daily limit",
				driver.Name, total, date.Format("2006-01-02"), DailyDrivingLimit,
			),
		})
	case total > StandardDayHours:
		report.Warnings = append(report.Warnings, domain.Finding{
			Type:       domain.FindingExtendedDayUsed,
			Severity:   domain.SeverityWarning,
			DriverID:   driver.DriverID,
			DriverName: driver.Name,
			Date:       date,
			Value:      total,
			Limit:      StandardDayHours,
			Message: fmt.Sprintf(
				"%s would drive %.1fh on %s, using an extended day",
				driver.Name, total, date.Format("2006-01-02"),
			),
		})
	case total > DailyApproachThreshold:
		report.Warnings = append(report.Warnings, domain.Finding{
			Type:       domain.FindingApproachingLimit,
			Severity:   domain.SeverityWarning,
			DriverID:   driver.DriverID,
			DriverName: driver.Name,
			Date:       date,
			Value:      total,
			Limit:      StandardDayHours,
			Message: fmt.Sprintf(
				"%s would drive %.1fh on %s, approaching the %.0fh daily budget",
				driver.Name, total, date.Format("2006-01-02"), StandardDayHours,
			),
		})
	}
}

type isoWeek struct {
	year int
	week int
}

func checkWeeklyHours(report *domain.ValidationReport, driver *domain.Driver, trips []*domain.Trip, logs []*domain.WorkLog) {
	tripsPerWeek := make(map[isoWeek]int)
	weekDates := make(map[isoWeek]time.Time)
	for _, trip := range trips {
		year, week := trip.Date.ISOWeek()
		key := isoWeek{year, week}
		tripsPerWeek[key]++
		if existing, ok := weekDates[key]; !ok || trip.Date.Before(existing) {
			weekDates[key] = trip.Date
		}
	}

	loggedPerWeek := make(map[isoWeek]float64)
	for _, wl := range logs {
		year, week := wl.Date.ISOWeek()
		loggedPerWeek[isoWeek{year, week}] += wl.DrivingHours
	}

	keys := make([]isoWeek, 0, len(tripsPerWeek))
	for key := range tripsPerWeek {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b isoWeek) int {
		if a.year != b.year {
			return a.year - b.year
		}
		return a.week - b.week
	})

	for _, key := range keys {
		date := weekDates[key]
		total := float64(tripsPerWeek[key])*HoursPerTripEstimate + loggedPerWeek[key]
		addWeeklyFinding(report, driver, &date, total)
	}
}

func addWeeklyFinding(report *domain.ValidationReport, driver *domain.Driver, date *time.Time, total float64) {
	year, week := date.ISOWeek()
	switch {
	case total > WeeklyDrivingLimit:
		report.Violations = append(report.Violations, domain.Finding{
			Type:       domain.FindingWeeklyDriving,
			Severity:   domain.SeverityError,
			DriverID:   driver.DriverID,
			DriverName: driver.Name,
			Date:       date,
			Value:      total,
			Limit:      WeeklyDrivingLimit,
			Message: fmt.Sprintf(
				"%s would drive %.1fh in week %d/%d, over the %.0fh weekly limit",
				driver.Name, total, week, year, WeeklyDrivingLimit,
			),
		})
	case total > WeeklyApproachThreshold:
		report.Warnings = append(report.Warnings, domain.Finding{
			Type:       domain.FindingApproachingLimit,
			Severity:   domain.SeverityWarning,
			DriverID:   driver.DriverID,
			DriverName: driver.Name,
			Date:       date,
			Value:      total,
			Limit:      WeeklyDrivingLimit,
			Message: fmt.Sprintf(
				"%s would drive %.1fh in week %d/%d, approaching the %.0fh weekly limit",
				driver.Name, total, week, year, WeeklyDrivingLimit,
			),
		})
	}
}
