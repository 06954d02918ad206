package compliance

import (
	"testing"
	"time"

	"fuel-logistics-service/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func driver(id, name string) *domain.Driver {
	return &domain.Driver{DriverID: id, Name: name, Type: domain.DriverTirano}
}

func trip(driverID string, date time.Time) *domain.Trip {
	return &domain.Trip{
		TripID:   driverID + "-" + date.Format("2006-01-02"),
		DriverID: driverID,
		Date:     date,
		Type:     domain.TripFullRound,
		Status:   domain.TripPlanned,
	}
}

func countFindings(findings []domain.Finding, ft domain.FindingType) int {
	n := 0
	for _, f := range findings {
		if f.Type == ft {
			n++
		}
	}
	return n
}

func TestValidateScheduleCleanPlan(t *testing.T) {
	d := driver("drv-1", "Marco")

	report, err := ValidateSchedule(ScheduleInput{
		Schedule: &domain.Schedule{
			StartDate: day(1),
			EndDate:   day(5),
			Trips:     []*domain.Trip{trip("drv-1", day(1)), trip("drv-1", day(3))},
		},
		Drivers: map[string]*domain.Driver{"drv-1": d},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.IsValid {
		t.Fatalf("expected valid report, got violations %+v", report.Violations)
	}
	if len(report.Violations) != 0 {
		t.Fatalf("expected no violations, got %d", len(report.Violations))
	}
	// One 8h trip per day still approaches the 9h daily budget.
	if got := countFindings(report.Warnings, domain.FindingApproachingLimit); got != 2 {
		t.Fatalf("expected 2 approaching-limit warnings, got %d", got)
	}
}

func TestValidateScheduleExpiredLicense(t *testing.T) {
	expiry := day(3)
	d := driver("drv-1", "Marco")
	d.ADRLicenseExpiry = &expiry

	report, err := ValidateSchedule(ScheduleInput{
		Schedule: &domain.Schedule{
			StartDate: day(1),
			EndDate:   day(5),
			Trips:     []*domain.Trip{trip("drv-1", day(1))},
		},
		Drivers: map[string]*domain.Driver{"drv-1": d},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.IsValid {
		t.Fatalf("expected invalid report")
	}
	if got := countFindings(report.Violations, domain.FindingLicenseExpired); got != 1 {
		t.Fatalf("expected exactly one expired-license violation, got %d", got)
	}
}

func TestValidateScheduleLicenseExpiringSoon(t *testing.T) {
	expiry := day(5).AddDate(0, 0, 10)
	d := driver("drv-1", "Marco")
	d.ADRCisternExpiry = &expiry

	report, err := ValidateSchedule(ScheduleInput{
		Schedule: &domain.Schedule{
			StartDate: day(1),
			EndDate:   day(5),
			Trips:     []*domain.Trip{trip("drv-1", day(1))},
		},
		Drivers: map[string]*domain.Driver{"drv-1": d},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.IsValid {
		t.Fatalf("a soon-to-expire license must not invalidate the plan")
	}
	if got := countFindings(report.Warnings, domain.FindingLicenseExpiring); got != 1 {
		t.Fatalf("expected one expiring-license warning, got %d", got)
	}
}

func TestValidateScheduleDailyOverrun(t *testing.T) {
	d := driver("drv-1", "Marco")

	// Two trips on the same day estimate to 16h, over the 10h daily limit.
	report, err := ValidateSchedule(ScheduleInput{
		Schedule: &domain.Schedule{
			StartDate: day(1),
			EndDate:   day(5),
			Trips: []*domain.Trip{
				trip("drv-1", day(1)),
				{TripID: "second", DriverID: "drv-1", Date: day(1), Type: domain.TripShuttle, Status: domain.TripPlanned},
			},
		},
		Drivers: map[string]*domain.Driver{"drv-1": d},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.IsValid {
		t.Fatalf("expected invalid report")
	}
	if got := countFindings(report.Violations, domain.FindingDailyDriving); got != 1 {
		t.Fatalf("expected one daily-driving violation, got %d", got)
	}
}

func TestValidateScheduleWorkLogsPushIntoExtendedDay(t *testing.T) {
	d := driver("drv-1", "Marco")

	report, err := ValidateSchedule(ScheduleInput{
		Schedule: &domain.Schedule{
			StartDate: day(1),
			EndDate:   day(5),
			Trips:     []*domain.Trip{trip("drv-1", day(1))},
		},
		Drivers: map[string]*domain.Driver{"drv-1": d},
		WorkLogs: []*domain.WorkLog{
			{DriverID: "drv-1", Date: day(1), DrivingHours: 1.5},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 8h estimate + 1.5h logged = 9.5h: allowed, but an extended day.
	if !report.IsValid {
		t.Fatalf("expected valid report, got violations %+v", report.Violations)
	}
	if got := countFindings(report.Warnings, domain.FindingExtendedDayUsed); got != 1 {
		t.Fatalf("expected one extended-day warning, got %d", got)
	}
}

func TestValidateScheduleWeeklyOverrun(t *testing.T) {
	d := driver("drv-1", "Marco")

	// Eight trips in one ISO week estimate to 64h, over the 56h weekly limit.
	trips := make([]*domain.Trip, 0, 8)
	for i := 0; i < 8; i++ {
		date := day(7).AddDate(0, 0, i%5) // Mon..Fri of week 37
		trips = append(trips, &domain.Trip{
			TripID:   string(rune('a' + i)),
			DriverID: "drv-1",
			Date:     date,
			Type:     domain.TripShuttle,
			Status:   domain.TripPlanned,
		})
	}

	report, err := ValidateSchedule(ScheduleInput{
		Schedule: &domain.Schedule{
			StartDate: day(7),
			EndDate:   day(11),
			Trips:     trips,
		},
		Drivers: map[string]*domain.Driver{"drv-1": d},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.IsValid {
		t.Fatalf("expected invalid report")
	}
	if got := countFindings(report.Violations, domain.FindingWeeklyDriving); got != 1 {
		t.Fatalf("expected one weekly-driving violation, got %d", got)
	}
}

func TestValidateScheduleWeeklyApproaching(t *testing.T) {
	d := driver("drv-1", "Marco")

	// Six trips estimate to 48h: under the limit, over the 80% threshold.
	trips := make([]*domain.Trip, 0, 6)
	for i := 0; i < 6; i++ {
		trips = append(trips, &domain.Trip{
			TripID:   string(rune('a' + i)),
			DriverID: "drv-1",
			Date:     day(7).AddDate(0, 0, i%5),
			Type:     domain.TripShuttle,
			Status:   domain.TripPlanned,
		})
	}

	report, err := ValidateSchedule(ScheduleInput{
		Schedule: &domain.Schedule{StartDate: day(7), EndDate: day(11), Trips: trips},
		Drivers:  map[string]*domain.Driver{"drv-1": d},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	weeklyWarnings := 0
	for _, f := range report.Warnings {
		if f.Type == domain.FindingApproachingLimit && f.Limit == WeeklyDrivingLimit {
			weeklyWarnings++
		}
	}
	if weeklyWarnings != 1 {
		t.Fatalf("expected one weekly approaching-limit warning, got %d", weeklyWarnings)
	}
}

func TestValidateScheduleSkipsCancelledTrips(t *testing.T) {
	d := driver("drv-1", "Marco")

	cancelled := trip("drv-1", day(1))
	cancelled.Status = domain.TripCancelled

	report, err := ValidateSchedule(ScheduleInput{
		Schedule: &domain.Schedule{
			StartDate: day(1),
			EndDate:   day(5),
			Trips:     []*domain.Trip{cancelled},
		},
		Drivers: map[string]*domain.Driver{"drv-1": d},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.IsValid || len(report.Warnings) != 0 {
		t.Fatalf("cancelled trips must not produce findings: %+v", report)
	}
}

func TestValidateScheduleUnknownDriver(t *testing.T) {
	_, err := ValidateSchedule(ScheduleInput{
		Schedule: &domain.Schedule{
			StartDate: day(1),
			EndDate:   day(5),
			Trips:     []*domain.Trip{trip("ghost", day(1))},
		},
		Drivers: map[string]*domain.Driver{},
	})
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestValidateScheduleNilSchedule(t *testing.T) {
	if _, err := ValidateSchedule(ScheduleInput{}); err == nil {
		t.Fatalf("expected error for nil schedule")
	}
}

func TestValidateSingleTrip(t *testing.T) {
	d := driver("drv-1", "Marco")

	// 2h existing + 8h estimate = 10h: at the limit, warns but passes.
	report, err := ValidateSingleTrip(TripCheckInput{
		Driver:             d,
		Date:               day(1),
		ExistingDailyHours: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.IsValid {
		t.Fatalf("10h exactly must still be allowed: %+v", report.Violations)
	}
	if got := countFindings(report.Warnings, domain.FindingExtendedDayUsed); got != 1 {
		t.Fatalf("expected one extended-day warning, got %d", got)
	}

	// 2.5h existing pushes past the daily limit.
	report, err = ValidateSingleTrip(TripCheckInput{
		Driver:             d,
		Date:               day(1),
		ExistingDailyHours: 2.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.IsValid {
		t.Fatalf("expected invalid report")
	}
	if got := countFindings(report.Violations, domain.FindingDailyDriving); got != 1 {
		t.Fatalf("expected one daily-driving violation, got %d", got)
	}

	// 50h existing in the week pushes past the weekly limit.
	report, err = ValidateSingleTrip(TripCheckInput{
		Driver:              d,
		Date:                day(1),
		ExistingWeeklyHours: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := countFindings(report.Violations, domain.FindingWeeklyDriving); got != 1 {
		t.Fatalf("expected one weekly-driving violation, got %d", got)
	}
}

func TestValidateSingleTripRequiresDriverAndDate(t *testing.T) {
	if _, err := ValidateSingleTrip(TripCheckInput{Date: day(1)}); err == nil {
		t.Fatalf("expected error for nil driver")
	}
	if _, err := ValidateSingleTrip(TripCheckInput{Driver: driver("d", "n")}); err == nil {
		t.Fatalf("expected error for zero date")
	}
}
