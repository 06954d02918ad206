package domain

import "time"

// Pool a driver belongs to, named after the base they start their day from.
type DriverType string

const (
	DriverTirano  DriverType = "TIRANO"
	DriverLivigno DriverType = "LIVIGNO"
)

// A commercial driver with ADR hazardous-goods qualifications.
// License expiry dates are optional: a nil expiry means the record store
// has no expiry on file and the compliance validator skips that check.
type Driver struct {
	DriverID          string
	Name              string
	Type              DriverType
	HourlyCost        float64
	BaseLocationID    string
	ADRLicenseExpiry  *time.Time
	ADRCisternExpiry  *time.Time
	WeeklyWorkingDays int
}
