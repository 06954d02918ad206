package domain

import "time"

// Closed set of trip types the allocator can schedule. Each type has a fixed
// driving-hour cost and a resource transition defined in the capacity engine.
type TripType string

const (
	TripSupply             TripType = "SUPPLY"
	TripSupplyFromLivigno  TripType = "SUPPLY_FROM_LIVIGNO"
	TripTransfer           TripType = "TRANSFER"
	TripShuttle            TripType = "SHUTTLE"
	TripShuttleFromLivigno TripType = "SHUTTLE_FROM_LIVIGNO"
	TripFullRound          TripType = "FULL_ROUND"
)

// AllTripTypes lists every trip type in declaration order.
var AllTripTypes = []TripType{
	TripSupply,
	TripSupplyFromLivigno,
	TripTransfer,
	TripShuttle,
	TripShuttleFromLivigno,
	TripFullRound,
}

// Valid reports whether t is one of the six known trip types.
func (t TripType) Valid() bool {
	switch t {
	case TripSupply, TripSupplyFromLivigno, TripTransfer,
		TripShuttle, TripShuttleFromLivigno, TripFullRound:
		return true
	}
	return false
}

type TripStatus string

const (
	TripPlanned   TripStatus = "PLANNED"
	TripConfirmed TripStatus = "CONFIRMED"
	TripCompleted TripStatus = "COMPLETED"
	TripCancelled TripStatus = "CANCELLED"
)

// A committed trip belonging to a schedule.
type Trip struct {
	TripID        string
	ScheduleID    string
	Date          time.Time
	DepartureTime string
	ReturnTime    string
	DriverID      string
	VehicleID     string
	TrailerID     string
	Type          TripType
	Status        TripStatus
}
