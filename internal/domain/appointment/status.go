package appointment

import "github.com/alphaclinic/clinic-manager/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusBooked
}

func IsRecognized(s Status) bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusNoShow, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Transitions
// ===============================

// CanTransition rejects only unrecognized targets. Any recognized
// status may move to any other, including completed back to booked
// ("reopen"); the status set is intentionally not a strict DAG.
func CanTransition(current, next Status) error {
	if !IsRecognized(next) {
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}

// MessageKey is the user-facing key reported after a successful status
// change.
func MessageKey(next Status) string {
	switch next {
	case StatusCompleted:
		return "visit_created"
	case StatusNoShow:
		return "no_show"
	case StatusCancelled:
		return "cancelled"
	case StatusBooked:
		return "reopened"
	}
	return "invalid_status"
}
