package appointment

import "github.com/BruksfildServices01/beauty-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Appointment Type
// ===============================

const (
	TypePersonal = "personal"
	TypeSalon    = "salon"
)

// ===============================
// Validations
// ===============================

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func CheckStatus(s string) error {
	if !ValidStatus(s) {
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}

func ValidType(t string) bool {
	return t == TypePersonal || t == TypeSalon
}

func InitialStatus() Status {
	return StatusUpcoming
}
