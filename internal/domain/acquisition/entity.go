package acquisition

import "time"

type Status string

const (
	StatusOpen   Status = "open"
	StatusUsed   Status = "used"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusUsed, StatusClosed:
		return true
	}
	return false
}

// AcquisitionPeriod is an employee's twelve-month vacation entitlement window.
// It becomes used when a vacation entry is saved against it.
type AcquisitionPeriod struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Year       int
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
