package budget

import "time"

// Status is the lifecycle state of a budget period.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusOpen    Status = "open"
	StatusClosed  Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusOpen, StatusClosed:
		return true
	}
	return false
}

// BudgetPeriod is a company's yearly window against which compensation entries are logged.
type BudgetPeriod struct {
	ID          string
	CompanyID   string
	Year        int
	StartDate   time.Time
	EndDate     time.Time
	Status      Status
	Description string
	ClosedBy    *string
	ClosedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p BudgetPeriod) IsOpen() bool {
	return p.Status == StatusOpen
}

func (p BudgetPeriod) IsClosed() bool {
	return p.Status == StatusClosed
}
