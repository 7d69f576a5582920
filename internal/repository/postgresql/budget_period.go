package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/budget"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/database"
)

const (
	budgetPeriodColumns = `id, company_id, year, start_date, end_date, status, description,
		closed_by, closed_at, created_at, updated_at`

	uqBudgetPeriodOpen = "uq_budget_periods_company_open"
)

type budgetPeriodRepositoryImpl struct {
	db *database.DB
}

func NewBudgetPeriodRepository(db *database.DB) budget.BudgetPeriodRepository {
	return &budgetPeriodRepositoryImpl{db: db}
}

func scanBudgetPeriod(row pgx.Row) (budget.BudgetPeriod, error) {
	var (
		p      budget.BudgetPeriod
		status string
	)
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Year, &p.StartDate, &p.EndDate, &status, &p.Description,
		&p.ClosedBy, &p.ClosedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return budget.BudgetPeriod{}, err
	}
	p.Status = budget.Status(status)
	p.StartDate = calendar.Anchor(p.StartDate)
	p.EndDate = calendar.Anchor(p.EndDate)
	return p, nil
}

// Create implements budget.BudgetPeriodRepository.
func (r *budgetPeriodRepositoryImpl) Create(ctx context.Context, p budget.BudgetPeriod) (budget.BudgetPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO budget_periods (company_id, year, start_date, end_date, status, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'open', $5, NOW(), NOW())
		RETURNING ` + budgetPeriodColumns

	created, err := scanBudgetPeriod(q.QueryRow(ctx, query, p.CompanyID, p.Year, p.StartDate, p.EndDate, p.Description))
	if err != nil {
		if isUniqueViolation(err, uqBudgetPeriodOpen) {
			return budget.BudgetPeriod{}, budget.ErrOpenPeriodExists
		}
		return budget.BudgetPeriod{}, fmt.Errorf("failed to create budget period: %w", err)
	}
	return created, nil
}

// GetByID implements budget.BudgetPeriodRepository.
func (r *budgetPeriodRepositoryImpl) GetByID(ctx context.Context, id string) (budget.BudgetPeriod, error) {
	return r.getOne(ctx, budget.ErrBudgetPeriodNotFound, `SELECT `+budgetPeriodColumns+` FROM budget_periods WHERE id = $1`, id)
}

// LockByID implements budget.BudgetPeriodRepository.
func (r *budgetPeriodRepositoryImpl) LockByID(ctx context.Context, id string) (budget.BudgetPeriod, error) {
	return r.getOne(ctx, budget.ErrBudgetPeriodNotFound, `SELECT `+budgetPeriodColumns+` FROM budget_periods WHERE id = $1 FOR SHARE`, id)
}

// GetOpenByCompany implements budget.BudgetPeriodRepository.
func (r *budgetPeriodRepositoryImpl) GetOpenByCompany(ctx context.Context, companyID string) (budget.BudgetPeriod, error) {
	return r.getOne(ctx, budget.ErrNoOpenPeriod, `
		SELECT `+budgetPeriodColumns+` FROM budget_periods
		WHERE company_id = $1 AND status = 'open'`, companyID)
}

// LockOpenByCompany implements budget.BudgetPeriodRepository.
func (r *budgetPeriodRepositoryImpl) LockOpenByCompany(ctx context.Context, companyID string) (budget.BudgetPeriod, error) {
	return r.getOne(ctx, budget.ErrNoOpenPeriod, `
		SELECT `+budgetPeriodColumns+` FROM budget_periods
		WHERE company_id = $1 AND status = 'open'
		FOR SHARE`, companyID)
}

func (r *budgetPeriodRepositoryImpl) getOne(ctx context.Context, notFound error, query string, id string) (budget.BudgetPeriod, error) {
	if !validID(id) {
		return budget.BudgetPeriod{}, notFound
	}
	q := GetQuerier(ctx, r.db)

	p, err := scanBudgetPeriod(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return budget.BudgetPeriod{}, notFound
		}
		return budget.BudgetPeriod{}, fmt.Errorf("failed to get budget period: %w", err)
	}
	return p, nil
}

// ListByCompany implements budget.BudgetPeriodRepository.
func (r *budgetPeriodRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]budget.BudgetPeriod, error) {
	periods := make([]budget.BudgetPeriod, 0)
	if !validID(companyID) {
		return periods, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + budgetPeriodColumns + `
		FROM budget_periods
		WHERE company_id = $1
		ORDER BY year DESC, start_date DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget periods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanBudgetPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// Close implements budget.BudgetPeriodRepository.
func (r *budgetPeriodRepositoryImpl) Close(ctx context.Context, id string, closedBy string, closedAt time.Time) (budget.BudgetPeriod, error) {
	query := `
		UPDATE budget_periods
		SET status = 'closed', closed_by = $2, closed_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'open'
		RETURNING ` + budgetPeriodColumns

	return r.transition(ctx, id, budget.ErrPeriodNotOpen, query, id, closedBy, closedAt)
}

// Reopen implements budget.BudgetPeriodRepository.
func (r *budgetPeriodRepositoryImpl) Reopen(ctx context.Context, id string) (budget.BudgetPeriod, error) {
	query := `
		UPDATE budget_periods
		SET status = 'open', closed_by = NULL, closed_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'closed'
		RETURNING ` + budgetPeriodColumns

	return r.transition(ctx, id, budget.ErrPeriodNotClosed, query, id)
}

// Update implements budget.BudgetPeriodRepository.
func (r *budgetPeriodRepositoryImpl) Update(ctx context.Context, p budget.BudgetPeriod) (budget.BudgetPeriod, error) {
	query := `
		UPDATE budget_periods
		SET year = $2, start_date = $3, end_date = $4, description = $5, updated_at = NOW()
		WHERE id = $1 AND status <> 'closed'
		RETURNING ` + budgetPeriodColumns

	return r.transition(ctx, p.ID, budget.ErrPeriodClosed, query, p.ID, p.Year, p.StartDate, p.EndDate, p.Description)
}

// transition runs a conditional UPDATE. When no row matched it tells a missing
// period apart from one in the wrong state.
func (r *budgetPeriodRepositoryImpl) transition(ctx context.Context, id string, wrongState error, query string, args ...interface{}) (budget.BudgetPeriod, error) {
	if !validID(id) {
		return budget.BudgetPeriod{}, budget.ErrBudgetPeriodNotFound
	}
	q := GetQuerier(ctx, r.db)

	p, err := scanBudgetPeriod(q.QueryRow(ctx, query, args...))
	switch {
	case err == nil:
		return p, nil
	case isUniqueViolation(err, uqBudgetPeriodOpen):
		return budget.BudgetPeriod{}, budget.ErrOpenPeriodExists
	case !errors.Is(err, pgx.ErrNoRows):
		return budget.BudgetPeriod{}, fmt.Errorf("failed to update budget period: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return budget.BudgetPeriod{}, err
	}
	return budget.BudgetPeriod{}, wrongState
}
