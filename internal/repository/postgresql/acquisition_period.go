package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/acquisition"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/database"
)

const acquisitionPeriodColumns = `id, employee_id, start_date, end_date, year, status, created_at, updated_at`

type acquisitionPeriodRepositoryImpl struct {
	db *database.DB
}

func NewAcquisitionPeriodRepository(db *database.DB) acquisition.AcquisitionPeriodRepository {
	return &acquisitionPeriodRepositoryImpl{db: db}
}

func scanAcquisitionPeriod(row pgx.Row) (acquisition.AcquisitionPeriod, error) {
	var (
		p      acquisition.AcquisitionPeriod
		status string
	)
	if err := row.Scan(&p.ID, &p.EmployeeID, &p.StartDate, &p.EndDate, &p.Year, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return acquisition.AcquisitionPeriod{}, err
	}
	p.Status = acquisition.Status(status)
	p.StartDate = calendar.Anchor(p.StartDate)
	p.EndDate = calendar.Anchor(p.EndDate)
	return p, nil
}

// Create implements acquisition.AcquisitionPeriodRepository.
func (r *acquisitionPeriodRepositoryImpl) Create(ctx context.Context, p acquisition.AcquisitionPeriod) (acquisition.AcquisitionPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO acquisition_periods (employee_id, start_date, end_date, year, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'open', NOW(), NOW())
		RETURNING ` + acquisitionPeriodColumns

	created, err := scanAcquisitionPeriod(q.QueryRow(ctx, query, p.EmployeeID, p.StartDate, p.EndDate, p.Year))
	if err != nil {
		return acquisition.AcquisitionPeriod{}, fmt.Errorf("failed to create acquisition period: %w", err)
	}
	return created, nil
}

// GetByID implements acquisition.AcquisitionPeriodRepository.
func (r *acquisitionPeriodRepositoryImpl) GetByID(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	if !validID(id) {
		return acquisition.AcquisitionPeriod{}, acquisition.ErrAcquisitionPeriodNotFound
	}
	q := GetQuerier(ctx, r.db)

	p, err := scanAcquisitionPeriod(q.QueryRow(ctx, `SELECT `+acquisitionPeriodColumns+` FROM acquisition_periods WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return acquisition.AcquisitionPeriod{}, acquisition.ErrAcquisitionPeriodNotFound
		}
		return acquisition.AcquisitionPeriod{}, fmt.Errorf("failed to get acquisition period: %w", err)
	}
	return p, nil
}

// ListByEmployee implements acquisition.AcquisitionPeriodRepository.
func (r *acquisitionPeriodRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, status *acquisition.Status) ([]acquisition.AcquisitionPeriod, error) {
	periods := make([]acquisition.AcquisitionPeriod, 0)
	if !validID(employeeID) {
		return periods, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + acquisitionPeriodColumns + ` FROM acquisition_periods WHERE employee_id = $1`
	args := []interface{}{employeeID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY start_date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list acquisition periods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanAcquisitionPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// Consume implements acquisition.AcquisitionPeriodRepository.
func (r *acquisitionPeriodRepositoryImpl) Consume(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	p, err := r.transition(ctx, id, `
		UPDATE acquisition_periods SET status = 'used', updated_at = NOW()
		WHERE id = $1 AND status = 'open'
		RETURNING `+acquisitionPeriodColumns)
	if errors.Is(err, pgx.ErrNoRows) {
		return acquisition.AcquisitionPeriod{}, acquisition.ErrPeriodNotOpen
	}
	return p, err
}

// Release implements acquisition.AcquisitionPeriodRepository.
func (r *acquisitionPeriodRepositoryImpl) Release(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	p, err := r.transition(ctx, id, `
		UPDATE acquisition_periods SET status = 'open', updated_at = NOW()
		WHERE id = $1 AND status = 'used'
		RETURNING `+acquisitionPeriodColumns)
	if errors.Is(err, pgx.ErrNoRows) {
		return acquisition.AcquisitionPeriod{}, acquisition.ErrPeriodNotUsed
	}
	return p, err
}

// Close implements acquisition.AcquisitionPeriodRepository.
func (r *acquisitionPeriodRepositoryImpl) Close(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	p, err := r.transition(ctx, id, `
		UPDATE acquisition_periods SET status = 'closed', updated_at = NOW()
		WHERE id = $1 AND status IN ('open', 'used')
		RETURNING `+acquisitionPeriodColumns)
	if errors.Is(err, pgx.ErrNoRows) {
		return acquisition.AcquisitionPeriod{}, acquisition.ErrPeriodAlreadyClosed
	}
	return p, err
}

// Reopen implements acquisition.AcquisitionPeriodRepository.
func (r *acquisitionPeriodRepositoryImpl) Reopen(ctx context.Context, id string) (acquisition.AcquisitionPeriod, error) {
	p, err := r.transition(ctx, id, `
		UPDATE acquisition_periods SET status = 'open', updated_at = NOW()
		WHERE id = $1 AND status = 'closed'
		  AND NOT EXISTS (SELECT 1 FROM vacation_entries WHERE acquisition_period_id = $1)
		RETURNING `+acquisitionPeriodColumns)
	if !errors.Is(err, pgx.ErrNoRows) {
		return p, err
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return acquisition.AcquisitionPeriod{}, err
	}
	if current.Status == acquisition.StatusOpen {
		return acquisition.AcquisitionPeriod{}, acquisition.ErrPeriodNotClosed
	}
	return acquisition.AcquisitionPeriod{}, acquisition.ErrPeriodInUse
}

// transition runs a conditional UPDATE. It returns pgx.ErrNoRows when the period
// exists but did not match, and the not-found error when it does not exist.
func (r *acquisitionPeriodRepositoryImpl) transition(ctx context.Context, id string, query string) (acquisition.AcquisitionPeriod, error) {
	if !validID(id) {
		return acquisition.AcquisitionPeriod{}, acquisition.ErrAcquisitionPeriodNotFound
	}
	q := GetQuerier(ctx, r.db)

	p, err := scanAcquisitionPeriod(q.QueryRow(ctx, query, id))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return acquisition.AcquisitionPeriod{}, fmt.Errorf("failed to update acquisition period: %w", err)
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return acquisition.AcquisitionPeriod{}, err
	}
	return acquisition.AcquisitionPeriod{}, pgx.ErrNoRows
}
