package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/database"
)

const (
	overtimeEntryColumns = `id, company_id, employee_id, cost_center_id, budget_period_id, function, year, month,
		he50_qty, he100_qty, holiday_days_qty, night_hours_qty,
		he50_value, he100_value, holiday_value, night_value, dsr_value, dsr_night_value, total_value,
		reference_amount, variance, variance_percentage, status, created_at, updated_at`

	uqOvertimeEmployeeMonth = "uq_overtime_entries_employee_period_month"
)

type overtimeEntryRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeEntryRepository(db *database.DB) overtime.OvertimeEntryRepository {
	return &overtimeEntryRepositoryImpl{db: db}
}

func scanOvertimeEntry(row pgx.Row) (overtime.OvertimeEntry, error) {
	var (
		e      overtime.OvertimeEntry
		status string
	)
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.EmployeeID, &e.CostCenterID, &e.BudgetPeriodID, &e.Function, &e.Year, &e.Month,
		&e.Quantities.HE50, &e.Quantities.HE100, &e.Quantities.HolidayDays, &e.Quantities.NightHours,
		&e.Values.HE50, &e.Values.HE100, &e.Values.Holiday, &e.Values.Night, &e.Values.DSR, &e.Values.DSRNight, &e.Values.Total,
		&e.ReferenceAmount, &e.Variance, &e.VariancePercentage, &status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return overtime.OvertimeEntry{}, err
	}
	e.Status = overtime.Status(status)
	return e, nil
}

// CreateBatch implements overtime.OvertimeEntryRepository.
func (r *overtimeEntryRepositoryImpl) CreateBatch(ctx context.Context, entries []overtime.OvertimeEntry) ([]overtime.OvertimeEntry, error) {
	query := `
		INSERT INTO overtime_entries (
			company_id, employee_id, cost_center_id, budget_period_id, function, year, month,
			he50_qty, he100_qty, holiday_days_qty, night_hours_qty,
			he50_value, he100_value, holiday_value, night_value, dsr_value, dsr_night_value, total_value,
			reference_amount, variance, variance_percentage, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, NOW(), NOW()
		)
		RETURNING ` + overtimeEntryColumns

	created := make([]overtime.OvertimeEntry, 0, len(entries))
	err := r.db.WithinTransaction(ctx, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		for _, e := range entries {
			row := q.QueryRow(ctx, query,
				e.CompanyID, e.EmployeeID, e.CostCenterID, e.BudgetPeriodID, e.Function, e.Year, e.Month,
				e.Quantities.HE50, e.Quantities.HE100, e.Quantities.HolidayDays, e.Quantities.NightHours,
				e.Values.HE50, e.Values.HE100, e.Values.Holiday, e.Values.Night, e.Values.DSR, e.Values.DSRNight, e.Values.Total,
				e.ReferenceAmount, e.Variance, e.VariancePercentage, string(e.Status),
			)
			saved, err := scanOvertimeEntry(row)
			if err != nil {
				if isUniqueViolation(err, uqOvertimeEmployeeMonth) {
					return fmt.Errorf("month %d: %w", e.Month, overtime.ErrDuplicateMonth)
				}
				return fmt.Errorf("failed to create overtime entry: %w", err)
			}
			created = append(created, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID implements overtime.OvertimeEntryRepository.
func (r *overtimeEntryRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.OvertimeEntry, error) {
	if !validID(id) {
		return overtime.OvertimeEntry{}, overtime.ErrOvertimeEntryNotFound
	}
	q := GetQuerier(ctx, r.db)

	e, err := scanOvertimeEntry(q.QueryRow(ctx, `SELECT `+overtimeEntryColumns+` FROM overtime_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.OvertimeEntry{}, overtime.ErrOvertimeEntryNotFound
		}
		return overtime.OvertimeEntry{}, fmt.Errorf("failed to get overtime entry: %w", err)
	}
	return e, nil
}

// List implements overtime.OvertimeEntryRepository.
func (r *overtimeEntryRepositoryImpl) List(ctx context.Context, filter overtime.Filter) ([]overtime.OvertimeEntry, error) {
	entries := make([]overtime.OvertimeEntry, 0)
	if !validID(filter.CompanyID) || (filter.EmployeeID != nil && !validID(*filter.EmployeeID)) {
		return entries, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeEntryColumns + ` FROM overtime_entries WHERE company_id = $1`
	args := []interface{}{filter.CompanyID}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		query += fmt.Sprintf(" AND year = $%d", len(args))
	}
	query += " ORDER BY year DESC, month, employee_id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanOvertimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Update implements overtime.OvertimeEntryRepository.
func (r *overtimeEntryRepositoryImpl) Update(ctx context.Context, e overtime.OvertimeEntry) (overtime.OvertimeEntry, error) {
	if !validID(e.ID) {
		return overtime.OvertimeEntry{}, overtime.ErrOvertimeEntryNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_entries SET
			he50_qty = $2, he100_qty = $3, holiday_days_qty = $4, night_hours_qty = $5,
			he50_value = $6, he100_value = $7, holiday_value = $8, night_value = $9,
			dsr_value = $10, dsr_night_value = $11, total_value = $12,
			reference_amount = $13, variance = $14, variance_percentage = $15,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + overtimeEntryColumns

	updated, err := scanOvertimeEntry(q.QueryRow(ctx, query, e.ID,
		e.Quantities.HE50, e.Quantities.HE100, e.Quantities.HolidayDays, e.Quantities.NightHours,
		e.Values.HE50, e.Values.HE100, e.Values.Holiday, e.Values.Night,
		e.Values.DSR, e.Values.DSRNight, e.Values.Total,
		e.ReferenceAmount, e.Variance, e.VariancePercentage,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.OvertimeEntry{}, overtime.ErrOvertimeEntryNotFound
		}
		return overtime.OvertimeEntry{}, fmt.Errorf("failed to update overtime entry: %w", err)
	}
	return updated, nil
}

// Delete implements overtime.OvertimeEntryRepository.
func (r *overtimeEntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return overtime.ErrOvertimeEntryNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM overtime_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete overtime entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrOvertimeEntryNotFound
	}
	return nil
}

// TotalForEmployeeMonth implements overtime.OvertimeEntryRepository.
func (r *overtimeEntryRepositoryImpl) TotalForEmployeeMonth(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	if !validID(employeeID) {
		return decimal.Zero, nil
	}
	q := GetQuerier(ctx, r.db)

	var total decimal.Decimal
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_value), 0)
		FROM overtime_entries
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`, employeeID, year, month).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum overtime entries: %w", err)
	}
	return total, nil
}
