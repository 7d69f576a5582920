package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/vacation"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/database"
)

const (
	vacationEntryColumns = `id, employee_id, company_id, sector_id, budget_period_id,
		acquisition_period_id, acquisition_period_start, acquisition_period_end,
		month, year, vacation_days, abono_days, thirteenth_advance,
		base_salary, overtime_average, daily_value, vacation_value, onethird_value,
		abono_value, abono_onethird_value, thirteenth_value,
		status, created_at, updated_at`

	uqVacationAcquisitionPeriod = "uq_vacation_entries_acquisition_period"
)

type vacationEntryRepositoryImpl struct {
	db *database.DB
}

func NewVacationEntryRepository(db *database.DB) vacation.VacationEntryRepository {
	return &vacationEntryRepositoryImpl{db: db}
}

func scanVacationEntry(row pgx.Row) (vacation.VacationEntry, error) {
	var (
		e      vacation.VacationEntry
		status string
	)
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.CompanyID, &e.SectorID, &e.BudgetPeriodID,
		&e.AcquisitionPeriodID, &e.AcquisitionPeriodStart, &e.AcquisitionPeriodEnd,
		&e.Month, &e.Year, &e.VacationDays, &e.AbonoDays, &e.ThirteenthAdvance,
		&e.BaseSalary, &e.OvertimeAverage, &e.DailyValue, &e.VacationValue, &e.OnethirdValue,
		&e.AbonoValue, &e.AbonoOnethirdValue, &e.ThirteenthValue,
		&status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return vacation.VacationEntry{}, err
	}
	e.Status = vacation.Status(status)
	e.AcquisitionPeriodStart = calendar.Anchor(e.AcquisitionPeriodStart)
	e.AcquisitionPeriodEnd = calendar.Anchor(e.AcquisitionPeriodEnd)
	return e, nil
}

// Create implements vacation.VacationEntryRepository.
func (r *vacationEntryRepositoryImpl) Create(ctx context.Context, e vacation.VacationEntry) (vacation.VacationEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vacation_entries (
			employee_id, company_id, sector_id, budget_period_id,
			acquisition_period_id, acquisition_period_start, acquisition_period_end,
			month, year, vacation_days, abono_days, thirteenth_advance,
			base_salary, overtime_average, daily_value, vacation_value, onethird_value,
			abono_value, abono_onethird_value, thirteenth_value,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, $19, $20,
			$21, NOW(), NOW()
		)
		RETURNING ` + vacationEntryColumns

	created, err := scanVacationEntry(q.QueryRow(ctx, query,
		e.EmployeeID, e.CompanyID, e.SectorID, e.BudgetPeriodID,
		e.AcquisitionPeriodID, e.AcquisitionPeriodStart, e.AcquisitionPeriodEnd,
		e.Month, e.Year, e.VacationDays, e.AbonoDays, e.ThirteenthAdvance,
		e.BaseSalary, e.OvertimeAverage, e.DailyValue, e.VacationValue, e.OnethirdValue,
		e.AbonoValue, e.AbonoOnethirdValue, e.ThirteenthValue,
		string(e.Status),
	))
	if err != nil {
		if isUniqueViolation(err, uqVacationAcquisitionPeriod) {
			return vacation.VacationEntry{}, vacation.ErrAcquisitionPeriodTaken
		}
		return vacation.VacationEntry{}, fmt.Errorf("failed to create vacation entry: %w", err)
	}
	return created, nil
}

// GetByID implements vacation.VacationEntryRepository.
func (r *vacationEntryRepositoryImpl) GetByID(ctx context.Context, id string) (vacation.VacationEntry, error) {
	if !validID(id) {
		return vacation.VacationEntry{}, vacation.ErrVacationEntryNotFound
	}
	q := GetQuerier(ctx, r.db)

	e, err := scanVacationEntry(q.QueryRow(ctx, `SELECT `+vacationEntryColumns+` FROM vacation_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacation.VacationEntry{}, vacation.ErrVacationEntryNotFound
		}
		return vacation.VacationEntry{}, fmt.Errorf("failed to get vacation entry: %w", err)
	}
	return e, nil
}

// List implements vacation.VacationEntryRepository.
func (r *vacationEntryRepositoryImpl) List(ctx context.Context, filter vacation.Filter) ([]vacation.VacationEntry, error) {
	entries := make([]vacation.VacationEntry, 0)
	if !validID(filter.CompanyID) || (filter.EmployeeID != nil && !validID(*filter.EmployeeID)) {
		return entries, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + vacationEntryColumns + ` FROM vacation_entries WHERE company_id = $1`
	args := []interface{}{filter.CompanyID}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	query += " ORDER BY year DESC, month, employee_id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacation entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanVacationEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete implements vacation.VacationEntryRepository.
func (r *vacationEntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return vacation.ErrVacationEntryNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM vacation_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vacation entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vacation.ErrVacationEntryNotFound
	}
	return nil
}

// UpdateStatus implements vacation.VacationEntryRepository.
func (r *vacationEntryRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to vacation.Status) (vacation.VacationEntry, error) {
	if !validID(id) {
		return vacation.VacationEntry{}, vacation.ErrVacationEntryNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vacation_entries SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + vacationEntryColumns

	e, err := scanVacationEntry(q.QueryRow(ctx, query, id, string(from), string(to)))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return vacation.VacationEntry{}, fmt.Errorf("failed to update vacation status: %w", err)
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return vacation.VacationEntry{}, err
	}
	return vacation.VacationEntry{}, vacation.ErrInvalidStatusTransition
}
