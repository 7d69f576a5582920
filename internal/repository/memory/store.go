// Package memory keeps every repository in process memory behind one mutex.
// It backs STORAGE_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/acquisition"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/budget"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/vacation"
)

type Store struct {
	mu  sync.Mutex
	now func() time.Time

	employees          map[string]employee.Employee
	budgetPeriods      map[string]budget.BudgetPeriod
	acquisitionPeriods map[string]acquisition.AcquisitionPeriod
	overtimeEntries    map[string]overtime.OvertimeEntry
	vacationEntries    map[string]vacation.VacationEntry
}

func NewStore() *Store {
	return &Store{
		now:                time.Now,
		employees:          make(map[string]employee.Employee),
		budgetPeriods:      make(map[string]budget.BudgetPeriod),
		acquisitionPeriods: make(map[string]acquisition.AcquisitionPeriod),
		overtimeEntries:    make(map[string]overtime.OvertimeEntry),
		vacationEntries:    make(map[string]vacation.VacationEntry),
	}
}

type txKey struct{}

// WithinTransaction implements database.Transactor. The store stays locked for the
// whole of fn and every change fn made is undone when it returns an error.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// lock takes the store mutex unless ctx already runs inside one of its transactions.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	budgetPeriods      map[string]budget.BudgetPeriod
	acquisitionPeriods map[string]acquisition.AcquisitionPeriod
	overtimeEntries    map[string]overtime.OvertimeEntry
	vacationEntries    map[string]vacation.VacationEntry
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		budgetPeriods:      maps.Clone(s.budgetPeriods),
		acquisitionPeriods: maps.Clone(s.acquisitionPeriods),
		overtimeEntries:    maps.Clone(s.overtimeEntries),
		vacationEntries:    maps.Clone(s.vacationEntries),
	}
}

func (s *Store) restore(snap snapshot) {
	s.budgetPeriods = snap.budgetPeriods
	s.acquisitionPeriods = snap.acquisitionPeriods
	s.overtimeEntries = snap.overtimeEntries
	s.vacationEntries = snap.vacationEntries
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// AddEmployee registers an employee the calculators can read.
func (s *Store) AddEmployee(e employee.Employee) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = newID()
	}
	s.employees[e.ID] = e
	return e
}

type employeeSeed struct {
	ID           string           `json:"id"`
	CompanyID    string           `json:"company_id"`
	CostCenterID *string          `json:"cost_center_id"`
	SectorID     *string          `json:"sector_id"`
	FullName     string           `json:"full_name"`
	Function     string           `json:"function"`
	Salary       decimal.Decimal  `json:"salary"`
	DangerPay    bool             `json:"danger_pay"`
	MonthlyHours *decimal.Decimal `json:"monthly_hours"`
}

// LoadEmployees seeds employees from a JSON array file.
func (s *Store) LoadEmployees(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read employee seed: %w", err)
	}

	var seeds []employeeSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return 0, fmt.Errorf("decode employee seed: %w", err)
	}

	for _, seed := range seeds {
		s.AddEmployee(employee.Employee{
			ID:           seed.ID,
			CompanyID:    seed.CompanyID,
			CostCenterID: seed.CostCenterID,
			SectorID:     seed.SectorID,
			FullName:     seed.FullName,
			Function:     seed.Function,
			Salary:       seed.Salary,
			DangerPay:    seed.DangerPay,
			MonthlyHours: seed.MonthlyHours,
		})
	}
	return len(seeds), nil
}

type employeeRepository struct{ s *Store }

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	defer r.s.lock(ctx)()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}
