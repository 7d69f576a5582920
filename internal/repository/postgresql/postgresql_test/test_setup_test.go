package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/database"
)

// TestDatabaseSetup holds a migrated connection to the test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies migrations. The
// test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 8, MinConns: 1}, nil)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	require.NoError(t, db.RunMigrations())

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	return setup
}

// TruncateAllTables removes every row written by the repositories.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"vacation_entries",
		"overtime_entries",
		"acquisition_periods",
		"budget_periods",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// CreateEmployee inserts a masters-data employee row.
func (s *TestDatabaseSetup) CreateEmployee(t *testing.T, companyID string, salary int64) employee.Employee {
	t.Helper()
	e := employee.Employee{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		FullName:  "Test Employee",
		Function:  "Analyst",
		Salary:    decimal.NewFromInt(salary),
	}
	_, err := s.DB.Exec(context.Background(), `
		INSERT INTO employees (id, company_id, full_name, function, salary, danger_pay)
		VALUES ($1, $2, $3, $4, $5, FALSE)
	`, e.ID, e.CompanyID, e.FullName, e.Function, e.Salary)
	require.NoError(t, err)
	return e
}
