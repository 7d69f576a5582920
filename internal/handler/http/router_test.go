package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-budget-go/internal/repository/memory"
	acquisitionService "github.com/cmlabs-hris/payroll-budget-go/internal/service/acquisition"
	budgetService "github.com/cmlabs-hris/payroll-budget-go/internal/service/budget"
	employeeService "github.com/cmlabs-hris/payroll-budget-go/internal/service/employee"
	overtimeService "github.com/cmlabs-hris/payroll-budget-go/internal/service/overtime"
	vacationService "github.com/cmlabs-hris/payroll-budget-go/internal/service/vacation"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	token   string
	emp     employee.Employee
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.NewStore()
	emp := store.AddEmployee(employee.Employee{
		ID:        uuid.NewString(),
		CompanyID: uuid.NewString(),
		FullName:  "Ana Pereira",
		Function:  "Operator",
		Salary:    decimal.NewFromInt(3000),
	})

	employeeRepo := memory.NewEmployeeRepository(store)
	budgetRepo := memory.NewBudgetPeriodRepository(store)
	acquisitionSvc := acquisitionService.NewAcquisitionPeriodService(memory.NewAcquisitionPeriodRepository(store), employeeRepo, logger)

	jwtService := newTestJWT(t)
	token, _, err := jwtService.GenerateAccessToken("user-42", &emp.CompanyID)
	require.NoError(t, err)

	router := NewRouter(
		RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}, RateLimit: 1000, RateWindow: time.Minute},
		logger,
		jwtService.JWTAuth(),
		Handlers{
			BudgetPeriod:      NewBudgetPeriodHandler(budgetService.NewBudgetPeriodService(budgetRepo, nil, logger)),
			AcquisitionPeriod: NewAcquisitionPeriodHandler(acquisitionSvc),
			Overtime: NewOvertimeHandler(overtimeService.NewOvertimeService(
				store, memory.NewOvertimeEntryRepository(store), budgetRepo, employeeRepo, logger,
			)),
			Vacation: NewVacationHandler(vacationService.NewVacationService(
				store, memory.NewVacationEntryRepository(store), budgetRepo, employeeRepo, acquisitionSvc, logger,
			)),
			Employee: NewEmployeeHandler(employeeService.NewEmployeeService(employeeRepo)),
		},
	)

	return &testServer{t: t, handler: router, token: token, emp: emp}
}

func newTestJWT(t *testing.T) *jwt.JWTService {
	t.Helper()
	return jwt.NewJWTService(handlerTestSecret, "1h")
}

func (s *testServer) do(method, path string, body any, headers ...string) (int, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func (s *testServer) openBudgetPeriod() map[string]any {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/budget-periods", map[string]any{
		"company_id": s.emp.CompanyID,
		"year":       2025,
		"start_date": "2025-01-01",
		"end_date":   "2025-12-31",
	})
	require.Equal(s.t, http.StatusCreated, code, env.Error)
	return decode[map[string]any](s.t, env.Data)
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// assertMoney compares a JSON decimal string at two places.
func assertMoney(t *testing.T, want string, got any) {
	t.Helper()
	s, ok := got.(string)
	if assert.True(t, ok, "expected a decimal string, got %T", got) {
		assert.Equal(t, want, decimal.RequireFromString(s).StringFixed(2))
	}
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budget-periods?company_id="+s.emp.CompanyID, nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	foreign, _, err := jwt.NewJWTService("another-secret", "1h").GenerateAccessToken("user-42", nil)
	require.NoError(t, err)
	s.token = foreign
	code, _ := s.do(http.MethodGet, "/api/v1/budget-periods?company_id="+s.emp.CompanyID, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestBudgetPeriodLifecycle(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/budget-periods/active?company_id="+s.emp.CompanyID, nil)
	assert.Equal(t, http.StatusPreconditionFailed, code)
	assert.Equal(t, "PRECONDITION_FAILED", env.Error.Code)

	period := s.openBudgetPeriod()
	assert.Equal(t, "open", period["status"])
	assert.Equal(t, "Open", period["status_label"])
	id := period["id"].(string)

	code, env = s.do(http.MethodPost, "/api/v1/budget-periods", map[string]any{
		"company_id": s.emp.CompanyID,
		"year":       2026,
		"start_date": "2026-01-01",
		"end_date":   "2026-12-31",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	code, env = s.do(http.MethodGet, "/api/v1/budget-periods/active?company_id="+s.emp.CompanyID, nil, "Accept-Language", "pt-BR,pt;q=0.9")
	require.Equal(t, http.StatusOK, code)
	active := decode[map[string]any](t, env.Data)
	assert.Equal(t, id, active["id"])
	assert.Equal(t, "Aberto", active["status_label"])

	code, env = s.do(http.MethodPost, "/api/v1/budget-periods/"+id+"/close", nil)
	require.Equal(t, http.StatusOK, code)
	closed := decode[map[string]any](t, env.Data)
	assert.Equal(t, "closed", closed["status"])
	assert.Equal(t, "user-42", closed["closed_by"])
	assert.NotEmpty(t, closed["closed_at"])

	code, env = s.do(http.MethodPut, "/api/v1/budget-periods/"+id, map[string]any{"description": "late edit"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)

	code, env = s.do(http.MethodPost, "/api/v1/budget-periods/"+id+"/reopen", nil)
	require.Equal(t, http.StatusOK, code)
	reopened := decode[map[string]any](t, env.Data)
	assert.Equal(t, "open", reopened["status"])
	assert.Nil(t, reopened["closed_by"])

	code, env = s.do(http.MethodGet, "/api/v1/budget-periods?company_id="+s.emp.CompanyID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	code, _ = s.do(http.MethodGet, "/api/v1/budget-periods/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBudgetPeriodValidation(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/v1/budget-periods", map[string]any{
		"company_id": s.emp.CompanyID,
		"year":       2025,
		"start_date": "2025-12-31",
		"end_date":   "2025-01-01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "end_date")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/budget-periods", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOvertimeEndpoints(t *testing.T) {
	s := newTestServer(t)

	body := map[string]any{
		"company_id":  s.emp.CompanyID,
		"employee_id": s.emp.ID,
		"months": []map[string]any{
			{"month": 1, "he50_qty": "10"},
			{"month": 2},
		},
	}

	code, env := s.do(http.MethodPost, "/api/v1/overtime-entries", body)
	assert.Equal(t, http.StatusPreconditionFailed, code)
	assert.Contains(t, env.Error.Message, "no open budget period")

	period := s.openBudgetPeriod()

	code, env = s.do(http.MethodPost, "/api/v1/overtime-entries/preview", map[string]any{
		"employee_id": s.emp.ID,
		"months":      []map[string]any{{"month": 3, "he50_qty": 10, "budgeted_amount": 200}},
	})
	require.Equal(t, http.StatusOK, code)
	previews := decode[[]map[string]any](t, env.Data)
	require.Len(t, previews, 1)
	assertMoney(t, "231.82", previews[0]["total_value"])
	assertMoney(t, "31.82", previews[0]["variance"])

	code, env = s.do(http.MethodPost, "/api/v1/overtime-entries", body)
	require.Equal(t, http.StatusCreated, code, env.Error)
	entries := decode[[]map[string]any](t, env.Data)
	require.Len(t, entries, 1)
	assertMoney(t, "231.82", entries[0]["total_value"])
	assert.Equal(t, period["id"], entries[0]["budget_period_id"])
	id := entries[0]["id"].(string)

	code, env = s.do(http.MethodPost, "/api/v1/overtime-entries", body)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	code, env = s.do(http.MethodGet, "/api/v1/overtime-entries?company_id="+s.emp.CompanyID+"&year=2025", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	code, env = s.do(http.MethodGet, "/api/v1/overtime-entries?company_id="+s.emp.CompanyID+"&year=soon", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error.Details, "year")

	code, env = s.do(http.MethodPut, "/api/v1/overtime-entries/"+id, map[string]any{"he50_qty": "20"})
	require.Equal(t, http.StatusOK, code)
	assertMoney(t, "463.64", decode[map[string]any](t, env.Data)["total_value"])

	code, _ = s.do(http.MethodPost, "/api/v1/budget-periods/"+period["id"].(string)+"/close", nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodDelete, "/api/v1/overtime-entries/"+id, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}

func TestVacationEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.openBudgetPeriod()

	code, env := s.do(http.MethodPost, "/api/v1/acquisition-periods", map[string]any{
		"employee_id": s.emp.ID,
		"start_date":  "2024-03-10",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	acq := decode[map[string]any](t, env.Data)
	assert.Equal(t, "2025-03-09", acq["end_date"])
	acqID := acq["id"].(string)

	code, env = s.do(http.MethodPost, "/api/v1/vacation-entries", map[string]any{
		"employee_id":           s.emp.ID,
		"acquisition_period_id": acqID,
		"vacation_days":         20,
		"abono_days":            11,
		"month":                 7,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error.Details, "abono_days")

	code, env = s.do(http.MethodPost, "/api/v1/vacation-entries", map[string]any{
		"employee_id":        s.emp.ID,
		"vacation_days":      30,
		"month":              7,
		"thirteenth_advance": true,
	})
	assert.Equal(t, http.StatusPreconditionFailed, code, "acquisition period is required")

	code, env = s.do(http.MethodPost, "/api/v1/vacation-entries", map[string]any{
		"employee_id":           s.emp.ID,
		"acquisition_period_id": acqID,
		"vacation_days":         30,
		"month":                 7,
		"thirteenth_advance":    true,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	entry := decode[map[string]any](t, env.Data)
	assert.Equal(t, "scheduled", entry["status"])
	assertMoney(t, "5500.00", entry["total_value"])
	entryID := entry["id"].(string)

	code, env = s.do(http.MethodGet, "/api/v1/acquisition-periods/"+acqID, nil, "Accept-Language", "pt-BR")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Utilizado", decode[map[string]any](t, env.Data)["status_label"])

	code, env = s.do(http.MethodPatch, "/api/v1/vacation-entries/"+entryID+"/status", map[string]any{"status": "taken"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)

	code, env = s.do(http.MethodPatch, "/api/v1/vacation-entries/"+entryID+"/status", map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "approved", decode[map[string]any](t, env.Data)["status"])

	code, _ = s.do(http.MethodDelete, "/api/v1/vacation-entries/"+entryID, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, env = s.do(http.MethodGet, "/api/v1/acquisition-periods?employee_id="+s.emp.ID+"&status=open", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)
}

func TestEmployeeHourlyRate(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/employees/"+s.emp.ID+"/hourly-rate", nil)
	require.Equal(t, http.StatusOK, code)
	rate := decode[map[string]any](t, env.Data)
	assert.Equal(t, "13.6364", decimal.RequireFromString(rate["hourly_rate"].(string)).StringFixed(4))

	code, _ = s.do(http.MethodGet, "/api/v1/employees/"+uuid.NewString()+"/hourly-rate", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
