package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-budget-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/validator"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the body into dst and writes a 400 when it is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		slog.Debug("request decode error", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// optionalString returns nil for an absent or empty query parameter.
func optionalString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// optionalInt parses an integer query parameter, reporting a field error when malformed.
func optionalInt(r *http.Request, key string) (*int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: key, Message: key + " must be an integer"}}
	}
	return &n, nil
}

func statusLabel(r *http.Request, status string) string {
	return i18n.StatusLabel(i18n.FromContext(r.Context()), status)
}
