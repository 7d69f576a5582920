package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/i18n"
)

// Language resolves Accept-Language once per request.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := i18n.Match(r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", tag.String())
		next.ServeHTTP(w, r.WithContext(i18n.WithLanguage(r.Context(), tag)))
	})
}
