package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-budget-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-budget-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/unrolled/secure"
)

type RouterConfig struct {
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
	Production     bool
}

type Handlers struct {
	BudgetPeriod      BudgetPeriodHandler
	AcquisitionPeriod AcquisitionPeriodHandler
	Overtime          OvertimeHandler
	Vacation          VacationHandler
	Employee          EmployeeHandler
}

func NewRouter(cfg RouterConfig, logger *slog.Logger, tokenAuth *jwtauth.JWTAuth, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Language"},
		MaxAge:           300,
	}))

	r.Use(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.Production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !cfg.Production,
	}).Handler)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(httprate.Limit(cfg.RateLimit, cfg.RateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w)
		}),
	))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(middleware.Language)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(tokenAuth))
		r.Use(middleware.AuthRequired)

		r.Route("/budget-periods", func(r chi.Router) {
			r.Post("/", h.BudgetPeriod.Create)
			r.Get("/", h.BudgetPeriod.List)
			r.Get("/active", h.BudgetPeriod.GetActive)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.BudgetPeriod.Get)
				r.Put("/", h.BudgetPeriod.Update)
				r.Post("/close", h.BudgetPeriod.Close)
				r.Post("/reopen", h.BudgetPeriod.Reopen)
			})
		})

		r.Route("/acquisition-periods", func(r chi.Router) {
			r.Post("/", h.AcquisitionPeriod.Create)
			r.Get("/", h.AcquisitionPeriod.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.AcquisitionPeriod.Get)
				r.Post("/close", h.AcquisitionPeriod.Close)
				r.Post("/reopen", h.AcquisitionPeriod.Reopen)
			})
		})

		r.Route("/overtime-entries", func(r chi.Router) {
			r.Post("/", h.Overtime.Create)
			r.Post("/preview", h.Overtime.Preview)
			r.Get("/", h.Overtime.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Overtime.Get)
				r.Put("/", h.Overtime.Update)
				r.Delete("/", h.Overtime.Delete)
			})
		})

		r.Route("/vacation-entries", func(r chi.Router) {
			r.Post("/", h.Vacation.Create)
			r.Post("/preview", h.Vacation.Preview)
			r.Get("/", h.Vacation.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Vacation.Get)
				r.Delete("/", h.Vacation.Delete)
				r.Patch("/status", h.Vacation.UpdateStatus)
			})
		})

		r.Get("/employees/{id}/hourly-rate", h.Employee.GetHourlyRate)
	})
	return r
}
