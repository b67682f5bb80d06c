package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/leave"
	"github.com/frahmantamala/hr-management/internal/payslip"
	"github.com/frahmantamala/hr-management/internal/salary"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth       *auth.Handler
	Employee   *employee.Handler
	Attendance *attendance.Handler
	Leave      *leave.Handler
	Salary     *salary.Handler
	Payslip    *payslip.Handler
	Health     *HealthHandler
}

type RouterConfig struct {
	AllowedOrigins []string
	OpenAPIPath    string
}

func RegisterAllRoutes(router *chi.Mux, cfg RouterConfig, h Handlers, logger *slog.Logger) {
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	if cfg.OpenAPIPath != "" {
		router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, cfg.OpenAPIPath)
		})
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/ping", h.Health.Ping)
			r.Get("/health", h.Health.Health)
		}

		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.UserContext)

			pr.Get("/auth/me", h.Auth.Me)

			pr.Route("/attendance", func(ar chi.Router) {
				ar.Post("/check-in", h.Attendance.CheckIn)
				ar.Patch("/check-out", h.Attendance.CheckOut)
				ar.Get("/today", h.Attendance.Today)
				ar.Get("/history", h.Attendance.History)

				ar.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireAdminOrHR())
					mr.Get("/report", h.Attendance.Report)
					mr.Get("/report/export", h.Attendance.Export)
				})
			})

			pr.Route("/leave", func(lr chi.Router) {
				lr.Post("/request", h.Leave.Submit)
				lr.Get("/my-requests", h.Leave.MyRequests)

				lr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireAdminOrHR())
					mr.Get("/all-requests", h.Leave.AllRequests)
					mr.Patch("/{id}/status", h.Leave.UpdateStatus)
				})
			})

			pr.Route("/payslips", func(psr chi.Router) {
				psr.Get("/my-history", h.Payslip.MyHistory)
				psr.Get("/{id}/download", h.Payslip.Download)

				psr.With(middleware.RequireAdminOrHR()).Post("/generate", h.Payslip.Generate)
			})

			pr.Group(func(mr chi.Router) {
				mr.Use(middleware.RequireAdminOrHR())

				mr.Route("/employees", func(er chi.Router) {
					er.Post("/", h.Employee.Create)
					er.Get("/", h.Employee.List)
					er.Get("/{id}", h.Employee.Get)
					er.Put("/{id}", h.Employee.Update)
					er.Delete("/{id}", h.Employee.Delete)
				})

				mr.Post("/salary-components/{employeeId}", h.Salary.Upsert)
				mr.Get("/salary-components/{employeeId}", h.Salary.Get)
			})
		})
	})
}
