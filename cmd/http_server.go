package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/leave"
	"github.com/frahmantamala/hr-management/internal/payslip"
	"github.com/frahmantamala/hr-management/internal/salary"
	"github.com/frahmantamala/hr-management/internal/scheduler"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/internal/transport/rest"
	"github.com/frahmantamala/hr-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := initLogger(cfg)

	a, err := newApp(cfg, log)
	if err != nil {
		log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}

	router := setupRoutes(a)

	// payroll.enabled hosts the scheduler in-process; `worker payroll` runs it standalone
	var payroll *scheduler.PayrollScheduler
	if cfg.Payroll.Enabled {
		payroll = scheduler.NewPayrollScheduler(a.Payslips, cfg.Payroll.Schedule, cfg.Payroll.Location(), log)
		if err := payroll.Start(); err != nil {
			log.Error("failed to start payroll scheduler", "error", err)
			os.Exit(1)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down...", "signal", sig)
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", "error", err)
	}
	if payroll != nil {
		payroll.Stop()
	}
	if err := a.Close(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}

	log.Info("Server stopped")
}

func setupRoutes(a *app) *chi.Mux {
	base := transport.NewBaseHandler(a.Logger)

	checks := map[string]rest.Check{"postgres": rest.PingCheck(a.SQLX)}
	if a.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return a.Redis.Ping(ctx).Err() }
	}

	openAPIPath := a.Config.Server.OpenAPIPath
	if openAPIPath != "" {
		if _, err := swagger.Load(context.Background(), openAPIPath); err != nil {
			a.Logger.Warn("openapi document unavailable, docs routes disabled", "path", openAPIPath, "error", err)
			openAPIPath = ""
		}
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterConfig{
		AllowedOrigins: a.Config.Server.AllowedOriginList(),
		OpenAPIPath:    openAPIPath,
	}, rest.Handlers{
		Auth:       auth.NewHandler(base, a.Auth),
		Employee:   employee.NewHandler(base, a.Employees),
		Attendance: attendance.NewHandler(base, a.Attendance),
		Leave:      leave.NewHandler(base, a.Leave),
		Salary:     salary.NewHandler(base, a.Salaries),
		Payslip:    payslip.NewHandler(base, a.Payslips),
		Health:     rest.NewHealthHandler(checks),
	}, a.Logger)

	return router
}
