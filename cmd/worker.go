package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/hr-management/internal/scheduler"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Run the monthly payroll scheduler or replay payslip notifications for a period.`,
}

var payrollWorkerCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Start the monthly payroll scheduler",
	Long:  `Generate payslips for every salaried employee on the configured cron schedule. --now runs the previous month once and exits.`,
	Run: func(cmd *cobra.Command, args []string) {
		startPayrollWorker()
	},
}

var notifyWorkerCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send payslip emails for a pay period",
	Long:  `Publish payslip.generated for every payslip of the given period so each employee is emailed again.`,
	Run: func(cmd *cobra.Command, args []string) {
		runPeriodNotify()
	},
}

var (
	payrollSchedule string
	payrollNow      bool
	notifyMonth     int
	notifyYear      int
)

func startPayrollWorker() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg)

	a, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}

	sched := scheduler.NewPayrollScheduler(a.Payslips, getStringFlag(payrollSchedule, cfg.Payroll.Schedule), cfg.Payroll.Location(), logger)

	if payrollNow {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := sched.RunOnce(ctx); err != nil {
			logger.Error("payroll run failed", "error", err)
		}
		shutdownApp(a)
		return
	}

	if err := sched.Start(); err != nil {
		logger.Error("failed to start payroll scheduler", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("payroll worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	logger.Info("received signal, shutting down payroll worker", "signal", sig)

	sched.Stop()
	shutdownApp(a)
	logger.Info("payroll worker shutdown complete")
}

func runPeriodNotify() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg)

	month, year := notifyMonth, notifyYear
	if month == 0 || year == 0 {
		month, year = scheduler.PreviousPeriod(time.Now(), cfg.Payroll.Location())
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer shutdownApp(a)

	n, err := a.Payslips.NotifyPeriod(context.Background(), month, year)
	if err != nil {
		logger.Error("failed to notify period", "month", month, "year", year, "error", err)
		return
	}
	logger.Info("payslip notifications queued", "month", month, "year", year, "count", n)
}

func shutdownApp(a *app) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		a.Logger.Warn("shutdown timeout reached, forcing exit", "error", err)
	}
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func init() {
	payrollWorkerCmd.Flags().StringVar(&payrollSchedule, "schedule", "", "Cron schedule (overrides config)")
	payrollWorkerCmd.Flags().BoolVar(&payrollNow, "now", false, "Run the previous month once and exit")

	notifyWorkerCmd.Flags().IntVar(&notifyMonth, "month", 0, "Pay period month 1-12 (defaults to the previous month)")
	notifyWorkerCmd.Flags().IntVar(&notifyYear, "year", 0, "Pay period year (defaults to the previous month's year)")

	workerCmd.AddCommand(payrollWorkerCmd)
	workerCmd.AddCommand(notifyWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
