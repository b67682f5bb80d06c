package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/hr-management/internal/attendance/postgres"
	"github.com/frahmantamala/hr-management/internal/auth"
	authRedis "github.com/frahmantamala/hr-management/internal/auth/redis"
	"github.com/frahmantamala/hr-management/internal/core/common/cache"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/employee"
	employeePostgres "github.com/frahmantamala/hr-management/internal/employee/postgres"
	"github.com/frahmantamala/hr-management/internal/leave"
	leavePostgres "github.com/frahmantamala/hr-management/internal/leave/postgres"
	"github.com/frahmantamala/hr-management/internal/notification"
	"github.com/frahmantamala/hr-management/internal/payslip"
	payslipPostgres "github.com/frahmantamala/hr-management/internal/payslip/postgres"
	"github.com/frahmantamala/hr-management/internal/salary"
	salaryPostgres "github.com/frahmantamala/hr-management/internal/salary/postgres"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// app holds the infrastructure and services shared by every command.
type app struct {
	Config *internal.Config
	Logger *slog.Logger

	DB    *gorm.DB
	SQLX  *sqlx.DB
	Redis *goredis.Client

	Bus        *events.EventBus
	Dispatcher *notification.Dispatcher

	Auth       *auth.Service
	Employees  *employee.Service
	Attendance *attendance.Service
	Leave      *leave.Service
	Salaries   *salary.Service
	Payslips   *payslip.Service
}

func newApp(cfg *internal.Config, log *slog.Logger) (*app, error) {
	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	a := &app{
		Config: cfg,
		Logger: log,
		DB:     db,
		// reporting queries share the gorm pool
		SQLX: sqlx.NewDb(sqlDB, "pgx"),
		Bus:  events.NewEventBus(log),
	}

	var limiter auth.LoginLimiter = auth.NoopLimiter{}
	if cfg.Redis.Enabled {
		client, err := cache.OpenRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.Redis = client
		limiter = authRedis.NewLoginLimiter(client, cfg.Security.LoginMaxAttempts, cfg.Security.LoginLockout)
		log.Info("redis login limiter enabled", "addr", cfg.Redis.Addr)
	}

	a.Dispatcher = notification.NewDispatcher(newSender(cfg.Mail, log), notification.DispatcherConfig{
		Workers:   cfg.Mail.Workers,
		QueueSize: cfg.Mail.QueueSize,
	}, log)

	loc := cfg.Payroll.Location()

	a.Employees = employee.NewService(employeePostgres.NewEmployeeRepository(db), cfg.Security.BCryptCost, log)
	a.Auth = auth.NewService(a.Employees, auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration), limiter, log)
	a.Attendance = attendance.NewService(
		attendancePostgres.NewAttendanceRepository(db),
		attendancePostgres.NewReportRepository(a.SQLX),
		loc, log)
	a.Leave = leave.NewService(leavePostgres.NewLeaveRepository(db), a.Bus, log)
	a.Salaries = salary.NewService(salaryPostgres.NewSalaryRepository(db), a.Employees, log)
	a.Payslips = payslip.NewService(payslipPostgres.NewPayslipRepository(db), a.Salaries, a.Employees, a.Bus, log)

	notification.NewSubscriber(a.Employees, a.Dispatcher, log).RegisterEventHandlers(a.Bus)

	return a, nil
}

func newSender(cfg internal.MailConfig, log *slog.Logger) notification.Sender {
	if !cfg.Enabled {
		log.Info("mail disabled, notifications will only be logged")
		return notification.LogSender{Logger: log}
	}
	return notification.NewSMTPSender(notification.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
		FromName: cfg.FromName,
	})
}

// Close waits for in-flight event handlers, drains the mail queue and then
// releases the connections.
func (a *app) Close(ctx context.Context) error {
	a.Bus.Wait()

	var errs []error
	if err := a.Dispatcher.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("dispatcher shutdown: %w", err))
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if err := a.SQLX.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}
	return errors.Join(errs...)
}

// initDB opens the gorm pool used by every repository.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
