package cmd

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the initial admin account",
	Long:  `Create the first Admin employee so the API can be used. Does nothing when the email already exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		lg := initLogger(cfg)

		a, err := newApp(cfg, lg)
		if err != nil {
			log.Fatalf("failed to init app: %v", err)
		}
		ctx := context.Background()
		defer func() { _ = a.Close(ctx) }()

		dto := employee.CreateEmployeeDTO{
			FullName: envOr("ADMIN_FULL_NAME", cfg.Seed.AdminName),
			Email:    envOr("ADMIN_EMAIL", cfg.Seed.AdminEmail),
			Password: envOr("ADMIN_PASSWORD", cfg.Seed.AdminPassword),
			JobTitle: "Administrator",
			Role:     internal.RoleAdmin,
		}

		if _, err := a.Employees.GetByEmail(ctx, dto.Email); err == nil {
			lg.Info("admin user already exists, skipping", "email", dto.Email)
			return
		} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
			log.Fatalf("failed to look up admin user: %v", err)
		}

		created, err := a.Employees.Create(ctx, dto)
		if errors.Is(err, employee.ErrEmailTaken) {
			lg.Info("admin user already exists, skipping", "email", dto.Email)
			return
		}
		if err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}

		lg.Info("seeded admin user", "id", created.ID, "email", created.Email)
	},
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
