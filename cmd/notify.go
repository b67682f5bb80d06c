package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/frahmantamala/hr-management/internal/notification"
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification commands",
	Long:  `Check the mail setup without touching any HR data.`,
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test email",
	Long:  `Send a sample payslip email through the configured sender and wait for delivery`,
	Run: func(cmd *cobra.Command, args []string) {
		sendTestEmail()
	},
}

var notifyTo string

func sendTestEmail() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg)

	dispatcher := notification.NewDispatcher(newSender(cfg.Mail, logger), notification.DispatcherConfig{
		Workers:   1,
		QueueSize: 1,
	}, logger)

	now := time.Now().In(cfg.Payroll.Location())
	msg, err := notification.PayslipMessage(notifyTo, notification.PayslipData{
		FullName:  "Test Recipient",
		Month:     int(now.Month()),
		Year:      now.Year(),
		NetSalary: "Rp 0",
	})
	if err != nil {
		logger.Error("failed to render test email", "error", err)
		os.Exit(1)
	}

	if !dispatcher.Enqueue(msg) {
		logger.Error("failed to queue test email")
		os.Exit(1)
	}
	logger.Info("test email queued", "to", notifyTo, "smtp", cfg.Mail.Enabled)

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()
	if err := dispatcher.Shutdown(ctx); err != nil {
		logger.Error("test email was not delivered in time", "error", err)
		os.Exit(1)
	}
}

func init() {
	notifyTestCmd.Flags().StringVar(&notifyTo, "to", "", "Recipient email address")
	_ = notifyTestCmd.MarkFlagRequired("to")

	notifyCmd.AddCommand(notifyTestCmd)

	rootCmd.AddCommand(notifyCmd)
}
