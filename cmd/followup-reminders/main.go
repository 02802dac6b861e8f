// Command followup-reminders turns today's due follow-ups into reminder notifications
// and e-mails the enquiry owners.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"crm-api/config"
	"crm-api/metrics"
	"crm-api/services"
	"crm-api/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadAppConfig()
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	var (
		userIDsRaw string
		lookahead  time.Duration
		dryRun     bool
		lockName   string
	)

	flag.StringVar(&userIDsRaw, "user-ids", "", "comma-separated list of owner IDs to remind (optional)")
	flag.DurationVar(&lookahead, "lookahead", cfg.ReminderLookahead, "how far past now a follow-up counts as due")
	flag.BoolVar(&dryRun, "dry-run", false, "report due follow-ups without writing notifications or sending mail")
	flag.StringVar(&lockName, "lock-name", "followup_reminders_job", "MySQL advisory lock name (empty to disable)")
	flag.Parse()

	if lookahead <= 0 {
		log.Fatal("lookahead must be greater than 0")
	}

	var userIDs []uint
	if strings.TrimSpace(userIDsRaw) != "" {
		for _, part := range strings.Split(userIDsRaw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id64, err := strconv.ParseUint(part, 10, 64)
			if err != nil || id64 == 0 {
				log.Fatalf("invalid user id '%s'", part)
			}
			userIDs = append(userIDs, uint(id64))
		}
	}

	metrics.Init()
	config.InitDB()
	ctx := context.Background()

	release, err := store.AcquireLock(ctx, config.DB, lockName)
	if err != nil {
		if errors.Is(err, store.ErrLockHeld) {
			log.Fatal("follow-up reminders already running (advisory lock held)")
		}
		log.Fatalf("acquire lock: %v", err)
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn("release lock", zap.Error(err))
		}
	}()

	notifications := services.NewNotificationService(store.NewGormNotificationStore(config.DB), logger)
	job := services.NewReminderJobService(
		store.NewGormEnquiryStore(config.DB),
		store.NewGormUserStore(config.DB),
		notifications,
		config.NewMailer(config.LoadSMTPConfig()),
		logger,
	)

	summary, err := job.Run(ctx, &services.ReminderRunInput{
		Lookahead: lookahead,
		OwnerIDs:  userIDs,
		DryRun:    dryRun,
	})
	if err != nil {
		logger.Error("follow-up reminders failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("Follow-ups scanned: %d, reminders created: %d, skipped: %d\n",
		summary.Scanned, summary.Created, summary.Skipped)
	fmt.Printf("E-mails sent: %d, failed: %d\n", summary.Emailed, summary.EmailFailed)

	if dryRun {
		fmt.Println("Dry run complete. No database changes were made.")
	}

	if summary.EmailFailed > 0 {
		os.Exit(2)
	}
}
