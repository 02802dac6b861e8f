// Command migrate-passwords hashes any plaintext passwords left in the users table.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"crm-api/config"
	"crm-api/models"
	"crm-api/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dryRun := flag.Bool("dry-run", false, "report users that need hashing without updating them")
	flag.Parse()

	cfg := config.LoadAppConfig()
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	config.InitDB()

	var users []models.User
	if err := config.DB.Where("delete_at IS NULL").Find(&users).Error; err != nil {
		logger.Fatal("failed to fetch users", zap.Error(err))
	}

	var hashed, skipped, failed int
	for _, user := range users {
		if utils.IsBcryptHash(user.Password) {
			skipped++
			continue
		}
		if *dryRun {
			logger.Info("would hash password", zap.String("email", user.Email))
			continue
		}

		hash, err := utils.HashPassword(user.Password)
		if err != nil {
			failed++
			logger.Error("hash password", zap.String("email", user.Email), zap.Error(err))
			continue
		}

		if err := config.DB.Model(&models.User{}).
			Where("user_id = ?", user.UserID).
			Updates(map[string]interface{}{"password": hash, "update_at": time.Now()}).Error; err != nil {
			failed++
			logger.Error("update password", zap.String("email", user.Email), zap.Error(err))
			continue
		}
		hashed++
	}

	logger.Info("password migration completed",
		zap.Int("hashed", hashed),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Bool("dry_run", *dryRun))
}
