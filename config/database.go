package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crm-api/models"
)

var DB *gorm.DB

// DBConfig holds the MySQL connection settings.
type DBConfig struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	DebugSQL bool
	Quiet    bool
}

func LoadDBConfig() DBConfig {
	return DBConfig{
		Host:     getEnv("DB_HOST", "127.0.0.1"),
		Port:     getEnv("DB_PORT", "3306"),
		Database: getEnv("DB_DATABASE", ""),
		Username: getEnv("DB_USERNAME", ""),
		Password: getEnv("DB_PASSWORD", ""),
		DebugSQL: strings.EqualFold(getEnv("DEBUG_SQL", ""), "true"),
		Quiet:    strings.EqualFold(getEnv("ENVIRONMENT", ""), "production"),
	}
}

// DSN renders the driver connection string. Updates report matched rows rather than
// changed rows, so a no-op write to an existing row is not mistaken for a missing one.
func (c DBConfig) DSN() string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = c.Addr()
	cfg.DBName = c.Database
	cfg.User = c.Username
	cfg.Passwd = c.Password
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.ClientFoundRows = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// LogLevel keeps SQL logging quiet in production unless DEBUG_SQL re-enables it.
func (c DBConfig) LogLevel() logger.LogLevel {
	if c.Quiet && !c.DebugSQL {
		return logger.Warn
	}
	return logger.Info
}

// Open connects with the given settings.
func (c DBConfig) Open() (*gorm.DB, error) {
	db, err := gorm.Open(gormmysql.Open(c.DSN()), &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: c.LogLevel(), IgnoreRecordNotFoundError: true},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s/%s: %w", c.Addr(), c.Database, err)
	}
	return db, nil
}

func (c DBConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// InitDB opens the shared connection from the environment and exits on failure.
func InitDB() {
	db, err := LoadDBConfig().Open()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = db
	log.Println("Database connected successfully")
}

// AutoMigrate creates or alters the tables for every model.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
