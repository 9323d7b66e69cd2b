package config

import (
	"github.com/spf13/viper"
)

// DefaultDatabasePath keeps the whole catalog in process memory: the ledger
// lives for the process lifetime only. Point DATABASE_PATH at a file to keep
// state across restarts.
const DefaultDatabasePath = "file::memory:?cache=shared"

type (
	Config struct {
		HTTP
		Database
		Loans
		Notifications
		Reminders
		Auth
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Loans struct {
		PeriodDays int // Loan duration; due date = loan date + this many days
	}
	Notifications struct {
		Channel string // Delivery channel active at startup: "console" or "email"
	}
	Reminders struct {
		Enabled  bool
		Schedule string // Cron format: "0 9 * * *" = daily at 09:00
	}
	Auth struct {
		BcryptCost int
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("loan_period_days", 14)
	v.SetDefault("notification_channel", "console")
	v.SetDefault("reminders_enabled", false)
	v.SetDefault("reminders_schedule", "0 9 * * *") // Daily at 09:00
	v.SetDefault("auth_bcrypt_cost", 12)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Loans: Loans{
			PeriodDays: v.GetInt("LOAN_PERIOD_DAYS"),
		},
		Notifications: Notifications{
			Channel: v.GetString("NOTIFICATION_CHANNEL"),
		},
		Reminders: Reminders{
			Enabled:  v.GetBool("REMINDERS_ENABLED"),
			Schedule: v.GetString("REMINDERS_SCHEDULE"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
