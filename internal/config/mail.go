package config

import (
	"os"
	"time"
)

// MailConfig describes the SMTP transport used by the reminder job.  The job
// is only scheduled when Enabled() reports true.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether an SMTP host was configured.
func (m MailConfig) Enabled() bool { return m.Host != "" }

// LoadMailConfig reads SMTP_* variables.
func LoadMailConfig() MailConfig {
	return MailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     envInt("SMTP_PORT", 587),
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     envStr("SMTP_FROM", "maintenance@lmb.local"),
	}
}

// ReminderConfig controls when the due-tomorrow scan runs.
type ReminderConfig struct {
	Schedule string         // standard 5-field cron expression
	Location *time.Location // zone used for both the schedule and "tomorrow"
}

// LoadReminderConfig reads REMINDER_CRON and REMINDER_TZ.  An unknown zone
// falls back to the process local time.
func LoadReminderConfig() ReminderConfig {
	loc := time.Local
	if tz := os.Getenv("REMINDER_TZ"); tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	return ReminderConfig{
		Schedule: envStr("REMINDER_CRON", "0 8 * * *"),
		Location: loc,
	}
}
