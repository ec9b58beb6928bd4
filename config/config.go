package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config collects all environment-sourced settings. It is loaded once in
// main and handed to each component at construction.
type Config struct {
	DatabaseURL string

	SMTPHost     string
	SMTPPort     int
	SMTPSecure   bool
	SenderName   string
	SenderEmail  string
	SMTPPassword string
	EmailSubject string

	FrontendAddress string
	AuthKey         string

	Port          string
	CheckInterval time.Duration
}

// Load reads the configuration from the environment. Optional settings fall
// back to defaults; required ones produce an error listing the variable.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPSecure:      os.Getenv("SMTP_SECURE") == "true",
		SenderName:      os.Getenv("NAME"),
		SenderEmail:     os.Getenv("EMAIL"),
		SMTPPassword:    os.Getenv("PASSWORD"),
		EmailSubject:    os.Getenv("EMAIL_SUBJECT"),
		FrontendAddress: os.Getenv("FRONTEND_ADDRESS"),
		AuthKey:         os.Getenv("REMINDERS_AUTH_KEY"),
		Port:            os.Getenv("PORT"),
		CheckInterval:   time.Minute,
	}

	for name, value := range map[string]string{
		"DATABASE_URL":       cfg.DatabaseURL,
		"SMTP_HOST":          cfg.SMTPHost,
		"EMAIL":              cfg.SenderEmail,
		"FRONTEND_ADDRESS":   cfg.FrontendAddress,
		"REMINDERS_AUTH_KEY": cfg.AuthKey,
	} {
		if value == "" {
			return nil, fmt.Errorf("%s is not set", name)
		}
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %v", err)
	}
	cfg.SMTPPort = port

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if raw := os.Getenv("CHECK_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CHECK_INTERVAL: %v", err)
		}
		cfg.CheckInterval = interval
	}

	return cfg, nil
}
