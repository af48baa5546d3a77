package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"presence/pkg/tz"
)

type Config struct {
	DatabaseURL     string
	MigrationsPath  string
	ResendAPIKey    string
	ReportFrom      string
	ReportRecipient string
	ReportTimezone  string
	DefaultLocale   string
	QRImageBaseURL  string
	DeviceTokenPath string
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MigrationsPath:  os.Getenv("MIGRATIONS_PATH"),
		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),
		ReportFrom:      os.Getenv("REPORT_FROM"),
		ReportRecipient: os.Getenv("REPORT_RECIPIENT"),
		ReportTimezone:  os.Getenv("REPORT_TIMEZONE"),
		DefaultLocale:   os.Getenv("DEFAULT_LOCALE"),
		QRImageBaseURL:  os.Getenv("QR_IMAGE_BASE_URL"),
		DeviceTokenPath: os.Getenv("DEVICE_TOKEN_PATH"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.ResendAPIKey) == "" {
		return fmt.Errorf("config: RESEND_API_KEY est requis et ne peut pas être vide")
	}

	if strings.TrimSpace(c.ReportFrom) == "" || !strings.Contains(c.ReportFrom, "@") {
		return fmt.Errorf("config: REPORT_FROM doit être une adresse email valide")
	}

	if strings.TrimSpace(c.ReportRecipient) == "" || !strings.Contains(c.ReportRecipient, "@") {
		return fmt.Errorf("config: REPORT_RECIPIENT doit être une adresse email valide")
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Valeur par défaut utile en local lorsque DATABASE_URL n'est pas fournie.
		c.DatabaseURL = "postgres://localhost:5432/presence?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
	}

	if strings.TrimSpace(c.MigrationsPath) == "" {
		c.MigrationsPath = "migrations"
	}

	if strings.TrimSpace(c.ReportTimezone) == "" {
		c.ReportTimezone = tz.Lagos.String()
	}
	if _, err := time.LoadLocation(c.ReportTimezone); err != nil {
		return fmt.Errorf("config: REPORT_TIMEZONE invalide (%q): %w", c.ReportTimezone, err)
	}

	if strings.TrimSpace(c.DefaultLocale) == "" {
		c.DefaultLocale = "en"
	}

	if strings.TrimSpace(c.QRImageBaseURL) == "" {
		c.QRImageBaseURL = "https://api.qrserver.com/v1/create-qr-code/"
	}

	if strings.TrimSpace(c.DeviceTokenPath) == "" {
		c.DeviceTokenPath = ".device_token"
	}

	return nil
}
