package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"portfolio/internal/domain/entities"
	"portfolio/pkg/discord"
)

type Config struct {
	Host string
	Port int

	// SiteDir is the directory holding the prebuilt pages. Empty serves the
	// built-in sample site.
	SiteDir       string
	SiteWatch     bool
	DefaultLocale entities.Locale
	PageSize      int
	ProjectsPath  string
	ProjectsFile  string

	// FormEndpoint overrides the contact form action of every page.
	FormEndpoint string
	StatusTTL    time.Duration
	RelayTimeout time.Duration

	// ContactStore selects the contact message backend: memory://,
	// kvdb://<path> or postgres://<dsn>.
	ContactStore      string
	DiscordWebhookURL string
	OTLPAddr          string
	LogLevel          zapcore.Level
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Load reads envFile when it exists, then the process environment, and
// validates the result.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: read %s: %w", envFile, err)
	}

	cfg := &Config{
		Host:              os.Getenv("PORTFOLIO_HOST"),
		SiteDir:           os.Getenv("PORTFOLIO_SITE_DIR"),
		ProjectsPath:      os.Getenv("PORTFOLIO_PROJECTS_PATH"),
		ProjectsFile:      os.Getenv("PORTFOLIO_PROJECTS_FILE"),
		FormEndpoint:      strings.TrimSpace(os.Getenv("PORTFOLIO_FORM_ENDPOINT")),
		ContactStore:      strings.TrimSpace(os.Getenv("CONTACT_STORE")),
		DiscordWebhookURL: strings.TrimSpace(os.Getenv("DISCORD_WEBHOOK_URL")),
		OTLPAddr:          strings.TrimSpace(os.Getenv("OTLP_GRPC_ADDR")),
	}

	var err error
	if cfg.Port, err = intEnv("PORTFOLIO_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = intEnv("PORTFOLIO_PAGE_SIZE", 2); err != nil {
		return nil, err
	}
	if cfg.SiteWatch, err = boolEnv("PORTFOLIO_SITE_WATCH"); err != nil {
		return nil, err
	}
	if cfg.StatusTTL, err = durationEnv("PORTFOLIO_STATUS_TTL", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.RelayTimeout, err = durationEnv("PORTFOLIO_RELAY_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.DefaultLocale, err = localeEnv("PORTFOLIO_DEFAULT_LOCALE"); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = levelEnv("LOG_LEVEL"); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate applies defaults and rejects inconsistent settings.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Host) == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORTFOLIO_PORT out of range: %d", c.Port)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("config: PORTFOLIO_PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.StatusTTL <= 0 {
		return fmt.Errorf("config: PORTFOLIO_STATUS_TTL must be positive")
	}
	if c.RelayTimeout <= 0 {
		return fmt.Errorf("config: PORTFOLIO_RELAY_TIMEOUT must be positive")
	}
	if c.SiteWatch && c.SiteDir == "" {
		return fmt.Errorf("config: PORTFOLIO_SITE_WATCH requires PORTFOLIO_SITE_DIR")
	}
	if c.SiteDir != "" {
		fi, err := os.Stat(c.SiteDir)
		if err != nil {
			return fmt.Errorf("config: PORTFOLIO_SITE_DIR: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("config: PORTFOLIO_SITE_DIR %q is not a directory", c.SiteDir)
		}
	}

	if strings.TrimSpace(c.ProjectsPath) == "" {
		c.ProjectsPath = "/proyectos-web/"
	}

	if c.FormEndpoint != "" {
		u, err := url.Parse(c.FormEndpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config: PORTFOLIO_FORM_ENDPOINT invalid (%q)", c.FormEndpoint)
		}
	}

	if c.ContactStore == "" {
		c.ContactStore = "memory://"
	}
	u, err := url.Parse(c.ContactStore)
	if err != nil {
		return fmt.Errorf("config: CONTACT_STORE invalid (%q): %w", c.ContactStore, err)
	}
	switch u.Scheme {
	case "memory":
	case "kvdb":
		if u.Host+u.Path == "" {
			return fmt.Errorf("config: CONTACT_STORE kvdb needs a file path")
		}
	case "postgres", "postgresql":
		if u.Host == "" {
			return fmt.Errorf("config: CONTACT_STORE invalid (%q): missing host", c.ContactStore)
		}
	default:
		return fmt.Errorf("config: CONTACT_STORE unknown backend %q", u.Scheme)
	}

	if c.DiscordWebhookURL != "" {
		if _, _, err := discord.ParseWebhookURL(c.DiscordWebhookURL); err != nil {
			return fmt.Errorf("config: DISCORD_WEBHOOK_URL: %w", err)
		}
	}
	return nil
}

func intEnv(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", name, err)
	}
	return n, nil
}

func boolEnv(name string) (bool, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean: %w", name, err)
	}
	return b, nil
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration: %w", name, err)
	}
	return d, nil
}

func localeEnv(name string) (entities.Locale, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return entities.LocaleES, nil
	}
	l, err := entities.ParseLocale(v)
	if err != nil {
		return "", fmt.Errorf("config: %s: %w", name, err)
	}
	return l, nil
}

func levelEnv(name string) (zapcore.Level, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(v))); err != nil {
		return l, fmt.Errorf("config: %s: %w", name, err)
	}
	return l, nil
}
