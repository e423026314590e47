package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jw6ventures/calboard/internal/calendar"
)

// Config holds the runtime configuration of the demo server, loaded
// from APP_* environment variables.
type Config struct {
	ListenAddr string
	BaseURL    string

	// SeedFile is an optional YAML file with demo events. When empty,
	// a built-in mocked schedule is loaded instead.
	SeedFile string

	Calendar struct {
		WorkHoursStart int
		WorkHoursEnd   int
		PixelsPerHour  int
		ShowConflicts  bool
		AllowOverlap   bool
	}

	Session struct {
		Secret string
	}

	PrometheusEnabled bool
	TrustedProxies    []string
}

// Load reads and validates configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.ListenAddr = getenvDefault("APP_LISTEN_ADDR", ":8080")
	cfg.BaseURL = getenvDefault("APP_BASE_URL", "http://localhost:8080")
	cfg.SeedFile = os.Getenv("APP_SEED_FILE")

	hours := calendar.DefaultWorkHours()
	cfg.Calendar.WorkHoursStart = getenvInt("APP_WORK_HOURS_START", hours.Start)
	cfg.Calendar.WorkHoursEnd = getenvInt("APP_WORK_HOURS_END", hours.End)
	cfg.Calendar.PixelsPerHour = getenvInt("APP_PIXELS_PER_HOUR", calendar.DefaultPixelsPerHour)
	cfg.Calendar.ShowConflicts = getenvBool("APP_SHOW_CONFLICTS", true)
	cfg.Calendar.AllowOverlap = getenvBool("APP_ALLOW_OVERLAP", true)

	cfg.Session.Secret = os.Getenv("APP_SESSION_SECRET")
	cfg.PrometheusEnabled = getenvBool("APP_PROMETHEUS_ENDPOINT_ENABLED", false)
	cfg.TrustedProxies = getenvList("APP_TRUSTED_PROXIES")

	if cfg.Calendar.WorkHoursStart < 0 || cfg.Calendar.WorkHoursEnd > 24 ||
		cfg.Calendar.WorkHoursStart >= cfg.Calendar.WorkHoursEnd {
		return nil, fmt.Errorf("invalid work hours range %d-%d: need 0 <= start < end <= 24",
			cfg.Calendar.WorkHoursStart, cfg.Calendar.WorkHoursEnd)
	}
	if cfg.Calendar.PixelsPerHour <= 0 {
		return nil, errors.New("APP_PIXELS_PER_HOUR must be positive")
	}
	if cfg.Session.Secret == "" {
		return nil, errors.New("APP_SESSION_SECRET is required")
	}
	if len(cfg.Session.Secret) < 32 {
		return nil, fmt.Errorf("APP_SESSION_SECRET must be at least 32 characters long (got %d)", len(cfg.Session.Secret))
	}

	if len(cfg.TrustedProxies) == 0 {
		fmt.Println("WARNING: No APP_TRUSTED_PROXIES configured. Calboard will trust all proxies - Not recommended for public environments.")
	}

	return cfg, nil
}

// WorkHours returns the configured work-hours window.
func (c *Config) WorkHours() calendar.WorkHours {
	return calendar.WorkHours{Start: c.Calendar.WorkHoursStart, End: c.Calendar.WorkHoursEnd}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func getenvList(key string) []string {
	if v := os.Getenv(key); v != "" {
		var result []string
		for _, item := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return nil
}
