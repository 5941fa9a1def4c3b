package snapshot

import (
	"os"
	"strconv"
)

// Config holds snapshot retrieval settings. Defaults suit the production
// bucket layout; everything is overridable through PRODPLAN_* env vars.
type Config struct {
	// Endpoint is the base URL the hourly snapshot folders live under.
	Endpoint string

	// LookbackHours bounds the backward probe: the fetcher tries the
	// current hour's folder, then steps back one hour at a time.
	LookbackHours int

	// AttemptTimeoutMs bounds each individual HTTP probe.
	AttemptTimeoutMs int

	// RefreshMinutes is the dashboard's periodic refresh interval.
	RefreshMinutes int

	// LogFetches enables fetch-event logging to stderr.
	LogFetches bool

	// CachePath is the sqlite snapshot cache location. Empty selects the
	// default under the user's home directory.
	CachePath string
}

// LoadConfig reads configuration from the environment.
func LoadConfig() Config {
	cfg := Config{
		Endpoint:         "https://ledger-prediction-charting.s3.us-west-1.amazonaws.com",
		LookbackHours:    6,
		AttemptTimeoutMs: 5000,
		RefreshMinutes:   5,
	}

	if v := os.Getenv("PRODPLAN_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PRODPLAN_LOOKBACK_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LookbackHours = n
		}
	}
	if v := os.Getenv("PRODPLAN_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AttemptTimeoutMs = n
		}
	}
	if v := os.Getenv("PRODPLAN_REFRESH_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RefreshMinutes = n
		}
	}
	if v := os.Getenv("PRODPLAN_LOG_FETCHES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogFetches = b
		}
	}
	if v := os.Getenv("PRODPLAN_DB"); v != "" {
		cfg.CachePath = v
	}

	return cfg
}
