package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/Skotchmaster/inventory/client/internal/screens"
	pkgcfg "github.com/Skotchmaster/inventory/pkg/config"
)

type Config struct {
	BackendURL    string
	GateSecret    string
	Timing        screens.Timing
	RemoteTimeout time.Duration
	LogLevel      string
	LogFile       string
}

func Load() Config {
	return Config{
		BackendURL: pkgcfg.EnvDefault("BACKEND_URL", "http://localhost:8080"),
		GateSecret: pkgcfg.EnvDefault("SIGNUP_GATE_SECRET", "admin123"),
		Timing: screens.Timing{
			Banner:        pkgcfg.EnvDurationMsDefault("BANNER_MS", 3000),
			NavigateDelay: pkgcfg.EnvDurationMsDefault("NAVIGATE_DELAY_MS", 2000),
		},
		RemoteTimeout: pkgcfg.EnvDurationMsDefault("REMOTE_TIMEOUT_MS", 0),
		LogLevel:      pkgcfg.EnvDefault("LOG_LEVEL", "info"),
		LogFile:       pkgcfg.EnvDefault("LOG_FILE", "inventory-client.log"),
	}
}

// PlainHTTP reports whether the backend is reached without TLS. Session
// cookies issued with COOKIE_SECURE=true are then never sent back.
func (c Config) PlainHTTP() bool {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, "http")
}
