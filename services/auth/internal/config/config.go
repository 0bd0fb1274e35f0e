package config

import (
	"time"

	pkgcfg "github.com/Skotchmaster/inventory/pkg/config"
)

type Config struct {
	pkgcfg.Config

	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func Load() Config {
	base := pkgcfg.Load()
	if base.ServiceName == "" {
		base.ServiceName = "auth"
	}
	base.ServerPort = pkgcfg.EnvIntDefault("SERVER_PORT", 8081)

	var req pkgcfg.Required
	req.String(base.DatabaseURL, "DATABASE_URL")
	req.Bytes(base.JWTAccessSecret, "JWT_SECRET")
	req.Bytes(base.JWTRefreshSecret, "JWT_REFRESH_SECRET")
	req.Must()

	return Config{
		Config:     base,
		AccessTTL:  time.Duration(pkgcfg.EnvIntDefault("ACCESS_TTL_MIN", 15)) * time.Minute,
		RefreshTTL: time.Duration(pkgcfg.EnvIntDefault("REFRESH_TTL_HOURS", 7*24)) * time.Hour,
	}
}
