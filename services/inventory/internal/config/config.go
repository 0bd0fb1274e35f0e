package config

import (
	pkgcfg "github.com/Skotchmaster/inventory/pkg/config"
)

type Config struct {
	pkgcfg.Config

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

func Load() Config {
	base := pkgcfg.Load()
	if base.ServiceName == "" {
		base.ServiceName = "inventory"
	}
	base.ServerPort = pkgcfg.EnvIntDefault("SERVER_PORT", 8082)

	var req pkgcfg.Required
	req.String(base.DatabaseURL, "DATABASE_URL")
	req.Bytes(base.JWTAccessSecret, "JWT_SECRET")
	req.String(base.AuthHTTPURL, "AUTH_URL")
	req.Must()

	return Config{
		Config:     base,
		ESURL:      pkgcfg.EnvDefault("ES_URL", ""),
		ESUser:     pkgcfg.EnvDefault("ES_USER", ""),
		ESPassword: pkgcfg.EnvDefault("ES_PASSWORD", ""),
		ESIndex:    pkgcfg.EnvDefault("ES_INDEX", "inventory"),
	}
}
