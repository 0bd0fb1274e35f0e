package config

import (
	pkgcfg "github.com/Skotchmaster/inventory/pkg/config"
)

type Config struct {
	ListenPort   int
	AuthURL      string
	InventoryURL string
	LogLevel     string
}

func Load() *Config {
	base := pkgcfg.Load()
	var req pkgcfg.Required
	req.String(base.AuthHTTPURL, "AUTH_URL")
	req.String(base.InventoryHTTPURL, "INVENTORY_URL")
	req.Must()

	return &Config{
		ListenPort:   base.ServerPort,
		AuthURL:      base.AuthHTTPURL,
		InventoryURL: base.InventoryHTTPURL,
		LogLevel:     base.LogLevel,
	}
}
