package config

import (
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
	MaxGenerate    int    // upper bound of values per generate request
	RequireAPIKey  bool   // generate requests need an X-API-Key header
}
