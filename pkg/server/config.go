package server

import (
	"time"
)

// Config is the application configuration, loaded from an optional
// config file via viper.
type Config struct {
	LogLevel            string        `mapstructure:"log_level"`
	ListenAddress       string        `mapstructure:"listen_address"`
	ShutdownGracePeriod time.Duration `mapstructure:"shutdown_grace_period"`
}

var defaultConfig = Config{
	LogLevel:            "info",
	ListenAddress:       ":8080",
	ShutdownGracePeriod: 10 * time.Second,
}
