package server

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	configPath = flag.String("config", "config.yaml", "configuration file path")

	osSigCh = make(chan os.Signal, 1)
)

func init() {
	signal.Notify(osSigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
}

// Run loads configuration, starts the HTTP server, and blocks until the
// process is signalled to stop or the server fails.
func Run() error {
	flag.Parse()

	logger := logrus.StandardLogger().WithField("type", "server/app")

	// viper.ReadInConfig only returns ConfigFileNotFoundError if it has
	// to search for a default config file because one hasn't been
	// explicitly set. That is, if we explicitly set a config file, and
	// it does not exist, viper will not return a ConfigFileNotFoundError,
	// so we do it ourselves.
	if _, err := os.Stat(*configPath); err == nil {
		viper.SetConfigFile(*configPath)
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to check if config exists")
	}

	err := viper.ReadInConfig()
	_, isConfigNotFound := err.(viper.ConfigFileNotFoundError)
	if err != nil && !isConfigNotFound {
		return errors.Wrap(err, "failed to load config")
	}

	config := defaultConfig
	if err := viper.Unmarshal(&config); err != nil {
		return errors.Wrap(err, "failed to unmarshal config")
	}

	logLevel, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	logrus.SetLevel(logLevel)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	httpServer := &http.Server{
		Addr:    config.ListenAddress,
		Handler: New().Router(),
	}

	serveErrCh := make(chan error, 1)
	go func() {
		logger.WithField("address", config.ListenAddress).Info("server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErrCh <- err
		}
	}()

	select {
	case err := <-serveErrCh:
		return errors.Wrap(err, "server stopped unexpectedly")
	case sig := <-osSigCh:
		logger.WithField("signal", sig).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownGracePeriod)
	defer cancel()

	return errors.Wrap(httpServer.Shutdown(ctx), "failed to shut down cleanly")
}
