// Command server runs the experiment coordination server.
//
// Users register callback endpoints and receive sequential ids. The admin
// starts a session with a one-time even secret, which enrolls every known
// user and notifies each of them; predictions submitted during the session
// are archived into historical statistics when the admin stops it.
//
// # Usage
//
//	go run ./cmd/server --addr=:8080
//	go run ./cmd/server --config=server.yaml --metrics-addr=:9090
//
// Flags override the config file; EXPERIMENT_* environment variables
// override both.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urzavoge/zuev-1c/api/httpserver"
	"github.com/urzavoge/zuev-1c/cmd/common"
	"github.com/urzavoge/zuev-1c/coordinator"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to YAML config file")
		addr        = flag.String("addr", "", "HTTP listen address")
		metricsAddr = flag.String("metrics-addr", "", "Metrics listen address (empty disables)")
		enablePprof = flag.Bool("pprof", false, "Enable the pprof debugging API")
		logJSON     = flag.Bool("log-json", false, "Log in JSON format")
		logDebug    = flag.Bool("log-debug", false, "Log at debug level")
	)
	flag.Parse()

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *enablePprof {
		cfg.EnablePprof = true
	}
	if *logJSON {
		cfg.LogJSON = true
	}
	if *logDebug {
		cfg.LogDebug = true
	}

	if err := run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *common.Config) error {
	log := cfg.Logger()

	coord := coordinator.New(&coordinator.Config{
		NotifyTimeout: cfg.NotifyTimeout,
		Log:           log,
	})
	handler := httpserver.NewHandler(coord, log)

	srv, err := httpserver.New(&httpserver.HTTPServerConfig{
		ListenAddr:               cfg.HTTPAddr,
		MetricsAddr:              cfg.MetricsAddr,
		EnablePprof:              cfg.EnablePprof,
		Log:                      log,
		MaxConcurrentRequests:    cfg.MaxConcurrent,
		DrainDuration:            cfg.DrainDuration,
		GracefulShutdownDuration: cfg.GracefulShutdownDuration,
		ReadTimeout:              cfg.ReadTimeout,
		WriteTimeout:             cfg.WriteTimeout,
	}, handler)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	srv.RunInBackground()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down")
	srv.Shutdown()
	return nil
}
