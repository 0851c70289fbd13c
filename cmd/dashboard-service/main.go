package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/config"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/server"
)

// Usage example on the command line:
// > CUSTOMER_APP_URI=http://localhost:8080/api/customer go run main.go
func main() {
	configPtr := flag.String("config", "config.yaml", "the optional YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPtr, config.WithAddr(config.DashboardAddr))
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	logging.Setup(cfg.LogLevel, os.Stderr)
	log.Info().Str("customer_app_uri", cfg.Customer.AppURI).Msg("forwarding to customer service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.BuildDashboard(cfg).Run(ctx); err != nil {
		log.Error().Err(err).Msg("dashboard stopped")
		os.Exit(1)
	}
}
