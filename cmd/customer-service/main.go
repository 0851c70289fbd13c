package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/config"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/database"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/server"
)

// Usage example on the command line:
// > PORT=8080 DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	configPtr := flag.String("config", "config.yaml", "the optional YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	logging.Setup(cfg.LogLevel, os.Stderr)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("could not open database")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("could not migrate database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.BuildCustomer(cfg, db).Run(ctx); err != nil {
		log.Error().Err(err).Msg("customer service stopped")
		os.Exit(1)
	}
}
