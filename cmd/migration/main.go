package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/config"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/database"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
)

// Usage example on the command line:
// > DBHOST=localhost DBUSER=dirk DBPWD=bullo92 go run main.go
// > DB_DRIVER=postgres go run main.go -schema > customer.sql
func main() {
	configPtr := flag.String("config", "config.yaml", "the optional YAML configuration file")
	schemaPtr := flag.Bool("schema", false, "print the DDL of the configured driver instead of migrating")
	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	logging.Setup(cfg.LogLevel, os.Stderr)

	if *schemaPtr {
		ddl, err := database.Schema(cfg.Database.Driver)
		if err != nil {
			log.Fatal().Err(err).Msg("no schema")
		}
		fmt.Println(ddl)
		return
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open database")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
