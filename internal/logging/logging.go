package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger fields
const (
	PACKAGE    = "pkg"
	SERVICE    = "svc"
	REQUEST_ID = "request_id"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Setup configures the global logger. Unknown levels fall back to info.
func Setup(level string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// NewPackageLogger returns a logger with pkg={pkg}.
func NewPackageLogger(pkg string) zerolog.Logger {
	return log.With().Str(PACKAGE, pkg).Logger()
}

// NewServiceLogger returns a logger with svc={name}.
func NewServiceLogger(name string) zerolog.Logger {
	return log.With().Str(SERVICE, name).Logger()
}
