package logger

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
)

const (
	TextFormat = "text"
	JSONFormat = "json"
)

type Options struct {
	Level     string
	Format    string
	Output    io.Writer
	Telemetry bool
}

// Setup configures the standard logrus logger. With telemetry on, warnings and errors
// are also recorded on the active span.
func Setup(o Options) error {
	level, err := log.ParseLevel(o.Level)
	if err != nil {
		return fmt.Errorf("logger.Setup: %w", err)
	}
	log.SetLevel(level)

	switch o.Format {
	case JSONFormat:
		log.SetFormatter(&log.JSONFormatter{})
	case TextFormat, "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("logger.Setup: unknown format %q", o.Format)
	}

	if o.Output != nil {
		log.SetOutput(o.Output)
	}

	if o.Telemetry {
		log.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
			log.PanicLevel,
			log.FatalLevel,
			log.ErrorLevel,
			log.WarnLevel,
		)))
	}

	return nil
}
