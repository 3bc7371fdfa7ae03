package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logger holds CLI flags for the process logger
type Logger struct {
	level  string
	format string
	output string
}

// Flags returns CLI flags for logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"l"},
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("BROLIFE_LOG_LEVEL"),
			Destination: &l.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Category:    "Logging",
			Value:       "console",
			Sources:     cli.EnvVars("BROLIFE_LOG_FORMAT"),
			Destination: &l.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output (stdout, stderr, or file path)",
			Category:    "Logging",
			Value:       "stderr",
			Sources:     cli.EnvVars("BROLIFE_LOG_OUTPUT"),
			Destination: &l.output,
		},
	}
}

func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.level),
		slog.String("format", l.format),
		slog.String("output", l.output),
	)
}

// Configure builds the logger, installs it as the default one and returns a
// closer for the output.
func (l *Logger) Configure() (func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(l.level))); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid log level",
			goerr.V(OptionKey, "log-level"), goerr.V("value", l.level))
	}

	var format logging.Format
	switch logging.Format(l.format) {
	case logging.FormatConsole, logging.FormatJSON:
		format = logging.Format(l.format)
	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid log format",
			goerr.V(OptionKey, "log-format"), goerr.V("value", l.format))
	}

	var w io.Writer
	closer := func() {}
	switch l.output {
	case "stdout", "-":
		w = os.Stdout
	case "stderr", "":
		w = os.Stderr
	default:
		// #nosec G304 - path is provided by the operator
		f, err := os.OpenFile(l.output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", l.output))
		}
		w = f
		closer = func() { _ = f.Close() }
	}

	logging.SetDefault(logging.New(w, level, format))
	return closer, nil
}
