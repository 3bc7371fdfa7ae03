package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Messages holds the path of an optional TOML message catalog
type Messages struct {
	path string
}

// Flags returns CLI flags for message configuration
func (m *Messages) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "messages",
			Usage:       "Path to a TOML file overriding the welcome, update and timetable messages",
			Sources:     cli.EnvVars("BROLIFE_MESSAGES"),
			Destination: &m.path,
		},
	}
}

// Configure returns the effective catalog. Without a path the built-in
// messages are used.
func (m *Messages) Configure() (*model.MessageCatalog, error) {
	if m.path == "" {
		return model.DefaultMessages(), nil
	}
	return LoadMessages(m.path)
}

// LoadMessages reads a TOML message catalog. Keys missing from the file keep
// their built-in values.
func LoadMessages(path string) (*model.MessageCatalog, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "message catalog not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read message catalog", goerr.V(ConfigPathKey, path))
	}

	var catalog model.MessageCatalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", ErrInvalidConfig, err), "failed to parse message catalog", goerr.V(ConfigPathKey, path))
	}

	return catalog.Merge(model.DefaultMessages()), nil
}
