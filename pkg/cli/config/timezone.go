package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Timezone selects the location used for the weekday rule and schedule dates
type Timezone struct {
	name string
}

func (t *Timezone) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "IANA time zone for schedules, e.g. Asia/Tokyo (server local time when empty)",
			Sources:     cli.EnvVars("BROLIFE_TIMEZONE"),
			Destination: &t.name,
		},
	}
}

func (t *Timezone) Configure() (*time.Location, error) {
	if t.name == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(t.name)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "unknown time zone",
			goerr.V(OptionKey, "timezone"), goerr.V("value", t.name))
	}
	return loc, nil
}
