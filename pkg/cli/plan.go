package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdPlan() *cli.Command {
	var userID string
	var goals []string
	var preferences string
	var appCfg appConfig

	flags := []cli.Flag{
		userIDFlag(&userID),
		&cli.StringSliceFlag{
			Name:        "goal",
			Aliases:     []string{"g"},
			Usage:       "Goal for today (repeatable; profile goals are used when omitted)",
			Destination: &goals,
		},
		&cli.StringFlag{
			Name:        "preferences",
			Aliases:     []string{"p"},
			Usage:       "Free text preferences (profile preferences are used when omitted)",
			Destination: &preferences,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:    "plan",
		Aliases: []string{"p"},
		Usage:   "Generate today's timetable",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepository(ctx, a.repo)

			tt, err := a.uc.Timetable.Generate(ctx, userID, goals, preferences)
			if err != nil {
				return goerr.Wrap(err, "failed to generate timetable", goerr.V("user_id", userID))
			}

			printTimetable(writerOf(c), tt)
			return nil
		},
	}
}
