package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdHistory() *cli.Command {
	var userID string
	var limit int
	var appCfg appConfig

	flags := []cli.Flag{
		userIDFlag(&userID),
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "Maximum records per log (store default when 0)",
			Destination: &limit,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:    "history",
		Usage:   "Show recent chats and timetables",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepository(ctx, a.repo)

			chats, err := a.uc.History.Chats(ctx, userID, limit)
			if err != nil {
				return goerr.Wrap(err, "failed to list chats", goerr.V("user_id", userID))
			}
			schedules, err := a.uc.History.Schedules(ctx, userID, limit)
			if err != nil {
				return goerr.Wrap(err, "failed to list timetables", goerr.V("user_id", userID))
			}

			w := writerOf(c)
			printChats(w, chats)
			printSchedules(w, schedules)
			return nil
		},
	}
}
