package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdProfile() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage user profiles",
		Commands: []*cli.Command{
			cmdProfileSet(),
			cmdProfileShow(),
		},
	}
}

func cmdProfileSet() *cli.Command {
	var userID string
	var personaName string
	var goals []string
	var preferences string
	var appCfg appConfig

	flags := []cli.Flag{
		userIDFlag(&userID),
		&cli.StringFlag{
			Name:        "persona-name",
			Aliases:     []string{"n"},
			Usage:       "Name of the companion persona",
			Value:       model.DefaultPersonaName,
			Destination: &personaName,
		},
		&cli.StringSliceFlag{
			Name:        "goal",
			Aliases:     []string{"g"},
			Usage:       "Goal (repeatable)",
			Destination: &goals,
		},
		&cli.StringFlag{
			Name:        "preferences",
			Aliases:     []string{"p"},
			Usage:       "Free text preferences",
			Destination: &preferences,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:  "set",
		Usage: "Create or overwrite a profile",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepository(ctx, a.repo)

			msg, err := a.uc.Profile.Setup(ctx, &model.UserProfile{
				UserID:      userID,
				PersonaName: personaName,
				Goals:       goals,
				Preferences: preferences,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to set up profile", goerr.V("user_id", userID))
			}

			fmt.Fprintln(writerOf(c), msg)
			return nil
		},
	}
}

func cmdProfileShow() *cli.Command {
	var userID string
	var appCfg appConfig

	flags := []cli.Flag{userIDFlag(&userID)}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:  "show",
		Usage: "Show a profile",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepository(ctx, a.repo)

			view, err := a.uc.Profile.Get(ctx, userID)
			if err != nil {
				return goerr.Wrap(err, "failed to get profile", goerr.V("user_id", userID))
			}

			printProfile(writerOf(c), view)
			return nil
		},
	}
}
