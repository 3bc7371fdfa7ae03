package cli

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func userIDFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "user-id",
		Aliases:     []string{"u"},
		Usage:       "User ID",
		Value:       model.DefaultUserID,
		Sources:     cli.EnvVars("BROLIFE_USER_ID"),
		Destination: dst,
	}
}

func cmdChat() *cli.Command {
	var userID string
	var appCfg appConfig

	flags := []cli.Flag{userIDFlag(&userID)}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:      "chat",
		Aliases:   []string{"c"},
		Usage:     "Send one message to the companion",
		ArgsUsage: "MESSAGE",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			message := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(message) == "" {
				return goerr.New("message is required")
			}

			a, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepository(ctx, a.repo)

			reply, err := a.uc.Chat.Reply(ctx, userID, message)
			if err != nil {
				return goerr.Wrap(err, "failed to chat", goerr.V("user_id", userID))
			}

			printReply(writerOf(c), reply)
			return nil
		},
	}
}
