package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/jwtservice/cmd/app/commands"
	"github.com/allisson/jwtservice/internal/app"
	"github.com/allisson/jwtservice/internal/config"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-token",
			Usage: "Issue a signed credential using the configured secret",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "claims",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    `JSON object of claims (e.g. '{"userId":"123","role":"admin"}')`,
				},
				&cli.StringFlag{
					Name:    "expires-in",
					Aliases: []string{"e"},
					Usage:   "Lifetime such as 1h, 30m, 7d or a number of seconds (default JWT_EXPIRES_IN)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("claims"),
					cmd.String("expires-in"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-token",
			Usage: "Verify a credential and print its claims (revocations held by a running server are not visible)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Credential to verify",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("token"),
					cmd.String("format"),
				)
			},
		},
	}
}
