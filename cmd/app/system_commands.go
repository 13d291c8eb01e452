package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/jwtservice/cmd/app/commands"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "generate-secret",
			Usage: "Generate a random HMAC signing secret for JWT_SECRET",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "bytes",
					Aliases: []string{"b"},
					Value:   commands.DefaultSecretBytes,
					Usage:   "Number of random bytes (minimum 32)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGenerateSecret(
					commands.DefaultIO().Writer,
					int(cmd.Int("bytes")),
					cmd.String("format"),
				)
			},
		},
	}
}
