package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/zasta/tokenvault/cmd/app/commands"
	"github.com/zasta/tokenvault/internal/app"
	"github.com/zasta/tokenvault/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-service",
			Usage: "Register a new service with a role and generated secret",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Service identifier (e.g., payment-gateway)",
				},
				&cli.StringFlag{
					Name:     "role",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Service role: VISITOR, TOKENIZER, or DETOKENIZER",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				authUseCase, err := container.AuthUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateService(
					ctx,
					authUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("id"),
					cmd.String("role"),
					cmd.String("format"),
				)
			},
		},
	}
}
