package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/blogql/blog-api/internal/app"
)

func newServeCmd(rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := app.New(ctx, rt.cfg, rt.log)
			if err != nil {
				rt.log.Error().Err(err).Msg("startup failed")
				return err
			}
			defer a.Close(context.WithoutCancel(ctx))

			if err := a.Run(ctx); err != nil {
				rt.log.Error().Err(err).Msg("server stopped with error")
				return err
			}
			rt.log.Info().Msg("server stopped")
			return nil
		},
	}
}
