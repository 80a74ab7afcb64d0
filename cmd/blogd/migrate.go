package main

import (
	"github.com/spf13/cobra"

	mongodb "github.com/blogql/blog-api/internal/infrastructure/db/mongo"
	"github.com/blogql/blog-api/internal/pkg/config"
)

func newMigrateCmd(rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create MongoDB indexes and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rt.cfg.Store != config.StoreMongo {
				rt.log.Info().Str("store", rt.cfg.Store).Msg("nothing to migrate")
				return nil
			}

			ctx := cmd.Context()
			client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: rt.cfg.Mongo.URI, Database: rt.cfg.Mongo.Database})
			if err != nil {
				rt.log.Error().Err(err).Msg("connect")
				return err
			}
			defer func() { _ = client.Disconnect(ctx) }()

			if err := mongodb.EnsureIndexes(ctx, db); err != nil {
				rt.log.Error().Err(err).Msg("ensure indexes")
				return err
			}
			rt.log.Info().Str("database", rt.cfg.Mongo.Database).Msg("indexes ensured")
			return nil
		},
	}
}
