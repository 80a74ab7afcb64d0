package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blogql/blog-api/internal/pkg/config"
	"github.com/blogql/blog-api/pkg/logger"
)

// @title        Blog GraphQL API
// @version      1.0
// @description  GraphQL backend for users, posts and comments.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code. Errors are
// always written to stderr since they may occur before the logger exists.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "blogd: %v\n", err)
		return 1
	}
	return 0
}

// cliState holds what every subcommand needs once the root command set it up.
type cliState struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	rt := &cliState{}
	root := &cobra.Command{
		Use:           "blogd",
		Short:         "GraphQL blog server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  !cfg.IsProduction(),
				Service: "blogd",
			})
			if cfg.UsingDevSecret {
				rt.log.Warn().Msg("JWT_SECRET is not set, signing tokens with the development secret")
			}
			return nil
		},
	}

	root.AddCommand(newServeCmd(rt), newMigrateCmd(rt))
	return root
}
