package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/goliatone/go-krishi-portal/config"
	"github.com/goliatone/go-krishi-portal/logging"
	"github.com/goliatone/go-krishi-portal/pkg/di"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries the state shared by every subcommand of one invocation.
type cli struct {
	configPath string
	envFile    string
	verbose    bool
	offline    bool

	logger    *zap.Logger
	container *di.Container
}

// run executes one invocation and always releases what setup acquired.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := &cli{}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, c.teardown())
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agriportal",
		Short: "Farmer portal client",
		Long: `agriportal runs the farmer portal client against an in-process backend.

Reads go through the shared query cache. List reads are mirrored to the
offline store and served from it when the backend is unreachable.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "agriportal.yaml", "path to the YAML config file")
	flags.StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded before the config")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")
	flags.BoolVar(&c.offline, "offline", false, "simulate an unreachable backend")

	root.AddCommand(
		c.demoCmd(),
		c.listCmd(),
		c.offlineCmd(),
		c.langCmd(),
		c.submitCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", c.envFile, err)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.verbose {
		cfg.Logging.Level = "debug"
	}

	c.logger, err = logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	c.container, err = di.NewContainer(cmd.Context(), cfg, di.WithLogger(c.logger))
	if err != nil {
		return err
	}
	c.container.Backend().SetOffline(c.offline)
	return nil
}

func (c *cli) teardown() error {
	var err error
	if c.container != nil {
		err = c.container.Close()
		c.container = nil
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	return err
}

// start opens the startup session. A connect failure is not fatal: list
// reads still fall back to the offline store.
func (c *cli) start(cmd *cobra.Command) {
	if err := c.container.App().Start(cmd.Context()); err != nil {
		c.logger.Warn("starting without a backend session", zap.Error(err))
	}
}
