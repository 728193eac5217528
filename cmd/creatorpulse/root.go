package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mehedi-hridoy/creator-pulse/internal/config"
	"github.com/mehedi-hridoy/creator-pulse/internal/infrastructure"
)

// rootOptions carries the state shared by every subcommand
type rootOptions struct {
	configPath string
	envFiles   []string
	logLevel   string

	stdin  io.Reader
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd returns the root command for the CreatorPulse CLI
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdin: stdin}

	rootCmd := &cobra.Command{
		Use:           "creatorpulse",
		Short:         "CreatorPulse Data Brain",
		Long:          "CreatorPulse turns social media performance exports into posting schedules, platform focus, growth alerts and content themes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: creatorpulse.yaml or configs/creatorpulse.yaml)")
	rootCmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, ".env files loaded before the configuration")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level: debug|info|warn|error")

	rootCmd.AddCommand(newAnalyzeCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads configuration, builds the stderr logger and assigns the run
// a trace_id
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(o.envFiles...); err != nil {
		return err
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return &usageError{err: err}
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logger

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(infrastructure.EnsureTraceID(ctx))
	return nil
}
