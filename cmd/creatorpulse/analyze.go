package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mehedi-hridoy/creator-pulse/internal/config"
	"github.com/mehedi-hridoy/creator-pulse/internal/exporter"
	"github.com/mehedi-hridoy/creator-pulse/internal/files"
	"github.com/mehedi-hridoy/creator-pulse/internal/infrastructure"
	"github.com/mehedi-hridoy/creator-pulse/internal/services"
	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

type analyzeOptions struct {
	files   []string
	dir     string
	out     string
	format  string
	backend string
	k       int
	top     int
	seed    int64
	now     string
	pretty  bool
	bom     bool
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze records from stdin or export files and write the report",
		Long: `Analyze reads one JSON document from stdin, or merges the export files
given with --files or found in --dir, and writes the analytics report.

The report goes to stdout as JSON unless --out names a file (json, xlsx) or
a directory (csv, one file per section).`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, root)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.files, "files", nil, "export files to merge instead of reading stdin")
	f.StringVar(&opts.dir, "dir", "", "directory whose .json export files are merged")
	f.StringVarP(&opts.out, "out", "o", "", "output file, or directory for csv (default: stdout)")
	f.StringVarP(&opts.format, "format", "f", string(exporter.FormatJSON), "report format: json|csv|xlsx")
	f.StringVar(&opts.backend, "backend", "", "numeric backend: auto|vectorized|manual")
	f.IntVar(&opts.k, "k", 0, "number of content theme clusters")
	f.IntVar(&opts.top, "top", 0, "number of content themes to keep")
	f.Int64Var(&opts.seed, "seed", 0, "k-means seed")
	f.StringVar(&opts.now, "now", "", "fixed RFC 3339 clock for generatedAt and focus windows")
	f.BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	f.BoolVar(&opts.bom, "bom", false, "prefix CSV files with a UTF-8 byte order mark")

	return cmd
}

// applyTo overlays the flags that were set onto the analysis configuration
func (o *analyzeOptions) applyTo(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Analysis.Backend = o.backend
	}
	if flags.Changed("k") {
		cfg.Analysis.ClusterK = o.k
	}
	if flags.Changed("top") {
		cfg.Analysis.TopThemes = o.top
	}
	if flags.Changed("seed") {
		cfg.Analysis.ClusterSeed = o.seed
	}
	if err := cfg.Validate(); err != nil {
		return &usageError{err: err}
	}
	return nil
}

func (o *analyzeOptions) overrides() (services.Overrides, error) {
	var ov services.Overrides
	if o.now == "" {
		return ov, nil
	}
	now, err := time.Parse(time.RFC3339, o.now)
	if err != nil {
		return ov, &usageError{err: fmt.Errorf("invalid --now %q: %w", o.now, err)}
	}
	now = now.UTC()
	ov.Now = func() time.Time { return now }
	return ov, nil
}

func (o *analyzeOptions) run(cmd *cobra.Command, root *rootOptions) error {
	ctx := cmd.Context()
	logger := infrastructure.WithComponent(root.logger, "cli")

	if o.dir != "" && len(o.files) > 0 {
		return &usageError{err: errors.New("--dir and --files cannot be combined")}
	}
	format, err := exporter.ParseFormat(o.format)
	if err != nil {
		return &usageError{err: err}
	}
	toStdout := o.out == "" || o.out == "-"
	if format == exporter.FormatCSV && toStdout {
		return &usageError{err: exporter.ErrDirectoryRequired}
	}

	cfg := *root.cfg
	if err := o.applyTo(cmd, &cfg); err != nil {
		return err
	}
	ov, err := o.overrides()
	if err != nil {
		return err
	}

	providers, err := infrastructure.InitializeOTel(cliOTelConfig(cfg.Telemetry), root.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := providers.Shutdown(ctx); err != nil {
			logger.WarnContext(ctx, "telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()
	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	if err != nil {
		return err
	}

	svc, err := services.NewAnalysisServiceFromConfig(cfg.Analysis, metrics, root.logger)
	if err != nil {
		return err
	}

	paths := o.files
	if o.dir != "" {
		found, err := files.NewDiscovery(files.DefaultMaxFileBytes, logger).FindExports(o.dir)
		if err != nil {
			return err
		}
		paths = files.Paths(found)
	}

	var report *domain.Report
	if len(paths) > 0 {
		report, err = svc.AnalyzeFiles(ctx, paths, ov)
	} else {
		report, err = svc.AnalyzeReader(ctx, "stdin", cmd.InOrStdin(), services.SourceCLI, ov)
	}
	if err != nil {
		return err
	}

	exp := exporter.NewExporter(root.logger)
	exportOpts := exporter.Options{Pretty: o.pretty, BOM: o.bom}
	if toStdout {
		return exp.Write(cmd.OutOrStdout(), report, format, exportOpts)
	}

	written, err := exp.WriteFile(o.out, report, format, exportOpts)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Report written",
		slog.String("format", string(format)),
		slog.Any("files", written))
	return nil
}

// cliOTelConfig keeps tracing as configured but never starts a metrics
// endpoint for a one-shot run
func cliOTelConfig(cfg config.TelemetryConfig) *infrastructure.OTelConfig {
	otelCfg := infrastructure.NewOTelConfig(cfg)
	otelCfg.MetricExporter = "none"
	return otelCfg
}
