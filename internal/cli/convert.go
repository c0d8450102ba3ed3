package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ppiankov/qticonv/internal/model"
	"github.com/ppiankov/qticonv/internal/pipeline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrMissingExportPath is returned when convert is run without an export
var ErrMissingExportPath = errors.New("missing export path")

var (
	exportPath string
	noCache    bool
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <export-path>",
	Short: "Convert a Canvas course export into Coursera question banks",
	Long: `Convert reads every QTI document under <export-path>/non_cc_assessments:
- Parse assessments and question banks
- Resolve the banks each assessment draws from
- Expand matching questions into multiple choice variations
- Write one text file per assessment and per bank

Files are written to the export path unless --output-dir is given.

Example:
  qticonv convert ./course-export
  qticonv convert --export-path ./course-export --output-dir ./banks
  qticonv convert ./course-export --on-missing-bank fail --log-format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	defaults := model.DefaultConfig()
	flags := convertCmd.Flags()
	flags.StringVar(&exportPath, "export-path", "", "path to the unpacked Canvas course export")
	flags.String("output-dir", "", "output directory (default: the export path)")
	flags.Int("concurrency", runtime.NumCPU(), "number of concurrent document readers")
	flags.String("on-missing-bank", defaults.Render.OnMissingBank, "unresolved bank references: skip or fail")
	flags.BoolVar(&noCache, "no-cache", false, "disable the markup reduction cache")
	flags.String("log-level", defaults.Log.Level, "diagnostics level (debug, info, warn, error)")
	flags.String("log-format", defaults.Log.Format, "diagnostics format (text or json)")

	_ = viper.BindPFlag("output.dir", flags.Lookup("output-dir"))
	_ = viper.BindPFlag("concurrency.workers", flags.Lookup("concurrency"))
	_ = viper.BindPFlag("render.on_missing_bank", flags.Lookup("on-missing-bank"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

// resolveExportPath picks the positional argument over --export-path
func resolveExportPath(args []string, flagValue string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if flagValue != "" {
		return flagValue, nil
	}
	return "", ErrMissingExportPath
}

func runConvert(cmd *cobra.Command, args []string) error {
	path, err := resolveExportPath(args, exportPath)
	if err != nil {
		_ = cmd.Usage()
		return err
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	log, err := newLogger(cfg.Log, verbose, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = convert(ctx, cfg, path, log, os.Stderr)
	return err
}

// convert runs one conversion of the export at path and reports progress
// to out
func convert(ctx context.Context, cfg *model.Config, path string, log logrus.FieldLogger, out io.Writer) (*pipeline.Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("export path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("export path %s is not a directory", path)
	}

	outputDir := cfg.Output.Dir
	if outputDir == "" {
		outputDir = path
	}

	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "  qticonv Conversion\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "  Export:       %s\n", path)
	fmt.Fprintf(out, "  Documents:    %s\n", filepath.Join(path, cfg.Input.AssessmentsDir, cfg.Input.Pattern))
	fmt.Fprintf(out, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(out, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(out, "  Missing bank: %s\n", cfg.Render.OnMissingBank)
	fmt.Fprintf(out, "\n")

	start := time.Now()
	source := pipeline.NewDirSource(path, cfg.Input)
	sink := pipeline.NewDirSink(outputDir)
	p := pipeline.NewPipeline(cfg, source, sink, log)

	summary, err := p.Run(ctx)
	if summary != nil {
		for _, name := range summary.Written {
			fmt.Fprintf(out, "✓ %s\n", name)
		}
		for _, doc := range summary.Failed {
			fmt.Fprintf(out, "✗ %s\n", doc)
		}
		for _, title := range summary.Skipped {
			fmt.Fprintf(out, "⚠ skipped assessment %s\n", title)
		}

		fmt.Fprintf(out, "\n")
		fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(out, "  Conversion Complete\n")
		fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(out, "\n")
		fmt.Fprintf(out, "  Documents:    %d (%d failed)\n", summary.Documents, len(summary.Failed))
		fmt.Fprintf(out, "  Assessments:  %d\n", summary.Assessments)
		fmt.Fprintf(out, "  Banks:        %d\n", summary.Banks)
		fmt.Fprintf(out, "  Files:        %d\n", len(summary.Written))
		fmt.Fprintf(out, "  Elapsed:      %v\n", time.Since(start).Round(time.Millisecond))
		fmt.Fprintf(out, "\n")
	}
	if err != nil {
		return summary, fmt.Errorf("conversion failed: %w", err)
	}
	return summary, nil
}
