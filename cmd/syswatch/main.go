// syswatch — host resource monitor with trend analysis, heuristic
// security checks, and retention-based temp-file cleanup.
//
// Samples CPU, memory, network, disk, temperature, and process metrics
// over a fixed window, derives usage trends and pattern levels, scans for
// suspicious processes/files and network anomalies, and emits a
// human-readable report with recommendations.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ostashkin/syswatch/internal/config"
	diffpkg "github.com/ostashkin/syswatch/internal/diff"
	"github.com/ostashkin/syswatch/internal/monitor"
	"github.com/ostashkin/syswatch/internal/output"
	"github.com/ostashkin/syswatch/internal/snapshot"
	"github.com/ostashkin/syswatch/internal/tempclean"
)

var version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "syswatch: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "syswatch",
		Short: "Host resource monitor with trend and security analysis",
		Long: `syswatch — single-binary host resource monitor.

Samples system metrics over a fixed window and reports usage trends,
pattern levels, heuristic security findings, and maintenance
recommendations. Also inventories and cleans temporary files by
retention bucket.`,
		Version: version,
		// Bare `syswatch` runs a monitoring pass.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cfg, monitorOptions{
				samples:  cfg.Samples,
				interval: cfg.SampleInterval(),
				output:   "",
			})
		},
	}

	rootCmd.AddCommand(
		newMonitorCmd(cfg),
		newTempFilesCmd(cfg),
		newCleanTempCmd(cfg),
		newDiffCmd(),
		newMCPCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type monitorOptions struct {
	samples  int
	interval time.Duration
	output   string
	quiet    bool
	verbose  bool
	noFiles  bool
}

func newMonitorCmd(cfg *config.Config) *cobra.Command {
	opts := monitorOptions{
		samples:  cfg.Samples,
		interval: cfg.SampleInterval(),
	}

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Sample the system and print a trend/security report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cfg, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.samples, "samples", "n", cfg.Samples, "Number of snapshots to collect")
	cmd.Flags().DurationVarP(&opts.interval, "interval", "i", cfg.SampleInterval(), "Delay between snapshots")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report as JSON to this path (- for stdout)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&opts.noFiles, "no-file-scan", false, "Skip the filesystem security scan")
	return cmd
}

func runMonitor(cfg *config.Config, opts monitorOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	secCfg := cfg.SecurityConfig()
	if opts.noFiles {
		secCfg.ScanFiles = false
	}

	provider := snapshot.NewSystemProvider()
	provider.TempRoots = cfg.EffectiveTempRoots()
	provider.MaxTempFiles = cfg.TempFileLimit

	runner := &monitor.Runner{
		Provider: provider,
		Interval: opts.interval,
		Samples:  opts.samples,
		Security: secCfg,
		Progress: output.NewProgress(!opts.quiet, opts.verbose),
		Version:  version,
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if opts.output != "" {
		return output.WriteJSON(report, opts.output)
	}
	output.Render(os.Stdout, report)
	return nil
}

func newTempFilesCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "temp-files",
		Aliases: []string{"show-temp-files"},
		Short:   "Show the temporary-file inventory, largest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			set := snapshot.CollectTempFiles(cfg.EffectiveTempRoots(), 0)
			output.RenderTempFiles(os.Stdout, set, limit)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", cfg.TempFileLimit, "Maximum files to list (0 = all)")
	return cmd
}

func newCleanTempCmd(cfg *config.Config) *cobra.Command {
	var (
		bucket string
		days   int
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "clean-temp",
		Short: "Delete temporary files by retention bucket or age threshold",
		Long: `Deletes files under the temp directories whose age matches the
selected retention bucket: recent (1-2 days), moderate (3-5 days), or
old (6+ days). --days selects a raw minimum age instead. Without
--bucket or --days the bucket is prompted for interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := cfg.EffectiveTempRoots()
			if len(roots) == 0 {
				return tempclean.ErrNoRoots
			}

			sel, err := resolveSelector(bucket, days)
			if err != nil {
				return err
			}

			if !yes && !confirm(fmt.Sprintf("Delete files %s under %s?",
				sel, strings.Join(roots, ", "))) {
				fmt.Println("Aborted.")
				return nil
			}

			cleaner := &tempclean.Cleaner{Roots: roots}
			stats := cleaner.Run(sel)
			output.RenderCleanupStats(os.Stdout, stats)
			return nil
		},
	}
	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Retention bucket: recent, moderate, or old")
	cmd.Flags().IntVarP(&days, "days", "d", 0, "Delete files at least this many days old")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// resolveSelector turns the flags into a selector, prompting when neither
// was given. Prompting lives here, never in the cleanup engine.
func resolveSelector(bucket string, days int) (tempclean.Selector, error) {
	if bucket != "" && days > 0 {
		return tempclean.Selector{}, fmt.Errorf("--bucket and --days are mutually exclusive")
	}
	if days > 0 {
		return tempclean.OlderThan(days), nil
	}
	if bucket != "" {
		return tempclean.ParseSelector(bucket)
	}
	return promptSelector(os.Stdin)
}

// promptSelector asks for a 1-4 bucket choice on the given reader.
func promptSelector(r *os.File) (tempclean.Selector, error) {
	fmt.Println("Select which temp files to delete:")
	fmt.Println("  1) recent   (1-2 days old)")
	fmt.Println("  2) moderate (3-5 days old)")
	fmt.Println("  3) old      (6+ days old)")
	fmt.Println("  4) cancel")
	fmt.Print("Choice [1-4]: ")

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return tempclean.Selector{}, fmt.Errorf("no selection made")
	}
	choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || choice < 1 || choice > 4 {
		return tempclean.Selector{}, fmt.Errorf("invalid choice %q", scanner.Text())
	}

	switch choice {
	case 1:
		return tempclean.Recent(), nil
	case 2:
		return tempclean.Moderate(), nil
	case 3:
		return tempclean.Old(), nil
	default:
		return tempclean.Selector{}, fmt.Errorf("cancelled")
	}
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func newDiffCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "diff <baseline.json> <current.json>",
		Short: "Compare two saved monitor reports",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseline, err := output.LoadReport(args[0])
			if err != nil {
				return fmt.Errorf("load baseline: %w", err)
			}
			current, err := output.LoadReport(args[1])
			if err != nil {
				return fmt.Errorf("load current: %w", err)
			}

			result := diffpkg.Compare(baseline, current)
			if outPath == "-" || outPath == "" {
				fmt.Print(diffpkg.FormatDiff(result))
				return nil
			}
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			return os.WriteFile(outPath, data, 0644)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the diff as JSON to this path")
	return cmd
}
