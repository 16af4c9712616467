package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"rdoc-scraper/internal/components/telemetry"
	"rdoc-scraper/internal/scrape"
	"rdoc-scraper/lib/serviceutil"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	coreOnly *bool
	outDir   *string
)

func init() {
	coreOnly = scrapeCmd.Flags().Bool("core-only", false, "Only scrape the core library.")
	outDir = scrapeCmd.Flags().String("out", "", "The directory to write class descriptions to, overrides output_dir.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--config <rdoc.json5>] [--core-only] [--out <dir>]",
	Short: "Scrapes the core and standard library documentation and writes a class description for every class.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if *outDir != "" {
			config.OutputDir = *outDir
		}

		shutdown, err := telemetry.SetupTracing(cmd.Context(), "rdoc-scraper", config.Telemetry)
		if err != nil {
			serviceutil.Fatal("failed to setup tracing", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err := shutdown(ctx)
			if err != nil {
				slog.Warn("failed to shutdown tracing", "err", err)
			}
		}()

		slog.Info(
			"scraping",
			"version", config.Version,
			"core", config.CoreUrl,
			"stdlib", config.StdlibTocUrl,
			"core_only", *coreOnly,
		)
		summary, err := scrape.Run(cmd.Context(), config, scrape.Options{
			CoreOnly: *coreOnly,
			Verbose:  *verbose,
		}, telemetry.SlogAPI{})
		if err != nil {
			// the deferred shutdown is skipped by os.Exit
			shutdown(context.Background())
			serviceutil.Fatal("failed to scrape", err)
		}

		printSummary(summary)
		slog.Info(
			"done",
			"classes", len(summary.Classes),
			"methods", summary.MethodCount(),
			"seconds", summary.Duration.Seconds(),
			"out", config.OutputDir,
		)
	},
}

func printSummary(summary scrape.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Class", "Instance methods", "Class methods", "File"})
	for _, c := range summary.Classes {
		t.AppendRow(table.Row{c.Name, c.InstanceMethods, c.ClassMethods, c.File})
	}
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d classes", len(summary.Classes)),
		"",
		"",
		fmt.Sprintf("%d methods", summary.MethodCount()),
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
