package commands

import (
	"context"
	"fmt"
	"os"
	"rdoc-scraper/internal/components/telemetry"
	"rdoc-scraper/internal/scrape"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
)

var rootCmd = &cobra.Command{
	Use:   "rdoc-scraper",
	Short: "rdoc-scraper turns the ruby-doc.org documentation into class descriptions for the editor's rdoc viewer.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "rdoc.json5", "The config file to read, defaults are used if it does not exist.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enables debug logs and http exchange dumps.")
}

func loadConfig() (scrape.Config, error) {
	config, err := scrape.LoadConfig(*configPath)
	if err != nil {
		return scrape.Config{}, fmt.Errorf("load %s: %w", *configPath, err)
	}
	return config, nil
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
