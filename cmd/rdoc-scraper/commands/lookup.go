package commands

import (
	"errors"
	"fmt"
	"os"
	"rdoc-scraper/internal/catalog"
	"rdoc-scraper/internal/rdoc"
	"rdoc-scraper/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <method>",
	Short: "Lists the classes defining a method, according to the catalog of the last scrape.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if !config.Catalog.Enabled() {
			serviceutil.Fatal("failed to open catalog", errors.New("no catalog file is configured"))
		}

		database, err := catalog.OpenDB(config.Catalog)
		if err != nil {
			serviceutil.Fatal("failed to open catalog", err)
		}
		defer database.Close()
		store := catalog.NewStore(database)

		methods, err := store.LookupMethod(cmd.Context(), config.Version, args[0])
		if err != nil {
			serviceutil.Fatal("failed to lookup method", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Method", "Class", "Kind", "File"})
		for _, m := range methods {
			kind := rdoc.InstanceMethod
			if m.IsSingleton {
				kind = rdoc.ClassMethod
			}
			file, err := store.ClassFile(cmd.Context(), config.Version, m.ClassName)
			if err != nil {
				file = ""
			}
			t.AppendRow(table.Row{m.FullName, m.ClassName, kind.String(), file})
		}
		classes, err := store.CountClasses(cmd.Context(), config.Version)
		if err != nil {
			serviceutil.Fatal("failed to count catalog classes", err)
		}
		t.AppendFooter(table.Row{
			fmt.Sprintf("%d matches", len(methods)),
			fmt.Sprintf("%d classes in %s", classes, config.Version),
			"",
			"",
		})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
