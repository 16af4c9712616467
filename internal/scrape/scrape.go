// Package scrape runs a whole scrape: walking the documentation site, writing
// a class description for every class and indexing them in the catalog.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"rdoc-scraper/internal/catalog"
	"rdoc-scraper/internal/components/telemetry"
	"rdoc-scraper/internal/javaxml"
	"rdoc-scraper/internal/rdoc"
	"rdoc-scraper/internal/scrapers/rubydoc"
	"rdoc-scraper/lib/restyutil"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("rdoc-scraper/internal/scrape")

type Options struct {
	// only scrape the core library
	CoreOnly bool
	// enables http exchange dumps when the config has a dump dir
	Verbose bool
}

type ClassSummary struct {
	Name            string
	InstanceMethods int
	ClassMethods    int
	File            string
}

type Summary struct {
	Classes  []ClassSummary
	Duration time.Duration
}

func (s Summary) MethodCount() int {
	total := 0
	for _, c := range s.Classes {
		total += c.InstanceMethods + c.ClassMethods
	}
	return total
}

func newRenderer(config Config) (javaxml.Renderer, error) {
	if config.Template != "" {
		return javaxml.NewRendererFromFile(config.Template)
	}
	return javaxml.NewRenderer()
}

func newScraper(config Config, opts Options, tel telemetry.API) (rubydoc.Scraper, error) {
	clientOpts := rubydoc.ClientOptions{
		UserAgent:         config.UserAgent,
		Timeout:           config.Timeout(),
		RequestsPerSecond: config.RequestsPerSecond,
	}
	if opts.Verbose && config.HttpDumpDir != "" {
		output, err := restyutil.NewDirOutput(config.HttpDumpDir)
		if err != nil {
			return rubydoc.Scraper{}, err
		}
		slog.Info("dumping http exchanges", "dir", output.Dir())
		clientOpts.Instrument = func(client *resty.Client) {
			restyutil.InstrumentClient(client, nil, output)
		}
	}

	return rubydoc.NewScraper(rubydoc.Options{
		CoreUrl:      config.CoreUrl,
		StdlibTocUrl: config.StdlibTocUrl,
		Client:       clientOpts,
	}, tel)
}

// Run scrapes the documentation and writes the output. Pages that fail to be
// scraped are reported to tel and skipped, failing to write the output is
// returned as an error.
func Run(ctx context.Context, config Config, opts Options, tel telemetry.API) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	summary, err := run(ctx, config, opts, tel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}
	span.SetAttributes(
		attribute.Int("classes", len(summary.Classes)),
		attribute.Int("methods", summary.MethodCount()),
	)
	return summary, nil
}

func run(ctx context.Context, config Config, opts Options, tel telemetry.API) (Summary, error) {
	start := time.Now()

	// fail on a bad template before spending time on the site
	renderer, err := newRenderer(config)
	if err != nil {
		return Summary{}, err
	}
	scraper, err := newScraper(config, opts, tel)
	if err != nil {
		return Summary{}, err
	}

	acc := rubydoc.NewAccumulator()
	if opts.CoreOnly {
		acc = scraper.WalkCore(ctx, acc)
	} else {
		acc = scraper.WalkStdlib(ctx, acc)
	}
	if ctx.Err() != nil {
		return Summary{}, ctx.Err()
	}

	nodes := acc.Items()
	writer := javaxml.NewWriter(renderer, config.OutputDir, config.Version)
	files, err := writer.WriteAll(nodes)
	if err != nil {
		return Summary{}, fmt.Errorf("write class descriptions: %w", err)
	}

	if config.Catalog.Enabled() {
		err = writeCatalog(ctx, config, nodes, files)
		if err != nil {
			return Summary{}, err
		}
	}

	summary := Summary{
		Classes:  make([]ClassSummary, len(nodes)),
		Duration: time.Since(start),
	}
	for i, n := range nodes {
		summary.Classes[i] = ClassSummary{
			Name:            n.Name,
			InstanceMethods: len(n.InstanceMethods),
			ClassMethods:    len(n.ClassMethods),
			File:            files[i],
		}
		tel.ReportDebug("wrote class", n.Name, files[i])
	}
	return summary, nil
}

func writeCatalog(ctx context.Context, config Config, nodes []rdoc.NodeData, files []string) error {
	database, err := catalog.OpenDB(config.Catalog)
	if err != nil {
		return err
	}
	defer database.Close()

	entries := make([]catalog.Entry, len(nodes))
	for i, n := range nodes {
		entries[i] = catalog.Entry{Node: n, File: files[i]}
	}
	err = catalog.NewStore(database).Replace(ctx, config.Version, entries)
	if err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
