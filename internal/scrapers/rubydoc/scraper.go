package rubydoc

import (
	"fmt"
	"net/url"
	"rdoc-scraper/internal/components/assert"
	"rdoc-scraper/internal/components/telemetry"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("rdoc-scraper/internal/scrapers/rubydoc")

const (
	DefaultCoreUrl      = "http://www.ruby-doc.org/core-1.9.3/"
	DefaultStdlibTocUrl = "http://www.ruby-doc.org/stdlib-1.9.3/toc.html"
)

type Options struct {
	// the index page of the core library documentation
	CoreUrl string
	// the table of contents listing the index page of every stdlib package
	StdlibTocUrl string
	Client       ClientOptions
}

// Scraper scrapes rdoc generated documentation sites.
type Scraper struct {
	client       *client
	tel          telemetry.API
	coreUrl      *url.URL
	stdlibTocUrl *url.URL
}

func NewScraper(opts Options, tel telemetry.API) (Scraper, error) {
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.CoreUrl)
	assert.NotEmptyStr(opts.StdlibTocUrl)

	tel = telemetry.NewScopedAPI("rubydoc_scraper", tel)

	coreUrl, err := url.Parse(opts.CoreUrl)
	if err != nil {
		return Scraper{}, fmt.Errorf("parse core url: %w", err)
	}
	stdlibTocUrl, err := url.Parse(opts.StdlibTocUrl)
	if err != nil {
		return Scraper{}, fmt.Errorf("parse stdlib toc url: %w", err)
	}

	return Scraper{
		client:       newClient(opts.Client, tel),
		tel:          tel,
		coreUrl:      coreUrl,
		stdlibTocUrl: stdlibTocUrl,
	}, nil
}
