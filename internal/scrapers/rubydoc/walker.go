package rubydoc

import (
	"context"
	"fmt"
	"net/url"
	"rdoc-scraper/internal/rdoc"
	"rdoc-scraper/pkg/htmlutil"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_walker_walk        = "walker.walk"
	report_walker_extract     = "walker.extract"
	report_walker_walk_stdlib = "walker.walk-stdlib"
	report_walker_classes     = "walker.classes"
)

// Accumulator collects scraped classes by name, in the order they were first seen.
//
// A class can be documented over several pages (ex. a core class reopened by a
// stdlib package), the methods found on every page are merged into one record.
type Accumulator struct {
	order []string
	items map[string]*rdoc.NodeData
}

func NewAccumulator() *Accumulator {
	return &Accumulator{items: map[string]*rdoc.NodeData{}}
}

// Merge inserts the node, or appends its methods after those of the record
// that already carries the same name.
func (a *Accumulator) Merge(node rdoc.NodeData) {
	existing, ok := a.items[node.Name]
	if !ok {
		a.items[node.Name] = &node
		a.order = append(a.order, node.Name)
		return
	}
	existing.InstanceMethods = slices.Concat(existing.InstanceMethods, node.InstanceMethods)
	existing.ClassMethods = slices.Concat(existing.ClassMethods, node.ClassMethods)
}

func (a *Accumulator) Get(name string) (rdoc.NodeData, bool) {
	node, ok := a.items[name]
	if !ok {
		return rdoc.NodeData{}, false
	}
	return *node, true
}

func (a *Accumulator) Len() int {
	return len(a.order)
}

// Items returns every record in the order it was first merged.
func (a *Accumulator) Items() []rdoc.NodeData {
	items := make([]rdoc.NodeData, len(a.order))
	for i, name := range a.order {
		items[i] = *a.items[name]
	}
	return items
}

var (
	htmlPageRegex   = regexp.MustCompile(`\.html$`)
	sourcePageRegex = regexp.MustCompile(`_(rb|c|txt)\.html`)
)

// classPageLinks returns the links to rendered documentation pages, leaving
// out the pages rdoc generates for source and plain text files.
func classPageLinks(ctx context.Context, doc *goquery.Document) []htmlutil.Anchor {
	var links []htmlutil.Anchor
	for _, a := range htmlutil.GetAnchors(ctx, doc.Find("a[href]")) {
		if htmlPageRegex.MatchString(a.Href) && !sourcePageRegex.MatchString(a.Href) {
			links = append(links, a)
		}
	}
	return links
}

func packageIndexLinks(ctx context.Context, doc *goquery.Document) []htmlutil.Anchor {
	var links []htmlutil.Anchor
	for _, a := range htmlutil.GetAnchors(ctx, doc.Find("a[href]")) {
		if strings.Contains(a.Href, "index.html") {
			links = append(links, a)
		}
	}
	return links
}

// Walk scrapes every class page linked from the entry page into acc.
//
// A failure to fetch the entry page is reported and leaves acc as it was, a
// class page that cannot be scraped is reported and skipped.
func (s Scraper) Walk(ctx context.Context, acc *Accumulator, entry *url.URL, pkg rdoc.Package) *Accumulator {
	ctx, span := tracer.Start(ctx, "scraper:Walk")
	defer span.End()
	span.SetAttributes(
		attribute.String("url", entry.String()),
		attribute.String("package", string(pkg)),
	)

	doc, err := s.client.get(ctx, entry.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch entry page")
		s.tel.ReportBroken(report_walker_walk, err, entry.String())
		return acc
	}

	for _, link := range classPageLinks(ctx, doc) {
		if ctx.Err() != nil {
			s.tel.ReportWarning(report_walker_walk, ctx.Err(), entry.String())
			break
		}

		pageUrl, err := link.Resolve(entry)
		if err != nil {
			s.tel.ReportWarning(report_walker_walk, fmt.Errorf("resolve link: %w", err), link.Href)
			continue
		}

		s.tel.ReportDebug("scraping class page", pageUrl.String(), string(pkg))
		node, err := s.Extract(ctx, pageUrl, pkg)
		if err != nil {
			s.tel.ReportBroken(report_walker_extract, err, pageUrl.String())
			continue
		}
		acc.Merge(node)
	}

	s.tel.ReportCount(report_walker_classes, int64(acc.Len()))
	return acc
}

// WalkCore scrapes the core library documentation.
func (s Scraper) WalkCore(ctx context.Context, acc *Accumulator) *Accumulator {
	return s.Walk(ctx, acc, s.coreUrl, rdoc.Core)
}

// WalkStdlib scrapes the core library and then every package listed in the
// stdlib table of contents, the text of each listing is used as the package label.
func (s Scraper) WalkStdlib(ctx context.Context, acc *Accumulator) *Accumulator {
	ctx, span := tracer.Start(ctx, "scraper:WalkStdlib")
	defer span.End()

	acc = s.WalkCore(ctx, acc)

	doc, err := s.client.get(ctx, s.stdlibTocUrl.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch table of contents")
		s.tel.ReportBroken(report_walker_walk_stdlib, err, s.stdlibTocUrl.String())
		return acc
	}

	for _, link := range packageIndexLinks(ctx, doc) {
		if ctx.Err() != nil {
			s.tel.ReportWarning(report_walker_walk_stdlib, ctx.Err())
			break
		}

		indexUrl, err := link.Resolve(s.stdlibTocUrl)
		if err != nil {
			s.tel.ReportWarning(report_walker_walk_stdlib, fmt.Errorf("resolve link: %w", err), link.Href)
			continue
		}
		acc = s.Walk(ctx, acc, indexUrl, rdoc.Package(link.Name))
	}

	return acc
}
