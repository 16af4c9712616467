package rubydoc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"rdoc-scraper/internal/rdoc"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrNoHeading is returned for pages that do not document a class or module.
var ErrNoHeading = errors.New("no class or module heading")

// Extract fetches the page of a single class or module and extracts it.
func (s Scraper) Extract(ctx context.Context, pageUrl *url.URL, pkg rdoc.Package) (rdoc.NodeData, error) {
	ctx, span := tracer.Start(ctx, "scraper:Extract")
	defer span.End()
	span.SetAttributes(
		attribute.String("url", pageUrl.String()),
		attribute.String("package", string(pkg)),
	)

	doc, err := s.client.get(ctx, pageUrl.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return rdoc.NodeData{}, err
	}

	node, err := ExtractNode(ctx, doc, pkg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract")
		return rdoc.NodeData{}, fmt.Errorf("extract %s: %w", pageUrl.String(), err)
	}
	return node, nil
}

// ExtractNode extracts a class or module from its documentation page.
func ExtractNode(ctx context.Context, doc *goquery.Document, pkg rdoc.Package) (rdoc.NodeData, error) {
	heading := doc.Find("h1.class, h1.module").First()
	if heading.Length() == 0 {
		return rdoc.NodeData{}, ErrNoHeading
	}

	description, err := doc.Find("#description").First().Html()
	if err != nil {
		return rdoc.NodeData{}, fmt.Errorf("render description: %w", err)
	}

	node := rdoc.NewNodeData()
	node.Namespace = extractNamespace(doc)
	node.Superclass = ""
	node.Name = rdoc.Normalize(strings.TrimSpace(heading.Text()))
	node.FullName = node.Name
	node.HTMLComment = rdoc.Normalize(description)

	node.InstanceMethods = ExtractMethods(ctx, doc, rdoc.InstanceMethod, node.Name, pkg)
	node.ClassMethods = ExtractMethods(ctx, doc, rdoc.ClassMethod, node.Name, pkg)

	return node, nil
}

func extractNamespace(doc *goquery.Document) string {
	section := doc.Find(".namespace-list-section").First()
	if section.Length() == 0 {
		return ""
	}
	return rdoc.RenameLegacy(strings.TrimSpace(section.Find("a").First().Text()))
}
