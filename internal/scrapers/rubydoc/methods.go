package rubydoc

import (
	"context"
	"rdoc-scraper/internal/rdoc"
	"rdoc-scraper/pkg/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const visibilityPublic = "public"

// ExtractMethods extracts every method of the given kind linked from the page,
// in the order the links appear. Links whose anchor cannot be found are skipped.
func ExtractMethods(
	ctx context.Context,
	doc *goquery.Document,
	kind rdoc.MethodKind,
	className string,
	pkg rdoc.Package,
) []rdoc.MethodData {
	prefix := "#" + kind.AnchorPrefix()

	methods := []rdoc.MethodData{}
	for _, link := range htmlutil.GetAnchors(ctx, doc.Find("a[href]")) {
		if !strings.HasPrefix(link.Href, prefix) {
			continue
		}
		method, ok := ExtractMethod(doc, link.Name, link.Href, kind, className, pkg)
		if !ok {
			continue
		}
		methods = append(methods, method)
	}
	return methods
}

// findAnchorOwner returns the block that holds the heading, description and
// metadata of the method with the given anchor.
func findAnchorOwner(doc *goquery.Document, anchor string) *goquery.Selection {
	id := strings.TrimPrefix(anchor, "#")
	target := doc.Find("a[name]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("name", "") == id
	}).First()
	return target.Parent()
}

func descriptionBlank(description *goquery.Selection) bool {
	text := strings.TrimSpace(description.Text())
	return text == "" || strings.HasPrefix(text, rdoc.LegacyMarker)
}

// ExtractMethod extracts a single method given the text and target of the link
// pointing to it, ok is false if the method should not be part of the output.
func ExtractMethod(
	doc *goquery.Document,
	name, anchor string,
	kind rdoc.MethodKind,
	className string,
	pkg rdoc.Package,
) (method rdoc.MethodData, ok bool) {
	owner := findAnchorOwner(doc, anchor)
	if owner.Length() == 0 {
		return rdoc.MethodData{}, false
	}
	// the source listing sits inside the description, it must not count as
	// description text
	owner = owner.Clone()
	owner.Find(".method-source-code").Remove()

	methodName := owner.Find(".method-name").First()
	methodArgs := owner.Find(".method-args").First()
	description := owner.Find(".method-description").First()

	var calls []string
	aliases := []rdoc.Alias{}
	callseqs := owner.Find(".method-callseq")
	if callseqs.Length() > 0 {
		callseqs.Each(func(_ int, s *goquery.Selection) {
			calls = append(calls, rdoc.ConvertCall(s.Text()))
		})
	} else {
		calls = []string{methodName.Text()}
		owner.Find(".aliases").First().Find("a").Each(func(_ int, s *goquery.Selection) {
			aliases = append(aliases, rdoc.Alias{Name: rdoc.Normalize(s.Text())})
		})
	}

	if !pkg.IsCore() && descriptionBlank(description) {
		return rdoc.MethodData{}, false
	}

	descriptionHtml, err := description.Html()
	if err != nil {
		return rdoc.MethodData{}, false
	}

	method = rdoc.MethodData{
		Name:        rdoc.Normalize(trimMethodPrefix(name)),
		FullName:    rdoc.Normalize(className + name),
		Namespace:   rdoc.RenameLegacy(className),
		HTMLComment: rdoc.Normalize(rdoc.RequireNotice(pkg) + descriptionHtml),
		Aliases:     aliases,
		Visibility:  visibilityPublic,
		IsSingleton: kind == rdoc.ClassMethod,
	}

	if !pkg.IsCore() {
		if methodName.Length() > 0 {
			method.BlockParams = rdoc.Normalize(methodName.Text() + methodArgs.Text())
		} else {
			method.BlockParams = rdoc.Normalize(strings.Join(calls, "\n"))
		}
		method.Params = ""
	} else {
		method.BlockParams = rdoc.Normalize(strings.Join(calls, "\n"))
		if methodArgs.Length() > 0 {
			method.Params = rdoc.Normalize(methodArgs.Text())
		}
	}

	return method, true
}

// trimMethodPrefix removes the "#" or "::" rdoc puts in front of instance and
// class method names in its method index.
func trimMethodPrefix(name string) string {
	if strings.HasPrefix(name, "#") {
		return name[1:]
	}
	return strings.TrimPrefix(name, "::")
}
