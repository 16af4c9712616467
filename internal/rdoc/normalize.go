package rdoc

import (
	"fmt"
	"strings"
)

// Syck was renamed to YAML (psych replaced it as the yaml engine), every bit of
// scraped text has to refer to the new name.
const (
	LegacyName  = "Syck"
	CurrentName = "YAML"
)

// LegacyMarker prefixes the boilerplate description of the leftover syck
// wrappers in the stdlib docs.
const LegacyMarker = CurrentName + "::" + LegacyName

const (
	arrowGlyph = "→"
	arrowToken = "->"
)

// the placeholder is never produced by xmlEscaper, so it survives escaping untouched
const ltPlaceholder = "|lt;"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func RenameLegacy(text string) string {
	return strings.ReplaceAll(text, LegacyName, CurrentName)
}

// Normalize renames the legacy library and escapes text so it can be placed
// as-is in an xml text node. Entities that were already escaped as "&lt;" are
// kept as they are.
func Normalize(text string) string {
	if text == "" {
		return text
	}
	text = RenameLegacy(text)
	text = strings.ReplaceAll(text, "&lt;", ltPlaceholder)
	text = xmlEscaper.Replace(text)
	return strings.ReplaceAll(text, ltPlaceholder, "&lt;")
}

// EscapeText escapes text for an xml text node without any of the rewriting
// Normalize does.
func EscapeText(text string) string {
	return xmlEscaper.Replace(text)
}

// ConvertCall turns the text of a call sequence into a plain ascii signature.
func ConvertCall(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, arrowGlyph, arrowToken))
}

// RequireNotice is the line prepended to the description of package methods.
func RequireNotice(pkg Package) string {
	if pkg.IsCore() {
		return ""
	}
	label := string(pkg)
	if label == "syck" {
		label = "yaml"
	}
	return fmt.Sprintf("<p>require '%s'</p><br />\n", label)
}
