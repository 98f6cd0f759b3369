// Package extract isolates the primary content of a rendered page. It works
// on a captured HTML snapshot, so the browser can be released before any of
// this runs and the logic stays testable without one.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoContainer is returned when none of the candidate container selectors
// match the page.
var ErrNoContainer = errors.New("no matching content container")

// chromeSelector matches page furniture that never carries primary content:
// headers, footers and navigation located by tag name, ARIA role, and the
// usual class/id conventions.
const chromeSelector = `header, footer, nav, [role="banner"], [role="contentinfo"], [role="navigation"],` +
	` .site-header, .site-footer, #header, #footer, .elementor-location-header, .elementor-location-footer`

// Isolated is the content of one page after chrome stripping.
type Isolated struct {
	HTML string // cleaned container markup
	Text string // full text content of the cleaned container
}

// Isolate locates the first matching container selector in pageHTML, strips
// script/style/noscript subtrees, page chrome, and elements hidden on every
// breakpoint (all hiddenClasses present at once), then returns the remaining
// markup and its full text content.
//
// Full text content is used deliberately instead of visible text: content
// behind a closed tab or accordion that failed to expand is hidden by CSS,
// not removed from the DOM, and would otherwise be lost.
func Isolate(pageHTML string, containerSelectors, hiddenClasses []string) (Isolated, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return Isolated{}, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	var container *goquery.Selection
	for _, sel := range containerSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			container = found.First()
			break
		}
	}
	if container == nil {
		return Isolated{}, ErrNoContainer
	}

	// The document was parsed from a snapshot string, so mutating it here
	// never touches the live page.
	container.Find("script, style, noscript").Remove()
	container.Find(chromeSelector).Remove()

	if sel := allHiddenSelector(hiddenClasses); sel != "" {
		container.Find(sel).Remove()
	}

	html, err := goquery.OuterHtml(container)
	if err != nil {
		return Isolated{}, fmt.Errorf("failed to serialize container: %w", err)
	}

	return Isolated{HTML: html, Text: container.Text()}, nil
}

// allHiddenSelector builds a compound class selector requiring every hidden
// class simultaneously, e.g. ".hidden-desktop.hidden-tablet.hidden-phone".
// An element hidden on only some breakpoints is kept.
func allHiddenSelector(hiddenClasses []string) string {
	if len(hiddenClasses) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, class := range hiddenClasses {
		class = strings.TrimSpace(strings.TrimPrefix(class, "."))
		if class == "" {
			continue
		}
		sb.WriteString(".")
		sb.WriteString(class)
	}
	return sb.String()
}
