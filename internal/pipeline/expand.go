package pipeline

import (
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"
)

const (
	queryTimeout   = 5 * time.Second
	accordionDelay = 200 * time.Millisecond // expand animation
	tabDelay       = 300 * time.Millisecond // tab content mount
)

// expandAccordions clicks every collapsed accordion title matched by the
// selector patterns, in pattern order. A failed click on one element is
// logged and skipped; the remaining elements are still processed.
func expandAccordions(page *rod.Page, selectors []string, activeClass string) ExpandStats {
	var stats ExpandStats

	for _, sel := range selectors {
		elements, err := page.Timeout(queryTimeout).Elements(sel)
		if err != nil {
			log.Debug().Err(err).Str("selector", sel).Msg("accordion query failed")
			continue
		}

		for _, el := range elements {
			expanded, err := isExpanded(el, activeClass)
			if err != nil || expanded {
				continue
			}

			stats.Attempted++
			if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
				log.Debug().Err(err).Str("selector", sel).Msg("accordion click failed")
				continue
			}
			stats.Clicked++
			time.Sleep(accordionDelay)
		}
	}

	return stats
}

// activateTabs clicks every tab title matched by the selector patterns, in
// pattern order. The live element set is re-queried before each click: tab
// activation can re-render the tab strip and invalidate held handles.
func activateTabs(page *rod.Page, selectors []string) ExpandStats {
	var stats ExpandStats

	for _, sel := range selectors {
		elements, err := page.Timeout(queryTimeout).Elements(sel)
		if err != nil {
			log.Debug().Err(err).Str("selector", sel).Msg("tab query failed")
			continue
		}
		total := len(elements)

		for i := 0; i < total; i++ {
			live, err := page.Timeout(queryTimeout).Elements(sel)
			if err != nil || i >= len(live) {
				break
			}

			stats.Attempted++
			if err := live[i].Click(proto.InputMouseButtonLeft, 1); err != nil {
				log.Debug().Err(err).Str("selector", sel).Int("index", i).Msg("tab click failed")
				continue
			}
			stats.Clicked++
			time.Sleep(tabDelay)
		}
	}

	return stats
}

// isExpanded reports whether an accordion title is already open, preferring
// the aria-expanded attribute and falling back to the active class marker.
func isExpanded(el *rod.Element, activeClass string) (bool, error) {
	if v, err := el.Attribute("aria-expanded"); err == nil && v != nil {
		return *v == "true", nil
	}

	cls, err := el.Attribute("class")
	if err != nil {
		return false, err
	}
	if cls == nil || activeClass == "" {
		return false, nil
	}
	for _, c := range strings.Fields(*cls) {
		if c == activeClass {
			return true, nil
		}
	}
	return false, nil
}
