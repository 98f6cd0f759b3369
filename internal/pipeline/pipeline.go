// Package pipeline runs the per-URL extraction sequence: navigate, stabilize,
// expand interactive widgets, isolate content, normalize text, persist.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"

	"pagetext/internal/browser"
	"pagetext/internal/extract"
	"pagetext/internal/output"
	"pagetext/internal/profile"
	"pagetext/internal/textline"
)

// Failure reasons for the two non-navigation failure modes.
const (
	ReasonNoContainer = "no matching content container"
	ReasonNoText      = "no visible text found"
)

// requestIdleWindow is the quiet period required after load before
// extraction starts, so JS-driven pages finish populating.
const requestIdleWindow = 500 * time.Millisecond

// Config holds the per-run pipeline settings.
type Config struct {
	Profile      profile.Profile
	NavTimeout   time.Duration
	DumpMarkdown bool
}

// ExpandStats counts best-effort widget interactions. Attempted includes
// clicks that failed; failures never escalate past this counter.
type ExpandStats struct {
	Attempted int
	Clicked   int
}

// Result is the outcome of one successfully processed URL.
type Result struct {
	URL        string
	Lines      []string
	Accordions ExpandStats
	Tabs       ExpandStats
	Path       string
}

// Runner drives the pipeline over a single reused page. URLs are processed
// strictly one at a time; the previous URL's pipeline completes before the
// next navigation begins.
type Runner struct {
	page *rod.Page
	cfg  Config
	out  *output.Writer
}

// NewRunner opens the single page that will be reused for every URL.
func NewRunner(b *browser.Browser, cfg Config, out *output.Writer) (*Runner, error) {
	page, err := b.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &Runner{page: page, cfg: cfg, out: out}, nil
}

// Close releases the reused page.
func (r *Runner) Close() {
	if r.page != nil {
		r.page.Close()
	}
}

// Run processes every URL in order. A failed URL is recorded and never
// aborts the run; the failure list covers every URL that produced no
// artifact, in occurrence order.
func (r *Runner) Run(ctx context.Context, urls []string) ([]Result, []output.Failure) {
	var results []Result
	var failures []output.Failure

	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			failures = append(failures, output.Failure{URL: u, Reason: err.Error()})
			continue
		}

		res, fail := r.processURL(u)
		if fail != nil {
			log.Warn().Str("url", fail.URL).Str("reason", fail.Reason).Msg("extraction failed")
			failures = append(failures, *fail)
			continue
		}
		results = append(results, res)
	}

	return results, failures
}

func (r *Runner) processURL(rawURL string) (Result, *output.Failure) {
	log.Info().Str("url", rawURL).Msg("processing")

	if err := r.navigate(rawURL); err != nil {
		return Result{}, &output.Failure{URL: rawURL, Reason: err.Error()}
	}

	stabilize(r.page)

	res := Result{URL: rawURL}
	prof := r.cfg.Profile
	if prof.ExpandInteractive {
		res.Accordions = expandAccordions(r.page, prof.AccordionSelectors, prof.ActiveClass)
		res.Tabs = activateTabs(r.page, prof.TabSelectors)
		log.Debug().
			Int("accordions_attempted", res.Accordions.Attempted).
			Int("accordions_clicked", res.Accordions.Clicked).
			Int("tabs_attempted", res.Tabs.Attempted).
			Int("tabs_clicked", res.Tabs.Clicked).
			Msg("interactive expansion done")
	}

	pageHTML, err := r.page.HTML()
	if err != nil {
		return Result{}, &output.Failure{URL: rawURL, Reason: fmt.Sprintf("failed to capture page HTML: %v", err)}
	}

	iso, err := extract.Isolate(pageHTML, prof.ContainerSelectors, prof.HiddenClasses)
	if errors.Is(err, extract.ErrNoContainer) {
		return Result{}, &output.Failure{URL: rawURL, Reason: ReasonNoContainer}
	}
	if err != nil {
		return Result{}, &output.Failure{URL: rawURL, Reason: err.Error()}
	}

	lines := textline.Normalize(iso.Text)
	if len(lines) == 0 {
		return Result{}, &output.Failure{URL: rawURL, Reason: ReasonNoText}
	}

	path, err := r.out.WriteCSV(rawURL, lines)
	if err != nil {
		return Result{}, &output.Failure{URL: rawURL, Reason: err.Error()}
	}

	if r.cfg.DumpMarkdown {
		if _, err := r.out.WriteMarkdown(rawURL, iso.HTML); err != nil {
			log.Warn().Err(err).Str("url", rawURL).Msg("markdown dump failed")
		}
	}

	res.Lines = lines
	res.Path = path
	log.Info().Str("url", rawURL).Int("lines", len(lines)).Str("out", path).Msg("extracted")
	return res, nil
}

// navigate loads the URL with a single attempt bounded by NavTimeout, then
// waits for load plus a short network-idle window.
func (r *Runner) navigate(rawURL string) error {
	page := r.page.Timeout(r.cfg.NavTimeout)

	if err := page.Navigate(rawURL); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}

	wait := page.WaitRequestIdle(requestIdleWindow, nil, nil,
		[]proto.NetworkResourceType{proto.NetworkResourceTypeImage, proto.NetworkResourceTypeMedia})
	wait()

	return nil
}
