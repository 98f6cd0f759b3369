package pipeline

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

const (
	scrollStep     = 100 // pixels per increment
	scrollInterval = 100 * time.Millisecond

	// maxScrollSteps bounds the walk so an infinite-scroll feed cannot
	// stall the run.
	maxScrollSteps = 600

	// settleDelay gives counters and reveal animations time to finish
	// after the scroll walk returns to the top.
	settleDelay = time.Second
)

// stabilize scrolls the viewport from top to bottom in fixed increments so
// lazy-loaded content materializes, then resets to the top and pauses.
// Side effect only; scroll manipulation has no failure path, so errors are
// swallowed and the walk simply ends early.
func stabilize(page *rod.Page) {
	for i := 0; i < maxScrollSteps; i++ {
		res, err := page.Eval(fmt.Sprintf(`() => {
			window.scrollBy(0, %d);
			return window.scrollY + window.innerHeight >= document.body.scrollHeight;
		}`, scrollStep))
		if err != nil {
			break
		}
		if res.Value.Bool() {
			break
		}
		time.Sleep(scrollInterval)
	}

	_, _ = page.Eval(`() => window.scrollTo(0, 0)`)
	time.Sleep(settleDelay)
}
