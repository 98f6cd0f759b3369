package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var containerSelectors = []string{
	`[data-elementor-type="wp-page"]`,
	`[data-elementor-type="single-post"]`,
}

var hiddenClasses = []string{
	"elementor-hidden-desktop",
	"elementor-hidden-tablet",
	"elementor-hidden-phone",
}

func TestIsolateStripsScriptsAndChrome(t *testing.T) {
	page := `<html><body>
		<div data-elementor-type="wp-page">
			<header>Site Title</header>
			<nav>Menu</nav>
			<div role="banner">Banner</div>
			<p>Welcome to the shop</p>
			<script>var x = 1;</script>
			<style>.a { color: red }</style>
			<noscript>Enable JS</noscript>
			<div class="site-footer">Footer links</div>
			<footer>Copyright</footer>
			<p>Opening hours</p>
		</div>
	</body></html>`

	iso, err := Isolate(page, containerSelectors, hiddenClasses)
	require.NoError(t, err)

	assert.Contains(t, iso.Text, "Welcome to the shop")
	assert.Contains(t, iso.Text, "Opening hours")
	assert.NotContains(t, iso.Text, "var x = 1")
	assert.NotContains(t, iso.Text, "color: red")
	assert.NotContains(t, iso.Text, "Enable JS")
	assert.NotContains(t, iso.Text, "Site Title")
	assert.NotContains(t, iso.Text, "Menu")
	assert.NotContains(t, iso.Text, "Banner")
	assert.NotContains(t, iso.Text, "Footer links")
	assert.NotContains(t, iso.Text, "Copyright")
}

func TestIsolateHiddenOnEveryBreakpoint(t *testing.T) {
	page := `<html><body>
		<div data-elementor-type="wp-page">
			<div class="elementor-hidden-desktop elementor-hidden-tablet elementor-hidden-phone">Never shown</div>
			<div class="elementor-hidden-desktop">Mobile only</div>
			<div class="elementor-hidden-phone elementor-hidden-tablet">Desktop only</div>
		</div>
	</body></html>`

	iso, err := Isolate(page, containerSelectors, hiddenClasses)
	require.NoError(t, err)

	assert.NotContains(t, iso.Text, "Never shown")
	assert.Contains(t, iso.Text, "Mobile only")
	assert.Contains(t, iso.Text, "Desktop only")
}

// Text hidden by CSS (closed tab panels) stays in the DOM and must be kept.
func TestIsolateKeepsCSSHiddenContent(t *testing.T) {
	page := `<html><body>
		<div data-elementor-type="wp-page">
			<div class="elementor-tab-content" style="display:none">Tab two body</div>
		</div>
	</body></html>`

	iso, err := Isolate(page, containerSelectors, hiddenClasses)
	require.NoError(t, err)
	assert.Contains(t, iso.Text, "Tab two body")
}

func TestIsolateFallsBackToSecondSelector(t *testing.T) {
	page := `<html><body>
		<div data-elementor-type="single-post"><p>Post body</p></div>
	</body></html>`

	iso, err := Isolate(page, containerSelectors, hiddenClasses)
	require.NoError(t, err)
	assert.Contains(t, iso.Text, "Post body")
}

func TestIsolateNoContainer(t *testing.T) {
	page := `<html><body><div class="unrelated">text</div></body></html>`

	_, err := Isolate(page, containerSelectors, hiddenClasses)
	assert.ErrorIs(t, err, ErrNoContainer)
}

func TestIsolateReturnsContainerHTML(t *testing.T) {
	page := `<html><body>
		<div data-elementor-type="wp-page"><h1>Title</h1><script>x();</script></div>
	</body></html>`

	iso, err := Isolate(page, containerSelectors, hiddenClasses)
	require.NoError(t, err)
	assert.Contains(t, iso.HTML, "<h1>Title</h1>")
	assert.NotContains(t, iso.HTML, "<script>")
}

func TestAllHiddenSelector(t *testing.T) {
	assert.Equal(t, ".a.b", allHiddenSelector([]string{"a", ".b"}))
	assert.Equal(t, "", allHiddenSelector(nil))
	assert.Equal(t, "", allHiddenSelector([]string{"", "  "}))
}
