// Package output writes the per-page CSV artifacts, the optional markdown
// dumps, and the consolidated failure log.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

const utf8BOM = "\uFEFF"

// Failure records one URL that produced no artifact, with the reason.
type Failure struct {
	URL    string
	Reason string
}

// Writer persists run artifacts into a single directory.
type Writer struct {
	Dir    string
	Prefix string
	BOM    bool
}

// Slug derives the filename slug from a URL: the path with '/' replaced by
// '_' and leading/trailing underscores stripped. An empty path maps to
// "homepage".
func Slug(rawURL string) string {
	path := ""
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	slug := strings.Trim(strings.ReplaceAll(path, "/", "_"), "_")
	if slug == "" {
		return "homepage"
	}
	return slug
}

// CSVPath returns the artifact path for a URL without writing anything.
func (w *Writer) CSVPath(rawURL string) string {
	name := fmt.Sprintf("%s_%s_content.csv", w.Prefix, Slug(rawURL))
	return filepath.Join(w.Dir, name)
}

// WriteCSV writes the extracted lines for one URL as a single-column CSV.
// Every field is quoted, with internal quotes doubled, so spreadsheet
// applications never mis-split on embedded commas. Returns the file path.
func (w *Writer) WriteCSV(rawURL string, lines []string) (string, error) {
	var sb strings.Builder
	if w.BOM {
		sb.WriteString(utf8BOM)
	}
	sb.WriteString(quoteField("Extracted Text"))
	sb.WriteString("\n")
	for _, line := range lines {
		sb.WriteString(quoteField(line))
		sb.WriteString("\n")
	}

	path := w.CSVPath(rawURL)
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return path, nil
}

// WriteMarkdown converts the isolated container HTML to markdown and writes
// it next to the CSV artifact. Used for inspection only.
func (w *Writer) WriteMarkdown(rawURL, containerHTML string) (string, error) {
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(containerHTML)
	if err != nil {
		return "", fmt.Errorf("failed to convert container to markdown: %w", err)
	}

	name := fmt.Sprintf("%s_%s_content.md", w.Prefix, Slug(rawURL))
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown: %w", err)
	}
	return path, nil
}

// FailureLogName is the fixed name of the consolidated failure log.
const FailureLogName = "extraction_failures.log"

// WriteFailureLog writes the failure log listing every URL that produced no
// artifact, in occurrence order. Nothing is written when failures is empty.
func (w *Writer) WriteFailureLog(failures []Failure) (string, error) {
	if len(failures) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extraction failures: %d\n", len(failures)))
	for _, f := range failures {
		sb.WriteString("\n")
		sb.WriteString("URL: " + f.URL + "\n")
		sb.WriteString("Reason: " + f.Reason + "\n")
	}

	path := filepath.Join(w.Dir, FailureLogName)
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write failure log: %w", err)
	}
	return path, nil
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
