// Package targets loads the ordered URL list that drives a run.
package targets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads one URL per line from path. Blank lines and lines starting
// with '#' are skipped. Order is preserved.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open target list: %w", err)
	}
	defer f.Close()

	urls, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read target list: %w", err)
	}
	return urls, nil
}

// Parse reads the target list format from r.
func Parse(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, NormalizeURL(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// NormalizeURL adds http:// when no scheme is present.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return rawURL
	}
	lower := strings.ToLower(rawURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "http://" + rawURL
	}
	return rawURL
}
