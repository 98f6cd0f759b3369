package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/", "homepage"},
		{"https://example.com", "homepage"},
		{"https://example.com/about/team", "about_team"},
		{"https://example.com/about/team/", "about_team"},
		{"https://example.com///a//", "a"},
		{"https://example.com/contact?ref=nav", "contact"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.url), "url: %s", tt.url)
	}
}

func TestCSVPath(t *testing.T) {
	w := &Writer{Dir: "out", Prefix: "page"}
	assert.Equal(t, filepath.Join("out", "page_about_team_content.csv"), w.CSVPath("https://example.com/about/team"))
	assert.Equal(t, filepath.Join("out", "page_homepage_content.csv"), w.CSVPath("https://example.com/"))
}

func TestWriteCSV(t *testing.T) {
	w := &Writer{Dir: t.TempDir(), Prefix: "page"}

	path, err := w.WriteCSV("https://example.com/about", []string{"Welcome", `She said "hi"`})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "\"Extracted Text\"\n" +
		"\"Welcome\"\n" +
		"\"She said \"\"hi\"\"\"\n"
	assert.Equal(t, want, string(data))
}

func TestWriteCSVWithBOM(t *testing.T) {
	w := &Writer{Dir: t.TempDir(), Prefix: "page", BOM: true}

	path, err := w.WriteCSV("https://example.com/", []string{"Welcome"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// UTF-8 encoding of U+FEFF
	require.True(t, len(data) >= 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.True(t, strings.HasPrefix(string(data), "\uFEFF\"Extracted Text\"\n"))
}

func TestWriteFailureLog(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Prefix: "page"}

	path, err := w.WriteFailureLog([]Failure{
		{URL: "https://example.com/a", Reason: "no matching content container"},
		{URL: "https://example.com/b", Reason: "no visible text found"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FailureLogName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "Extraction failures: 2\n" +
		"\n" +
		"URL: https://example.com/a\n" +
		"Reason: no matching content container\n" +
		"\n" +
		"URL: https://example.com/b\n" +
		"Reason: no visible text found\n"
	assert.Equal(t, want, string(data))
}

// No failures means no log artifact at all.
func TestWriteFailureLogEmpty(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Prefix: "page"}

	path, err := w.WriteFailureLog(nil)
	require.NoError(t, err)
	assert.Equal(t, "", path)

	_, err = os.Stat(filepath.Join(dir, FailureLogName))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteMarkdown(t *testing.T) {
	w := &Writer{Dir: t.TempDir(), Prefix: "page"}

	path, err := w.WriteMarkdown("https://example.com/about", "<h1>About</h1><p>Hello</p>")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "page_about_content.md"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# About")
	assert.Contains(t, string(data), "Hello")
}
