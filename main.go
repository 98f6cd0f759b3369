package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pagetext/internal/browser"
	"pagetext/internal/output"
	"pagetext/internal/pipeline"
	"pagetext/internal/profile"
	"pagetext/internal/targets"
)

var version = "dev"

var (
	outputDir    string
	profileName  string
	profileFile  string
	prefix       string
	bom          bool
	timeout      time.Duration
	showUI       bool
	proxyURL     string
	dumpMarkdown bool
	verbose      bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:     "pagetext [websites.txt]",
		Short:   "Extract rendered page text into per-page CSV files",
		Version: version,
		Long: `pagetext drives a headless browser over a list of URLs, waits for each
page's dynamic content to render, expands collapsed accordions and tabs,
isolates the primary content container, and writes the cleaned text lines
to one CSV file per page. URLs that yield no content are collected into a
single failure log.`,
		Example: `  # Process the default websites.txt with the "page" profile
  pagetext

  # Post layout, custom output directory
  pagetext --profile post -o out/ urls.txt

  # Custom profile from a YAML file, with markdown dumps for inspection
  pagetext --profile-file shop.yaml --dump-markdown urls.txt`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory for CSV artifacts and the failure log")
	rootCmd.Flags().StringVar(&profileName, "profile", "page", "Built-in extraction profile (page, post)")
	rootCmd.Flags().StringVar(&profileFile, "profile-file", "", "YAML file with a custom extraction profile (overrides --profile)")
	rootCmd.Flags().StringVar(&prefix, "prefix", "", "Override the profile's output filename prefix")
	rootCmd.Flags().BoolVar(&bom, "bom", false, "Override the profile's UTF-8 BOM setting for CSV output")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "Per-URL navigation timeout")
	rootCmd.Flags().BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	rootCmd.Flags().StringVarP(&proxyURL, "proxy", "p", os.Getenv("PAGETEXT_PROXY"), "Proxy URL, defaults to PAGETEXT_PROXY env var")
	rootCmd.Flags().BoolVar(&dumpMarkdown, "dump-markdown", false, "Also write each isolated container as markdown, for inspection")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	targetFile := "websites.txt"
	if len(args) == 1 {
		targetFile = args[0]
	}

	prof, err := resolveProfile(cmd)
	if err != nil {
		return err
	}

	urls, err := targets.Load(targetFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		log.Warn().Str("file", targetFile).Msg("no target URLs configured, nothing to do")
		return nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	b, err := browser.New(browser.Config{
		ProxyURL: proxyURL,
		Headless: !showUI,
	})
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	defer b.Close()

	writer := &output.Writer{Dir: outputDir, Prefix: prof.Prefix, BOM: prof.BOM}
	runner, err := pipeline.NewRunner(b, pipeline.Config{
		Profile:      prof,
		NavTimeout:   timeout,
		DumpMarkdown: dumpMarkdown,
	}, writer)
	if err != nil {
		return err
	}
	defer runner.Close()

	results, failures := runner.Run(context.Background(), urls)

	if logPath, err := writer.WriteFailureLog(failures); err != nil {
		return err
	} else if logPath != "" {
		log.Info().Str("log", logPath).Int("failures", len(failures)).Msg("wrote failure log")
	}

	log.Info().Int("succeeded", len(results)).Int("failed", len(failures)).Msg("run complete")

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d URLs produced no output, see %s", len(failures), len(urls), output.FailureLogName)
	}
	return nil
}

// resolveProfile picks the extraction profile from --profile-file or the
// built-in set, then applies flag overrides.
func resolveProfile(cmd *cobra.Command) (profile.Profile, error) {
	var prof profile.Profile
	if profileFile != "" {
		p, err := profile.LoadFile(profileFile)
		if err != nil {
			return profile.Profile{}, err
		}
		prof = p
	} else {
		p, ok := profile.Get(profileName)
		if !ok {
			return profile.Profile{}, fmt.Errorf("unknown profile: %s (built-ins: %v)", profileName, profile.Names())
		}
		prof = p
	}

	if prefix != "" {
		prof.Prefix = prefix
	}
	if cmd.Flags().Changed("bom") {
		prof.BOM = bom
	}

	return prof, prof.Validate()
}
