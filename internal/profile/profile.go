// Package profile defines the extraction profile: everything that differed
// between site layouts is parameterized here instead of forked into separate
// code paths.
package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile enumerates the knobs of the extraction pipeline for one site layout.
type Profile struct {
	Name string `yaml:"name"`

	// Prefix is the leading component of every output filename.
	Prefix string `yaml:"prefix"`

	// ContainerSelectors is the ordered candidate list for the primary
	// content wrapper; the first selector with a match wins.
	ContainerSelectors []string `yaml:"container_selectors"`

	// ExpandInteractive enables the accordion/tab expansion stage.
	ExpandInteractive  bool     `yaml:"expand_interactive"`
	AccordionSelectors []string `yaml:"accordion_selectors"`
	TabSelectors       []string `yaml:"tab_selectors"`

	// ActiveClass marks an already-expanded accordion title when the
	// aria-expanded attribute is absent.
	ActiveClass string `yaml:"active_class"`

	// HiddenClasses is the breakpoint-hidden class set; an element is
	// dropped only when it carries every class in the set at once.
	HiddenClasses []string `yaml:"hidden_classes"`

	// BOM prepends a UTF-8 byte-order marker to CSV artifacts so
	// spreadsheet applications pick up the encoding.
	BOM bool `yaml:"bom"`
}

var builtins = map[string]Profile{}

func register(p Profile) {
	builtins[strings.ToLower(p.Name)] = p
}

func init() {
	register(Profile{
		Name:   "page",
		Prefix: "page",
		ContainerSelectors: []string{
			`[data-elementor-type="wp-page"]`,
			`[data-elementor-type="single-post"]`,
		},
		ExpandInteractive: true,
		AccordionSelectors: []string{
			".elementor-accordion .elementor-tab-title",
			".elementor-toggle .elementor-tab-title",
			".e-n-accordion-item-title",
		},
		TabSelectors: []string{
			".elementor-tabs .elementor-tab-title",
			".e-n-tabs-heading .e-n-tab-title",
		},
		ActiveClass: "elementor-active",
		HiddenClasses: []string{
			"elementor-hidden-desktop",
			"elementor-hidden-tablet",
			"elementor-hidden-phone",
		},
		BOM: true,
	})

	register(Profile{
		Name:   "post",
		Prefix: "post",
		ContainerSelectors: []string{
			`[data-elementor-type="single-post"]`,
			`[data-elementor-type="wp-page"]`,
			"article .entry-content",
		},
		ExpandInteractive: false,
		ActiveClass:       "elementor-active",
		HiddenClasses: []string{
			"elementor-hidden-desktop",
			"elementor-hidden-tablet",
			"elementor-hidden-phone",
		},
		BOM: false,
	})
}

// Get returns a built-in profile by name.
func Get(name string) (Profile, bool) {
	p, ok := builtins[strings.ToLower(name)]
	return p, ok
}

// Names lists the built-in profile names.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	return names
}

// LoadFile reads a profile from a YAML file. Fields left empty fall back
// to the "page" built-in so a custom profile only has to state what differs.
func LoadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	p, _ := Get("page")
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile file: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the fields without which the pipeline cannot run.
func (p Profile) Validate() error {
	if p.Prefix == "" {
		return fmt.Errorf("profile %q: prefix is required", p.Name)
	}
	if len(p.ContainerSelectors) == 0 {
		return fmt.Errorf("profile %q: at least one container selector is required", p.Name)
	}
	return nil
}
