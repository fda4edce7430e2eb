// Package pipeline runs a generation from page to artifacts:
//
//  1. Load: read the reference page from a file or fetch it (cached)
//  2. Resolve: parse the markup, resolve every reachable type, bind events
//  3. Render: write the requested formats
//
// The CLI drives everything through a [Runner]:
//
//	runner := pipeline.NewRunner(cache, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Formats: []string{"ts"}})
//	os.WriteFile("index.d.ts", res.Artifacts["ts"], 0o644)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/fetch"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

// Output formats.
const (
	FormatTS   = "ts"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats lists the supported formats in display order.
var ValidFormats = []string{FormatTS, FormatJSON, FormatDOT, FormatSVG}

// Options configures a run.
type Options struct {
	// URL of the reference page. Ignored when Input is set.
	URL string `json:"url,omitempty"`

	// Input reads the page from a local file instead of the network.
	Input string `json:"input,omitempty"`

	// Overrides is a TOML override table replacing the embedded one.
	Overrides string `json:"overrides,omitempty"`

	// Seeds replaces the default seed list when non-nil.
	Seeds []schema.TypeName `json:"seeds,omitempty"`

	// MaxTypes bounds the resolver; zero means the resolver default.
	MaxTypes int `json:"max_types,omitempty"`

	// SkipEvents omits the event table.
	SkipEvents bool `json:"skip_events,omitempty"`

	Formats []string `json:"formats,omitempty"`

	// Detailed adds member counts to graph nodes.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses the page cache.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result holds the outputs of a run.
type Result struct {
	// Source is the file path or URL the page was read from.
	Source string

	Graph *schema.Graph

	// Formats are the validated formats, in request order.
	Formats []string

	// Artifacts are keyed by format.
	Artifacts map[string][]byte

	Stats Stats
}

// Stats holds counts and stage timings.
type Stats struct {
	PageBytes   int
	Types       int
	Members     int
	Events      int
	LoadTime    time.Duration
	ResolveTime time.Duration
	RenderTime  time.Duration
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input != "" {
		if err := errors.ValidatePath(o.Input); err != nil {
			return fmt.Errorf("input: %w", err)
		}
	} else {
		if o.URL == "" {
			o.URL = fetch.DefaultURL
		}
		if err := errors.ValidateURL(o.URL); err != nil {
			return fmt.Errorf("url: %w", err)
		}
	}
	if o.Overrides != "" {
		if err := errors.ValidatePath(o.Overrides); err != nil {
			return fmt.Errorf("overrides: %w", err)
		}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatTS}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Source returns where the page will be read from.
func (o *Options) Source() string {
	if o.Input != "" {
		return o.Input
	}
	return o.URL
}
