package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/fetch"
	"github.com/fullpipe/twa-sdk-types/pkg/pipeline"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

// extensions maps each format to the file suffix used when writing several
// formats next to each other.
var extensions = map[string]string{
	pipeline.FormatTS:   ".d.ts",
	pipeline.FormatJSON: ".json",
	pipeline.FormatDOT:  ".dot",
	pipeline.FormatSVG:  ".svg",
}

// sourceOpts holds the flags shared by every command that reads the page.
type sourceOpts struct {
	url       string
	input     string
	overrides string
	seeds     []string
	maxTypes  int
	noCache   bool
	refresh   bool
	cacheTTL  time.Duration
}

func (s *sourceOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&s.url, "url", fetch.DefaultURL, "reference page URL")
	f.StringVarP(&s.input, "input", "i", "", "read the page from a local HTML file instead of fetching it")
	f.StringVar(&s.overrides, "overrides", "", "override table (TOML) replacing the built-in one")
	f.StringSliceVar(&s.seeds, "seed", nil, "type names resolved even when nothing references them (replaces the built-in list)")
	f.IntVar(&s.maxTypes, "max-types", 0, "abort when more types than this are discovered (default 1000)")
	f.BoolVar(&s.noCache, "no-cache", false, "disable the page cache")
	f.BoolVar(&s.refresh, "refresh", false, "fetch the page even if a cached copy is fresh")
	f.DurationVar(&s.cacheTTL, "cache-ttl", defaultCacheTTL, "how long a cached page is reused")
}

// options builds pipeline options from the flags.
func (s *sourceOpts) options(cmd *cobra.Command) pipeline.Options {
	opts := pipeline.Options{
		URL:       s.url,
		Input:     s.input,
		Overrides: s.overrides,
		MaxTypes:  s.maxTypes,
		Refresh:   s.refresh,
	}
	if cmd.Flags().Changed("seed") {
		opts.Seeds = make([]schema.TypeName, 0, len(s.seeds))
		for _, name := range s.seeds {
			if name = strings.TrimSpace(name); name != "" {
				opts.Seeds = append(opts.Seeds, schema.TypeName(name))
			}
		}
	}
	return opts
}

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	sourceOpts
	output     string
	formats    []string
	skipEvents bool
	detailed   bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate TypeScript declarations from the reference page",
		Long: `Generate fetches the Mini Apps reference page (or reads --input), resolves
every type reachable from WebApp and writes the requested formats.

With a single format and no --output the result goes to stdout. With several
formats, --output is a base path and each format gets its own extension.`,
		Example: `  twatypes generate -o index.d.ts
  twatypes generate -i webapps.html -f ts,json -o types/telegram
  twatypes generate --overrides my-overrides.toml --refresh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.formats) == 0 {
				return errors.New(errors.ErrCodeInvalidFormat, "no output format given (use one of: %s)", strings.Join(pipeline.ValidFormats, ", "))
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runGenerate(cmd, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several formats)")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", []string{pipeline.FormatTS}, "output format(s): "+strings.Join(pipeline.ValidFormats, ", "))
	cmd.Flags().BoolVar(&opts.skipEvents, "skip-events", false, "omit the EventType enum and EventCallbacks")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add member counts to graph nodes (dot, svg)")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	if len(opts.formats) > 1 && opts.output == "" {
		return fmt.Errorf("--output is required with more than one format")
	}

	prog := newProgress(c.Logger)
	po := opts.options(cmd)
	po.Formats = opts.formats
	po.SkipEvents = opts.skipEvents
	po.Detailed = opts.detailed

	res, err := c.newRunner(opts.noCache, opts.cacheTTL).Execute(cmd.Context(), po)
	if err != nil {
		return err
	}

	status := cmd.ErrOrStderr()
	paths, err := writeArtifacts(cmd.OutOrStdout(), res, res.Formats, opts.output)
	if err != nil {
		return err
	}
	prog.done("Generated " + pipeline.Summary(res))

	if len(paths) == 0 {
		return nil
	}
	printSuccess(status, "Generated declarations from %s", res.Source)
	for _, p := range paths {
		printFile(status, p)
	}
	events := 0
	if res.Graph.Events != nil {
		events = len(res.Graph.Events.Bindings)
	}
	printStats(status, count(len(res.Graph.Types), "type"), count(res.Graph.MemberCount(), "member"), count(events, "event"))
	printNextStep(status, "Inspect the type graph", "twatypes graph -o types.svg")
	return nil
}

// writeArtifacts writes each format to its file, or the only format to
// stdout when output is empty. It returns the paths written.
func writeArtifacts(stdout io.Writer, res *pipeline.Result, formats []string, output string) ([]string, error) {
	if len(formats) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no output format")
	}
	if output == "" {
		_, err := stdout.Write(res.Artifacts[formats[0]])
		return nil, err
	}
	if len(formats) == 1 {
		if err := writeFile(output, res.Artifacts[formats[0]]); err != nil {
			return nil, fmt.Errorf("write %s: %w", output, err)
		}
		return []string{output}, nil
	}

	base := basePath(output)
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + extensions[f]
		if err := writeFile(path, res.Artifacts[f]); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	for _, ext := range extensions {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	if ext := filepath.Ext(output); ext == ".ts" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
