package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fullpipe/twa-sdk-types/pkg/classify"
	"github.com/fullpipe/twa-sdk-types/pkg/document"
	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/events"
	"github.com/fullpipe/twa-sdk-types/pkg/fetch"
	"github.com/fullpipe/twa-sdk-types/pkg/httputil"
	"github.com/fullpipe/twa-sdk-types/pkg/markdown"
	"github.com/fullpipe/twa-sdk-types/pkg/observability"
	"github.com/fullpipe/twa-sdk-types/pkg/overrides"
	"github.com/fullpipe/twa-sdk-types/pkg/resolve"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

// PageFetcher downloads the reference page.
type PageFetcher interface {
	Page(ctx context.Context, url string, refresh bool) (*fetch.Page, error)
}

// Runner executes the pipeline. It holds no per-run state.
type Runner struct {
	Fetcher PageFetcher
	Logger  *log.Logger
}

// NewRunner returns a Runner that fetches through cache. A nil cache
// disables caching; a nil logger uses the default logger.
func NewRunner(cache *httputil.Cache, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Fetcher: fetch.NewClient(cache), Logger: logger}
}

// Execute runs load, resolve and render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	res := &Result{Source: opts.Source(), Formats: opts.Formats}

	start := time.Now()
	page, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	res.Stats.LoadTime = time.Since(start)
	res.Stats.PageBytes = len(page)
	r.Logger.Info("loaded page", "source", res.Source, "bytes", len(page), "duration", res.Stats.LoadTime)

	start = time.Now()
	g, err := r.Resolve(ctx, page, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	res.Graph = g
	res.Stats.ResolveTime = time.Since(start)
	res.Stats.Types = len(g.Types)
	res.Stats.Members = g.MemberCount()
	if g.Events != nil {
		res.Stats.Events = len(g.Events.Bindings)
	}
	r.Logger.Info("resolved types",
		"types", res.Stats.Types,
		"members", res.Stats.Members,
		"events", res.Stats.Events,
		"duration", res.Stats.ResolveTime)

	start = time.Now()
	res.Artifacts, err = r.Render(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Stats.RenderTime = time.Since(start)
	r.Logger.Info("rendered outputs", "formats", opts.Formats, "duration", res.Stats.RenderTime)

	return res, nil
}

// Load returns the page markup from opts.Input or opts.URL.
func (r *Runner) Load(ctx context.Context, opts Options) (page string, err error) {
	source := opts.Source()
	observability.Pipeline().OnLoadStart(ctx, source)
	start := time.Now()
	defer func() {
		observability.Pipeline().OnLoadComplete(ctx, source, len(page), time.Since(start), err)
	}()

	if opts.Input != "" {
		data, err := os.ReadFile(opts.Input)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.Input)
		}
		return string(data), nil
	}

	r.Logger.Debug("fetching page", "url", opts.URL, "refresh", opts.Refresh)
	p, err := r.Fetcher.Page(ctx, opts.URL, opts.Refresh)
	if err != nil {
		return "", err
	}
	return p.Body, nil
}

// Resolve parses page and builds the descriptor graph.
func (r *Runner) Resolve(ctx context.Context, page string, opts Options) (g *schema.Graph, err error) {
	r.applyLogger(&opts)

	reg, err := LoadOverrides(opts.Overrides)
	if err != nil {
		return nil, err
	}
	doc, err := document.Parse(strings.NewReader(page))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse page")
	}

	md := markdown.New()
	res := resolve.New(resolve.Options{
		Seeds:    opts.Seeds,
		MaxTypes: opts.MaxTypes,
		Describe: md,
		Logger:   func(msg string, kv ...any) { opts.Logger.Debug(msg, kv...) },
	})

	observability.Pipeline().OnResolveStart(ctx, string(resolve.DefaultRoot))
	start := time.Now()
	defer func() {
		n := 0
		if g != nil {
			n = len(g.Types)
		}
		observability.Pipeline().OnResolveComplete(ctx, string(resolve.DefaultRoot), n, time.Since(start), err)
	}()

	g, err = res.Run(ctx, doc, classify.New(reg, res, md))
	if err != nil {
		return nil, err
	}

	if !opts.SkipEvents {
		et, err := events.New(reg, md, resolve.DefaultDocBase).Bind(doc)
		if err != nil {
			return nil, fmt.Errorf("bind events: %w", err)
		}
		g.Events = et
	}
	return g, nil
}

// LoadOverrides reads the override table at path, or the embedded table
// when path is empty.
func LoadOverrides(path string) (*overrides.Registry, error) {
	if path == "" {
		return overrides.Default()
	}
	return overrides.LoadFile(path)
}

// Render produces every format in opts.Formats.
func (r *Runner) Render(ctx context.Context, g *schema.Graph, opts Options) (artifacts map[string][]byte, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		data, err := RenderFormat(ctx, g, f, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		artifacts[f] = data
		r.Logger.Debug("rendered", "format", f, "bytes", len(data))
	}
	return artifacts, nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Summary returns a one-line description of a result for status output.
func Summary(res *Result) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%d types, %d members", res.Stats.Types, res.Stats.Members)
	if res.Stats.Events > 0 {
		fmt.Fprintf(&b, ", %d events", res.Stats.Events)
	}
	return b.String()
}
