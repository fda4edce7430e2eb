// Package cli implements the twatypes command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fullpipe/twa-sdk-types/pkg/buildinfo"
	"github.com/fullpipe/twa-sdk-types/pkg/httputil"
	"github.com/fullpipe/twa-sdk-types/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// defaultCacheTTL is how long a fetched page is reused.
const defaultCacheTTL = 24 * time.Hour

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// cacheDir overrides the default cache location. Tests set it.
	cacheDir string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "twatypes",
		Short: "twatypes generates TypeScript declarations for Telegram Mini Apps",
		Long: `twatypes reads the Telegram Mini Apps reference page, resolves every type
reachable from window.Telegram.WebApp and writes a TypeScript declaration file.
Method signatures the page only states in prose come from an override table.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.overridesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool, ttl time.Duration) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(noCache, ttl), c.Logger)
}

// newCache opens the page cache. It returns nil when caching is disabled
// or the directory cannot be created; the runner then always fetches.
func (c *CLI) newCache(noCache bool, ttl time.Duration) *httputil.Cache {
	if noCache {
		return nil
	}
	dir, err := c.resolveCacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return nil
	}
	cache, err := httputil.NewCache(dir, ttl)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "error", err)
		return nil
	}
	return cache
}

// =============================================================================
// Paths
// =============================================================================

// resolveCacheDir returns the cache directory ($XDG_CACHE_HOME/twatypes or
// the platform equivalent).
func (c *CLI) resolveCacheDir() (string, error) {
	if c.cacheDir != "" {
		return c.cacheDir, nil
	}
	return httputil.DefaultDir()
}

// writeFile writes data to path, creating the parent directory.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
