package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

// fixturePage is the saved reference page shared with the pipeline tests.
var fixturePage = filepath.Join("..", "..", "pkg", "pipeline", "testdata", "webapps.html")

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.cacheDir = t.TempDir()
	return runWith(t, c, args...)
}

func runWith(t *testing.T, c *CLI, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"cache", "completion", "generate", "graph", "overrides"}
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, name := range want {
		found := false
		for _, g := range got {
			if g == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %q (have %v)", name, got)
		}
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "--version")
	if err != nil {
		t.Fatalf("--version error: %v", err)
	}
	if !strings.HasPrefix(stdout, "twatypes version ") {
		t.Errorf("version output = %q", stdout)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _, err := run(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(stdout, "twatypes") {
				t.Errorf("completion script does not mention the command name")
			}
		})
	}

	if _, _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cacheDir = t.TempDir()

	if c.newCache(true, defaultCacheTTL) != nil {
		t.Error("newCache(noCache) should return nil")
	}
	cache := c.newCache(false, defaultCacheTTL)
	if cache == nil {
		t.Fatal("newCache() returned nil")
	}
	if cache.Dir() != c.cacheDir || cache.TTL() != defaultCacheTTL {
		t.Errorf("cache = %s/%s, want %s/%s", cache.Dir(), cache.TTL(), c.cacheDir, defaultCacheTTL)
	}
}
