package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/graphsketch/pkg/graph"
	graphio "github.com/matzehuels/graphsketch/pkg/io"
)

// execute runs the root command with args and returns what it wrote to
// its output stream.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTestGraph(t *testing.T, name string) string {
	t.Helper()
	s, a := graph.Empty().InsertNode(graph.Point{X: 2, Y: 2})
	s, b := s.InsertNode(graph.Point{X: 12, Y: 6})
	s, _, err := s.InsertEdge(a, b, 1)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := writeGraphFile(s, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := []string{"edit", "export", "validate", "serve", "cache", "config", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestConfigShow(t *testing.T) {
	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, section := range []string{"[editor]", "[render]", "[server]"} {
		if !strings.Contains(out, section) {
			t.Errorf("config show output missing %s:\n%s", section, out)
		}
	}
}

func TestConfigShowBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render]\ncache = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "config", "show", "--config", path); err == nil {
		t.Error("an unknown cache backend should fail validation")
	}
}

func TestValidateCommand(t *testing.T) {
	path := writeTestGraph(t, "g.json")
	if _, err := execute(t, "validate", path); err != nil {
		t.Errorf("validate %s: %v", path, err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"nodes": [], "edges": [{"id": 0, "u": 0, "v": 1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "validate", bad); err == nil {
		t.Error("validate should fail on a dangling edge")
	}
}

func TestExportCommand(t *testing.T) {
	input := writeTestGraph(t, "g.json")

	t.Run("yaml", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "out.yaml")
		if _, err := execute(t, "export", input, "-f", "yaml", "-o", output); err != nil {
			t.Fatalf("export: %v", err)
		}
		got, err := readGraphFile(output)
		if err != nil {
			t.Fatalf("read export: %v", err)
		}
		want, _ := readGraphFile(input)
		if graphio.Fingerprint(got) != graphio.Fingerprint(want) {
			t.Error("yaml export should round-trip the graph")
		}
	})

	t.Run("dot", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "out.dot")
		if _, err := execute(t, "export", input, "-f", "dot", "-o", output, "--no-cache"); err != nil {
			t.Fatalf("export: %v", err)
		}
		data, err := os.ReadFile(output)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), "graph G {") {
			t.Errorf("dot export starts with %q", string(data)[:min(len(data), 20)])
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := execute(t, "export", input, "-f", "gif"); err == nil {
			t.Error("export should reject an unknown format")
		}
	})
}
