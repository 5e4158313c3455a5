package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/paintprops/geom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const scrollingPage = `<!DOCTYPE html>
<html><body>
<div id="s" style="overflow: auto; height: 100px">
  <div style="height: 300px"></div>
</div>
<div style="opacity: 0.5; height: 20px"></div>
</body></html>`

const plainPage = `<html><body><p>Hello</p></body></html>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes a fresh root command and returns its output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDumpText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	page := writeFile(t, t.TempDir(), "page.html", scrollingPage)
	out, err := run(t, "", "dump", page)
	require.NoError(t, err)
	t.Logf("output =\n%s", out)
	assert.True(t, strings.HasPrefix(out, "=== "+page))
	for _, section := range []string{"transforms\n", "clips\n", "effects\n", "scroll\n"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "frame.PreTranslation")
	assert.Contains(t, out, "root transform")
	assert.Contains(t, out, "block(div#s).ScrollTranslation", "the div scrolls")
}

func TestDumpReadsStdin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	out, err := run(t, plainPage, "dump", "--format", "summary")
	require.NoError(t, err)
	if !strings.HasPrefix(out, "-: visited=") {
		t.Logf("output = %q", out)
		t.Errorf("expected a summary for standard input")
	}
}

func TestDumpDotFromEnvironment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.propdbg")
	defer teardown()
	//
	t.Setenv("PROPTREE_FORMAT", "dot")
	page := writeFile(t, t.TempDir(), "page.html", scrollingPage)
	out, err := run(t, "", "dump", page)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "// "+page+"\ndigraph g {"))
	assert.Contains(t, out, "cluster_transform")
}

func TestVerifyKeepsArgumentOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	dir := t.TempDir()
	var args = []string{"verify", "--parallel", "3"}
	for _, name := range []string{"a.html", "b.html", "c.html", "d.html"} {
		content := plainPage
		if name == "b.html" || name == "d.html" {
			content = scrollingPage
		}
		args = append(args, writeFile(t, dir, name, content))
	}
	out, err := run(t, "", args...)
	require.NoError(t, err)
	t.Logf("output =\n%s", out)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for i, name := range []string{"a.html", "b.html", "c.html", "d.html"} {
		assert.True(t, strings.HasPrefix(lines[i], filepath.Join(dir, name)+": ok, "), lines[i])
	}
}

func TestConfigFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	dir := t.TempDir()
	config := writeFile(t, dir, "proptree.yaml", "format: summary\nviewport: 400x300\ntrace: info\n")
	page := writeFile(t, dir, "page.html", plainPage)
	out, err := run(t, "", "--config", config, "dump", page)
	require.NoError(t, err)
	assert.Contains(t, out, page+": visited=")
	//
	out, err = run(t, "", "--config", config, "dump", "--format", "text", page)
	require.NoError(t, err)
	assert.Contains(t, out, "transforms\n", "flags win over the config file")
}

func TestStyleSheetFlag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	dir := t.TempDir()
	css := writeFile(t, dir, "extra.css", "p { opacity: 0.25 }")
	page := writeFile(t, dir, "page.html", plainPage)
	out, err := run(t, "", "dump", "-s", css, page)
	require.NoError(t, err)
	assert.Contains(t, out, "block(p).Effect", "paragraph gets an effect node")
	//
	_, err = run(t, "", "dump", "-s", filepath.Join(dir, "missing.css"), page)
	assert.Error(t, err)
}

func TestIllegalSettings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.prepaint")
	defer teardown()
	//
	page := writeFile(t, t.TempDir(), "page.html", plainPage)
	for _, args := range [][]string{
		{"dump", "--format", "xml", page},
		{"dump", "--viewport", "800", page},
		{"dump", "--viewport", "0x600", page},
		{"verify", "--trace", "loud", page},
		{"verify", filepath.Join(filepath.Dir(page), "missing.html")},
	} {
		_, err := run(t, "", args...)
		if err == nil {
			t.Errorf("expected %v to fail, didn't", args)
		}
	}
}

func TestParseViewport(t *testing.T) {
	vp, err := parseViewport(" 1024X768 ")
	require.NoError(t, err)
	assert.Equal(t, geom.IntSize{Width: 1024, Height: 768}, vp)
	_, err = parseViewport("axb")
	assert.Error(t, err)
}
