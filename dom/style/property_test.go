package style

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func TestSplitCompound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.dom")
	defer teardown()
	//
	kv, err := SplitCompoundProperty("border-radius", "4px 8px")
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("border-radius = %v", kv)
	assert.Equal(t, KeyValue{"border-top-left-radius", "4px"}, kv[0])
	assert.Equal(t, KeyValue{"border-top-right-radius", "8px"}, kv[1])
	assert.Equal(t, KeyValue{"border-bottom-right-radius", "4px"}, kv[2])
	assert.Equal(t, KeyValue{"border-bottom-left-radius", "8px"}, kv[3])
	//
	kv, err = SplitCompoundProperty("overflow", "hidden scroll")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []KeyValue{{"overflow-x", "hidden"}, {"overflow-y", "scroll"}}, kv)
	//
	if _, err = SplitCompoundProperty("margin", "1 2 3 4 5"); err == nil {
		t.Error("expected error for 5 margin values, got none")
	}
}

func TestDefaultsCascade(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.dom")
	defer teardown()
	//
	defaults := InitializeDefaultPropertyValues(nil)
	visual := defaults.Group(PGVisual)
	if visual == nil {
		t.Fatal("expected a visual property group in the defaults")
	}
	local, changed := visual.ForkOnProperty("opacity", "0.5", true)
	if !changed {
		t.Error("expected fork on a different opacity to create a new group")
	}
	p, _ := local.Cascade("transform").Get("transform")
	if p != "none" {
		t.Logf("transform = %q", p)
		t.Error("expected transform to cascade to the default 'none'")
	}
	pmap := NewPropertyMap()
	pmap.Add("filter", "blur(2px)")
	if v, ok := pmap.Property("filter"); !ok || v != "blur(2px)" {
		t.Errorf("expected filter to be set on a fresh property map, is %q", v)
	}
}

func TestDisplayDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.dom")
	defer teardown()
	//
	cases := map[string]Property{
		"tr":    "table-row",
		"thead": "table-header-group",
		"div":   "block",
		"style": "none",
	}
	for tag, display := range cases {
		n := &html.Node{Type: html.ElementNode, Data: tag}
		assert.Equal(t, display, DisplayPropertyForHTMLNode(n), tag)
	}
}
