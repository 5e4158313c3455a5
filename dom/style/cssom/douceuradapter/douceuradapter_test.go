package douceuradapter

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/paintprops/dom/style/css"
	"github.com/npillmayer/paintprops/dom/style/cssom"
	"github.com/npillmayer/paintprops/dom/styledtree"
	"github.com/npillmayer/paintprops/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var cascadeDoc = `<!DOCTYPE html>
<html><head><style>
div { opacity: 0.5; overflow: hidden }
#box { opacity: 0.25 }
.fixed { position: fixed !important }
</style></head>
<body>
  <div id="box" class="fixed" style="position: absolute; opacity: 0.75">x</div>
  <div>y</div>
</body></html>`

var keywordDoc = `<!DOCTYPE html>
<html><head><style>
section { opacity: 0.5; overflow-x: hidden }
.initial { overflow-x: hidden }
</style></head>
<body>
  <section>
    <div id="inherit" style="opacity: inherit; overflow-x: inherit; position: inherit">
      <div id="chain" style="opacity: inherit"></div>
    </div>
    <div class="initial" style="overflow-x: initial; opacity: initial"></div>
  </section>
</body></html>`

func styledFixture(t *testing.T) *tree.Node[*styledtree.StyNode] {
	return styledDocument(t, cascadeDoc)
}

func styledDocument(t *testing.T, source string) *tree.Node[*styledtree.StyNode] {
	doc, err := html.Parse(strings.NewReader(source))
	require.NoError(t, err)
	sheets, err := ExtractStyleElements(doc)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	om := cssom.NewCSSOM(nil)
	om.SetInlineParser(ParseInline)
	for _, s := range sheets {
		require.NoError(t, om.AddStyles(s))
	}
	root, err := om.Style(doc)
	require.NoError(t, err)
	return root
}

func find(t *testing.T, root *tree.Node[*styledtree.StyNode], selector string) []*styledtree.StyNode {
	sel := cascadia.MustCompile(selector)
	nodes, err := tree.DescendantsWith(t.Context(), root, func(n, _ *tree.Node[*styledtree.StyNode]) (*tree.Node[*styledtree.StyNode], error) {
		if sel.Match(n.Payload.HTMLNode()) {
			return n, nil
		}
		return nil, nil
	})
	require.NoError(t, err)
	found := make([]*styledtree.StyNode, len(nodes))
	for i, n := range nodes {
		found[i] = n.Payload
	}
	return found
}

func TestCascadeOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.dom")
	defer teardown()
	//
	root := styledFixture(t)
	divs := find(t, root, "div")
	require.Len(t, divs, 2)
	//
	box := divs[0]
	opacity, err := css.GetProperty(box, "opacity")
	require.NoError(t, err)
	t.Logf("#box opacity = %s", opacity)
	assert.Equal(t, "0.75", opacity.String(), "inline style wins over id selector")
	position, _ := css.GetProperty(box, "position")
	assert.Equal(t, "fixed", position.String(), "important wins over inline style")
	overflowX, _ := css.GetProperty(box, "overflow-x")
	assert.Equal(t, "hidden", overflowX.String(), "compound overflow is split")
	//
	plain := divs[1]
	opacity, _ = css.GetProperty(plain, "opacity")
	assert.Equal(t, "0.5", opacity.String())
	position, _ = css.GetProperty(plain, "position")
	assert.Equal(t, "static", position.String(), "position is not inherited")
	//
	body := find(t, root, "body")[0]
	transform, _ := css.GetProperty(body, "transform")
	assert.Equal(t, "none", transform.String(), "user-agent default")
}

func TestInheritAndInitialKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paintprops.dom")
	defer teardown()
	//
	root := styledDocument(t, keywordDoc)
	value := func(selector, key string) string {
		nodes := find(t, root, selector)
		require.Len(t, nodes, 1, "selector %q", selector)
		p, err := css.GetProperty(nodes[0], key)
		require.NoError(t, err)
		return p.String()
	}
	if v := value("#inherit", "opacity"); v != "0.5" {
		t.Logf("opacity of #inherit = %q", v)
		t.Errorf("expected opacity to be taken from the section")
	}
	assert.Equal(t, "hidden", value("#inherit", "overflow-x"))
	assert.Equal(t, "static", value("#inherit", "position"), "parent has the user-agent default")
	assert.Equal(t, "0.5", value("#chain", "opacity"), "inherit resolves along the chain")
	assert.Equal(t, "visible", value(".initial", "overflow-x"), "initial wins over the class rule")
	assert.Equal(t, "1", value(".initial", "opacity"))
}

func TestInlineParserErrors(t *testing.T) {
	r, err := ParseInline("opacity: 0.3; transform: translate(1px, 2px)")
	require.NoError(t, err)
	assert.Equal(t, []string{"opacity", "transform"}, r.Properties())
	assert.Equal(t, "0.3", r.Value("opacity").String())
	assert.False(t, r.IsImportant("opacity"))
}

func TestInlineParserKeepsLastDeclaration(t *testing.T) {
	for _, decl := range []string{
		"position: absolute; opacity: 0.75",
		"position: absolute; opacity: 0.75;",
		"  position: absolute; opacity: 0.75  ",
	} {
		r, err := ParseInline(decl)
		require.NoError(t, err)
		if r.Value("opacity").String() != "0.75" {
			t.Logf("declarations = %q", decl)
			t.Errorf("expected opacity 0.75, got %q", r.Value("opacity").String())
		}
		assert.Equal(t, "absolute", r.Value("position").String())
	}
	r, err := ParseInline("height: 100px")
	require.NoError(t, err)
	assert.Equal(t, "100px", r.Value("height").String())
}

func TestRejectIllegalSelector(t *testing.T) {
	sheet, err := Parse("div[[ { opacity: 1 }")
	if err != nil {
		t.Logf("douceur rejects the sheet: %v", err)
		return
	}
	om := cssom.NewCSSOM(nil)
	if err := om.AddStyles(sheet); err == nil && om.RuleCount() > 0 {
		t.Error("expected illegal selector to be rejected")
	}
}
