package cssom

import (
	"errors"
	"fmt"
	"sort"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/paintprops/dom/style"
	"github.com/npillmayer/paintprops/dom/styledtree"
	"github.com/npillmayer/paintprops/tree"
	"golang.org/x/net/html"
)

// ErrSelector is returned for rules with selectors cascadia cannot compile.
var ErrSelector = errors.New("illegal selector")

// InlineParser parses the content of an HTML style attribute into a rule
// without a selector.
type InlineParser func(string) (Rule, error)

// CSSOM holds compiled style rules and applies them to HTML parse trees.
type CSSOM struct {
	defaults *style.PropertyMap
	rules    []compiledRule
	inline   InlineParser
}

type compiledRule struct {
	rule      Rule
	selectors cascadia.SelectorGroup
}

// NewCSSOM creates a CSSOM with user-agent defaults. Clients may provide
// extension properties which will be part of the defaults.
func NewCSSOM(additionalProperties []style.KeyValue) *CSSOM {
	return &CSSOM{
		defaults: style.InitializeDefaultPropertyValues(additionalProperties),
	}
}

// SetInlineParser sets the parser for style attributes. Without one, style
// attributes are ignored.
func (cssom *CSSOM) SetInlineParser(p InlineParser) {
	cssom.inline = p
}

// AddStyles compiles the rules of a style sheet. Rules appended later win
// over earlier rules of the same specificity.
func (cssom *CSSOM) AddStyles(sheet StyleSheet) error {
	if sheet == nil || sheet.Empty() {
		return nil
	}
	for _, r := range sheet.Rules() {
		sel, err := cascadia.ParseGroup(r.Selector())
		if err != nil {
			return fmt.Errorf("%w %q: %v", ErrSelector, r.Selector(), err)
		}
		cssom.rules = append(cssom.rules, compiledRule{rule: r, selectors: sel})
	}
	tracer().Debugf("cssom now holds %d rules", len(cssom.rules))
	return nil
}

// RuleCount returns the number of compiled rules.
func (cssom *CSSOM) RuleCount() int {
	return len(cssom.rules)
}

// Style creates a styled tree for an HTML parse tree. The root of the styled
// tree corresponds to dom and carries the user-agent defaults. Only element
// nodes are represented in the styled tree.
func (cssom *CSSOM) Style(dom *html.Node) (*tree.Node[*styledtree.StyNode], error) {
	if dom == nil {
		return nil, errors.New("cannot style empty document")
	}
	root := styledtree.NewNodeForHTMLNode(dom)
	styledtree.Node(root).SetStyles(cssom.defaults)
	if err := cssom.styleChildren(dom, root); err != nil {
		return nil, err
	}
	return root, nil
}

func (cssom *CSSOM) styleChildren(h *html.Node, parent *tree.Node[*styledtree.StyNode]) error {
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		sn := styledtree.NewNodeForHTMLNode(c)
		pmap, err := cssom.computeProperties(c)
		if err != nil {
			return fmt.Errorf("styling <%s>: %w", c.Data, err)
		}
		styledtree.Node(sn).SetStyles(pmap)
		parent.AddChild(sn)
		if err := cssom.styleChildren(c, sn); err != nil {
			return err
		}
	}
	return nil
}

type match struct {
	rule        Rule
	specificity cascadia.Specificity
}

// computeProperties collects the declarations for an element. Normal
// declarations are applied by ascending specificity, then inline styles,
// then important declarations in the same order.
func (cssom *CSSOM) computeProperties(h *html.Node) (*style.PropertyMap, error) {
	var matches []match
	for _, cr := range cssom.rules {
		var best cascadia.Specificity
		found := false
		for _, sel := range cr.selectors {
			if sel.PseudoElement() != "" || !sel.Match(h) {
				continue
			}
			if s := sel.Specificity(); !found || best.Less(s) {
				best = s
			}
			found = true
		}
		if found {
			matches = append(matches, match{rule: cr.rule, specificity: best})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].specificity.Less(matches[j].specificity)
	})
	var inline Rule
	if cssom.inline != nil {
		for _, a := range h.Attr {
			if a.Key != "style" {
				continue
			}
			r, err := cssom.inline(a.Val)
			if err != nil {
				return nil, fmt.Errorf("inline style: %w", err)
			}
			inline = r
		}
	}
	pmap := style.NewPropertyMap()
	for _, important := range []bool{false, true} {
		for _, m := range matches {
			applyRule(pmap, m.rule, important)
		}
		if inline != nil {
			applyRule(pmap, inline, important)
		}
	}
	return pmap, nil
}

func applyRule(pmap *style.PropertyMap, rule Rule, important bool) {
	for _, key := range rule.Properties() {
		if rule.IsImportant(key) != important {
			continue
		}
		value := rule.Value(key)
		if kvs, err := style.SplitCompoundProperty(key, value); err == nil {
			for _, kv := range kvs {
				pmap.Add(kv.Key, kv.Value)
			}
			continue
		}
		pmap.Add(key, value)
	}
}
