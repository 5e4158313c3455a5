package css

import (
	"errors"
	"fmt"

	"github.com/npillmayer/paintprops/dom/style"
	"github.com/npillmayer/paintprops/dom/styledtree"
)

// ErrNoStyles is returned for property lookups without a styled node.
var ErrNoStyles = errors.New("no styled node")

// GetProperty gets the value of a property. If the property is not set
// locally on the style node and the property is inheritable, the search
// cascades to parent property maps, if available. Non-inherited properties
// which are not set locally get the user-agent default.
//
// The keywords "inherit" and "initial" are resolved: "inherit" takes the
// value of the parent node, "initial" the user-agent default.
func GetProperty(node *styledtree.StyNode, key string) (style.Property, error) {
	if node == nil {
		return style.NullStyle, fmt.Errorf("get property %q: %w", key, ErrNoStyles)
	}
	p := GetLocalProperty(node.Styles(), key)
	if p.IsInherit() || (p.IsEmpty() && style.IsCascading(key)) {
		if parent := node.ParentNode(); parent != nil {
			return GetProperty(parent, key)
		}
		p = style.NullStyle
	}
	if p.IsEmpty() || p.IsInitial() {
		p = style.GetUserAgentDefaultProperty(node.HTMLNode(), key)
	}
	return p, nil
}

// GetLocalProperty returns a style property value, if it is set locally
// for a styled node's property map. No cascading is performed.
func GetLocalProperty(pmap *style.PropertyMap, key string) style.Property {
	groupname := style.GroupNameFromPropertyKey(key)
	group := pmap.Group(groupname)
	if group == nil {
		return style.NullStyle
	}
	p, _ := group.Get(key)
	return p
}
