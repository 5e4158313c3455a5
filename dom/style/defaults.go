package style

import (
	"golang.org/x/net/html"
)

// Values "default" have the following semantics:
// Treat this as an inherent UA default, which should not be instantiated in memory,
// but rather will be treated implicitely by rendering code.
var nonInherited = map[string]string{
	"position":              "static",
	"background-color":      "default",
	"border-top-color":      "default",
	"border-left-color":     "default",
	"border-right-color":    "default",
	"border-bottom-color":   "default",
	"flow-from":             "none",
	"flow-into":             "none",
	"overflow-x":            "visible",
	"overflow-y":            "visible",
	"clip":                  "auto",
	"opacity":               "1",
	"mix-blend-mode":        "normal",
	"isolation":             "auto",
	"filter":                "none",
	"-webkit-box-reflect":   "none",
	"mask":                  "none",
	"mask-image":            "none",
	"transform":             "none",
	"transform-origin":      "50% 50%",
	"transform-style":       "flat",
	"perspective":           "none",
	"perspective-origin":    "50% 50%",
	"backface-visibility":   "visible",
	"will-change":           "auto",
	"animation-name":        "none",
	"background-attachment": "scroll",
	"column-count":          "auto",
	"column-width":          "auto",
	"column-gap":            "normal",
	"column-span":           "none",
	"border-collapse":       "separate",
	"border-spacing":        "0",
}

var isDimension = map[string]string{
	"width":                      "auto",
	"height":                     "auto",
	"min-width":                  "none",
	"min-height":                 "none",
	"max-width":                  "none",
	"max-height":                 "none",
	"top":                        "auto",
	"right":                      "auto",
	"bottom":                     "auto",
	"left":                       "auto",
	"margin-top":                 "0",
	"margin-left":                "0",
	"margin-right":               "0",
	"margin-bottom":              "0",
	"padding-top":                "0",
	"padding-left":               "0",
	"padding-right":              "0",
	"padding-bottom":             "0",
	"border-top-width":           "medium",
	"border-left-width":          "medium",
	"border-right-width":         "medium",
	"border-bottom-width":        "medium",
	"border-top-left-radius":     "0",
	"border-top-right-radius":    "0",
	"border-bottom-left-radius":  "0",
	"border-bottom-right-radius": "0",
}

// GetUserAgentDefaultProperty returns the user-agent default property for a given key.
func GetUserAgentDefaultProperty(node *html.Node, key string) Property {
	p := NullStyle
	switch key {
	case "display":
		p = DisplayPropertyForHTMLNode(node)
	default:
		if dim, ok := isDimension[key]; ok {
			return Property(dim)
		}
		if p, ok := nonInherited[key]; ok {
			return Property(p)
		}
	}
	return p
}

// DisplayPropertyForHTMLNode returns the default `display` CSS property for an HTML node.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	if node.Type != html.ElementNode {
		tracer().Debugf("cannot get display-property for non-element")
		return "none"
	}
	switch node.Data {
	case "head", "style", "script", "title", "meta":
		return "none"
	case "p":
		return "block-inline"
	case "html", "aside", "body", "div", "h1", "h2", "h3",
		"h4", "h5", "h6", "it", "ol", "section",
		"ul", "svg":
		return "block"
	case "i", "b", "span", "strong", "img":
		return "inline"
	case "table":
		return "table"
	case "thead":
		return "table-header-group"
	case "tbody":
		return "table-row-group"
	case "tfoot":
		return "table-footer-group"
	case "tr":
		return "table-row"
	case "td", "th":
		return "table-cell"
	case "g", "rect", "circle", "path", "defs", "mask":
		return "inline"
	}
	tracer().Infof("unknown HTML element %s/%d will be set to display: block",
		node.Data, node.Type)
	return "block"
}

// InitializeDefaultPropertyValues creates an internal data structure to
// hold all the default values for CSS properties.
// In real-world browsers these are the user-agent CSS values.
func InitializeDefaultPropertyValues(additionalProps []KeyValue) *PropertyMap {
	m := make(map[string]*PropertyGroup, 15)
	root := NewPropertyGroup("Root")

	x := NewPropertyGroup(PGX) // special group for extension properties
	for _, kv := range additionalProps {
		x.Set(kv.Key, kv.Value)
	}
	m[PGX] = x

	margins := NewPropertyGroup(PGMargins)
	margins.Set("margin-top", "0")
	margins.Set("margin-left", "0")
	margins.Set("margin-right", "0")
	margins.Set("margin-bottom", "0")
	margins.Parent = root
	m[PGMargins] = margins

	padding := NewPropertyGroup(PGPadding)
	padding.Set("padding-top", "0")
	padding.Set("padding-left", "0")
	padding.Set("padding-right", "0")
	padding.Set("padding-bottom", "0")
	padding.Parent = root
	m[PGPadding] = padding

	border := NewPropertyGroup(PGBorder)
	for _, dir := range fourDirs {
		border.Set(p("border", "color", dir), "black")
		border.Set(p("border", "width", dir), "medium")
		border.Set(p("border", "style", dir), "none")
	}
	for _, corner := range fourCorners {
		border.Set(p("border", "radius", corner), "0")
	}
	border.Parent = root
	m[PGBorder] = border

	dimension := NewPropertyGroup(PGDimension)
	dimension.Set("width", "auto")
	dimension.Set("height", "auto")
	dimension.Set("min-width", "none")
	dimension.Set("min-height", "none")
	dimension.Set("max-width", "none")
	dimension.Set("max-height", "none")
	dimension.Parent = root
	m[PGDimension] = dimension

	region := NewPropertyGroup(PGRegion)
	region.Set("flow-from", "")
	region.Set("flow-into", "")
	region.Parent = root
	m[PGRegion] = region

	display := NewPropertyGroup(PGDisplay)
	display.Set("display", "block")
	display.Set("float", "none")
	display.Set("visibility", "visible")
	display.Set("position", "static")
	display.Parent = root
	m[PGDisplay] = display

	offsets := NewPropertyGroup(PGOffsets)
	for _, dir := range fourDirs {
		offsets.Set(dir, "auto")
	}
	offsets.Parent = root
	m[PGOffsets] = offsets

	color := NewPropertyGroup(PGColor)
	color.Set("color", "default")
	color.Set("background-color", "default")
	color.Parent = root
	m[PGColor] = color

	text := NewPropertyGroup(PGText)
	text.Set("direction", "ltr")
	text.Set("white-space", "normal")
	text.Set("word-spacing", "normal")
	text.Set("letter-spacing", "normal")
	text.Set("word-break", "normal")
	text.Set("overflow-wrap", "normal")
	text.Set("hyphens", "manual")
	text.Parent = root
	m[PGText] = text

	visual := NewPropertyGroup(PGVisual)
	multicol := NewPropertyGroup(PGMulticol)
	table := NewPropertyGroup(PGTable)
	for key, value := range nonInherited {
		switch GroupNameFromPropertyKey(key) {
		case PGVisual:
			visual.Set(key, Property(value))
		case PGMulticol:
			multicol.Set(key, Property(value))
		case PGTable:
			table.Set(key, Property(value))
		}
	}
	visual.Parent = root
	multicol.Parent = root
	table.Parent = root
	m[PGVisual] = visual
	m[PGMulticol] = multicol
	m[PGTable] = table

	return &PropertyMap{m}
}
