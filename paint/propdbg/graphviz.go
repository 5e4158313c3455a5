package propdbg

import (
	"fmt"
	"io"
	"text/template"

	"github.com/npillmayer/paintprops/paint/property"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname    string
	ClusterTmpl *template.Template
	EdgeTmpl    *template.Template
}

type dotNode struct {
	Name  string
	Label string
}

type dotCluster struct {
	Kind  string
	Color string
	Nodes []dotNode
}

type dotEdge struct {
	From, To string
	Style    string
}

// ToGraphViz outputs a diagram for the property forests of f. The diagram
// is in GraphViz (DOT) format and has one cluster per kind of node. Solid
// edges point from parent to child; dashed edges point from a clip or
// effect node to the transform node of its local space.
func ToGraphViz(f *Forest, w io.Writer) error {
	head, err := template.New("props").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.ClusterTmpl = template.Must(template.New("cluster").Parse(clusterTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	if err = head.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[any]string, 256)
	transforms := forestOf(f.Transforms)
	clips := forestOf(f.Clips)
	effects := forestOf(f.Effects)
	scrolls := forestOf(f.Scrolls)
	clusters := []dotCluster{
		cluster("transform", "lightblue3", "t", transforms, f, dict),
		cluster("clip", "darkseagreen3", "c", clips, f, dict),
		cluster("effect", "lightsalmon", "e", effects, f, dict),
		cluster("scroll", "khaki", "s", scrolls, f, dict),
	}
	for _, c := range clusters {
		if err = gparams.ClusterTmpl.Execute(w, c); err != nil {
			return err
		}
	}
	var edges []dotEdge
	edges = appendParentEdges(edges, transforms, dict)
	edges = appendParentEdges(edges, clips, dict)
	edges = appendParentEdges(edges, effects, dict)
	edges = appendParentEdges(edges, scrolls, dict)
	space := func(n any, t *property.TransformNode) {
		if from, to := dict[n], dict[t]; from != "" && to != "" {
			edges = append(edges, dotEdge{From: from, To: to, Style: "dashed"})
		}
	}
	clips.preorder(func(c *property.ClipNode) { space(c, c.LocalTransformSpace()) })
	effects.preorder(func(e *property.EffectNode) { space(e, e.LocalTransformSpace()) })
	transforms.preorder(func(t *property.TransformNode) {
		if s := t.ScrollNode(); s != nil {
			if from, to := dict[t], dict[s]; from != "" && to != "" {
				edges = append(edges, dotEdge{From: from, To: to, Style: "dotted"})
			}
		}
	})
	for _, e := range edges {
		if err = gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func cluster[N propertyNode[N]](kind, color, prefix string, fo forest[N], f *Forest,
	dict map[any]string) dotCluster {
	//
	c := dotCluster{Kind: kind, Color: color}
	fo.preorder(func(n N) {
		name := fmt.Sprintf("%s%04d", prefix, len(dict)+1)
		dict[n] = name
		label := n.String()
		if l := f.Label(n); l != "" {
			label = l + "\n" + label
		}
		c.Nodes = append(c.Nodes, dotNode{Name: name, Label: label})
	})
	return c
}

func appendParentEdges[N propertyNode[N]](edges []dotEdge, fo forest[N], dict map[any]string) []dotEdge {
	fo.preorder(func(p N) {
		for _, ch := range fo.children[p] {
			edges = append(edges, dotEdge{From: dict[p], To: dict[ch], Style: "solid"})
		}
	})
	return edges
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "TB"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`

const clusterTmpl = `subgraph cluster_{{ .Kind }} {
  label="{{ .Kind }}" ; style=filled ; fillcolor={{ .Color }} ;
{{ range .Nodes }}  {{ .Name }} [ label={{ printf "%q" .Label }} shape=box style=filled fillcolor=white ] ;
{{ end }}}
`

const edgeTmpl = `{{ .From }} -> {{ .To }} [weight=1 style="{{ .Style }}"] ;
`
