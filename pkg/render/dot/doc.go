// Package dot renders sorter dependency graphs with Graphviz.
//
// # Overview
//
// [ToDOT] turns a [depgraph.Graph] snapshot into DOT source. Each object
// becomes a node labelled with its ID and draw order, and each dependency
// becomes an arrow from the object drawn later to the one it must cover.
// Dynamic objects are filled, segments are drawn as boxes and points as
// ellipses; static edges are solid and per-frame edges dashed.
//
//	src := dot.ToDOT(s.Snapshot(), dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(context.Background(), src)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering; no Graphviz installation is needed.
//
// [depgraph.Graph]: github.com/matzehuels/isosort/pkg/depgraph.Graph
package dot
