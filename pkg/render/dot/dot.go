package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/isosort/pkg/depgraph"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the anchors and footprint to node labels.
	Detailed bool
	// RankByOrder lays nodes out back to front in draw order instead of
	// following the edges.
	RankByOrder bool
}

// ToDOT converts a dependency graph snapshot to Graphviz DOT source.
// Nodes are emitted in draw order, so the output is stable for a given
// snapshot.
func ToDOT(g *depgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if opts.RankByOrder {
		buf.WriteString("  newrank=true;\n")
	}
	buf.WriteString("\n")

	nodes := g.NodesByOrder()
	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(*n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Static {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.From, e.To)
		}
	}

	if opts.RankByOrder && len(nodes) > 1 {
		buf.WriteString("\n")
		for i := 1; i < len(nodes); i++ {
			fmt.Fprintf(&buf, "  %q -> %q [style=invis];\n", nodes[i].ID, nodes[i-1].ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n depgraph.Node, detailed bool) string {
	label := fmt.Sprintf("%s\n#%d", n.ID, n.Order)
	if !detailed {
		return label
	}
	if n.Kind == "segment" {
		label += fmt.Sprintf("\n%v to %v", n.P1, n.P2)
	} else {
		label += fmt.Sprintf("\n%v", n.P1)
	}
	return label + "\n" + n.Footprint.String()
}

func fmtAttrs(n depgraph.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if n.Kind == "segment" {
		attrs = append(attrs, "shape=box")
	} else {
		attrs = append(attrs, "shape=ellipse")
	}
	if n.Dynamic {
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// sized in pixels so browsers scale the image.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
