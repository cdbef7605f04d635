package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/isosort/pkg/depgraph"
	"github.com/matzehuels/isosort/pkg/errors"
	"github.com/matzehuels/isosort/pkg/render/dot"
)

// Render writes g in the given format. SVG and PNG go through Graphviz.
func Render(ctx context.Context, g *depgraph.Graph, format string, detailed bool) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph is required")
	}

	if format == FormatJSON {
		var buf bytes.Buffer
		if err := depgraph.WriteJSON(g, &buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write graph")
		}
		return buf.Bytes(), nil
	}

	src := dot.ToDOT(g, dot.Options{Detailed: detailed, RankByOrder: detailed})
	switch format {
	case FormatSVG:
		return dot.RenderSVG(ctx, src)
	case FormatPNG:
		return dot.RenderPNG(ctx, src)
	default:
		return []byte(src), nil
	}
}
