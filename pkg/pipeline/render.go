package pipeline

import (
	"context"
	"encoding/json"

	"github.com/fullpipe/twa-sdk-types/pkg/render/typegraph"
	"github.com/fullpipe/twa-sdk-types/pkg/render/typescript"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

// RenderFormat renders g in a single format.
func RenderFormat(ctx context.Context, g *schema.Graph, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatTS:
		return typescript.Render(g)
	case FormatJSON:
		data, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatDOT:
		return []byte(typegraph.ToDOT(g, typegraph.Options{Detailed: opts.Detailed})), nil
	default:
		return typegraph.RenderSVG(ctx, typegraph.ToDOT(g, typegraph.Options{Detailed: opts.Detailed}))
	}
}
