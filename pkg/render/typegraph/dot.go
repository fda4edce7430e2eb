// Package typegraph draws the type-reference graph of a resolved run: one
// node per type, one edge per field that names another type.
package typegraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

// Options configures the diagram.
type Options struct {
	// Detailed adds member counts to node labels.
	Detailed bool
}

// ToDOT converts g to Graphviz DOT. The root is drawn bold and chainable
// types with a double border.
func ToDOT(g *schema.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for _, t := range g.Types {
		fmt.Fprintf(&buf, "  %q [%s];\n", t.Name, strings.Join(nodeAttrs(t, t.Name == g.Root, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, r := range g.References {
		fmt.Fprintf(&buf, "  %q -> %q;\n", r.From, r.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(t *schema.TypeDescriptor, root, detailed bool) []string {
	label := string(t.Name)
	if detailed {
		var fields, methods int
		for _, m := range t.Members {
			if m.Callable != nil {
				methods++
			} else {
				fields++
			}
		}
		label += fmt.Sprintf("\nfields: %d\nmethods: %d", fields, methods)
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if root {
		attrs = append(attrs, "penwidth=2", "fontname=\"Helvetica-Bold\"")
	}
	if t.SelfReturning {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG with the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return fitViewBox(buf.Bytes()), nil
}

var (
	svgOpenRe = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fitViewBox replaces Graphviz's pt-sized svg element with one whose width
// and height match the view box, so browsers scale it without margins.
func fitViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	open := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgOpenRe.ReplaceAll(svg, []byte(open))
}
