// Package render holds the output formats for a resolved descriptor graph.
//
// The [typescript] subpackage writes the declaration file that is the
// project's main artifact. The [typegraph] subpackage draws the
// type-reference graph with Graphviz, which helps when a new page revision
// pulls in types nobody expected.
//
//	src, err := typescript.Render(g)
//	dot := typegraph.ToDOT(g, typegraph.Options{})
//	svg, err := typegraph.RenderSVG(dot)
//
// [typescript]: github.com/fullpipe/twa-sdk-types/pkg/render/typescript
// [typegraph]: github.com/fullpipe/twa-sdk-types/pkg/render/typegraph
package render
