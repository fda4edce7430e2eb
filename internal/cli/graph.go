package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fullpipe/twa-sdk-types/pkg/pipeline"
)

// graphOpts holds the flags of the graph command.
type graphOpts struct {
	sourceOpts
	output   string
	format   string
	detailed bool
}

// graphCommand creates the graph command, which draws which types reference
// which.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the type reference graph as DOT or SVG",
		Example: `  twatypes graph -o types.svg
  twatypes graph -f dot --detailed | dot -Tpng > types.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != pipeline.FormatDOT && opts.format != pipeline.FormatSVG {
				return fmt.Errorf("invalid graph format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return c.runGraph(cmd, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add member counts to nodes")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, opts *graphOpts) error {
	prog := newProgress(c.Logger)
	po := opts.options(cmd)
	po.Formats = []string{opts.format}
	po.Detailed = opts.detailed
	po.SkipEvents = true

	res, err := c.newRunner(opts.noCache, opts.cacheTTL).Execute(cmd.Context(), po)
	if err != nil {
		return err
	}
	paths, err := writeArtifacts(cmd.OutOrStdout(), res, res.Formats, opts.output)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered graph of %s", count(len(res.Graph.Types), "type")))

	for _, p := range paths {
		printSuccess(cmd.ErrOrStderr(), "Rendered type graph")
		printFile(cmd.ErrOrStderr(), p)
	}
	return nil
}
