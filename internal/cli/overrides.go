package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/overrides"
	"github.com/fullpipe/twa-sdk-types/pkg/pipeline"
)

// overridesCommand creates the overrides command group.
func (c *CLI) overridesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Inspect and validate method override tables",
	}

	cmd.AddCommand(c.overridesListCommand())
	cmd.AddCommand(c.overridesCheckCommand())
	cmd.AddCommand(c.overridesDumpCommand())

	return cmd
}

func (c *CLI) overridesListCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List overridden methods and event payloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := pipeline.LoadOverrides(path)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, owner := range reg.Owners() {
				fmt.Fprintln(w, StyleTitle.Render(string(owner)))
				for _, fn := range reg.Functions(owner) {
					e, _ := reg.Lookup(owner, fn)
					printKeyValue(w, "  "+fn, describeEntry(e))
				}
			}
			if events := reg.Events(); len(events) > 0 {
				fmt.Fprintln(w, StyleTitle.Render("events"))
				for _, ev := range events {
					shape, _ := reg.EventPayload(ev)
					printKeyValue(w, "  "+ev, shape)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "overrides", "", "override table to list (default built-in)")
	return cmd
}

// describeEntry renders an override as a short signature.
func describeEntry(e overrides.Entry) string {
	if e.Full != "" {
		return e.Full
	}
	ret := e.Return
	if ret == "" {
		ret = "void"
	}
	return "(" + strings.Join(e.Args, ", ") + ") → " + ret
}

func (c *CLI) overridesCheckCommand() *cobra.Command {
	var page string
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate an override table, optionally against a saved page",
		Long: `Check decodes and validates an override table. With --page it also resolves
the saved reference page using the table, which reports the first method or
event the table does not cover.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := overrides.LoadFile(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fns := 0
			for _, owner := range reg.Owners() {
				fns += len(reg.Functions(owner))
			}
			printSuccess(w, "%s is valid", args[0])
			printStats(w, count(len(reg.Owners()), "owner"), count(fns, "method"), count(len(reg.Events()), "event"))

			if page == "" {
				return nil
			}
			data, err := os.ReadFile(page)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", page)
			}
			runner := pipeline.NewRunner(nil, c.Logger)
			g, err := runner.Resolve(cmd.Context(), string(data), pipeline.Options{Overrides: args[0]})
			if err != nil {
				return err
			}
			printSuccess(w, "covers every method of %s", count(len(g.Types), "type"))
			return nil
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "saved reference page (HTML) to resolve with the table")
	return cmd
}

func (c *CLI) overridesDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the built-in override table as TOML",
		Long: `Dump prints the table compiled into the binary. Use it as a starting
point for a custom table passed with --overrides.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(overrides.DefaultTable())
			return err
		},
	}
}
