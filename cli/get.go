package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jedipunkz/fieldlens/accessor"
	"github.com/jedipunkz/fieldlens/tui"
	"github.com/jedipunkz/fieldlens/value"
)

func NewGet() *cobra.Command {
	g := &Get{}
	cmd := &cobra.Command{
		Use:   "get PATH [file]",
		Short: "Print the value at a field path",
		Example: `
fieldlens get meta.symbol quotes.json
fieldlens get 'results[].close' quotes.json
fieldlens get results.0.date quotes.json`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE:         g.Run,
	}
	cmd.Flags().StringVar(&g.Color, "color", "auto", "Highlight output (auto, always, never)")
	return cmd
}

type Get struct {
	Color string
}

func (g *Get) Run(cmd *cobra.Command, args []string) error {
	if err := checkOutput(g.Color, "auto", "always", "never"); err != nil {
		return errors.Errorf("unsupported color mode %s", g.Color)
	}
	doc, err := readInput(cmd, args[1:])
	if err != nil {
		return err
	}

	v := accessor.Resolve(doc, args[0])
	if v == nil {
		return errors.Errorf("path %s did not resolve", args[0])
	}

	s := strings.TrimRight(value.Pretty(v), "\n")
	out := cmd.OutOrStdout()
	if g.Color == "always" || (g.Color == "auto" && isTerminal(out)) {
		s = tui.HighlightJSON(s)
	}
	_, err = fmt.Fprintln(out, s)
	return err
}
