package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jedipunkz/fieldlens/aggregate"
)

func NewAggregate() *cobra.Command {
	a := &Aggregate{}
	cmd := &cobra.Command{
		Use:   "aggregate PATH KIND [file]",
		Short: "Aggregate the values at a field path",
		Long:  "Aggregate the values at a field path. KIND is one of count, first, last, avg, max, min.",
		Example: `
fieldlens aggregate results.close avg quotes.json
fieldlens aggregate results count -o json quotes.json`,
		Args:         cobra.RangeArgs(2, 3),
		SilenceUsage: true,
		RunE:         a.Run,
	}
	cmd.Flags().StringVarP(&a.Output, "output", "o", "text", "Output format (text, json)")
	return cmd
}

type Aggregate struct {
	Output string
}

func (a *Aggregate) Run(cmd *cobra.Command, args []string) error {
	if err := checkOutput(a.Output, "text", "json"); err != nil {
		return err
	}
	kind, err := aggregate.ParseKind(args[1])
	if err != nil {
		return err
	}
	doc, err := readInput(cmd, args[2:])
	if err != nil {
		return err
	}

	res := aggregate.AggregatePath(doc, args[0], kind)
	if a.Output == "json" {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Display)
	return err
}
