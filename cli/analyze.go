package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jedipunkz/fieldlens/aggregate"
	"github.com/jedipunkz/fieldlens/internal/logging"
	"github.com/jedipunkz/fieldlens/schema"
)

func NewAnalyze() *cobra.Command {
	a := &Analyze{}
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "List every field path with its type and aggregations",
		Example: `
fieldlens analyze quotes.json
fieldlens analyze --max-depth 5 -o yaml quotes.json
cat quotes.json | fieldlens analyze --financial-keyword close`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         a.Run,
	}
	a.addFlags(cmd)
	cmd.Flags().StringVarP(&a.Output, "output", "o", "table", "Output format (table, json, yaml)")
	return cmd
}

type Analyze struct {
	analyzerFlags
	Output string
}

func (a *Analyze) Run(cmd *cobra.Command, args []string) error {
	if err := checkOutput(a.Output, "table", "json", "yaml"); err != nil {
		return err
	}
	doc, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	descs := a.analyzer().Analyze(doc)
	logging.L().Debugw("analyzed", "descriptors", len(descs))

	out := cmd.OutOrStdout()
	switch a.Output {
	case "json":
		return writeJSON(out, descs)
	case "yaml":
		return writeYAML(out, descs)
	}

	w := newTable(out)
	fmt.Fprintln(w, "PATH\tTYPE\tDATA TYPE\tFINANCIAL\tAGGREGATIONS\tSAMPLE")
	for _, d := range descs {
		financial := ""
		if d.IsFinancialData {
			financial = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Path, d.Kind, d.ValueType, financial, joinKinds(d.AggregationOptions), sample(d))
	}
	return w.Flush()
}

func joinKinds(kinds []aggregate.Kind) string {
	s := make([]string, len(kinds))
	for i, k := range kinds {
		s[i] = k.String()
	}
	return strings.Join(s, ",")
}

func sample(d *schema.Descriptor) string {
	if d.Kind != schema.Simple {
		return aggregate.FormatScalar(d.SampleValue)
	}
	s := []rune(d.SampleValue.String())
	if len(s) > 40 {
		return string(s[:37]) + "..."
	}
	return string(s)
}
