package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jedipunkz/fieldlens/aggregate"
	"github.com/jedipunkz/fieldlens/schema"
)

func NewTree() *cobra.Command {
	t := &Tree{}
	cmd := &cobra.Command{
		Use:          "tree [file]",
		Short:        "Print the field tree",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         t.Run,
	}
	cmd.Flags().IntVar(&t.MaxDepth, "max-depth", schema.DefaultTreeDepth, "Deepest level of nested fields to include")
	cmd.Flags().BoolVar(&t.NoArrayItems, "no-array-items", false, "Leave out the item fields of arrays of objects")
	cmd.Flags().BoolVar(&t.ExpandArrays, "expand-arrays", false, "Mark arrays with item fields as expanded")
	cmd.Flags().BoolVar(&t.NoSamples, "no-samples", false, "Leave out sample values")
	cmd.Flags().BoolVar(&t.GroupByType, "group-by-type", false, "Order siblings by kind and data type")
	cmd.Flags().StringVarP(&t.Output, "output", "o", "text", "Output format (text, json)")
	return cmd
}

type Tree struct {
	MaxDepth     int
	NoArrayItems bool
	ExpandArrays bool
	NoSamples    bool
	GroupByType  bool
	Output       string
}

func (t *Tree) Run(cmd *cobra.Command, args []string) error {
	if err := checkOutput(t.Output, "text", "json"); err != nil {
		return err
	}
	doc, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	nodes := schema.BuildTree(doc,
		schema.WithMaxDepth(t.MaxDepth),
		schema.WithArrayItems(!t.NoArrayItems),
		schema.WithAutoExpandArrays(t.ExpandArrays),
		schema.WithSampleValues(!t.NoSamples),
		schema.WithGroupByDataType(t.GroupByType),
	)

	out := cmd.OutOrStdout()
	if t.Output == "json" {
		if nodes == nil {
			nodes = []*schema.Node{}
		}
		return writeJSON(out, nodes)
	}
	for _, n := range nodes {
		printNode(out, n)
	}
	return nil
}

func printNode(w io.Writer, n *schema.Node) {
	line := fmt.Sprintf("%s%s (%s) %s/%s", strings.Repeat("  ", n.Depth), n.DisplayLabel, n.Path, n.Kind, n.ValueType)
	if n.ArrayLength != nil {
		line += fmt.Sprintf(" [%d]", *n.ArrayLength)
	}
	if n.IsFinancialData {
		line += " $"
	}
	if n.SampleValue != nil && n.Kind == schema.Simple {
		line += " = " + aggregate.FormatScalar(n.SampleValue)
	}
	fmt.Fprintln(w, line)
	for _, c := range n.Children {
		printNode(w, c)
	}
}
