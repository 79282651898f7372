package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewDetect() *cobra.Command {
	d := &Detect{}
	cmd := &cobra.Command{
		Use:          "detect [file]",
		Short:        "Summarize the document structure and suggest a presentation",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         d.Run,
	}
	d.addFlags(cmd)
	cmd.Flags().StringVarP(&d.Output, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}

type Detect struct {
	analyzerFlags
	Output string
}

func (d *Detect) Run(cmd *cobra.Command, args []string) error {
	if err := checkOutput(d.Output, "text", "json", "yaml"); err != nil {
		return err
	}
	doc, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	info := d.analyzer().DetectStructure(doc)
	out := cmd.OutOrStdout()
	switch d.Output {
	case "json":
		return writeJSON(out, info)
	case "yaml":
		return writeYAML(out, info)
	}

	w := newTable(out)
	fmt.Fprintf(w, "Type:\t%s\n", info.Type)
	if info.IsArray {
		fmt.Fprintf(w, "Array length:\t%d\n", info.ArrayLength)
	}
	fmt.Fprintf(w, "Nested objects:\t%t\n", info.HasNestedObjects)
	fmt.Fprintf(w, "Max depth:\t%d\n", info.MaxDepth)
	fmt.Fprintf(w, "Financial fields:\t%t\n", info.HasFinancialFields)
	fmt.Fprintf(w, "Recommended display:\t%s\n", info.RecommendedDisplay)
	return w.Flush()
}
