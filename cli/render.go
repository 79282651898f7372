package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jedipunkz/fieldlens/internal/logging"
	"github.com/jedipunkz/fieldlens/widget"
)

func NewRender() *cobra.Command {
	r := &Render{}
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Evaluate field selections against a document",
		Long: `Evaluate field selections against a document, the way a dashboard widget shows them.
Without --field or --fields-file, fields are suggested from the document's analysis.`,
		Example: `
fieldlens render --field meta.symbol --field 'results.close:avg:Avg Close' quotes.json
fieldlens render --fields-file widget.yaml -o json quotes.json`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         r.Run,
	}
	r.addFlags(cmd)
	cmd.Flags().StringArrayVar(&r.Fields, "field", nil, "Selection as path[:aggregation[:display name]] (repeatable)")
	cmd.Flags().StringVar(&r.FieldsFile, "fields-file", "", "YAML or JSON file of selections")
	cmd.Flags().StringVarP(&r.Output, "output", "o", "table", "Output format (table, json)")
	return cmd
}

type Render struct {
	analyzerFlags
	Fields     []string
	FieldsFile string
	Output     string
}

func (r *Render) Run(cmd *cobra.Command, args []string) error {
	if err := checkOutput(r.Output, "table", "json"); err != nil {
		return err
	}
	sels, err := r.selections()
	if err != nil {
		return err
	}
	doc, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	if len(sels) == 0 {
		sels = widget.Suggest(r.analyzer().Analyze(doc), 0)
		logging.L().Debugw("suggested selections", "count", len(sels))
	}

	fields := widget.Evaluate(doc, sels)
	out := cmd.OutOrStdout()
	if r.Output == "json" {
		return writeJSON(out, fields)
	}

	w := newTable(out)
	fmt.Fprintln(w, "FIELD\tPATH\tAGGREGATION\tVALUE")
	for _, f := range fields {
		icon := ""
		if f.Result == nil && f.Hint.Icon != "" {
			icon = " " + f.Hint.Icon
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s%s\n", f.Label, f.Path, f.Aggregation, f.Display(), icon)
	}
	return w.Flush()
}

func (r *Render) selections() ([]widget.Selection, error) {
	var sels []widget.Selection
	if r.FieldsFile != "" {
		f, err := os.Open(r.FieldsFile)
		if err != nil {
			return nil, errors.Wrap(err, "opening fields file")
		}
		defer f.Close()
		loaded, err := widget.LoadSelections(f)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s", r.FieldsFile)
		}
		sels = append(sels, loaded...)
	}
	for _, s := range r.Fields {
		sel, err := widget.ParseSelection(s)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	return sels, nil
}
