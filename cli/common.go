package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/liggitt/tabwriter"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jedipunkz/fieldlens/internal/logging"
	"github.com/jedipunkz/fieldlens/schema"
	"github.com/jedipunkz/fieldlens/value"
)

// readInput parses the file named by args[0], or stdin when no file is given
// and stdin is not a terminal.
func readInput(cmd *cobra.Command, args []string) (*value.Value, error) {
	var (
		data   []byte
		err    error
		source = "stdin"
	)

	if len(args) > 0 && args[0] != "-" {
		source = args[0]
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", source)
		}
	} else {
		in := cmd.InOrStdin()
		if isTerminal(in) {
			return nil, errors.Errorf("no input: use %s <JSON_FILE> or cat <JSON_FILE> | %s", cmd.CommandPath(), cmd.CommandPath())
		}
		data, err = io.ReadAll(in)
		if err != nil {
			return nil, errors.Wrap(err, "reading stdin")
		}
	}

	doc, err := value.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", source)
	}
	logging.L().Debugw("input parsed", "source", source, "bytes", len(data), "kind", doc.Kind().String())
	return doc, nil
}

func isTerminal(x any) bool {
	f, ok := x.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// analyzerFlags configures the schema analyzer.
type analyzerFlags struct {
	MaxDepth          int
	FinancialKeywords []string
}

func (a *analyzerFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&a.MaxDepth, "max-depth", schema.DefaultMaxDepth, "Deepest level of nested fields to analyze")
	cmd.Flags().StringSliceVar(&a.FinancialKeywords, "financial-keyword", nil, "Keyword marking a path as financial, replaces the built-in list (repeatable)")
}

func (a *analyzerFlags) analyzer() *schema.Analyzer {
	return schema.New(schema.Options{
		MaxDepth:          a.MaxDepth,
		FinancialKeywords: a.FinancialKeywords,
	})
}

func checkOutput(output string, allowed ...string) error {
	for _, a := range allowed {
		if output == a {
			return nil
		}
	}
	return errors.Errorf("unsupported output format %s", output)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 10, 1, 3, ' ', tabwriter.RememberWidths)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return errors.Wrap(enc.Encode(v), "encoding json")
}

// writeYAML goes through JSON so values keep their member order.
func writeYAML(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding json")
	}

	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return errors.Wrap(err, "converting to yaml")
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return errors.Wrap(err, "encoding yaml")
	}
	return enc.Close()
}

// blockStyle drops the flow and quoting styles JSON input leaves on nodes.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
