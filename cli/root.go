// Package cli is the fieldlens command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/jedipunkz/fieldlens/internal/logging"
)

const appName = "fieldlens"

// New returns the root command. Without a subcommand it opens the browser.
func New() *cobra.Command {
	f := &Fieldlens{}
	browse := &Browse{}

	root := &cobra.Command{
		Use:   appName + " [file]",
		Short: "Explore the shape of a JSON document",
		Long: `fieldlens analyzes an arbitrary JSON document: every reachable field path,
its kind and data type, whether it looks financial, and which aggregations fit it.`,
		Example: `
# Browse a response interactively
curl -s https://api.example.com/quotes | fieldlens

# List every field path
fieldlens analyze quotes.json

# Average a column of an array of objects
fieldlens aggregate results.close avg quotes.json`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: f.PersistentPre,
		RunE:              browse.Run,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.PersistentFlags().BoolVar(&f.Debug, "debug", false, "Write debug records to the log file")
	browse.addFlags(root)

	root.AddCommand(
		NewBrowse(),
		NewAnalyze(),
		NewTree(),
		NewGet(),
		NewAggregate(),
		NewDetect(),
		NewRender(),
	)
	return root
}

// Fieldlens holds the global flags.
type Fieldlens struct {
	Debug bool
}

func (f *Fieldlens) PersistentPre(cmd *cobra.Command, args []string) error {
	path := logging.Init(appName, f.Debug)
	logging.L().Debugw("command started", "command", cmd.CommandPath(), "args", args, "log", path)
	return nil
}
