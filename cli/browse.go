package cli

import (
	"github.com/spf13/cobra"

	"github.com/jedipunkz/fieldlens/tui"
)

func NewBrowse() *cobra.Command {
	b := &Browse{}
	cmd := &cobra.Command{
		Use:          "browse [file]",
		Short:        "Browse fields interactively",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         b.Run,
	}
	b.addFlags(cmd)
	return cmd
}

type Browse struct {
	analyzerFlags
}

func (b *Browse) Run(cmd *cobra.Command, args []string) error {
	doc, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	return tui.Run(doc, b.analyzer())
}
