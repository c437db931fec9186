package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/ui/style"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the template and schema roots and clear caches on change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _, err := c.workspace()
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			return c.app.Watch(cmd.Context(), dir, func(kind domain.DocumentKind, paths []string) {
				for _, path := range paths {
					p.line("%s %s %s", p.color(style.Arrow, style.Iris), kind, path)
				}
			})
		},
	}
}
