package commands

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/ui/style"
)

type schemaView struct {
	Path         string          `json:"path"`
	Metadata     domain.Metadata `json:"metadata"`
	Dependencies []string        `json:"dependencies"`
	Content      string          `json:"content"`
}

func (c *CLI) newSchemaCmd() *cobra.Command {
	var depsOnly bool
	cmd := &cobra.Command{
		Use:   "schema <directive/layer/filename.json>",
		Short: "Print a schema and the documents it references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _, err := c.workspace()
			if err != nil {
				return err
			}

			schema, err := c.app.LoadSchema(cmd.Context(), dir, args[0])
			if err != nil {
				return err
			}

			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), schemaView{
					Path:         schema.Path().String(),
					Metadata:     schema.Metadata(),
					Dependencies: schema.Dependencies(),
					Content:      schema.Content(),
				})
			}

			if depsOnly {
				p := newPrinter(cmd.OutOrStdout())
				for _, dep := range schema.Dependencies() {
					p.line("%s %s", style.Arrow, dep)
				}
				return nil
			}

			content := schema.Content()
			if !strings.HasSuffix(content, "\n") {
				content += "\n"
			}
			_, _ = io.WriteString(cmd.OutOrStdout(), content)
			return nil
		},
	}
	cmd.Flags().BoolVar(&depsOnly, "deps", false, "Only print the $ref dependencies")
	return cmd
}
