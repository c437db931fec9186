package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/ui/style"
	"go.trai.ch/zerr"
)

const (
	listTemplates = "templates"
	listSchemas   = "schemas"
	listAll       = "all"
)

func (c *CLI) newListCmd() *cobra.Command {
	var opts domain.ListOptions
	cmd := &cobra.Command{
		Use:       "list [templates|schemas|all]",
		Aliases:   []string{"ls"},
		Short:     "List available templates and schemas",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{listTemplates, listSchemas, listAll},
		RunE: func(cmd *cobra.Command, args []string) error {
			what := listAll
			if len(args) == 1 {
				what = args[0]
			}

			dir, _, err := c.workspace()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var manifests []titled
			switch what {
			case listTemplates:
				m, err := c.app.ListTemplates(ctx, dir, opts)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return writeJSON(cmd.OutOrStdout(), m)
				}
				manifests = append(manifests, titled{"Templates", m})
			case listSchemas:
				m, err := c.app.ListSchemas(ctx, dir, opts)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return writeJSON(cmd.OutOrStdout(), m)
				}
				manifests = append(manifests, titled{"Schemas", m})
			case listAll:
				catalog, err := c.app.ListAll(ctx, dir, opts)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return writeJSON(cmd.OutOrStdout(), catalog)
				}
				manifests = append(manifests, titled{"Templates", catalog.Templates}, titled{"Schemas", catalog.Schemas})
			default:
				return zerr.With(zerr.New("unknown listing, expected templates, schemas or all"), "listing", what)
			}

			p := newPrinter(cmd.OutOrStdout())
			for i, m := range manifests {
				if i > 0 {
					p.line("")
				}
				printManifest(p, m.title, m.manifest)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.IncludeMetadata, "metadata", "m", false, "Include titles and descriptions")
	cmd.Flags().BoolVarP(&opts.IncludeDependencies, "deps", "d", false, "Include schema $ref dependencies")
	return cmd
}

type titled struct {
	title    string
	manifest *domain.Manifest
}

func printManifest(p *printer, title string, m *domain.Manifest) {
	p.line("%s", p.color(fmt.Sprintf("%s (%d)", title, m.TotalCount), style.Iris))
	for _, e := range m.Entries {
		details := fmt.Sprintf("%d B", e.SizeBytes)
		if e.Metadata != nil && e.Metadata.Title != "" {
			details += ", " + e.Metadata.Title
		}
		p.line("  %s %s %s", style.Dot, e.Path, p.color(details, style.Slate))
		for _, dep := range e.Dependencies {
			p.line("      %s %s", style.Arrow, p.color(dep, style.Slate))
		}
	}
}
