package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <template|schema> <directive/layer/filename=source>...",
		Short: "Store documents in the template or schema repository",
		Long: "Store documents in the template or schema repository.\n\n" +
			"Each argument maps a repository path to a source file; a source of - reads standard input.\n" +
			"One failing item does not stop the others.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}

			dir, _, err := c.workspace()
			if err != nil {
				return err
			}

			items, err := c.readItems(dir, args[1:])
			if err != nil {
				return err
			}

			result, err := c.app.Save(cmd.Context(), dir, kind, items)
			if err != nil {
				return err
			}

			if c.jsonOut {
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				p := newPrinter(cmd.OutOrStdout())
				for _, path := range result.Successful {
					p.line("%s %s", p.color(style.Check, style.Green), path)
				}
				for _, failure := range result.Failed {
					p.line("%s %s %s", p.color(style.Cross, style.Red), failure.Path, p.color(failure.Error, style.Slate))
				}
			}

			if !result.OK() {
				err := zerr.Wrap(domain.ErrBatchItemFailed, "some documents were not saved")
				return zerr.With(err, "failed", len(result.Failed))
			}
			return nil
		},
	}
}

func parseKind(raw string) (domain.DocumentKind, error) {
	switch domain.DocumentKind(strings.TrimSuffix(raw, "s")) {
	case domain.KindTemplate:
		return domain.KindTemplate, nil
	case domain.KindSchema:
		return domain.KindSchema, nil
	default:
		return "", zerr.With(zerr.New("unknown document kind, expected template or schema"), "kind", raw)
	}
}

// readItems reads every path=source pair. Standard input can back at most one item.
func (c *CLI) readItems(dir string, pairs []string) ([]domain.SaveItem, error) {
	items := make([]domain.SaveItem, 0, len(pairs))
	stdinUsed := false
	for _, pair := range pairs {
		path, source, ok := strings.Cut(pair, "=")
		if !ok || path == "" || source == "" {
			return nil, zerr.With(zerr.New("invalid save argument, expected path=source"), "argument", pair)
		}

		var data []byte
		var err error
		if source == "-" {
			if stdinUsed {
				return nil, zerr.New("standard input can only be used once")
			}
			stdinUsed = true
			data, err = io.ReadAll(c.stdin)
		} else {
			if !filepath.IsAbs(source) {
				source = filepath.Join(dir, source)
			}
			data, err = os.ReadFile(source) //nolint:gosec // source is chosen by the user
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read source"), "source", source)
		}
		items = append(items, domain.SaveItem{Path: path, Content: data})
	}
	return items, nil
}
