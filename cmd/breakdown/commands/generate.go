package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/engine/resolution"
	"go.trai.ch/zerr"
)

type generateFlags struct {
	vars        []string
	from        string
	destination string
	customPath  string
	fallback    bool
}

func (c *CLI) newGenerateCmd() *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:     "generate <directive> <layer>",
		Aliases: []string{"gen"},
		Short:   "Render the prompt for a directive and layer",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, cfg, err := c.workspace()
			if err != nil {
				return err
			}

			req, err := c.buildRequest(dir, args, f)
			if err != nil {
				return err
			}
			req.Selection.FallbackEnabled = cfg.Fallback.Enabled
			if cmd.Flags().Changed("fallback") {
				req.Selection.FallbackEnabled = f.fallback
			}

			resp := c.app.Generate(cmd.Context(), req)
			return c.report(cmd, dir, f.destination, resp)
		},
	}

	cmd.Flags().StringArrayVar(&f.vars, "var", nil, "Provide a template variable as key=value (repeatable)")
	cmd.Flags().StringVarP(&f.from, "from", "f", "", "Input text file, or - for standard input")
	cmd.Flags().StringVarP(&f.destination, "destination", "o", "", "Write the prompt to this file")
	cmd.Flags().StringVar(&f.customPath, "custom-path", "", "Template path whose last segment overrides the filename")
	cmd.Flags().BoolVar(&f.fallback, "fallback", false, "Apply the configured fallback template mappings")
	return cmd
}

func (c *CLI) buildRequest(dir string, args []string, f *generateFlags) (domain.GenerationRequest, error) {
	provided, err := parseVars(f.vars)
	if err != nil {
		return domain.GenerationRequest{}, err
	}

	req := domain.GenerationRequest{
		Directive: domain.Directive(args[0]),
		Layer:     domain.Layer(args[1]),
		Resolution: domain.ResolutionContext{
			WorkingDirectory:  dir,
			ProvidedVariables: provided,
			Files: domain.FileOptions{
				InputTextFile:   f.from,
				DestinationPath: f.destination,
			},
		},
		Selection: domain.SelectionContext{
			CustomPath: f.customPath,
		},
	}

	if f.from == resolution.StdinSentinel {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return domain.GenerationRequest{}, zerr.Wrap(err, "failed to read standard input")
		}
		req.Stdin = data
	}
	return req, nil
}

func parseVars(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidVariable, "bad --var flag"), "value", kv)
		}
		vars[key] = value
	}
	return vars, nil
}

// report prints the response. Failures have already been described by the
// time ErrGenerationFailed is returned.
func (c *CLI) report(cmd *cobra.Command, dir, destination string, resp domain.GenerationResponse) error {
	if c.jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
	}

	if !resp.Success {
		if !c.jsonOut {
			c.logger.Error(responseError(resp))
		}
		return domain.ErrGenerationFailed
	}

	if destination != "" {
		if err := writePrompt(dir, destination, resp.Content); err != nil {
			return err
		}
		c.logger.Info("prompt written to " + destination)
	}

	if !c.jsonOut && destination == "" {
		content := resp.Content
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		_, _ = io.WriteString(cmd.OutOrStdout(), content)
	}
	return nil
}

func responseError(resp domain.GenerationResponse) error {
	err := zerr.With(zerr.New(resp.Error.Message), "type", string(resp.Error.Type))
	err = zerr.With(err, "request", resp.RequestID)
	for key, value := range resp.Error.Details {
		err = zerr.With(err, key, value)
	}
	return err
}

func writePrompt(dir, destination, content string) error {
	path := destination
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create destination directory"), "path", path)
	}
	if err := os.WriteFile(path, []byte(content), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write prompt"), "path", path)
	}
	return nil
}
