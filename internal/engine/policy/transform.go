package policy

import (
	"context"
	"errors"
	"io/fs"
	"maps"

	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
	"go.trai.ch/breakdown/internal/engine/resolution"
	"go.trai.ch/zerr"
)

// Variables added by the input transform.
const (
	VarInputText = "input_text"
	VarDirective = "directive"
	VarLayer     = "layer"
)

// TransformFunc rewrites the resolved variables before rendering.
type TransformFunc func(ctx context.Context, req domain.GenerationRequest, vars map[string]string) (map[string]string, error)

// Identity returns the variables unchanged.
func Identity(_ context.Context, _ domain.GenerationRequest, vars map[string]string) (map[string]string, error) {
	return vars, nil
}

// InputReader reads the file named by input_text_file.
type InputReader func(path string) ([]byte, error)

// NewInputTransform returns the default transform. It fills input_text from
// standard input or from the file named by input_text_file, and exposes the
// request's directive and layer. A missing input file is logged and skipped.
func NewInputTransform(read InputReader, logger ports.Logger) TransformFunc {
	return func(_ context.Context, req domain.GenerationRequest, vars map[string]string) (map[string]string, error) {
		out := maps.Clone(vars)
		if out == nil {
			out = make(map[string]string)
		}
		if _, ok := out[VarDirective]; !ok {
			out[VarDirective] = req.Directive.String()
		}
		if _, ok := out[VarLayer]; !ok {
			out[VarLayer] = req.Layer.String()
		}
		if _, ok := out[VarInputText]; ok {
			return out, nil
		}

		switch source := out[resolution.VarInputTextFile]; source {
		case "":
		case resolution.StdinValue:
			out[VarInputText] = string(req.Stdin)
		default:
			data, err := read(source)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					logger.Warn("input file not found: " + source)
					return out, nil
				}
				return nil, zerr.With(zerr.Wrap(err, "failed to read input file"), "path", source)
			}
			out[VarInputText] = string(data)
		}
		return out, nil
	}
}
