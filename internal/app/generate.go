package app

import (
	"context"
	"fmt"
	"maps"

	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
	"go.trai.ch/zerr"
)

// Generate renders the prompt for req. It never returns a Go error: failures,
// including panics inside the engine, are reported in the response.
func (a *App) Generate(ctx context.Context, req domain.GenerationRequest) (resp domain.GenerationResponse) {
	requestID := a.newID()

	defer func() {
		if r := recover(); r != nil {
			err := zerr.With(zerr.New("panic during generation"), "panic", fmt.Sprint(r))
			a.logger.Error(err)
			resp = failed(requestID, err)
			resp.Error.Type = domain.ErrorTypeInternal
		}
	}()

	ctx, span := a.tracer.Start(ctx, "app.generate",
		ports.WithAttribute("request_id", requestID),
		ports.WithAttribute("directive", req.Directive.String()),
		ports.WithAttribute("layer", req.Layer.String()),
	)
	defer span.End()

	ws, err := a.workspace(req.Resolution.WorkingDirectory)
	if err != nil {
		span.RecordError(err)
		return failed(requestID, err)
	}

	prompt, err := ws.Policy.Execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		a.logger.Debug(fmt.Sprintf("request %s failed: %v", requestID, err))
		return failed(requestID, err)
	}

	for _, warning := range prompt.Warnings {
		a.logger.Warn(warning)
	}

	return domain.GenerationResponse{
		RequestID:    requestID,
		Success:      true,
		Content:      prompt.Content,
		TemplatePath: prompt.TemplatePath.String(),
		Variables:    maps.Clone(prompt.Variables),
		Warnings:     prompt.Warnings,
	}
}

func failed(requestID string, err error) domain.GenerationResponse {
	return domain.GenerationResponse{
		RequestID: requestID,
		Success:   false,
		Error: &domain.ErrorInfo{
			Type:    domain.ClassifyError(err),
			Message: err.Error(),
			Details: domain.ErrorDetails(err),
		},
	}
}
