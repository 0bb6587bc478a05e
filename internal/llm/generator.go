package llm

import (
	"context"
	"fmt"
	"strings"

	"viz-ai/backend/internal/chart"
	app_errors "viz-ai/backend/internal/errors"
)

const (
	DefaultVisualizationTemperature = 0.3
	DefaultVisualizationMaxTokens   = 4000
)

// VisualizationGenerator asks the model for a chart document.
type VisualizationGenerator struct {
	provider    LLMProvider
	temperature float64
	maxTokens   int
}

func NewVisualizationGenerator(provider LLMProvider, temperature float64, maxTokens int) *VisualizationGenerator {
	if maxTokens <= 0 {
		maxTokens = DefaultVisualizationMaxTokens
	}
	return &VisualizationGenerator{provider: provider, temperature: temperature, maxTokens: maxTokens}
}

// Generate returns the decoded, not yet validated, document.
// An empty answer wraps ErrGenerationUnavailable and unparseable text wraps
// ErrJSONDecode.
func (g *VisualizationGenerator) Generate(ctx context.Context, model string, data map[string]any, userRequest, systemPrompt string) (any, error) {
	prompt, err := VisualizationPrompt(data, userRequest)
	if err != nil {
		return nil, err
	}

	resp, err := g.provider.Generate(ctx, &GenerateRequest{
		Model:  model,
		Prompt: prompt,
		System: SystemPrompt(systemPrompt),
		Format: "json",
		Options: &GenerateOptions{
			Temperature: g.temperature,
			NumPredict:  g.maxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrGenerationUnavailable, err)
	}
	if strings.TrimSpace(resp.Response) == "" {
		return nil, fmt.Errorf("%w: model %s returned an empty response", app_errors.ErrGenerationUnavailable, model)
	}
	return chart.DecodeGenerated(resp.Response)
}
