package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSONSystemPrompt keeps the model from wrapping its answer in prose.
const JSONSystemPrompt = `You are a data visualization expert. You must respond ONLY with valid JSON.
Never include markdown code blocks, explanations, or any text outside the JSON structure.
Your response must be parseable by a strict JSON parser.`

const visualizationPrompt = `You are a data visualization expert. Analyze the provided data and create appropriate visualizations.

Data:
%s

User Request: %s

Create visualizations following these rules:

1. RESPONSE FORMAT - Respond with ONLY valid JSON (no markdown, no code blocks):
{
  "explanation": "Brief explanation of the visualizations",
  "charts": [
    {
      "type": "bar|line|pie|doughnut|radar|polarArea",
      "title": "Chart title",
      "data": {
        "labels": ["Label1", "Label2", ...],
        "datasets": [
          {
            "label": "Dataset name",
            "data": [value1, value2, ...],
            "backgroundColor": ["#color1", "#color2", ...],
            "borderColor": "#color",
            "borderWidth": 1
          }
        ]
      },
      "options": {
        "responsive": true,
        "plugins": {
          "title": {"display": true, "text": "Chart Title"},
          "legend": {"display": true}
        }
      }
    }
  ]
}

2. CHART TYPE SELECTION:
   - Use "bar" for comparisons, categorical data
   - Use "line" for trends over time
   - Use "pie" or "doughnut" for proportions/percentages
   - Use "radar" for multi-dimensional comparisons
   - Use "polarArea" for cyclical data

3. COLOR SCHEME: Use these gold/black theme colors:
   - Primary: #d4af37, #ffd700
   - Background: rgba(212, 175, 55, 0.6)
   - Border: #d4af37

4. DATA VALIDATION:
   - Ensure all data arrays have same length as labels
   - Use numeric values only in data arrays
   - Provide meaningful labels and titles

5. Create 1-3 visualizations based on data complexity
`

// VisualizationPrompt embeds the file summaries and the user's request.
func VisualizationPrompt(data map[string]any, userRequest string) (string, error) {
	if data == nil {
		data = map[string]any{}
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not marshal prompt data: %w", err)
	}
	return fmt.Sprintf(visualizationPrompt, b, userRequest), nil
}

// SystemPrompt joins the JSON-only directive with the user's configured prompt.
func SystemPrompt(custom string) string {
	if custom = strings.TrimSpace(custom); custom == "" {
		return JSONSystemPrompt
	}
	return JSONSystemPrompt + "\n\n" + custom
}
