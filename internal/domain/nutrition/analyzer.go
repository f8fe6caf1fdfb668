package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type Analyzer interface {
	Analyze(ctx context.Context, image []byte, mimeType string) (Analysis, error)
}

// Prompt asks the model for a bare JSON object in the Analysis shape.
const Prompt = `Analyze this food image and provide nutritional estimates. Return ONLY a valid JSON object with this exact format, no other text:
{
  "foodName": "name of the food/meal",
  "items": [
    {
      "name": "item name",
      "portionSize": "estimated portion",
      "calories": 0,
      "protein": 0,
      "carbs": 0,
      "fat": 0
    }
  ],
  "totalCalories": 0,
  "totalProtein": 0,
  "totalCarbs": 0,
  "totalFat": 0,
  "confidence": "high/medium/low"
}`

// ParseAnalysis decodes a model reply, tolerating markdown code fences around
// the JSON.
func ParseAnalysis(raw string) (Analysis, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return Analysis{}, fmt.Errorf("%w: empty response", ErrMalformedAnalysis)
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrMalformedAnalysis, err)
	}
	if analysis.Items == nil {
		analysis.Items = []Item{}
	}
	return analysis, nil
}
