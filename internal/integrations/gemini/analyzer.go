// Package gemini analyses meal photos with Google's Gemini models.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fittrack-go/internal/domain/nutrition"
)

const DefaultModel = "gemini-1.5-flash"

// FoodAnalyzer implements nutrition.Analyzer. It holds one client for the
// lifetime of the process.
type FoodAnalyzer struct {
	client    *genai.Client
	modelName string
}

func NewFoodAnalyzer(ctx context.Context, apiKey, modelName string) (*FoodAnalyzer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, nutrition.ErrAnalyzerDisabled
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &FoodAnalyzer{client: client, modelName: modelName}, nil
}

func (a *FoodAnalyzer) Analyze(ctx context.Context, image []byte, mimeType string) (nutrition.Analysis, error) {
	model := a.client.GenerativeModel(a.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx,
		genai.Text(nutrition.Prompt),
		genai.Blob{MIMEType: mimeType, Data: image},
	)
	if err != nil {
		return nutrition.Analysis{}, fmt.Errorf("failed to generate content: %w", err)
	}

	return nutrition.ParseAnalysis(responseText(resp))
}

func (a *FoodAnalyzer) Close() error {
	return a.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
