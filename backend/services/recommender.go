package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const recommenderModel = "gemini-2.0-flash"

// Recommender generates personalized learning path suggestions through the
// Gemini API. The generated text is opaque to the rest of the platform; only
// its JSON shape is enforced here.
type Recommender struct {
	client *genai.Client
	model  string
}

func NewRecommender(ctx context.Context, apiKey string) (*Recommender, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &Recommender{client: client, model: recommenderModel}, nil
}

type RecommendedModule struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

type Recommendation struct {
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	EstimatedDuration string              `json:"estimatedDuration"`
	Modules           []RecommendedModule `json:"modules"`
}

// Recommend asks the model for a structured learning path matching the
// student's goal, level and interests.
func (r *Recommender) Recommend(ctx context.Context, goal string, level int, interests []string) (*Recommendation, error) {
	prompt := fmt.Sprintf(`Act as an expert curriculum designer. Create a personalized learning path for a student with the following profile:
- Goal: %s
- Current Level: %d/5
- Interests: %s

Generate a structured learning path with 5-7 main modules.
For each module, provide a title, description, and estimated duration.

Return the response in strictly valid JSON format with the following structure:
{
  "title": "Path Title",
  "description": "Brief description of the path",
  "estimatedDuration": "Total duration",
  "modules": [
    {"title": "Module Title", "description": "Module Description", "duration": "Duration"}
  ]
}
Do not include any markdown formatting or explanations, just the JSON string.`,
		goal, level, strings.Join(interests, ", "))

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}

	result, err := r.client.Models.GenerateContent(ctx, r.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate recommendation: %w", err)
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(StripCodeFences(result.Text())), &rec); err != nil {
		return nil, fmt.Errorf("parse recommendation: %w", err)
	}

	return &rec, nil
}

// StripCodeFences removes markdown code fences the model sometimes wraps
// around JSON output despite instructions.
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
