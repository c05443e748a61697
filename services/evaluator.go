package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"main/config"
	"main/model"

	"google.golang.org/genai"
)

// TaskEvaluator turns a title+description into a structured validity,
// category/XP and safety judgment. The engine only consumes this interface;
// the production implementation is backed by Gemini.
type TaskEvaluator interface {
	Evaluate(ctx context.Context, title, description string) (*model.TaskEvaluation, error)
}

type GenAIEvaluator struct {
	client     *genai.Client
	model      string
	categories *config.CategoryCatalog
}

// evaluatorWire mirrors the JSON the model is instructed to emit. XP values
// arrive as floats and are rounded before clamping downstream.
type evaluatorWire struct {
	IsValid     bool               `json:"is_valid"`
	Categories  []string           `json:"categories"`
	CategoryXP  map[string]float64 `json:"category_xp"`
	Feedback    string             `json:"feedback"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Tags        []string           `json:"tags"`
	SafetyCheck struct {
		Passed      bool     `json:"passed"`
		Concerns    []string `json:"concerns"`
		Suggestions []string `json:"suggestions"`
	} `json:"safety_check"`
}

func NewGenAIEvaluator(apiKey, modelName string, categories *config.CategoryCatalog) (*GenAIEvaluator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("evaluator API key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluator client: %w", err)
	}
	return &GenAIEvaluator{client: client, model: modelName, categories: categories}, nil
}

func (e *GenAIEvaluator) Evaluate(ctx context.Context, title, description string) (*model.TaskEvaluation, error) {
	prompt := e.buildPrompt(title, description)

	result, err := e.client.Models.GenerateContent(ctx,
		e.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			return nil, fmt.Errorf("evaluator backpressure: %w", model.ErrRateLimited)
		}
		return nil, fmt.Errorf("evaluator call failed: %v", err)
	}

	var wire evaluatorWire
	if err := json.Unmarshal([]byte(result.Text()), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse evaluator response: %v", err)
	}

	return e.normalize(&wire, title, description), nil
}

// normalize maps evaluator category names to canonical catalog ids and
// rounds XP values; unknown categories are dropped rather than failing the
// whole evaluation.
func (e *GenAIEvaluator) normalize(wire *evaluatorWire, title, description string) *model.TaskEvaluation {
	eval := &model.TaskEvaluation{
		IsValid:     wire.IsValid,
		Feedback:    wire.Feedback,
		Title:       wire.Title,
		Description: wire.Description,
		Tags:        wire.Tags,
		CategoryXP:  make(map[string]int),
		SafetyCheck: &model.SafetyCheck{
			Passed:      wire.SafetyCheck.Passed,
			Concerns:    wire.SafetyCheck.Concerns,
			Suggestions: wire.SafetyCheck.Suggestions,
		},
	}
	if eval.Title == "" {
		eval.Title = title
	}
	if eval.Description == "" {
		eval.Description = description
	}

	for _, raw := range wire.Categories {
		if id, ok := e.categories.Normalize(raw); ok {
			eval.Categories = append(eval.Categories, id)
		}
	}
	for raw, xp := range wire.CategoryXP {
		if id, ok := e.categories.Normalize(raw); ok {
			eval.CategoryXP[id] = int(math.Round(xp))
		}
	}
	return eval
}

func (e *GenAIEvaluator) buildPrompt(title, description string) string {
	var names []string
	for _, c := range e.categories.Categories() {
		names = append(names, c.ID)
	}
	return fmt.Sprintf(`You evaluate self-improvement tasks for a habit and goal tracking app.
Given the task below, respond with ONLY a JSON object of this exact shape:
{"is_valid": bool, "categories": [string], "category_xp": {category: number 10-100},
"feedback": string, "title": string, "description": string, "tags": [string],
"safety_check": {"passed": bool, "concerns": [string], "suggestions": [string]}}

Categories must come from: %s.
Mark is_valid false for gibberish or non-actionable input. Fail the safety
check for tasks that are dangerous, unhealthy or harmful, with concerns and
safer suggestions.

Title: %s
Description: %s`, strings.Join(names, ", "), title, description)
}
