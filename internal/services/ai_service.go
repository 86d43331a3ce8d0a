package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/kurrle/espresso-helper/internal/domain"
	apperrors "github.com/kurrle/espresso-helper/internal/errors"
	"github.com/kurrle/espresso-helper/internal/logger"
)

// AIService classifies a free-text taste description into a dial-in
// compass position. Gemini is the primary provider with OpenAI as
// fallback; the suggestion is advisory and the user confirms it before a
// review is stored.
type AIService struct {
	geminiClient *genai.Client
	openaiClient *openai.Client
}

// TasteSuggestion is the classifier's proposal for a description.
type TasteSuggestion struct {
	Profile    domain.TasteProfile
	Confidence string
	Reasoning  string
}

type tasteClassification struct {
	TasteProfile string `json:"taste_profile"`
	Confidence   string `json:"confidence"`
	Reasoning    string `json:"reasoning"`
}

func NewAIService(ctx context.Context, geminiAPIKey, openaiAPIKey string) (*AIService, error) {
	s := &AIService{}

	if geminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(geminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
	}
	if openaiAPIKey != "" {
		s.openaiClient = openai.NewClient(openaiAPIKey)
	}

	return s, nil
}

// Enabled reports whether at least one provider is configured.
func (s *AIService) Enabled() bool {
	return s.geminiClient != nil || s.openaiClient != nil
}

const classifyPromptTemplate = `You are an espresso dial-in expert. Classify the taste description of an
espresso shot into exactly one position on the dial-in compass.

POSITIONS (use the code on the left):
- SOUR: dominated by sourness or acidity
- MUDDY_SOUR: heavy, over-concentrated body combined with sourness
- MUDDY: too strong, heavy, over-concentrated, syrupy
- MUDDY_BITTER: heavy, over-concentrated body combined with bitterness
- BITTER: dominated by bitterness, harsh or ashy
- WATERY_BITTER: thin, weak body combined with bitterness
- WATERY: too weak, thin, tea-like, lacking body
- WATERY_SOUR: thin, weak body combined with sourness
- BALANCED: sweet, balanced, no defects

REQUIREMENTS:
- Pick the single best matching position
- Assess your confidence (low, medium, high)
- Keep the reasoning to one or two short sentences

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object
- Do not include any markdown formatting or explanatory text around it
- The JSON must have these exact fields:
  {
    "taste_profile": "SOUR",
    "confidence": "low|medium|high",
    "reasoning": "short explanation"
  }

TASTE DESCRIPTION:
%s`

// ClassifyTaste proposes a taste profile for a description, trying Gemini
// first and falling back to OpenAI.
func (s *AIService) ClassifyTaste(ctx context.Context, description string) (*TasteSuggestion, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewValidationError("taste description must not be empty")
	}

	if s.geminiClient != nil {
		suggestion, err := s.classifyWithGemini(ctx, description)
		if err == nil {
			return suggestion, nil
		}
		logger.Warningf("Gemini classification failed, trying fallback: %v", err)
	}

	if s.openaiClient != nil {
		return s.classifyWithOpenAI(ctx, description)
	}

	return nil, apperrors.New(apperrors.ErrorTypeExternal, "NO_PROVIDER", "No AI provider configured")
}

func (s *AIService) classifyWithGemini(ctx context.Context, description string) (*TasteSuggestion, error) {
	model := s.geminiClient.GenerativeModel("gemini-1.5-flash")

	prompt := fmt.Sprintf(classifyPromptTemplate, description)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "Gemini")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, apperrors.New(apperrors.ErrorTypeExternal, "EMPTY_RESPONSE", "Gemini returned no candidates")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, apperrors.New(apperrors.ErrorTypeExternal, "BAD_RESPONSE", "Gemini returned a non-text part")
	}
	return parseTasteSuggestion(string(text))
}

func (s *AIService) classifyWithOpenAI(ctx context.Context, description string) (*TasteSuggestion, error) {
	prompt := fmt.Sprintf(classifyPromptTemplate, description)

	resp, err := s.openaiClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4TurboPreview,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "OpenAI")
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.New(apperrors.ErrorTypeExternal, "EMPTY_RESPONSE", "OpenAI returned no choices")
	}
	return parseTasteSuggestion(resp.Choices[0].Message.Content)
}

func parseTasteSuggestion(raw string) (*TasteSuggestion, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, apperrors.New(apperrors.ErrorTypeExternal, "BAD_RESPONSE", "No valid JSON found in AI response")
	}

	var parsed tasteClassification
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeExternal, "BAD_RESPONSE", "Failed to parse AI response")
	}

	profile, err := domain.ParseTasteProfile(strings.ToUpper(strings.TrimSpace(parsed.TasteProfile)))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeExternal, "BAD_RESPONSE", "AI proposed an unknown taste profile")
	}

	return &TasteSuggestion{
		Profile:    profile,
		Confidence: strings.ToLower(parsed.Confidence),
		Reasoning:  parsed.Reasoning,
	}, nil
}

// extractJSON attempts to extract a valid JSON object from the given string.
// It handles cases where the JSON is wrapped in code blocks (```json ... ```) or other text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
