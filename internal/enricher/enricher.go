package enricher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MOSHEDORA/FinDora/internal/config"
	"github.com/MOSHEDORA/FinDora/internal/logger"
	"github.com/MOSHEDORA/FinDora/internal/models"
)

const defaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"

// Enricher attaches an AI-derived category and tags to places via the
// OpenRouter chat completions API. With no API key configured it is a
// no-op pass-through; callers never depend on enrichment to function.
type Enricher struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func New(cfg *config.Config) *Enricher {
	return &Enricher{
		apiKey:  cfg.OpenRouterAPIKey,
		model:   cfg.OpenRouterModel,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.EnrichTimeoutSecs) * time.Second,
		},
	}
}

// Enabled reports whether an API key is configured.
func (e *Enricher) Enabled() bool {
	return e.apiKey != ""
}

// CategorizePlaces enriches each place independently and concurrently.
// The result has the same length and order as the input. A failure on one
// place never aborts the rest: the failed place keeps its original
// category, AICategory stays unset and AITags becomes an empty slice.
func (e *Enricher) CategorizePlaces(ctx context.Context, places []models.Place) []models.Place {
	if !e.Enabled() || len(places) == 0 {
		return places
	}

	log := logger.GetLogger("enricher")

	out := make([]models.Place, len(places))
	var wg sync.WaitGroup
	for i := range places {
		wg.Add(1)
		go func(i int, place models.Place) {
			defer wg.Done()

			category, tags, err := e.categorizePlace(ctx, &place)
			if err != nil {
				log.Warnf("Categorization failed for %q: %v", place.Name, err)
				place.AITags = []string{}
				out[i] = place
				return
			}

			place.AICategory = &category
			place.AITags = tags
			out[i] = place
		}(i, places[i])
	}
	wg.Wait()

	return out
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// categorization is the structured payload expected in the model output.
type categorization struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func (e *Enricher) categorizePlace(ctx context.Context, place *models.Place) (string, []string, error) {
	prompt := buildPrompt(place)

	body, err := json.Marshal(chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   200,
		Temperature: 0.3,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://findora.app")
	req.Header.Set("X-Title", "FinDora Place Categorization")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("openrouter request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("openrouter error: %s", resp.Status)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", nil, fmt.Errorf("failed to decode openrouter response: %w", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", nil, errors.New("empty completion")
	}

	var parsed categorization
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &parsed); err != nil {
		return "", nil, fmt.Errorf("completion is not valid JSON: %w", err)
	}
	if parsed.Category == "" {
		return "", nil, errors.New("completion missing category")
	}
	if parsed.Tags == nil {
		parsed.Tags = []string{}
	}

	return parsed.Category, parsed.Tags, nil
}

// buildPrompt embeds the place's identity and current classification into
// a natural-language instruction asking for structured JSON back.
func buildPrompt(place *models.Place) string {
	address := "N/A"
	if place.Address != nil {
		address = *place.Address
	}
	rating := "N/A"
	if place.Rating != nil {
		rating = *place.Rating
	}

	return fmt.Sprintf(`
Analyze this place and provide a more specific category and relevant tags:

Name: %s
Address: %s
Current Category: %s
Types: %s
Rating: %s

Please respond with a JSON object containing:
1. "category": A more specific category (e.g., "Italian Restaurant", "Coffee Shop", "Fitness Center", "Electronics Store")
2. "tags": An array of 3-5 relevant tags (e.g., ["casual dining", "family-friendly", "takeout available"])

Keep the response concise and relevant to the place type.
`, place.Name, address, place.Category, strings.Join(place.Types, ", "), rating)
}
