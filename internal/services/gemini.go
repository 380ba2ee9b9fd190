package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"btn-backend/internal/models"
)

// ErrNotConfigured signals that no API key is present. Callers treat
// it like any other invocation failure and take the local path.
var ErrNotConfigured = fmt.Errorf("generation capability not configured")

const restEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiService invokes the generation capability. The SDK calling
// convention has not been stable across versions, so Invoke walks an
// ordered list of invocation strategies and takes the first that
// yields text. Each strategy runs at most once per call; there are no
// retries.
type GeminiService struct {
	client    *genai.Client
	primary   *genai.GenerativeModel
	secondary *genai.GenerativeModel

	apiKey        string
	primaryName   string
	secondaryName string
	maxTokens     int32

	httpClient *http.Client
}

func NewGeminiService(apiKey, model, fallbackModel string, maxOutputTokens int) (*GeminiService, error) {
	s := &GeminiService{
		apiKey:        apiKey,
		primaryName:   model,
		secondaryName: fallbackModel,
		maxTokens:     int32(maxOutputTokens),
		httpClient:    http.DefaultClient,
	}

	if apiKey == "" {
		return s, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	s.client = client
	s.primary = newModel(client, model, maxOutputTokens)
	s.secondary = newModel(client, fallbackModel, maxOutputTokens)
	return s, nil
}

func newModel(client *genai.Client, name string, maxTokens int) *genai.GenerativeModel {
	m := client.GenerativeModel(name)
	m.SetTemperature(0.9)
	m.SetTopP(0.95)
	m.SetMaxOutputTokens(int32(maxTokens))
	return m
}

// Configured reports whether an API key was supplied.
func (s *GeminiService) Configured() bool {
	return s.client != nil
}

func (s *GeminiService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// Invoke sends the prompt through the strategy list and returns a
// tagged Outcome. Failure here is a normal, expected condition.
func (s *GeminiService) Invoke(ctx context.Context, prompt string) models.Outcome {
	if !s.Configured() {
		return models.Failure(ErrNotConfigured)
	}

	strategies := []struct {
		name string
		call func(context.Context, string) (string, error)
	}{
		{s.primaryName, s.invokeSDK(s.primary)},
		{s.secondaryName, s.invokeSDK(s.secondary)},
		{"rest:" + s.primaryName, s.invokeREST},
	}

	var lastErr error
	for _, st := range strategies {
		text, err := st.call(ctx, prompt)
		if err == nil && strings.TrimSpace(text) != "" {
			return models.Success(text)
		}
		if err != nil {
			log.Printf("gemini strategy %s failed: %v", st.name, err)
			lastErr = err
		} else {
			lastErr = fmt.Errorf("strategy %s returned empty text", st.name)
		}
	}

	return models.Failure(fmt.Errorf("all generation strategies failed: %w", lastErr))
}

func (s *GeminiService) invokeSDK(model *genai.GenerativeModel) func(context.Context, string) (string, error) {
	return func(ctx context.Context, prompt string) (string, error) {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", err
		}
		return extractText(resp), nil
	}
}

// invokeREST hits the plain generateContent endpoint directly, the
// shape of last resort when the SDK surface misbehaves.
func (s *GeminiService) invokeREST(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"maxOutputTokens": s.maxTokens,
		},
	})

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s",
		restEndpoint, s.primaryName, url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generateContent returned %d", resp.StatusCode)
	}

	return parseCandidatesBody(raw)
}

// parseCandidatesBody extracts text from a candidates-shaped JSON
// response body.
func parseCandidatesBody(raw []byte) (string, error) {
	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("unexpected response shape: %w", err)
	}
	if len(payload.Candidates) == 0 {
		return "", fmt.Errorf("response contained no candidates")
	}

	var text strings.Builder
	for _, part := range payload.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
