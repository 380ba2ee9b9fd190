package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestInvoke_UnconfiguredFailsFastWithoutNetwork(t *testing.T) {
	s, err := NewGeminiService("", "gemini-2.5-flash", "gemini-2.0-flash", 700)
	if err != nil {
		t.Fatalf("Expected no error for missing key, got %v", err)
	}
	if s.Configured() {
		t.Fatal("Expected service to report unconfigured")
	}

	out := s.Invoke(context.Background(), "any prompt")
	if !out.Failed() {
		t.Fatal("Expected failure outcome when unconfigured")
	}
	if !errors.Is(out.Err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", out.Err)
	}
}

func TestParseCandidatesBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			"single part",
			`{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`,
			"hello",
			false,
		},
		{
			"multiple parts joined",
			`{"candidates":[{"content":{"parts":[{"text":"a"},{"text":"b"}]}}]}`,
			"ab",
			false,
		},
		{
			"first candidate wins",
			`{"candidates":[{"content":{"parts":[{"text":"first"}]}},{"content":{"parts":[{"text":"second"}]}}]}`,
			"first",
			false,
		},
		{"no candidates", `{"candidates":[]}`, "", true},
		{"wrong shape", `[1,2,3]`, "", true},
		{"not json", `<html>error</html>`, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCandidatesBody([]byte(tc.body))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("part one "), genai.Text("part two")}}},
			{Content: nil},
		},
	}

	if got := extractText(resp); got != "part one part two" {
		t.Errorf("Expected concatenated parts, got %q", got)
	}
}

func TestExtractText_EmptyResponse(t *testing.T) {
	if got := extractText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
