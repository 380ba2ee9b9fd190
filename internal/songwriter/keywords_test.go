package songwriter

import (
	"reflect"
	"testing"
)

func TestExtractKeywords_FrequencyAndTieBreak(t *testing.T) {
	// "cell" wins on frequency; "energy" beats "makes" and "atom" the
	// same way; the two singletons keep first-occurrence order.
	got := ExtractKeywords("the cell cell cell makes energy energy with the atom", 5)
	want := []string{"cell", "energy", "makes", "atom"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestExtractKeywords_Filtering(t *testing.T) {
	got := ExtractKeywords("the and 12345 cat sat protein protein from this", 10)
	want := []string{"protein"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected stopwords, numerics and short tokens removed; want %v, got %v", want, got)
	}
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	text := "osmosis diffusion osmosis membrane gradient membrane transport gradient osmosis"
	first := ExtractKeywords(text, 10)
	for i := 0; i < 20; i++ {
		if got := ExtractKeywords(text, 10); !reflect.DeepEqual(got, first) {
			t.Fatalf("Run %d differed: %v vs %v", i, got, first)
		}
	}
}

func TestExtractKeywords_TopNBound(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta theta lambda sigma omega kappa"
	got := ExtractKeywords(text, 3)
	if len(got) != 3 {
		t.Errorf("Expected 3 keywords, got %d (%v)", len(got), got)
	}
}

func TestExtractKeywords_EmptyPage(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"punctuation only", "!!! ??? ..."},
		{"only stopwords", "the and with from"},
		{"only numerics", "1234 5678 91011"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractKeywords(tc.text, 10); len(got) != 0 {
				t.Errorf("Expected no keywords, got %v", got)
			}
		})
	}
}

func TestExtractKeywords_HindiConnectorsFiltered(t *testing.T) {
	got := ExtractKeywords("lekin chemistry matlab chemistry kyunki", 10)
	want := []string{"chemistry"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected Hindi connectors filtered; want %v, got %v", want, got)
	}
}
