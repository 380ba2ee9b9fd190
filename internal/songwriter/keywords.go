package songwriter

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultTopKeywords is the per-page keyword budget.
const DefaultTopKeywords = 10

// Common English function words plus the transliterated Hindi
// connectors that show up in Hinglish study material.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "are": true, "is": true, "was": true,
	"were": true, "be": true, "by": true, "to": true, "of": true,
	"in": true, "on": true, "as": true, "an": true, "at": true,
	"it": true, "its": true, "which": true, "a": true,
	"nahi": true, "lekin": true, "kyunki": true, "jaise": true,
	"matlab": true, "wala": true, "apna": true, "karna": true,
	"hona": true,
}

var nonAlphanumPattern = regexp.MustCompile(`[^A-Za-z0-9\s]`)

// ExtractKeywords mines up to topN single lowercase keywords from one
// page of text, ranked by frequency with first-occurrence order
// breaking ties. Deterministic; an empty or unusable page yields nil.
func ExtractKeywords(pageText string, topN int) []string {
	if topN <= 0 {
		topN = DefaultTopKeywords
	}

	cleaned := nonAlphanumPattern.ReplaceAllString(pageText, " ")

	type entry struct {
		count int
		first int
	}
	counts := make(map[string]*entry)
	var order []string

	for i, tok := range strings.Fields(cleaned) {
		tok = strings.ToLower(tok)
		if len(tok) <= 3 || isNumeric(tok) || stopwords[tok] {
			continue
		}
		if e, ok := counts[tok]; ok {
			e.count++
			continue
		}
		counts[tok] = &entry{count: 1, first: i}
		order = append(order, tok)
	}

	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := counts[order[a]], counts[order[b]]
		if ea.count != eb.count {
			return ea.count > eb.count
		}
		return ea.first < eb.first
	})

	if len(order) > topN {
		order = order[:topN]
	}
	return order
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
