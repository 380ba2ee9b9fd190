package songwriter

import (
	"regexp"
	"strings"
)

// DefaultNumericKeep is how many standalone numeric tokens survive a
// sanitizer pass before the rest are redacted.
const DefaultNumericKeep = 6

const (
	formulaPlaceholder = "[formula]"
	numberPlaceholder  = "[num]"
)

var (
	blockFormulaPattern  = regexp.MustCompile(`(?s)\$\$.*?\$\$`)
	inlineFormulaPattern = regexp.MustCompile(`(?s)\$.*?\$`)
	operatorRunPattern   = regexp.MustCompile(`[^\n]{0,40}[=↔→<>+\-/*^]{2,}[^\n]{0,40}`)
	longNumberPattern    = regexp.MustCompile(`\b\d{4,}\b`)
	numberPattern        = regexp.MustCompile(`\b\d+\b`)
	formulaRunPattern    = regexp.MustCompile(`(\[formula\]\s*){2,}`)
	numberRunPattern     = regexp.MustCompile(`(\[num\]\s*){2,}`)
	newlineRunPattern    = regexp.MustCompile(`\n{3,}`)
	hSpaceRunPattern     = regexp.MustCompile(`[ \t]{2,}`)
)

// Sanitize scrubs formula spans and numeric noise out of text headed
// for a prompt or for display. The rules run in a fixed order because
// later ones operate on the already-redacted string. Idempotent.
func Sanitize(s string) string {
	return SanitizeWithCap(s, DefaultNumericKeep)
}

// SanitizeWithCap is Sanitize with an explicit numeric-token budget.
func SanitizeWithCap(s string, keep int) string {
	if s == "" {
		return s
	}

	// Dollar-delimited formula spans, block form first.
	s = blockFormulaPattern.ReplaceAllString(s, " "+formulaPlaceholder+" ")
	s = inlineFormulaPattern.ReplaceAllString(s, " "+formulaPlaceholder+" ")

	// Operator clusters. Short matches stay: "F = ma" is a hint, not
	// a derivation. The length test ignores placeholders a previous
	// pass inserted, otherwise "[num]" padding could push a cluster
	// over the threshold and break idempotence.
	s = operatorRunPattern.ReplaceAllStringFunc(s, func(m string) string {
		core := strings.ReplaceAll(m, formulaPlaceholder, "")
		core = strings.ReplaceAll(core, numberPlaceholder, "")
		if len(core) > 12 {
			return " " + formulaPlaceholder + " "
		}
		return m
	})

	// Long digit runs are never lyric material.
	s = longNumberPattern.ReplaceAllString(s, " "+numberPlaceholder+" ")

	// Cap the remaining standalone numbers, earliest first.
	if nums := numberPattern.FindAllString(s, -1); len(nums) > keep {
		seen := 0
		s = numberPattern.ReplaceAllStringFunc(s, func(m string) string {
			if seen < keep {
				seen++
				return m
			}
			return " " + numberPlaceholder + " "
		})
	}

	// Collapse placeholder runs, then whitespace.
	s = formulaRunPattern.ReplaceAllString(s, formulaPlaceholder+" ")
	s = numberRunPattern.ReplaceAllString(s, numberPlaceholder+" ")
	s = newlineRunPattern.ReplaceAllString(s, "\n\n")
	s = hSpaceRunPattern.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}
