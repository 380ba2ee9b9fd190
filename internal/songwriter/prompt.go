package songwriter

import (
	"fmt"
	"strings"

	"btn-backend/internal/models"
)

// SignaturePhrase must appear in every lyric output. Branding, not
// negotiable.
const SignaturePhrase = "beyond the notz"

// maxSourceExcerpt caps the chapter excerpt embedded in the prompt to
// keep the request inside upstream size limits.
const maxSourceExcerpt = 12000

// BuildPrompt assembles the generation instruction for one request.
// Pure function of its input; the recovery pipeline depends on the
// JSON contract and structure rules stated here.
func BuildPrompt(req models.GenerationRequest) string {
	var b strings.Builder

	// Layer 1: Role
	b.WriteString("You are a concise Gen-Z songwriter who turns textbook chapters into catchy study songs.\n\n")

	// Layer 2: Output contract
	b.WriteString("CRITICAL: Return ONLY a valid JSON object. No preamble, no markdown, no backticks.\n")
	b.WriteString(`The object must have exactly one key "songs" whose value is a list of song objects with the fields "type", "title", "vibe_description" and "lyrics".` + "\n\n")

	// Layer 3: Lyric rules
	b.WriteString("Lyrics must open with short vocalese ad-libs immediately followed by one line containing the exact phrase '" + SignaturePhrase + "'.\n")
	b.WriteString("Structure the lyrics as labeled [CHORUS] and [VERSE] sections in alternation. The CHORUS must appear at least 5 times and must contain the phrase '" + SignaturePhrase + "' at least once. Each VERSE has at most 6 lines.\n")
	b.WriteString("Keep formulas and derivations out of choruses and ad-libs; mention at most a handful of numbers anywhere.\n\n")

	// Layer 4: Styles
	if len(req.Styles) > 0 {
		b.WriteString("Styles: " + strings.Join(req.Styles, ", ") + ". Produce one song per style, in order.\n")
	}

	// Layer 5: Language balance
	switch {
	case req.LanguageBalance < 30:
		b.WriteString("Language: mostly Hindi with occasional English words.\n")
	case req.LanguageBalance > 70:
		b.WriteString("Language: mostly English with occasional Hindi words.\n")
	default:
		b.WriteString("Language: a balanced Hinglish mix of Hindi and English.\n")
	}

	// Layer 6: Duration to structure
	switch {
	case req.DurationMinutes <= 1.5:
		b.WriteString("Length: a short cut, roughly one minute: intro, chorus, one verse, chorus outro.\n")
	case req.DurationMinutes <= 2.5:
		b.WriteString("Length: a radio cut: chorus and verse alternating through two full verses.\n")
	case req.DurationMinutes <= 3.5:
		b.WriteString("Length: an extended cut with three verses and a bridge before the final chorus.\n")
	default:
		b.WriteString("Length: a full arrangement: intro, three verses, bridge, and a doubled chorus outro.\n")
	}

	// Layer 7: Fine tuning
	if req.ArtistReference != "" {
		b.WriteString(fmt.Sprintf("Artist inspiration: %s.\n", req.ArtistReference))
	}
	if req.FocusTopic != "" {
		b.WriteString(fmt.Sprintf("Focus topic: give extra weight to %s.\n", req.FocusTopic))
	}
	if req.ExtraInstructions != "" {
		b.WriteString("Additional instructions: " + req.ExtraInstructions + "\n")
	}

	// Layer 8: Source excerpt
	excerpt := truncate(req.CombinedText(), maxSourceExcerpt)
	b.WriteString("\n---SOURCE START---\n")
	b.WriteString(excerpt)
	b.WriteString("\n---SOURCE END---\n")

	return b.String()
}
