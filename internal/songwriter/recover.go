package songwriter

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"btn-backend/internal/models"
)

// RecoverySource reports which path produced the returned tracks.
type RecoverySource string

const (
	SourceModel   RecoverySource = "model"
	SourceSalvage RecoverySource = "salvage"
	SourceLocal   RecoverySource = "local"
)

// salvageNotesLimit truncates free-form model text reused as
// production notes on the salvage path.
const salvageNotesLimit = 800

// signatureBlock is prepended to any lyrics missing the signature
// phrase: one generic ad-lib line, then the signature line.
const signatureBlock = "yeahh, aye vibe\n" + SignaturePhrase + "\n"

// Recover normalizes raw generation output into at least one valid
// SongRecord. It never fails: malformed output is salvaged, a client
// failure triggers local synthesis, and invariant violations are
// repaired in place rather than rejected.
func Recover(out models.Outcome, req models.GenerationRequest) (models.SongList, RecoverySource) {
	if out.Failed() {
		return models.SongList{Songs: []models.SongRecord{FallbackSong(req)}}, SourceLocal
	}

	cleaned := stripFences(out.Text)
	if cleaned == "" {
		// Empty text is as useless as no text.
		return models.SongList{Songs: []models.SongRecord{FallbackSong(req)}}, SourceLocal
	}

	if parsed, ok := parseSongList(cleaned); ok {
		for i := range parsed.Songs {
			parsed.Songs[i] = repairSong(parsed.Songs[i], req)
		}
		return ensureNonEmpty(parsed, req), SourceModel
	}

	// Salvage: free-text output is still useful to a human reader.
	salvaged := models.SongRecord{
		StyleTag:        defaultStyleTag(req),
		Title:           "Recovered take",
		ProductionNotes: truncate(cleaned, salvageNotesLimit),
		Lyrics:          cleaned,
	}
	salvaged = repairSong(salvaged, req)

	return ensureNonEmpty(models.SongList{Songs: []models.SongRecord{salvaged}}, req), SourceSalvage
}

// stripFences removes markdown code-fence wrapping anywhere in the
// text, fences embedded in prose included.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// parseSongList tries a strict parse, then retries on the substring
// between the first opening and last closing brace.
func parseSongList(s string) (models.SongList, bool) {
	var list models.SongList
	if err := json.Unmarshal([]byte(s), &list); err == nil && len(list.Songs) > 0 {
		return list, true
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		list = models.SongList{}
		if err := json.Unmarshal([]byte(s[start:end+1]), &list); err == nil && len(list.Songs) > 0 {
			return list, true
		}
	}

	return models.SongList{}, false
}

// repairSong enforces the SongRecord invariants: sanitized lyrics, the
// signature phrase present, and a non-empty style tag.
func repairSong(song models.SongRecord, req models.GenerationRequest) models.SongRecord {
	song.Lyrics = Sanitize(song.Lyrics)

	if !strings.Contains(strings.ToLower(song.Lyrics), SignaturePhrase) {
		song.Lyrics = signatureBlock + song.Lyrics
	}

	if song.StyleTag == "" {
		song.StyleTag = defaultStyleTag(req)
	}

	return song
}

// ensureNonEmpty is the last line of defense: a result with zero songs
// gets a minimal placeholder rather than omitting the entity.
func ensureNonEmpty(list models.SongList, req models.GenerationRequest) models.SongList {
	if len(list.Songs) > 0 {
		return list
	}
	return models.SongList{Songs: []models.SongRecord{{
		StyleTag: defaultStyleTag(req),
		Lyrics:   strings.TrimSpace(signatureBlock),
	}}}
}

func defaultStyleTag(req models.GenerationRequest) string {
	if len(req.Styles) > 0 {
		return req.Styles[0]
	}
	return "Custom"
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
