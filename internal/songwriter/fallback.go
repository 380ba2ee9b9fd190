package songwriter

import (
	"fmt"
	"strings"

	"btn-backend/internal/models"
)

// fallbackAnchors is how many global keywords seed the offline song.
const fallbackAnchors = 12

var (
	defaultChorusWords = []string{"study", "notes", "exam"}
	defaultVerseWords  = []string{"remember", "revise", "practice", "focus", "concepts", "rules"}
	genericVerseLines  = []string{"revise", "practice", "test yourself"}
)

// FallbackSong deterministically synthesizes one track from nothing
// but the source pages: anchor keywords into a fixed ad-lib, chorus
// and three-verse skeleton with the chorus repeated between verses.
// Used when the generation client is unavailable or produced nothing.
func FallbackSong(req models.GenerationRequest) models.SongRecord {
	top := ExtractKeywords(req.CombinedText(), fallbackAnchors)

	chorusWords := top
	if len(chorusWords) == 0 {
		chorusWords = defaultChorusWords
	}
	for len(chorusWords) < 2 {
		chorusWords = append(chorusWords, defaultChorusWords[len(chorusWords)%len(defaultChorusWords)])
	}

	var verseWords []string
	if len(top) > 3 {
		verseWords = top[3:]
		if len(verseWords) > 6 {
			verseWords = verseWords[:6]
		}
	} else {
		verseWords = defaultVerseWords
	}

	chorus := strings.Join([]string{
		"[CHORUS]",
		fmt.Sprintf("%s, remember %s", SignaturePhrase, chorusWords[0]),
		fmt.Sprintf("we sing the %s vibes, simple lines", chorusWords[1]),
	}, "\n")

	var verses []string
	for vnum := 1; vnum <= 3; vnum++ {
		lines := sliceWords(verseWords, (vnum-1)*2, 6)
		if len(lines) == 0 {
			lines = genericVerseLines
		}
		verse := []string{fmt.Sprintf("[VERSE %d]", vnum)}
		for _, ln := range lines {
			verse = append(verse, fmt.Sprintf("%s, keep it short", ln))
		}
		verses = append(verses, strings.Join(verse, "\n"))
	}

	lyrics := signatureBlock + chorus
	for _, v := range verses {
		lyrics += "\n\n" + v + "\n\n" + chorus
	}
	lyrics = Sanitize(lyrics)

	title := "BTN Originals: Study Song"
	if len(top) > 0 {
		title = "BTN Originals: " + strings.Join(sliceWords(top, 0, 2), " ")
	}

	notes := "Local fallback, Hinglish study song."
	if len(top) > 0 {
		notes += " Keywords: " + strings.Join(sliceWords(top, 0, 6), ", ")
	}

	return models.SongRecord{
		StyleTag:        defaultStyleTag(req),
		Title:           title,
		ProductionNotes: notes,
		Lyrics:          lyrics,
	}
}

// sliceWords returns up to max words starting at from, clamped to the
// slice bounds.
func sliceWords(words []string, from, max int) []string {
	if from >= len(words) {
		return nil
	}
	end := from + max
	if end > len(words) {
		end = len(words)
	}
	return words[from:end]
}
