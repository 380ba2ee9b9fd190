package models

// SongRecord is one generated track. The json tags match the wire
// contract the prompt demands from the model, so a well-behaved
// response unmarshals straight into it.
type SongRecord struct {
	StyleTag        string `json:"type"`
	Title           string `json:"title"`
	ProductionNotes string `json:"vibe_description"`
	Lyrics          string `json:"lyrics"`
}

// SongList is the single-key JSON object the model is instructed to
// return, and the shape handed back to the presentation layer.
type SongList struct {
	Songs []SongRecord `json:"songs"`
}

// GenerationRequest is the immutable value object built once per
// generate action.
type GenerationRequest struct {
	SourcePages       []string
	Styles            []string
	LanguageBalance   int
	ArtistReference   string
	FocusTopic        string
	ExtraInstructions string
	DurationMinutes   float64
}

// CombinedText joins the source pages with the double-newline page
// separator the keyword layer relies on.
func (r GenerationRequest) CombinedText() string {
	var out string
	for i, p := range r.SourcePages {
		if i > 0 {
			out += "\n\n"
		}
		out += p
	}
	return out
}

// GenerateTracksResponse is the HTTP payload for a generate call.
// Source reports which path produced the tracks: "model", "salvage"
// or "local".
type GenerateTracksResponse struct {
	Tracks          []SongRecord `json:"tracks"`
	KeywordsPerPage []string     `json:"keywords_per_page"`
	Source          string       `json:"source"`
	CacheHit        bool         `json:"cache_hit"`
}
