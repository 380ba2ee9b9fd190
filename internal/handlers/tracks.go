package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"btn-backend/internal/cache"
	"btn-backend/internal/models"
	"btn-backend/internal/songwriter"
)

// StyleCatalog is the fixed set of selectable music styles.
var StyleCatalog = []string{
	"Desi Hip-Hop / Trap",
	"Punjabi Drill",
	"Bollywood Pop Anthem",
	"Lofi Study Beats",
	"Sufi Rock",
	"EDM / Party",
	"Old School 90s Rap",
}

// keywordLinePlaceholder stands in for pages with no usable keywords,
// keeping one output line per page read.
const keywordLinePlaceholder = "—"

type generator interface {
	Invoke(ctx context.Context, prompt string) models.Outcome
	Configured() bool
}

type pageExtractor interface {
	ExtractPDFPages(data []byte) ([]string, error)
}

type TrackHandler struct {
	extract        pageExtractor
	gemini         generator
	cache          cache.Store
	maxUploadBytes int64
}

func NewTrackHandler(extract pageExtractor, gemini generator, store cache.Store, maxUploadBytes int64) *TrackHandler {
	return &TrackHandler{
		extract:        extract,
		gemini:         gemini,
		cache:          store,
		maxUploadBytes: maxUploadBytes,
	}
}

// Generate runs the full upload → extract → prompt → invoke → recover
// cycle synchronously and responds with the tracks plus the per-page
// keyword lines. Whatever the model does, the caller gets a song.
func (h *TrackHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "File size exceeds the upload limit", r))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Failed to read upload", r))
		return
	}

	mimeType := http.DetectContentType(firstBytes(data, 512))
	if !isPDF(mimeType, header.Filename) {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResp("UNSUPPORTED_FORMAT", "Only PDF uploads are supported", r))
		return
	}

	req, ok := parseGenerationForm(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Select at least one style", r))
		return
	}

	pages, err := h.extract.ExtractPDFPages(data)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("EMPTY_SOURCE", "Failed to extract text from PDF or PDF was empty", r))
		return
	}
	req.SourcePages = pages

	key := cache.Key(data, fingerprint(req))
	if cached, hit := h.cache.Get(r.Context(), key); hit {
		resp := *cached
		resp.CacheHit = true
		writeJSON(w, http.StatusOK, &resp)
		return
	}

	prompt := songwriter.BuildPrompt(req)
	out := h.gemini.Invoke(r.Context(), prompt)
	if out.Failed() {
		log.Printf("generation failed, using local fallback: %v", out.Err)
	}
	songs, source := songwriter.Recover(out, req)

	resp := &models.GenerateTracksResponse{
		Tracks:          songs.Songs,
		KeywordsPerPage: keywordLines(pages),
		Source:          string(source),
	}

	h.cache.Put(r.Context(), key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// Styles returns the selectable style catalog.
func (h *TrackHandler) Styles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"styles": StyleCatalog,
	})
}

// Status is the troubleshooting panel: which generation path is live
// and what the upload limits are.
func (h *TrackHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"model_configured": h.gemini.Configured(),
		"cache_backend":    h.cache.Name(),
		"max_upload_bytes": h.maxUploadBytes,
	})
}

func parseGenerationForm(r *http.Request) (models.GenerationRequest, bool) {
	req := models.GenerationRequest{
		LanguageBalance: 50,
		DurationMinutes: 2.5,
	}

	var styles []string
	if r.MultipartForm != nil {
		styles = r.MultipartForm.Value["styles"]
	}
	custom := strings.TrimSpace(r.FormValue("custom_style"))
	if custom != "" && !contains(styles, custom) {
		styles = append(styles, custom)
	}
	if len(styles) == 0 {
		return req, false
	}
	req.Styles = styles

	if v := r.FormValue("language_mix"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 100 {
			req.LanguageBalance = n
		}
	}
	if v := r.FormValue("duration_minutes"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			req.DurationMinutes = f
		}
	}
	req.ArtistReference = strings.TrimSpace(r.FormValue("artist_reference"))
	req.FocusTopic = strings.TrimSpace(r.FormValue("focus_topic"))
	req.ExtraInstructions = strings.TrimSpace(r.FormValue("extra_instructions"))

	return req, true
}

// fingerprint folds the generation options into the cache key so the
// same upload with different settings does not collide.
func fingerprint(req models.GenerationRequest) string {
	return strings.Join([]string{
		strings.Join(req.Styles, "|"),
		strconv.Itoa(req.LanguageBalance),
		strconv.FormatFloat(req.DurationMinutes, 'f', 1, 64),
		req.ArtistReference,
		req.FocusTopic,
		req.ExtraInstructions,
	}, "\x1f")
}

func keywordLines(pages []string) []string {
	lines := make([]string, len(pages))
	for i, p := range pages {
		kws := songwriter.ExtractKeywords(p, songwriter.DefaultTopKeywords)
		if len(kws) == 0 {
			lines[i] = keywordLinePlaceholder
			continue
		}
		lines[i] = strings.Join(kws, ", ")
	}
	return lines
}

func isPDF(mime, filename string) bool {
	if mime == "application/pdf" {
		return true
	}
	// DetectContentType reports octet-stream for some valid PDFs;
	// fall back to the extension.
	return mime == "application/octet-stream" && strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

func firstBytes(data []byte, n int) []byte {
	if len(data) < n {
		return data
	}
	return data[:n]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
