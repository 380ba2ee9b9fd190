package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FileExtractService pulls per-page plain text out of uploaded PDFs.
type FileExtractService struct {
	maxPages int
}

func NewFileExtractService(maxPages int) *FileExtractService {
	return &FileExtractService{maxPages: maxPages}
}

// ExtractPDFPages returns the ordered page texts, one entry per page
// read (empty string when a page yields nothing), capped at maxPages.
// It errors only when no page produced any text at all; that is the
// one upstream condition the generation pipeline cannot repair.
func (s *FileExtractService) ExtractPDFPages(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	total := reader.NumPage()
	if total > s.maxPages {
		total = s.maxPages
	}

	pages := make([]string, 0, total)
	any := false
	for pageIndex := 1; pageIndex <= total; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}

		text := normalizeExtractedText(content)
		if text != "" {
			any = true
		}
		pages = append(pages, text)
	}

	if !any {
		return nil, fmt.Errorf("no extractable text found in pdf")
	}

	return pages, nil
}

func normalizeExtractedText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	buf := bytes.Buffer{}

	emptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			emptyCount++
			if emptyCount > 1 {
				continue
			}
			buf.WriteString("\n")
			continue
		}
		emptyCount = 0
		buf.WriteString(trimmed)
		buf.WriteString("\n")
	}

	return strings.TrimSpace(buf.String())
}
