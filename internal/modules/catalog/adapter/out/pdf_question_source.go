package out

import (
	"context"
	"fmt"
	"math"
	"strings"

	catalogout "eductl/internal/modules/catalog/port/out"
	"rsc.io/pdf"
)

// LocalPDFQuestionSource reads an exam paper from disk and yields its text
// line by line. Fragments sharing a baseline are joined into one line;
// layout beyond that is ignored.
type LocalPDFQuestionSource struct{}

func NewLocalPDFQuestionSource() catalogout.QuestionSource {
	return &LocalPDFQuestionSource{}
}

func (s *LocalPDFQuestionSource) Extract(_ context.Context, path string) ([]string, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	var lines []string
	for n := 1; n <= doc.NumPage(); n++ {
		p := doc.Page(n)
		if p.V.IsNull() {
			continue
		}
		lines = append(lines, pageLines(p.Content())...)
	}
	return lines, nil
}

func pageLines(content pdf.Content) []string {
	var lines []string
	var parts []string
	lastY := math.Inf(-1)
	flush := func() {
		line := strings.TrimSpace(strings.Join(parts, ""))
		if line != "" {
			lines = append(lines, line)
		}
		parts = parts[:0]
	}
	for _, text := range content.Text {
		if math.Abs(text.Y-lastY) > 0.5 && len(parts) > 0 {
			flush()
		}
		lastY = text.Y
		parts = append(parts, text.S)
	}
	flush()
	return lines
}
