package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/utils"
)

var errNoPDFText = errors.New("pdf has no extractable text")

// PDFStrategy reads the text layer of a PDF locally, one line per text row.
type PDFStrategy struct {
	switchable
	logger *zap.Logger
}

func NewPDF(log *zap.Logger) *PDFStrategy {
	return &PDFStrategy{logger: logger.WithFields(log)}
}

func (s *PDFStrategy) Name() string { return "pdf" }

func (s *PDFStrategy) Accepts(mediaType string) bool {
	return strings.EqualFold(mediaType, "application/pdf")
}

// Extract runs the parser under ctx. The parser takes no context and may panic on
// malformed files; both are handled by utils.RunContext.
func (s *PDFStrategy) Extract(ctx context.Context, doc Document) (Extraction, error) {
	text, err := utils.RunContext(ctx, func() (string, error) {
		return s.pdfText(doc.Data)
	})
	if err != nil {
		return Extraction{}, fmt.Errorf("extract pdf text: %w", err)
	}
	return Extraction{Text: text}, nil
}

func (s *PDFStrategy) pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	return joinPages(reader.NumPage(), func(i int) ([]string, error) {
		page := reader.Page(i)
		if page.V.IsNull() {
			return nil, nil
		}
		return pageRows(page)
	}, s.logger)
}

func pageRows(page pdf.Page) ([]string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		words := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			words = append(words, word.S)
		}
		lines = append(lines, strings.Join(words, ""))
	}
	return lines, nil
}

// joinPages collects pages 1..n, separated by a blank line. A page that fails is
// skipped with a warning; the document fails only when no page had text.
func joinPages(n int, rows func(page int) ([]string, error), log *zap.Logger) (string, error) {
	var lines []string
	var lastErr error
	for i := 1; i <= n; i++ {
		pageLines, err := rows(i)
		if err != nil {
			log.Warn("skipping pdf page", zap.Int("page", i), zap.Error(err))
			lastErr = fmt.Errorf("read page %d: %w", i, err)
			continue
		}
		if len(pageLines) == 0 {
			continue
		}
		lines = append(lines, pageLines...)
		// Keep pages apart so entries do not run together.
		lines = append(lines, "")
	}

	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		if lastErr != nil {
			return "", lastErr
		}
		return "", errNoPDFText
	}
	return text, nil
}

func (s *PDFStrategy) Status() Status {
	return s.status(s.Name(), nil)
}
