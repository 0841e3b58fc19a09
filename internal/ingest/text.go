package ingest

import (
	"bytes"
	"context"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextStrategy accepts documents that already are plain text.
type TextStrategy struct {
	switchable
}

func NewText() *TextStrategy {
	return &TextStrategy{}
}

func (s *TextStrategy) Name() string { return "text" }

func (s *TextStrategy) Accepts(mediaType string) bool {
	return acceptsAny(mediaType, []string{"text/plain", "text/markdown"})
}

func (s *TextStrategy) Extract(_ context.Context, doc Document) (Extraction, error) {
	data := bytes.TrimPrefix(doc.Data, utf8BOM)
	return Extraction{Text: strings.ToValidUTF8(string(data), "")}, nil
}
