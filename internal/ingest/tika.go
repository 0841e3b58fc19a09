package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTikaURL = "http://localhost:9998"

// TikaStrategy extracts plain text through an Apache Tika server.
type TikaStrategy struct {
	switchable
	serverURL string
	client    *http.Client
}

func NewTika(serverURL string, client *http.Client) *TikaStrategy {
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if serverURL == "" {
		serverURL = defaultTikaURL
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &TikaStrategy{serverURL: serverURL, client: client}
}

func (s *TikaStrategy) Name() string { return "tika" }

// Accepts reports true for everything: Tika detects the format itself.
func (s *TikaStrategy) Accepts(string) bool { return true }

func (s *TikaStrategy) Extract(ctx context.Context, doc Document) (Extraction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.serverURL+"/tika", bytes.NewReader(doc.Data))
	if err != nil {
		return Extraction{}, fmt.Errorf("create tika request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	if mediaType := doc.BaseMediaType(); mediaType != "" {
		req.Header.Set("Content-Type", mediaType)
	}
	if doc.Name != "" {
		req.Header.Set("X-Tika-Resource-Name", doc.Name)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Extraction{}, fmt.Errorf("send tika request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Extraction{}, fmt.Errorf("tika returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Extraction{}, fmt.Errorf("read tika response: %w", err)
	}

	return Extraction{Text: string(body)}, nil
}

func (s *TikaStrategy) Status() Status {
	return s.status(s.Name(), map[string]string{"server_url": s.serverURL})
}
