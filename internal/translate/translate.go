// Package translate is the narrow machine-translation contract the form
// layer uses to fill locale variants. Calls are fallible and must never
// block saving the base-locale record.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Translator interface {
	Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error)
}

// HTTPTranslator talks to a LibreTranslate-compatible endpoint.
type HTTPTranslator struct {
	endpoint string
	client   *http.Client
}

func NewHTTPTranslator(endpoint string, timeout time.Duration) *HTTPTranslator {
	return &HTTPTranslator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTranslator) Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": sourceLocale,
		"target": targetLocale,
		"format": "text",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate request: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	return out.TranslatedText, nil
}
