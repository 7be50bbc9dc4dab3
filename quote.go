package macground

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/k1LoW/errors"
)

// DefaultQuoteURL returns a JSON array holding one random quote.
const DefaultQuoteURL = "https://zenquotes.io/api/random"

type Quote struct {
	Text   string `json:"q"`
	Author string `json:"a"`
}

func (q *Quote) String() string {
	if q.Author == "" {
		return q.Text
	}
	return fmt.Sprintf("%s - %s", q.Text, q.Author)
}

// QuoteSource fetches random quotes over HTTP.
type QuoteSource struct {
	url    string
	client *retryablehttp.Client
}

// NewQuoteSource creates a QuoteSource. If url is empty DefaultQuoteURL is used.
func NewQuoteSource(url string, logger *slog.Logger) *QuoteSource {
	if url == "" {
		url = DefaultQuoteURL
	}
	return &QuoteSource{
		url:    url,
		client: newHTTPClient(logger),
	}
}

// Fetch returns a random quote.
func (s *QuoteSource) Fetch(ctx context.Context) (_ *Quote, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote from %s: %w", s.url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch quote from %s: status code %d", s.url, res.StatusCode)
	}
	var quotes []*Quote
	if err := json.NewDecoder(res.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("failed to decode quote: %w", err)
	}
	if len(quotes) == 0 || strings.TrimSpace(quotes[0].Text) == "" {
		return nil, fmt.Errorf("no quote returned from %s", s.url)
	}
	return quotes[0], nil
}
