package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// resultCount is fixed; the API caps free-tier pages anyway and the UI
// renders a single unpaginated list.
const resultCount = 20

const (
	positiveThreshold = "0.1"
	negativeThreshold = "-0.1"
)

// KeySource supplies the API credential. Returns false when no key is
// available from any source.
type KeySource interface {
	Get() (string, bool)
}

// Client talks to the news search endpoint. A single relay endpoint serves
// as the one best-effort alternate path when the primary transport fails;
// this is an ordered two-step attempt, not a retry loop.
type Client struct {
	http     *http.Client
	endpoint string
	relay    string
	keys     KeySource
}

// New builds a Client. relay may be empty to disable the alternate path.
// The http.Client deliberately carries no timeout: transport defaults rule.
func New(keys KeySource, endpoint, relay string) *Client {
	return &Client{
		http:     &http.Client{},
		endpoint: endpoint,
		relay:    relay,
		keys:     keys,
	}
}

// Search issues one search request and returns the normalized articles.
// Empty queries are rejected locally with ErrEmptyQuery; a missing
// credential short-circuits with KindMissingCredential before any network
// activity. All other failures come back as *Error.
func (c *Client) Search(ctx context.Context, query string, f Filters) ([]Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	key, ok := c.keys.Get()
	if !ok {
		return nil, &Error{Kind: KindMissingCredential}
	}

	params := buildParams(key, query, f)

	articles, err := c.fetch(ctx, c.endpoint, params)
	if err != nil {
		kind, _ := KindOf(err)
		if kind != KindTransportFailure || c.relay == "" {
			return nil, err
		}
		articles, err = c.fetch(ctx, c.relay, params)
		if err != nil {
			return nil, err
		}
	}

	if len(articles) == 0 {
		return nil, &Error{Kind: KindEmptyResult}
	}
	return articles, nil
}

func buildParams(key, query string, f Filters) url.Values {
	params := url.Values{}
	params.Set("api-key", key)
	params.Set("text", query)
	params.Set("language", f.Language)
	params.Set("number", fmt.Sprint(resultCount))
	params.Set("sort", f.SortBy)
	if f.SourceCountry != "" {
		params.Set("source-countries", f.SourceCountry)
	}
	switch f.Sentiment {
	case "positive":
		params.Set("min-sentiment", positiveThreshold)
	case "negative":
		params.Set("max-sentiment", negativeThreshold)
	}
	return params
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &Error{Kind: KindTransportFailure, cause: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransportFailure, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyStatus(resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, &Error{Kind: KindTransportFailure, cause: fmt.Errorf("decoding response: %w", err)}
	}

	articles := make([]Article, 0, len(sr.News))
	for i, raw := range sr.News {
		articles = append(articles, normalize(i, raw))
	}
	return articles, nil
}
