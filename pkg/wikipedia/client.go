package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// SearchResult is the outcome of one statement lookup.
type SearchResult struct {
	Found   bool
	Summary string
	URL     string
}

// Client queries the MediaWiki search API of the per-language Wikipedia.
type Client struct {
	// BaseURL overrides the per-language endpoint; used in tests.
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		// Per-call deadlines come from the caller's context.
		Client: &http.Client{},
	}
}

type searchAPIResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

func (c *Client) endpoint(language string) string {
	if c.BaseURL != "" {
		return c.BaseURL + "/w/api.php"
	}
	return fmt.Sprintf("https://%s.wikipedia.org/w/api.php", language)
}

func (c *Client) pageURL(language, title string) string {
	slug := strings.ReplaceAll(title, " ", "_")
	if c.BaseURL != "" {
		return c.BaseURL + "/wiki/" + slug
	}
	return fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", language, slug)
}

// Search looks a statement up and returns the first hit, if any.
// An empty result set is not an error.
func (c *Client) Search(ctx context.Context, statement, language string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", statement)
	params.Set("format", "json")
	params.Set("utf8", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(language)+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia search: status %d", resp.StatusCode)
	}

	var decoded searchAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	if len(decoded.Query.Search) == 0 {
		return &SearchResult{Found: false}, nil
	}

	page := decoded.Query.Search[0]
	return &SearchResult{
		Found:   true,
		Summary: page.Snippet,
		URL:     c.pageURL(language, page.Title),
	}, nil
}
