package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/user/tarih/internal/event"
)

// DefaultLanguage selects the Wikipedia edition queried by default.
const DefaultLanguage = "tr"

// ErrRequestFailed marks a non-success HTTP status or a network-level
// failure on either search endpoint. An empty-but-successful response is
// not an error.
var ErrRequestFailed = errors.New("wiki request failed")

// Client queries the two Wikipedia endpoints and maps responses into
// canonical event records.
type Client struct {
	apiURL  string
	feedURL string
	client  *http.Client
}

func NewClient(language string) *Client {
	if language == "" {
		language = DefaultLanguage
	}
	return &Client{
		apiURL:  fmt.Sprintf("https://%s.wikipedia.org/w/api.php", language),
		feedURL: fmt.Sprintf("https://api.wikimedia.org/feed/v1/wikipedia/%s/onthisday/events", language),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SearchByKeyword runs a generator-based full-text search, requesting up to
// 10 results with intro extracts, a 300px thumbnail and the full page URL in
// a single round trip. Upstream relevance order is preserved.
func (c *Client) SearchByKeyword(ctx context.Context, term string) ([]event.Event, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("generator", "search")
	params.Set("gsrsearch", term)
	params.Set("gsrlimit", "10")
	params.Set("prop", "extracts|pageimages|info")
	params.Set("exintro", "true")
	params.Set("explaintext", "true")
	params.Set("piprop", "thumbnail")
	params.Set("pithumbsize", "300")
	params.Set("inprop", "url")
	params.Set("format", "json")
	params.Set("origin", "*")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search status %d", ErrRequestFailed, resp.StatusCode)
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if len(data.Query.Pages) == 0 {
		return []event.Event{}, nil
	}

	// The pages object is keyed by page id; the generator records relevance
	// order in each page's index field.
	pages := make([]searchPage, 0, len(data.Query.Pages))
	for _, p := range data.Query.Pages {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })

	events := make([]event.Event, 0, len(pages))
	for _, p := range pages {
		events = append(events, normalize(p))
	}
	return events, nil
}

// SearchByDate fetches the "on this day" feed for the given month and day,
// both interpolated zero-padded into the feed path. Upstream ordering is
// preserved; each entry's position disambiguates its id.
func (c *Client) SearchByDate(ctx context.Context, month, day int) ([]event.Event, error) {
	target := fmt.Sprintf("%s/%02d/%02d", c.feedURL, month, day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed status %d", ErrRequestFailed, resp.StatusCode)
	}

	var data feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	events := make([]event.Event, 0, len(data.Events))
	for i, fe := range data.Events {
		events = append(events, normalize(feedEntry{event: fe, index: i}))
	}
	return events, nil
}
