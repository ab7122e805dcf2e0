package wiki

import (
	"fmt"
	"strconv"

	"github.com/user/tarih/internal/event"
)

const (
	summaryLimit       = 150
	summaryPlaceholder = "Özet bulunamadı."
	detailPlaceholder  = "Detay bulunamadı."
)

type searchResponse struct {
	Query struct {
		Pages map[string]searchPage `json:"pages"`
	} `json:"query"`
}

type searchPage struct {
	PageID    int    `json:"pageid"`
	Index     int    `json:"index"`
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	FullURL string `json:"fullurl"`
}

type feedResponse struct {
	Events []feedEvent `json:"events"`
}

type feedEvent struct {
	Text  string     `json:"text"`
	Year  int        `json:"year"`
	Pages []feedPage `json:"pages"`
}

type feedPage struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// feedEntry pairs a feed event with its position in the response, which
// disambiguates ids within one batch.
type feedEntry struct {
	event feedEvent
	index int
}

// rawEntry is the discriminated input of normalize: either a search page or
// a positioned feed entry.
type rawEntry interface {
	rawEntry()
}

func (searchPage) rawEntry() {}
func (feedEntry) rawEntry()  {}

// normalize maps one upstream result into the canonical event record. It is
// total on well-formed input: every field except Thumbnail gets a value.
func normalize(r rawEntry) event.Event {
	switch v := r.(type) {
	case searchPage:
		e := event.Event{
			ID:      strconv.Itoa(v.PageID),
			Title:   v.Title,
			Year:    event.YearUnknown,
			Summary: summarize(v.Extract),
			Detail:  v.Extract,
			Link:    v.FullURL,
			Source:  event.SourceSearch,
		}
		if e.Detail == "" {
			e.Detail = detailPlaceholder
		}
		if v.Thumbnail != nil {
			e.Thumbnail = v.Thumbnail.Source
		}
		return e
	case feedEntry:
		e := event.Event{
			ID:      fmt.Sprintf("otd-%d-%d", v.index, v.event.Year),
			Title:   fmt.Sprintf("Olay: %d", v.event.Year),
			Year:    strconv.Itoa(v.event.Year),
			Summary: v.event.Text,
			Detail:  v.event.Text,
			Link:    "#",
			Source:  event.SourceOnThisDay,
		}
		// The first associated page tends to carry the best detail; any
		// further pages are dropped.
		if len(v.event.Pages) > 0 {
			primary := v.event.Pages[0]
			e.Title = primary.Title
			if primary.Extract != "" {
				e.Detail = primary.Extract
			}
			if primary.Thumbnail != nil {
				e.Thumbnail = primary.Thumbnail.Source
			}
			if primary.ContentURLs.Desktop.Page != "" {
				e.Link = primary.ContentURLs.Desktop.Page
			}
		}
		return e
	}
	return event.Event{}
}

// summarize truncates an extract to the first 150 characters, or returns the
// placeholder if the extract is empty.
func summarize(extract string) string {
	if extract == "" {
		return summaryPlaceholder
	}
	runes := []rune(extract)
	if len(runes) <= summaryLimit {
		return extract + "..."
	}
	return string(runes[:summaryLimit]) + "..."
}
