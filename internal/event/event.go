package event

// Source identifies which upstream API produced an event.
const (
	SourceSearch    = "search"
	SourceOnThisDay = "onthisday"
)

// YearUnknown is the placeholder year for events without date metadata.
// Keyword search results never carry a year.
const YearUnknown = "Belirsiz"

// Event is the canonical historical event record, independent of which
// upstream API produced it. Every field except Thumbnail is always set;
// missing upstream values are replaced with placeholder strings.
type Event struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Year      string `json:"year"`
	Summary   string `json:"summary"`
	Detail    string `json:"detail"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Link      string `json:"link"`
	Source    string `json:"source"` // search, onthisday
}
