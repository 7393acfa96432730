package models

// FeedEntity is one named lift or trail as reported by the upstream feed,
// with its raw (un-normalized) status string.
type FeedEntity struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// FeedArea is one mountain area grouping lifts and trails. Any missing
// level decodes to an empty collection rather than an error.
type FeedArea struct {
	Name   string       `json:"name"`
	Lifts  []FeedEntity `json:"lifts"`
	Trails []FeedEntity `json:"trails"`
}

// FeedDocument is the upstream status feed response.
type FeedDocument struct {
	LastUpdated   string                 `json:"last_updated"`
	LiftsUpdated  string                 `json:"lifts_updated"`
	TrailsUpdated string                 `json:"trails_updated"`
	Areas         []FeedArea             `json:"areas"`
	Operations    map[string]interface{} `json:"operations,omitempty"`
}
