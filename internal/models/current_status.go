package models

// CurrentStatus is the most-recent-poll record written after every
// successful fetch. Its FetchedAt field seeds the schedule gate on the
// next invocation.
type CurrentStatus struct {
	FetchedAt     string                 `json:"fetched_at"`
	SourceUpdated string                 `json:"source_updated,omitempty"`
	LiftsUpdated  string                 `json:"lifts_updated,omitempty"`
	TrailsUpdated string                 `json:"trails_updated,omitempty"`
	Operations    map[string]interface{} `json:"operations,omitempty"`
	Lifts         StatusMap              `json:"lifts"`
	Trails        StatusMap              `json:"trails"`
}
