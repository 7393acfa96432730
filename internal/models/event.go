package models

// EventSummary holds the opened/closed counts for a change event, split by
// entity category plus the combined totals the significance check uses.
type EventSummary struct {
	LiftsOpened  int `json:"lifts_opened"`
	LiftsClosed  int `json:"lifts_closed"`
	TrailsOpened int `json:"trails_opened"`
	TrailsClosed int `json:"trails_closed"`
	OpenedTotal  int `json:"opened_total"`
	ClosedTotal  int `json:"closed_total"`
}

// EventDetail lists the names behind each summary count, sorted
// lexicographically.
type EventDetail struct {
	LiftsOpened  []string `json:"lifts_opened"`
	LiftsClosed  []string `json:"lifts_closed"`
	TrailsOpened []string `json:"trails_opened"`
	TrailsClosed []string `json:"trails_closed"`
}

// ChangeEvent records one significant day-over-day change. It is created at
// most once per comparison window; the publisher placeholder fields
// (ScreenshotPath, InstagramPosted, InstagramPostID, Caption) are owned by
// the downstream publishing workflow and must survive a rewrite untouched.
type ChangeEvent struct {
	ID                 string       `json:"id"`
	Key                string       `json:"key"`
	CreatedAt          string       `json:"created_at"`
	BaselineCapturedAt string       `json:"baseline_captured_at"`
	CurrentCapturedAt  string       `json:"current_captured_at"`
	Summary            EventSummary `json:"summary"`
	Detail             EventDetail  `json:"detail"`

	ScreenshotPath  string `json:"screenshot_path,omitempty"`
	InstagramPosted bool   `json:"instagram_posted"`
	InstagramPostID string `json:"instagram_post_id,omitempty"`
	Caption         string `json:"caption,omitempty"`
}
