package models

// Status is the normalized operating status of a lift or trail.
type Status string

const (
	// StatusOpen indicates the entity is fully open.
	StatusOpen Status = "open"
	// StatusOnHold indicates the entity is temporarily on hold (wind hold, etc).
	StatusOnHold Status = "on-hold"
	// StatusClosed indicates the entity is closed.
	StatusClosed Status = "closed"
	// StatusUnknown indicates the upstream string matched no known vocabulary.
	StatusUnknown Status = "unknown"
)

// StatusMap maps entity names to their normalized status.
type StatusMap map[string]Status
