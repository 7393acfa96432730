package normalizer

import (
	"strings"

	"github.com/powderlines/liftwatch/internal/models"
)

// NormalizeStatus coerces an arbitrary upstream status string into the
// closed status vocabulary. Classification is case-insensitive substring
// matching, checked in order, and is total: every input maps to exactly
// one value.
func NormalizeStatus(raw string) models.Status {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "open"):
		return models.StatusOpen
	case strings.Contains(s, "hold"):
		return models.StatusOnHold
	case strings.Contains(s, "closed"):
		return models.StatusClosed
	default:
		return models.StatusUnknown
	}
}
