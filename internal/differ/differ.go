package differ

import (
	"sort"

	"github.com/powderlines/liftwatch/internal/models"
)

// DiffResult holds the classified transitions between two status maps.
// Both lists are sorted lexicographically.
type DiffResult struct {
	Opened []string
	Closed []string
}

// DiffOpens compares two named-entity status maps on open-set membership.
// "Open" means status exactly equal to StatusOpen; on-hold, closed and
// unknown all count as not open. Opened lists names open now but not
// before; Closed lists names open before but not now. A name absent from
// one map is simply not in that map's open set.
func DiffOpens(prev, curr models.StatusMap) DiffResult {
	var result DiffResult

	for name, status := range curr {
		if status == models.StatusOpen && prev[name] != models.StatusOpen {
			result.Opened = append(result.Opened, name)
		}
	}
	for name, status := range prev {
		if status == models.StatusOpen && curr[name] != models.StatusOpen {
			result.Closed = append(result.Closed, name)
		}
	}

	sort.Strings(result.Opened)
	sort.Strings(result.Closed)
	return result
}
