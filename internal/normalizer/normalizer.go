package normalizer

import (
	"time"

	"github.com/powderlines/liftwatch/internal/models"
)

// FlattenFeed collapses the feed's area nesting into flat name->status maps
// for lifts and trails. Later areas win on duplicate names, matching the
// feed's own presentation order.
func FlattenFeed(doc models.FeedDocument) (lifts, trails models.StatusMap) {
	lifts = models.StatusMap{}
	trails = models.StatusMap{}
	for _, area := range doc.Areas {
		for _, e := range area.Lifts {
			if e.Name == "" {
				continue
			}
			lifts[e.Name] = NormalizeStatus(e.Status)
		}
		for _, e := range area.Trails {
			if e.Name == "" {
				continue
			}
			trails[e.Name] = NormalizeStatus(e.Status)
		}
	}
	return lifts, trails
}

// SnapshotFromFeed normalizes a fetched feed document into an immutable
// snapshot captured at the given instant.
func SnapshotFromFeed(doc models.FeedDocument, capturedAt time.Time) models.Snapshot {
	lifts, trails := FlattenFeed(doc)
	snap := models.NewSnapshot(capturedAt, lifts, trails)
	snap.Operations = doc.Operations
	return snap
}
