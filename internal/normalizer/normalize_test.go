package normalizer

import (
	"testing"
	"time"

	"github.com/powderlines/liftwatch/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.Status
	}{
		{"plain open", "open", models.StatusOpen},
		{"uppercase open", "OPEN", models.StatusOpen},
		{"open with decoration", "Open - Groomed", models.StatusOpen},
		{"opening counts as open", "Opening at 9am", models.StatusOpen},
		{"hold", "On Hold", models.StatusOnHold},
		{"wind hold", "wind HOLD", models.StatusOnHold},
		{"closed", "Closed", models.StatusClosed},
		{"closed for season", "CLOSED for season", models.StatusClosed},
		{"empty string", "", models.StatusUnknown},
		{"unrelated", "scheduled", models.StatusUnknown},
		{"whitespace", "   ", models.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStatus(tt.input))
		})
	}
}

func TestNormalizeStatus_Deterministic(t *testing.T) {
	for _, input := range []string{"open", "hold", "closed", "gibberish"} {
		first := NormalizeStatus(input)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, NormalizeStatus(input))
		}
	}
}

func TestFlattenFeed_CollapsesAreas(t *testing.T) {
	doc := models.FeedDocument{
		Areas: []models.FeedArea{
			{
				Name: "Front Side",
				Lifts: []models.FeedEntity{
					{Name: "Summit Express", Status: "Open"},
					{Name: "Creekside", Status: "Closed"},
				},
				Trails: []models.FeedEntity{
					{Name: "Powder Bowl", Status: "on hold"},
				},
			},
			{
				Name: "Back Side",
				Lifts: []models.FeedEntity{
					{Name: "Ridge Chair", Status: "mystery"},
				},
			},
		},
	}

	lifts, trails := FlattenFeed(doc)

	assert.Equal(t, models.StatusMap{
		"Summit Express": models.StatusOpen,
		"Creekside":      models.StatusClosed,
		"Ridge Chair":    models.StatusUnknown,
	}, lifts)
	assert.Equal(t, models.StatusMap{
		"Powder Bowl": models.StatusOnHold,
	}, trails)
}

func TestFlattenFeed_EmptyDocument(t *testing.T) {
	lifts, trails := FlattenFeed(models.FeedDocument{})
	assert.Empty(t, lifts)
	assert.Empty(t, trails)
	assert.NotNil(t, lifts)
	assert.NotNil(t, trails)
}

func TestSnapshotFromFeed(t *testing.T) {
	capturedAt := time.Date(2025, 1, 15, 17, 5, 0, 0, time.UTC)
	doc := models.FeedDocument{
		Areas: []models.FeedArea{
			{Lifts: []models.FeedEntity{{Name: "A", Status: "open"}}},
		},
		Operations: map[string]interface{}{"grooming": "complete"},
	}

	snap := SnapshotFromFeed(doc, capturedAt)

	assert.Equal(t, "2025-01-15T17:05:00Z", snap.CapturedAt)
	assert.Equal(t, models.StatusOpen, snap.Lifts["A"])
	assert.Equal(t, "complete", snap.Operations["grooming"])

	parsed, err := snap.CapturedTime()
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(capturedAt))
}
