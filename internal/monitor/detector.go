package monitor

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/powderlines/liftwatch/internal/config"
	"github.com/powderlines/liftwatch/internal/datastore"
	"github.com/powderlines/liftwatch/internal/differ"
	"github.com/powderlines/liftwatch/internal/errorutil"
	"github.com/powderlines/liftwatch/internal/models"
	"github.com/powderlines/liftwatch/internal/timezone"
	"github.com/rs/zerolog"
)

// Detector is the event controller: once per comparison window it decides
// whether the day-over-day change between this morning's status and
// yesterday afternoon's status is significant enough to record an event.
type Detector struct {
	cfg      config.DetectorConfig
	resolver *timezone.Resolver
	history  *datastore.HistoryStore
	events   *datastore.EventStore
	logger   zerolog.Logger
}

// Evaluation is the outcome of one detector pass.
type Evaluation struct {
	Fired  bool
	Reason string
	Event  *models.ChangeEvent
}

// Evaluation reasons.
const (
	ReasonAlreadyFired      = "window_already_fired"
	ReasonMissingMorning    = "no_snapshot_near_morning_target"
	ReasonMissingAfternoon  = "no_snapshot_near_afternoon_target"
	ReasonBelowThreshold    = "change_below_threshold"
	ReasonSignificantChange = "significant_change"
)

// NewDetector creates an event detector over the given stores.
func NewDetector(
	cfg config.DetectorConfig,
	resolver *timezone.Resolver,
	history *datastore.HistoryStore,
	events *datastore.EventStore,
	logger zerolog.Logger,
) *Detector {
	return &Detector{
		cfg:      cfg,
		resolver: resolver,
		history:  history,
		events:   events,
		logger:   logger.With().Str("component", "Detector").Logger(),
	}
}

// DedupKey builds the comparison window's identity from the two local date
// strings and the fixed target labels. The same key means the same window.
func (d *Detector) DedupKey(now time.Time) string {
	today := d.resolver.LocalParts(now)
	yesterday := d.resolver.LocalParts(now.Add(-24 * time.Hour))
	return fmt.Sprintf("%s@%02d00-vs-%s@%02d00",
		d.resolver.DateKey(today), d.cfg.MorningTargetHour,
		d.resolver.DateKey(yesterday), d.cfg.AfternoonTargetHour)
}

// Evaluate runs one detector pass at the given instant. Absence of data
// (missing target snapshots in the first days of operation) is a quiescent
// no-op, not an error. On a significant not-yet-fired change it writes the
// event record and updates the history log's dedup metadata; the caller is
// responsible for persisting the log afterwards.
func (d *Detector) Evaluate(now time.Time) (Evaluation, error) {
	key := d.DedupKey(now)
	if d.history.Meta().LastEventKey == key {
		d.logger.Debug().Str("key", key).Msg("Comparison window already fired")
		return Evaluation{Reason: ReasonAlreadyFired}, nil
	}

	morningTarget := d.resolver.DayAt(now, d.cfg.MorningTargetHour, 0)
	afternoonTarget := d.resolver.DayAt(now.Add(-24*time.Hour), d.cfg.AfternoonTargetHour, 0)

	current, ok := d.history.FindNearest(morningTarget, time.Duration(d.cfg.MorningToleranceMinutes)*time.Minute)
	if !ok {
		return Evaluation{Reason: ReasonMissingMorning}, nil
	}
	baseline, ok := d.history.FindNearest(afternoonTarget, time.Duration(d.cfg.AfternoonToleranceMinutes)*time.Minute)
	if !ok {
		return Evaluation{Reason: ReasonMissingAfternoon}, nil
	}

	liftDiff := differ.DiffOpens(baseline.Lifts, current.Lifts)
	trailDiff := differ.DiffOpens(baseline.Trails, current.Trails)

	summary := models.EventSummary{
		LiftsOpened:  len(liftDiff.Opened),
		LiftsClosed:  len(liftDiff.Closed),
		TrailsOpened: len(trailDiff.Opened),
		TrailsClosed: len(trailDiff.Closed),
	}
	summary.OpenedTotal = summary.LiftsOpened + summary.TrailsOpened
	summary.ClosedTotal = summary.LiftsClosed + summary.TrailsClosed

	if summary.OpenedTotal < d.cfg.OpenedThreshold && summary.ClosedTotal < d.cfg.ClosedThreshold {
		d.logger.Info().
			Int("opened_total", summary.OpenedTotal).
			Int("closed_total", summary.ClosedTotal).
			Msg("Change below significance threshold")
		return Evaluation{Reason: ReasonBelowThreshold}, nil
	}

	event := models.ChangeEvent{
		ID:                 uuid.NewString(),
		Key:                key,
		CreatedAt:          now.Format(models.TimestampLayout),
		BaselineCapturedAt: baseline.CapturedAt,
		CurrentCapturedAt:  current.CapturedAt,
		Summary:            summary,
		Detail: models.EventDetail{
			LiftsOpened:  liftDiff.Opened,
			LiftsClosed:  liftDiff.Closed,
			TrailsOpened: trailDiff.Opened,
			TrailsClosed: trailDiff.Closed,
		},
	}

	// A record for this key can already exist if a prior run crashed between
	// writing the event and saving the log. The publisher placeholder fields
	// belong to the downstream workflow and must carry over verbatim.
	if existing, found := d.events.Read(key); found {
		event.ID = existing.ID
		event.ScreenshotPath = existing.ScreenshotPath
		event.InstagramPosted = existing.InstagramPosted
		event.InstagramPostID = existing.InstagramPostID
		event.Caption = existing.Caption
	}

	if err := d.events.Write(event); err != nil {
		return Evaluation{}, errorutil.WrapError(err, "failed to persist event record")
	}

	d.history.SetMeta(models.HistoryMeta{
		LastEventKey:       key,
		LastEventCreatedAt: event.CreatedAt,
	})

	d.logger.Info().
		Str("key", key).
		Int("opened_total", summary.OpenedTotal).
		Int("closed_total", summary.ClosedTotal).
		Msg("Significant change detected, event recorded")
	return Evaluation{Fired: true, Reason: ReasonSignificantChange, Event: &event}, nil
}
