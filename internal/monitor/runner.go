package monitor

import (
	"context"
	"time"

	"github.com/powderlines/liftwatch/internal/config"
	"github.com/powderlines/liftwatch/internal/datastore"
	"github.com/powderlines/liftwatch/internal/errorutil"
	"github.com/powderlines/liftwatch/internal/feed"
	"github.com/powderlines/liftwatch/internal/models"
	"github.com/powderlines/liftwatch/internal/normalizer"
	"github.com/powderlines/liftwatch/internal/scheduler"
	"github.com/powderlines/liftwatch/internal/timezone"
	"github.com/rs/zerolog"
)

// Runner executes one complete poll invocation: gate check, fetch,
// normalize, store update, event evaluation. One invocation per process;
// non-overlap across invocations is the deployment's responsibility.
type Runner struct {
	cfg      *config.GlobalConfig
	resolver *timezone.Resolver
	gate     *scheduler.Gate
	journal  *scheduler.Journal
	client   *feed.Client
	history  *datastore.HistoryStore
	archive  *datastore.Archive
	detector *Detector
	logger   zerolog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// Outcome summarizes one invocation for the caller and the journal.
type Outcome struct {
	Polled     bool
	EventFired bool
	Reason     string
}

// NewRunner wires a poll runner from validated configuration. journal may
// be nil when journaling is disabled.
func NewRunner(
	cfg *config.GlobalConfig,
	resolver *timezone.Resolver,
	gate *scheduler.Gate,
	journal *scheduler.Journal,
	client *feed.Client,
	history *datastore.HistoryStore,
	events *datastore.EventStore,
	logger zerolog.Logger,
) *Runner {
	runnerLogger := logger.With().Str("component", "Runner").Logger()
	return &Runner{
		cfg:      cfg,
		resolver: resolver,
		gate:     gate,
		journal:  journal,
		client:   client,
		history:  history,
		archive:  datastore.NewArchive(cfg.StorageConfig.ArchivePath, logger),
		detector: NewDetector(cfg.DetectorConfig, resolver, history, events, logger),
		logger:   runnerLogger,
		now:      time.Now,
	}
}

// RunOnce performs one poll invocation. A gate refusal or quiescent
// no-event evaluation is a successful run; only a failed fetch or a failed
// persist returns an error.
func (r *Runner) RunOnce(ctx context.Context) (Outcome, error) {
	now := r.now()

	lastPoll, haveLastPoll := datastore.LastFetchTime(r.cfg.StorageConfig.CurrentStatusPath)
	decision := r.gate.Evaluate(now, lastPoll, haveLastPoll)
	if !decision.Allow {
		r.logger.Info().Str("reason", decision.Reason).Msg("Schedule gate closed, skipping poll")
		r.record(now, decision, scheduler.OutcomeSkipped)
		return Outcome{Reason: decision.Reason}, nil
	}

	// Fetch before any write so a failed run leaves prior state untouched.
	doc, err := r.client.Fetch(ctx)
	if err != nil {
		r.record(now, decision, scheduler.OutcomeFetchFailed)
		return Outcome{}, err
	}

	snapshot := normalizer.SnapshotFromFeed(doc, now)

	r.history.Load()
	r.history.Append(snapshot)
	evicted := r.history.Prune(now)
	if err := r.archive.AppendSnapshots(evicted); err != nil {
		// The archive is an audit trail; losing evicted rows must not fail
		// the poll.
		r.logger.Warn().Err(err).Msg("Failed to archive evicted snapshots")
	}

	if err := r.writeCurrentStatus(doc, snapshot, now); err != nil {
		return Outcome{}, err
	}

	eval, err := r.detector.Evaluate(now)
	if err != nil {
		return Outcome{}, err
	}

	if err := r.history.Save(); err != nil {
		return Outcome{}, errorutil.WrapError(err, "failed to persist history log")
	}

	outcome := scheduler.OutcomePolled
	if eval.Fired {
		outcome = scheduler.OutcomeEventFired
	}
	r.record(now, decision, outcome)

	r.logger.Info().
		Bool("event_fired", eval.Fired).
		Str("evaluation", eval.Reason).
		Int("snapshots_retained", len(r.history.Snapshots())).
		Msg("Poll complete")
	return Outcome{Polled: true, EventFired: eval.Fired, Reason: eval.Reason}, nil
}

func (r *Runner) writeCurrentStatus(doc models.FeedDocument, snapshot models.Snapshot, now time.Time) error {
	cs := models.CurrentStatus{
		FetchedAt:     now.Format(models.TimestampLayout),
		SourceUpdated: doc.LastUpdated,
		LiftsUpdated:  doc.LiftsUpdated,
		TrailsUpdated: doc.TrailsUpdated,
		Operations:    doc.Operations,
		Lifts:         snapshot.Lifts,
		Trails:        snapshot.Trails,
	}
	if err := datastore.WriteCurrentStatus(r.cfg.StorageConfig.CurrentStatusPath, cs); err != nil {
		return errorutil.WrapError(err, "failed to persist current status")
	}
	return nil
}

func (r *Runner) record(now time.Time, decision scheduler.Decision, outcome string) {
	if r.journal == nil {
		return
	}
	r.journal.Record(scheduler.JournalEntry{
		DecidedAt:       now,
		Allowed:         decision.Allow,
		Reason:          decision.Reason,
		IntervalMinutes: decision.IntervalMinutes,
		ElapsedMinutes:  decision.ElapsedMinutes,
		Outcome:         outcome,
	})
}
