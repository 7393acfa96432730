package scheduler

import (
	"time"

	"github.com/powderlines/liftwatch/internal/config"
	"github.com/powderlines/liftwatch/internal/errorutil"
	"github.com/powderlines/liftwatch/internal/timezone"
	"github.com/rs/zerolog"
)

// Gate decides whether a poll should execute now. It is the only component
// allowed to prevent a poll from happening at all; everything downstream
// assumes a poll already occurred.
type Gate struct {
	cfg      config.ScheduleConfig
	resolver *timezone.Resolver
	logger   zerolog.Logger

	seasonMonths map[int]bool
	windowStart  int
	windowEnd    int
	rollingStart int
	rollingEnd   int
}

// Decision is the outcome of one gate evaluation.
type Decision struct {
	Allow           bool
	Reason          string
	IntervalMinutes int
	ElapsedMinutes  float64
}

// Decision reasons recorded in the journal.
const (
	ReasonOutOfSeason   = "out_of_season"
	ReasonOutsideWindow = "outside_daily_window"
	ReasonThrottled     = "interval_not_elapsed"
	ReasonFirstPoll     = "no_prior_poll"
	ReasonDue           = "interval_elapsed"
	ReasonClockSkew     = "negative_elapsed"
)

// NewGate creates a schedule gate from validated configuration.
func NewGate(cfg config.ScheduleConfig, resolver *timezone.Resolver, logger zerolog.Logger) (*Gate, error) {
	g := &Gate{
		cfg:          cfg,
		resolver:     resolver,
		logger:       logger.With().Str("component", "ScheduleGate").Logger(),
		seasonMonths: make(map[int]bool, len(cfg.SeasonMonths)),
	}
	for _, m := range cfg.SeasonMonths {
		g.seasonMonths[m] = true
	}

	var err error
	if g.windowStart, err = config.ParseClock(cfg.WindowStart); err != nil {
		return nil, errorutil.WrapError(err, "invalid window_start")
	}
	if g.windowEnd, err = config.ParseClock(cfg.WindowEnd); err != nil {
		return nil, errorutil.WrapError(err, "invalid window_end")
	}
	if g.rollingStart, err = config.ParseClock(cfg.RollingStart); err != nil {
		return nil, errorutil.WrapError(err, "invalid rolling_start")
	}
	if g.rollingEnd, err = config.ParseClock(cfg.RollingEnd); err != nil {
		return nil, errorutil.WrapError(err, "invalid rolling_end")
	}
	return g, nil
}

// IntervalFor returns the minimum inter-poll interval in minutes for the
// sub-window containing the given instant: the tighter rolling-opening
// cadence inside [rolling_start, rolling_end), the base cadence elsewhere.
func (g *Gate) IntervalFor(now time.Time) int {
	m := g.resolver.MinutesSinceMidnight(now)
	if m >= g.rollingStart && m < g.rollingEnd {
		return g.cfg.RollingIntervalMinutes
	}
	return g.cfg.BaseIntervalMinutes
}

// Evaluate decides whether a poll may proceed at the given instant.
// lastPoll is the prior successful poll's recorded fetch instant;
// haveLastPoll is false when no prior poll record exists. Negative elapsed
// time (clock skew or a corrupted prior timestamp) counts as interval
// satisfied, never as a reason to block.
func (g *Gate) Evaluate(now time.Time, lastPoll time.Time, haveLastPoll bool) Decision {
	parts := g.resolver.LocalParts(now)
	if !g.seasonMonths[parts.Month] {
		return Decision{Allow: false, Reason: ReasonOutOfSeason}
	}

	minute := g.resolver.MinutesSinceMidnight(now)
	if minute < g.windowStart || minute >= g.windowEnd {
		return Decision{Allow: false, Reason: ReasonOutsideWindow}
	}

	interval := g.IntervalFor(now)
	if !haveLastPoll {
		return Decision{Allow: true, Reason: ReasonFirstPoll, IntervalMinutes: interval}
	}

	elapsed := now.Sub(lastPoll)
	elapsedMinutes := elapsed.Minutes()
	if elapsed < 0 {
		return Decision{Allow: true, Reason: ReasonClockSkew, IntervalMinutes: interval, ElapsedMinutes: elapsedMinutes}
	}
	if elapsed < time.Duration(interval)*time.Minute {
		return Decision{Allow: false, Reason: ReasonThrottled, IntervalMinutes: interval, ElapsedMinutes: elapsedMinutes}
	}
	return Decision{Allow: true, Reason: ReasonDue, IntervalMinutes: interval, ElapsedMinutes: elapsedMinutes}
}
