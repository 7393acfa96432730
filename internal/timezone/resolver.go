package timezone

import (
	"fmt"
	"time"

	"github.com/powderlines/liftwatch/internal/errorutil"
)

// LocalParts is a wall-clock reading in the resolver's timezone.
type LocalParts struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Resolver converts between absolute instants and wall-clock readings in a
// single fixed IANA timezone.
type Resolver struct {
	name string
	loc  *time.Location
}

// NewResolver loads the named IANA timezone.
func NewResolver(name string) (*Resolver, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errorutil.WrapErrorf(err, "failed to load timezone '%s'", name)
	}
	return &Resolver{name: name, loc: loc}, nil
}

// Name returns the IANA zone name the resolver was built with.
func (r *Resolver) Name() string {
	return r.name
}

// Location returns the underlying time.Location.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// LocalParts reads the wall-clock fields of an instant in the resolver's zone.
func (r *Resolver) LocalParts(t time.Time) LocalParts {
	lt := t.In(r.loc)
	return LocalParts{
		Year:   lt.Year(),
		Month:  int(lt.Month()),
		Day:    lt.Day(),
		Hour:   lt.Hour(),
		Minute: lt.Minute(),
		Second: lt.Second(),
	}
}

// ToInstant returns the absolute instant for a wall-clock reading in the
// resolver's zone. The zone offset is itself a function of the instant, so
// the conversion must be resolved against the zone database rather than a
// fixed offset; time.Date performs that resolution. Within a
// daylight-saving transition hour the reading is ambiguous or nonexistent
// and the earlier offset is chosen, which is accurate to the minute
// everywhere outside the transition hour itself.
func (r *Resolver) ToInstant(p LocalParts) time.Time {
	return time.Date(p.Year, time.Month(p.Month), p.Day, p.Hour, p.Minute, p.Second, 0, r.loc)
}

// DateKey formats a wall-clock reading as a YYYY-MM-DD string, used as the
// uniqueness key for daily de-duplication.
func (r *Resolver) DateKey(p LocalParts) string {
	return fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, p.Day)
}

// MinutesSinceMidnight returns the wall-clock minute of day for an instant.
func (r *Resolver) MinutesSinceMidnight(t time.Time) int {
	lt := t.In(r.loc)
	return lt.Hour()*60 + lt.Minute()
}

// DayAt returns the instant corresponding to hour:minute on the same local
// calendar day as the reference instant.
func (r *Resolver) DayAt(ref time.Time, hour, minute int) time.Time {
	p := r.LocalParts(ref)
	p.Hour = hour
	p.Minute = minute
	p.Second = 0
	return r.ToInstant(p)
}
