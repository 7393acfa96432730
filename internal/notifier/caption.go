package notifier

import (
	"fmt"
	"strings"

	"github.com/powderlines/liftwatch/internal/models"
)

// buildCaption renders a default caption for an event whose downstream
// workflow has not supplied one.
func buildCaption(ev models.ChangeEvent) string {
	var parts []string

	if n := ev.Summary.LiftsOpened; n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s opened (%s)", n, plural(n, "lift"), strings.Join(ev.Detail.LiftsOpened, ", ")))
	}
	if n := ev.Summary.TrailsOpened; n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s opened (%s)", n, plural(n, "trail"), strings.Join(ev.Detail.TrailsOpened, ", ")))
	}
	if n := ev.Summary.LiftsClosed; n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s closed (%s)", n, plural(n, "lift"), strings.Join(ev.Detail.LiftsClosed, ", ")))
	}
	if n := ev.Summary.TrailsClosed; n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s closed (%s)", n, plural(n, "trail"), strings.Join(ev.Detail.TrailsClosed, ", ")))
	}

	if len(parts) == 0 {
		return "Mountain status update"
	}
	return "Mountain status update: " + strings.Join(parts, "; ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
