package layout

import (
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/markup"
)

// writeAnnotation emits the stacked lines of an annotation. Blank lines are
// dropped; nothing is written for days without an annotation.
func writeAnnotation(w *markup.Writer, ann *events.Annotation) {
	if ann == nil {
		return
	}
	w.Open("div", "events-card")
	for _, line := range ann.VisibleLines() {
		w.Element("div", "event-line "+string(ann.Category), line)
	}
	w.Close("div")
}
