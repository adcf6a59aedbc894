// Package markup writes HTML fragments for templ components.
package markup

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer emits HTML to an underlying writer and remembers the first error,
// so callers can write a whole fragment and check once at the end.
type Writer struct {
	w   io.Writer
	err error
}

// New wraps w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first write error.
func (w *Writer) Err() error {
	return w.err
}

// Raw writes s unescaped.
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Text writes s as escaped character data.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Open writes a start tag with an optional class attribute.
func (w *Writer) Open(tag, class string) {
	w.Raw("<" + tag)
	if class != "" {
		w.Attr("class", class)
	}
	w.Raw(">")
}

// OpenAttrs writes a start tag from name/value pairs.
func (w *Writer) OpenAttrs(tag string, pairs ...string) {
	w.Raw("<" + tag)
	for i := 0; i+1 < len(pairs); i += 2 {
		w.Attr(pairs[i], pairs[i+1])
	}
	w.Raw(">")
}

// Attr writes a single escaped attribute, to be used between Raw("<tag") and Raw(">").
func (w *Writer) Attr(name, value string) {
	w.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Close writes an end tag.
func (w *Writer) Close(tag string) {
	w.Raw("</" + tag + ">")
}

// Element writes a complete element holding escaped text.
func (w *Writer) Element(tag, class, text string) {
	w.Open(tag, class)
	w.Text(text)
	w.Close(tag)
}

// Render writes a nested component.
func (w *Writer) Render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

// Classes joins a base class with the names of the enabled flags.
func Classes(base string, flags ...templ.KeyValue[string, bool]) string {
	classes := make([]any, 0, len(flags)+1)
	classes = append(classes, base)
	for _, f := range flags {
		classes = append(classes, f)
	}
	return templ.Classes(classes...).String()
}
