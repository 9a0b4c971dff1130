// Package report renders normalized metadata and transcripts into the
// Markdown document and writes it out.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ankit-chaubey/mediamd/core"
)

const (
	notFound   = "Not found"
	noMetadata = "- No metadata found"
	notesLine  = "**Notes:** _(add your notes here)_"
)

// Section is one rendered-to-be entry of the report.
type Section struct {
	File       core.MediaFile
	Meta       core.Metadata
	Transcript string // video only
}

// Document is the ordered, append-only list of sections of one run.
type Document struct {
	sections []Section
}

// Append adds s at the end of the document.
func (d *Document) Append(s Section) {
	d.sections = append(d.sections, s)
}

// Len returns the number of sections.
func (d *Document) Len() int { return len(d.sections) }

// Bytes renders the whole document.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	for _, s := range d.sections {
		Render(&b, s)
	}
	return []byte(b.String())
}

// Render writes the Markdown for one section to w.
func Render(w io.Writer, s Section) {
	fmt.Fprintf(w, "## %s\n\n", s.File.Name)
	fmt.Fprintln(w, "**Metadata:**")

	for _, f := range core.FieldsFor(s.File.Kind) {
		v, ok := s.Meta.Get(f)
		if f == core.FieldDescription {
			if !ok || v == "" {
				v = notFound
			}
			fmt.Fprintf(w, "- %s: %s\n", f.Label(), v)
			continue
		}
		if ok {
			fmt.Fprintf(w, "- %s: %s\n", f.Label(), v)
		}
	}
	if s.Meta.Empty() {
		fmt.Fprintln(w, noMetadata)
	}

	switch s.File.Kind {
	case core.KindVideo:
		fmt.Fprint(w, "\n**Transcription:**\n\n")
		fmt.Fprintf(w, "%s\n\n", s.Transcript)
	case core.KindImage:
		fmt.Fprintf(w, "\n%s\n\n", notesLine)
	}
}
