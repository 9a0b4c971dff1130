package core

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
)

// Printer handles all console output for the CLI: status lines and the
// debug diagnostics.
type Printer struct {
	Writer io.Writer
	Err    io.Writer

	success *color.Color
	heading *color.Color
	failure *color.Color
}

// NewPrinterTo creates a Printer writing to the given streams.
func NewPrinterTo(out, errOut io.Writer) *Printer {
	return &Printer{
		Writer:  out,
		Err:     errOut,
		success: color.New(color.FgHiGreen),
		heading: color.New(color.FgCyan, color.Bold),
		failure: color.New(color.FgHiRed, color.Bold),
	}
}

// PrintSuccess prints a success message.
func (p *Printer) PrintSuccess(msg string) {
	p.success.Fprintln(p.Writer, "✓ "+msg)
}

// PrintInfo prints an info line.
func (p *Printer) PrintInfo(msg string) {
	fmt.Fprintln(p.Writer, msg)
}

// PrintError prints an error to the error stream.
func (p *Printer) PrintError(msg string) {
	p.failure.Fprintln(p.Err, "✗ Error: "+msg)
}

// ─── Debug diagnostics ───────────────────────────────────────────────────────

// PrintHeading starts a debug block for one file.
func (p *Printer) PrintHeading(f MediaFile) {
	p.heading.Fprintf(p.Writer, "── %s: %s ──\n", f.Kind, f.Path)
}

// PrintRawTags dumps every raw key/value in key order, the GPS rationals
// when present, and the file's modification time.
func (p *Printer) PrintRawTags(raw RawTags, modTime time.Time) {
	fmt.Fprintln(p.Writer, "Raw metadata:")
	keys := make([]string, 0, len(raw.Values))
	for k := range raw.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	described := false
	for _, k := range keys {
		v := raw.Values[k]
		if k == string(FieldDescription) {
			described = true
			if v == "" {
				v = "Not found"
			}
		}
		p.PrintTag(k, v)
	}
	if !described {
		p.PrintTag(string(FieldDescription), "Not found")
	}
	if raw.GPS != nil && len(raw.GPS.Triples) == 2 {
		p.PrintTag("GPS", fmt.Sprintf("%v %s, %v %s", raw.GPS.Triples[0], raw.GPS.LatRef, raw.GPS.Triples[1], raw.GPS.LonRef))
	}
	if !modTime.IsZero() {
		p.PrintTag("Modified", modTime.Format("2006-01-02 15:04:05"))
	}
}

// PrintMetadata dumps canonical metadata in the kind's field order.
func (p *Printer) PrintMetadata(m Metadata) {
	fmt.Fprintln(p.Writer, "Canonical metadata:")
	if m.Err != "" {
		p.PrintTag("error", m.Err)
		return
	}
	for _, f := range FieldsFor(m.Kind) {
		if v, ok := m.Get(f); ok {
			p.PrintTag(f.Label(), v)
		}
	}
}

// PrintTag prints one indented "name: value" line.
func (p *Printer) PrintTag(name, value string) {
	fmt.Fprintf(p.Writer, "  %s: %s\n", name, value)
}
