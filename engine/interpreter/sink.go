package interpreter

import (
	"fmt"
	"io"
)

// Sink receives everything a run produces, in execution order.
type Sink interface {
	Emit(line string)
	Report(d Diagnostic)
}

// WriterSink writes printed lines to Out and diagnostics to Diag. Both may
// be the same writer. Only the first write error is kept.
type WriterSink struct {
	Out  io.Writer
	Diag io.Writer
	err  error
}

var _ Sink = (*WriterSink)(nil)

func NewWriterSink(out, diag io.Writer) *WriterSink {
	return &WriterSink{Out: out, Diag: diag}
}

func (w *WriterSink) Emit(line string) {
	w.write(w.Out, line)
}

func (w *WriterSink) Report(d Diagnostic) {
	w.write(w.Diag, d.String())
}

func (w *WriterSink) Err() error {
	return w.err
}

func (w *WriterSink) write(dst io.Writer, line string) {
	if _, err := fmt.Fprintln(dst, line); err != nil && w.err == nil {
		w.err = err
	}
}

// Recorder keeps output and diagnostics in memory.
type Recorder struct {
	Output      []string
	Diagnostics []Diagnostic
	// Transcript interleaves both the way a single shared stream would.
	Transcript []string
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) Emit(line string) {
	r.Output = append(r.Output, line)
	r.Transcript = append(r.Transcript, line)
}

func (r *Recorder) Report(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	r.Transcript = append(r.Transcript, d.String())
}
