package assess

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// NopProgress reports nothing.
type NopProgress struct{}

func (NopProgress) Start(host string)        {}
func (NopProgress) Tick(delay time.Duration) {}
func (NopProgress) Done()                    {}

// WriterProgress prints a dot per second waited.
type WriterProgress struct {
	w io.Writer
}

func NewWriterProgress(w io.Writer) *WriterProgress {
	return &WriterProgress{w: w}
}

func (p *WriterProgress) Start(host string) {
	fmt.Fprintf(p.w, "Gathering results with a backoff for %s", host)
}

func (p *WriterProgress) Tick(delay time.Duration) {
	fmt.Fprint(p.w, strings.Repeat(".", int(delay/time.Second)))
}

func (p *WriterProgress) Done() {
	fmt.Fprintln(p.w, "Done")
}
