package assess

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/voidshard/sslcheck/pkg/report"
)

const (
	// BackoffStep is how much longer each successive wait is.
	BackoffStep = 2 * time.Second

	// BackoffCeiling is the wait beyond which we give up. The wait that first
	// exceeds it is still completed.
	BackoffCeiling = 30 * time.Second
)

// Options passed to the Driver on creation
type Options struct {
	// Formatted renders a report; otherwise the raw document is returned.
	Formatted bool

	// RawResults embeds the raw document in a formatted report.
	RawResults bool

	// Renderer produces the formatted report.
	Renderer report.Renderer

	// Progress is told about waits as they happen.
	Progress Progress

	// Sleep blocks for the given duration between polls.
	Sleep func(time.Duration)

	// Logger for state transitions.
	Logger *zap.Logger

	// BackOff builds the backoff policy for a run.
	BackOff func() backoff.BackOff
}

// OptionsDefault returns a formatted, silent Driver config that really sleeps.
func OptionsDefault() *Options {
	return &Options{
		Formatted: true,
		Renderer:  report.NewTemplateRenderer(""),
		Progress:  NopProgress{},
		Sleep:     time.Sleep,
		Logger:    zap.NewNop(),
		BackOff:   defaultBackOff,
	}
}

func (o *Options) setDefaults() {
	if o.Renderer == nil {
		o.Renderer = report.NewTemplateRenderer("")
	}
	if o.Progress == nil {
		o.Progress = NopProgress{}
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.BackOff == nil {
		o.BackOff = defaultBackOff
	}
}

func defaultBackOff() backoff.BackOff {
	return NewLinearBackOff(BackoffStep, BackoffCeiling)
}
