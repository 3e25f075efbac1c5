package assess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	ie "github.com/voidshard/sslcheck/pkg/errors"
	"github.com/voidshard/sslcheck/pkg/report"
	"github.com/voidshard/sslcheck/pkg/structs"
)

// Driver polls a single assessment to completion.
//
// Transport & service errors end the run on first sight; only DNS and
// IN_PROGRESS statuses lead to another poll.
type Driver struct {
	poller Poller
	job    *Job
	opts   *Options
	log    *zap.Logger
}

func New(poller Poller, req *structs.JobRequest, opts *Options) (*Driver, error) {
	if poller == nil {
		return nil, fmt.Errorf("%w: poller is required", ie.ErrInvalidArg)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ie.ErrInvalidArg)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = OptionsDefault()
	}
	opts.setDefaults()

	return &Driver{
		poller: poller,
		job:    newJob(req),
		opts:   opts,
		log:    opts.Logger.With(zap.String("host", req.Host), zap.String("cache", string(req.Cache))),
	}, nil
}

// Job returns the driver's job record.
func (d *Driver) Job() *Job {
	return d.job
}

// Run drives the job until it reaches an end state. Calling it again after
// that is a no-op.
func (d *Driver) Run(ctx context.Context) *Job {
	if d.job.Complete() {
		return d.job
	}

	b := d.opts.BackOff()
	b.Reset()

	d.poll(ctx, 0)

	started := false
	for !d.job.Complete() {
		delay := b.NextBackOff()
		if delay == backoff.Stop {
			d.check(d.job.timeout(BackoffCeiling))
			break
		}

		if !started {
			d.opts.Progress.Start(d.job.Request.Host)
			started = true
		}
		d.opts.Progress.Tick(delay)

		d.log.Debug("assess.backoff", zap.Duration("delay", delay), zap.Int("polls", d.job.Polls()))
		d.opts.Sleep(delay)
		d.poll(ctx, delay)

		if d.job.overran(BackoffCeiling) {
			d.check(d.job.timeout(BackoffCeiling))
			break
		}
	}

	if started {
		d.opts.Progress.Done()
	}

	d.log.Info("assess.complete",
		zap.String("state", string(d.job.State())),
		zap.Int("polls", d.job.Polls()),
		zap.Duration("last_delay", d.job.Delay()),
	)
	return d.job
}

// Gather runs the job and produces the caller facing result.
func (d *Driver) Gather(ctx context.Context) *Result {
	job := d.Run(ctx)
	host := job.Request.Host

	if job.Healthy() && d.opts.Formatted {
		text, err := d.opts.Renderer.Render(&report.Input{
			Host:       host,
			Document:   job.Document(),
			RawResults: d.opts.RawResults,
		})
		if err == nil {
			return &Result{Host: host, Formatted: true, Report: text}
		}
		d.log.Warn("assess.report_error", zap.Error(err))
		d.check(job.failReport(reportFailure(err)))
	}

	if !job.Healthy() {
		return &Result{
			Host:        host,
			Description: fmt.Sprintf("Error retrieving results for %s: %s", host, job.Description()),
		}
	}

	return &Result{Host: host, Document: job.Document()}
}

func (d *Driver) poll(ctx context.Context, delay time.Duration) {
	params := d.job.Request.Params(d.job.first())
	if err := d.job.polled(delay); err != nil {
		d.check(err)
		return
	}

	outcome := d.poller.Analyze(ctx, params)

	done, err := d.job.apply(outcome)
	d.check(err)
	if done {
		d.log.Debug("assess.terminal", zap.String("state", string(d.job.State())), zap.String("description", d.job.Description()))
	}
}

// check logs transitions the state machine refused; they indicate a bug.
func (d *Driver) check(err error) {
	if err != nil {
		d.log.Error("assess.transition_error", zap.Error(err))
	}
}

func reportFailure(err error) string {
	if errors.Is(err, ie.ErrReportRender) {
		return fmt.Sprintf("The internal template failed to render: %v", err)
	}
	return fmt.Sprintf("The assessment results could not be reported: %v", err)
}

// Result is what the caller gets: a report, a raw document or an error string.
type Result struct {
	Host string

	// Formatted is true if Report holds a rendered report.
	Formatted bool
	Report    string

	// Document is the unmodified READY document (unformatted runs only).
	Document json.RawMessage

	// Description is set if the assessment failed.
	Description string
}

func (r *Result) Failed() bool {
	return r.Description != ""
}

// String is the single value to show the user.
func (r *Result) String() string {
	switch {
	case r.Failed():
		return r.Description
	case r.Formatted:
		return r.Report
	default:
		return string(r.Document)
	}
}
