package assess

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/voidshard/sslcheck/pkg/errors"
	"github.com/voidshard/sslcheck/pkg/structs"
)

// State is where a Job is in its life.
type State string

const (
	// transient states
	StateInitial State = "INITIAL"
	StatePolling State = "POLLING"

	// end states
	StateReady        State = "READY"
	StateRemoteError  State = "REMOTE_ERROR"
	StateFailed       State = "FAILED"
	StateTimedOut     State = "TIMED_OUT"
	StateReportFailed State = "REPORT_FAILED"
)

// Healthy is the description of a job that has not failed.
const Healthy = "healthy"

func IsFinalState(s State) bool {
	switch s {
	case StateReady, StateRemoteError, StateFailed, StateTimedOut, StateReportFailed:
		return true
	default:
		return false
	}
}

// Job is the record of one assessment. Only the Driver's transitions change
// it, and it is never shared between goroutines.
type Job struct {
	Request *structs.JobRequest

	state       State
	description string
	document    json.RawMessage
	delay       time.Duration
	polls       int
}

func newJob(req *structs.JobRequest) *Job {
	return &Job{Request: req, state: StateInitial, description: Healthy}
}

func (j *Job) State() State {
	return j.state
}

// Complete is true once the job reached an end state. It never goes back.
func (j *Job) Complete() bool {
	return IsFinalState(j.state)
}

// Description is Healthy, or why the job failed.
func (j *Job) Description() string {
	return j.description
}

// Healthy is true only for a Ready job.
func (j *Job) Healthy() bool {
	return j.state == StateReady
}

// Document is the READY result; nil unless the job is Ready.
func (j *Job) Document() json.RawMessage {
	return j.document
}

// Delay is the last wait before a poll, which is also the elapsed seconds
// counter the backoff is measured on.
func (j *Job) Delay() time.Duration {
	return j.delay
}

// Polls is the number of polls issued so far.
func (j *Job) Polls() int {
	return j.polls
}

// first is true until the first poll has been issued.
func (j *Job) first() bool {
	return j.polls == 0
}

func (j *Job) polled(delay time.Duration) error {
	if j.Complete() {
		return fmt.Errorf("%w: poll after %s", errors.ErrInvalidState, j.state)
	}
	j.polls++
	j.delay = delay
	j.state = StatePolling
	return nil
}

// finish moves the job to an end state. The description is only ever written
// here, so the first failure is the one that sticks.
func (j *Job) finish(st State, desc string, doc json.RawMessage) error {
	if j.Complete() {
		return fmt.Errorf("%w: %s after %s", errors.ErrInvalidState, st, j.state)
	}
	if !IsFinalState(st) {
		return fmt.Errorf("%w: %s is not an end state", errors.ErrInvalidState, st)
	}
	j.state = st
	j.description = desc
	j.document = doc
	return nil
}

// apply records what a poll returned. Returns true if the job is now complete.
func (j *Job) apply(o structs.Outcome) (bool, error) {
	var err error
	switch v := o.(type) {
	case *structs.TransportFailure, *structs.ServiceError:
		err = j.finish(StateFailed, o.Description(), nil)
	case *structs.JobStatus:
		if !structs.IsFinalStatus(v.Status) {
			break // DNS, IN_PROGRESS: poll again
		}
		if v.Status == structs.READY {
			err = j.finish(StateReady, Healthy, v.Document)
			break
		}
		desc := v.Description()
		if desc == "" {
			desc = "The assessment service reported an error without a message"
		}
		err = j.finish(StateRemoteError, desc, nil)
	case nil:
		err = j.finish(StateFailed, "An error has occurred querying the SSL assessment service: no response", nil)
	default:
		err = j.finish(StateFailed, fmt.Sprintf("An error has occurred querying the SSL assessment service: unexpected outcome %T", o), nil)
	}
	return j.Complete(), err
}

// timeout ends a job that ran out of backoff. A Ready result that only
// arrived after the ceiling was passed is discarded; any other end state is
// kept.
func (j *Job) timeout(ceiling time.Duration) error {
	desc := fmt.Sprintf(
		"The assessment service did not complete its analysis in the time allowed, waiting on the last try for %d seconds.",
		int(ceiling/time.Second),
	)
	if j.state == StateReady {
		j.state = StateTimedOut
		j.description = desc
		j.document = nil
		return nil
	}
	return j.finish(StateTimedOut, desc, nil)
}

// overran is true if the job may still be timed out after a poll that
// followed a wait beyond the ceiling.
func (j *Job) overran(ceiling time.Duration) bool {
	return j.delay > ceiling && (j.state == StateReady || !j.Complete())
}

// failReport turns a Ready job into a failed one; the document is dropped.
func (j *Job) failReport(desc string) error {
	if j.state != StateReady {
		return fmt.Errorf("%w: report failure in %s", errors.ErrInvalidState, j.state)
	}
	j.state = StateReportFailed
	j.description = desc
	j.document = nil
	return nil
}
