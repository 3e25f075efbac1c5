package assess

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/sslcheck/internal/fakeapi"
	"github.com/voidshard/sslcheck/internal/mocks/pkg/assess_mock"
	"github.com/voidshard/sslcheck/internal/mocks/pkg/report_mock"
	ie "github.com/voidshard/sslcheck/pkg/errors"
	"github.com/voidshard/sslcheck/pkg/report"
	"github.com/voidshard/sslcheck/pkg/structs"
)

const host = "example.com"

type sleeper struct {
	waits []time.Duration
}

func (s *sleeper) Sleep(d time.Duration) {
	s.waits = append(s.waits, d)
}

// script returns a poller that hands out the given outcomes in order and
// fails the test if it is called more than times times.
func script(t *testing.T, times int, outcomes ...structs.Outcome) (*assess_mock.MockPoller, *[]url.Values) {
	poller := assess_mock.NewMockPoller(gomock.NewController(t))
	calls := &[]url.Values{}
	poller.EXPECT().Analyze(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, params url.Values) structs.Outcome {
			i := len(*calls)
			*calls = append(*calls, params)
			return outcomes[i]
		},
	).Times(times)
	return poller, calls
}

func repeat(o structs.Outcome, n int) []structs.Outcome {
	out := []structs.Outcome{}
	for i := 0; i < n; i++ {
		out = append(out, o)
	}
	return out
}

func inProgress() structs.Outcome {
	return &structs.JobStatus{Status: structs.IN_PROGRESS}
}

func ready() structs.Outcome {
	return &structs.JobStatus{Status: structs.READY, Document: json.RawMessage(fakeapi.ReadyDocument)}
}

func seconds(in ...int) []time.Duration {
	out := []time.Duration{}
	for _, s := range in {
		out = append(out, time.Duration(s)*time.Second)
	}
	return out
}

func newTestDriver(t *testing.T, poller Poller, cached bool, opts *Options) (*Driver, *sleeper) {
	req, err := structs.NewJobRequest(host, cached)
	if err != nil {
		t.Fatal(err)
	}
	if opts == nil {
		opts = OptionsDefault()
	}
	s := &sleeper{waits: []time.Duration{}}
	opts.Sleep = s.Sleep

	d, err := New(poller, req, opts)
	if err != nil {
		t.Fatal(err)
	}
	return d, s
}

func TestRunReadyAfterInProgress(t *testing.T) {
	cases := []struct {
		Name        string
		InProgress  int
		ExpectWaits []time.Duration
	}{
		{"Immediate", 0, seconds()},
		{"One", 1, seconds(2)},
		{"Three", 3, seconds(2, 4, 6)},
		{"Five", 5, seconds(2, 4, 6, 8, 10)},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			outcomes := append(repeat(inProgress(), c.InProgress), ready())
			poller, _ := script(t, len(outcomes), outcomes...)
			d, s := newTestDriver(t, poller, true, nil)

			job := d.Run(context.Background())

			assert.Equal(t, StateReady, job.State())
			assert.True(t, job.Complete())
			assert.True(t, job.Healthy())
			assert.Equal(t, c.InProgress+1, job.Polls())
			assert.Equal(t, c.ExpectWaits, s.waits)
			assert.JSONEq(t, fakeapi.ReadyDocument, string(job.Document()))
		})
	}
}

func TestRunDNSKeepsPolling(t *testing.T) {
	dns := &structs.JobStatus{Status: structs.DNS}
	poller, _ := script(t, 3, dns, inProgress(), ready())
	d, s := newTestDriver(t, poller, true, nil)

	job := d.Run(context.Background())

	assert.Equal(t, StateReady, job.State())
	assert.Equal(t, seconds(2, 4), s.waits)
}

func TestRunTimesOut(t *testing.T) {
	// the job would be ready on the poll after the one that crosses the ceiling
	outcomes := append(repeat(inProgress(), 17), ready())
	poller, _ := script(t, 17, outcomes...)
	d, s := newTestDriver(t, poller, true, nil)

	job := d.Run(context.Background())

	assert.Equal(t, StateTimedOut, job.State())
	assert.True(t, job.Complete())
	assert.Equal(t, 17, job.Polls())
	assert.Equal(t, seconds(2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32), s.waits)
	assert.Equal(t, 32*time.Second, job.Delay())
	assert.Nil(t, job.Document())
	assert.Equal(t,
		"The assessment service did not complete its analysis in the time allowed, waiting on the last try for 30 seconds.",
		job.Description(),
	)
}

func TestRunReadyAfterCeilingTimesOut(t *testing.T) {
	outcomes := append(repeat(inProgress(), 16), ready())
	poller, _ := script(t, 17, outcomes...)
	d, s := newTestDriver(t, poller, true, nil)

	result := d.Gather(context.Background())
	job := d.Job()

	assert.Equal(t, StateTimedOut, job.State())
	assert.False(t, job.Healthy())
	assert.Nil(t, job.Document())
	assert.Equal(t, 32*time.Second, s.waits[len(s.waits)-1])
	assert.True(t, result.Failed())
	assert.Equal(t,
		"Error retrieving results for example.com: The assessment service did not complete its analysis in the time allowed, waiting on the last try for 30 seconds.",
		result.String(),
	)
}

func TestRunReadyOnLastWaitBelowCeiling(t *testing.T) {
	outcomes := append(repeat(inProgress(), 15), ready())
	poller, _ := script(t, 16, outcomes...)
	d, s := newTestDriver(t, poller, true, nil)

	job := d.Run(context.Background())

	assert.Equal(t, StateReady, job.State())
	assert.Equal(t, 30*time.Second, s.waits[len(s.waits)-1])
}

func TestRunFailureAfterCeilingKept(t *testing.T) {
	failure := &structs.ServiceError{HTTPStatus: 503, Detail: "Remote system unavailable!"}
	outcomes := append(repeat(inProgress(), 16), failure)
	poller, _ := script(t, 17, outcomes...)
	d, _ := newTestDriver(t, poller, true, nil)

	job := d.Run(context.Background())

	assert.Equal(t, StateFailed, job.State())
	assert.Equal(t, "The service responded with an error!: 503: Remote system unavailable!", job.Description())
}

func TestGatherRemoteErrorHealthyMessage(t *testing.T) {
	poller, _ := script(t, 1, &structs.JobStatus{Status: structs.ERROR, Message: Healthy})
	d, _ := newTestDriver(t, poller, true, nil)

	result := d.Gather(context.Background())

	assert.Equal(t, StateRemoteError, d.Job().State())
	assert.False(t, d.Job().Healthy())
	assert.True(t, result.Failed())
	assert.Equal(t, "Error retrieving results for example.com: healthy", result.String())
}

func TestRunTerminalFailures(t *testing.T) {
	cases := []struct {
		Name        string
		Given       structs.Outcome
		ExpectState State
		ExpectDesc  string
	}{
		{
			"ConnectTimeout",
			&structs.TransportFailure{Kind: structs.ConnectTimeout, Detail: "dial tcp: i/o timeout"},
			StateFailed,
			"The assessment service took too long to initiate a connection: dial tcp: i/o timeout",
		},
		{
			"ReadTimeout",
			&structs.TransportFailure{Kind: structs.ReadTimeout, Detail: "timeout awaiting response headers"},
			StateFailed,
			"The assessment service took too long to respond: timeout awaiting response headers",
		},
		{
			"TransportOther",
			&structs.TransportFailure{Kind: structs.TransportOther, Detail: "connection reset"},
			StateFailed,
			"An error has occurred querying the SSL assessment service: connection reset",
		},
		{
			"ServiceUnavailable",
			&structs.ServiceError{HTTPStatus: 503, Detail: "Remote system unavailable!"},
			StateFailed,
			"The service responded with an error!: 503: Remote system unavailable!",
		},
		{
			"RemoteError",
			&structs.JobStatus{Status: structs.ERROR, Message: "Unable to resolve domain name"},
			StateRemoteError,
			"Unable to resolve domain name",
		},
		{
			"RemoteErrorNoMessage",
			&structs.JobStatus{Status: structs.ERROR},
			StateRemoteError,
			"The assessment service reported an error without a message",
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			poller, _ := script(t, 3, inProgress(), inProgress(), c.Given)
			d, s := newTestDriver(t, poller, true, nil)

			job := d.Run(context.Background())

			assert.Equal(t, c.ExpectState, job.State())
			assert.Equal(t, c.ExpectDesc, job.Description())
			assert.Equal(t, seconds(2, 4), s.waits)
			assert.Nil(t, job.Document())
		})
	}
}

func TestRunParams(t *testing.T) {
	cases := []struct {
		Name   string
		Cached bool
		Expect []url.Values
	}{
		{
			Name:   "Cached",
			Cached: true,
			Expect: []url.Values{
				{"host": {host}, "all": {"done"}, "fromCache": {"on"}, "maxAge": {"24"}},
				{"host": {host}, "all": {"done"}, "fromCache": {"on"}, "maxAge": {"24"}},
				{"host": {host}, "all": {"done"}, "fromCache": {"on"}, "maxAge": {"24"}},
			},
		},
		{
			Name:   "Fresh",
			Cached: false,
			Expect: []url.Values{
				{"host": {host}, "all": {"done"}, "startNew": {"on"}},
				{"host": {host}, "all": {"done"}},
				{"host": {host}, "all": {"done"}},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			poller, calls := script(t, 3, inProgress(), inProgress(), ready())
			d, _ := newTestDriver(t, poller, c.Cached, nil)

			d.Run(context.Background())

			assert.Equal(t, c.Expect, *calls)
		})
	}
}

func TestRunProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	progress := assess_mock.NewMockProgress(ctrl)
	poller, _ := script(t, 3, inProgress(), inProgress(), ready())

	gomock.InOrder(
		progress.EXPECT().Start(host),
		progress.EXPECT().Tick(2*time.Second),
		progress.EXPECT().Tick(4*time.Second),
		progress.EXPECT().Done(),
	)

	opts := OptionsDefault()
	opts.Progress = progress
	d, _ := newTestDriver(t, poller, true, opts)

	d.Run(context.Background())
}

func TestRunNoProgressWhenImmediate(t *testing.T) {
	progress := assess_mock.NewMockProgress(gomock.NewController(t))
	poller, _ := script(t, 1, ready())

	opts := OptionsDefault()
	opts.Progress = progress
	d, _ := newTestDriver(t, poller, true, opts)

	job := d.Run(context.Background())

	assert.Equal(t, StateReady, job.State())
}

func TestRunOnce(t *testing.T) {
	poller, _ := script(t, 1, ready())
	d, _ := newTestDriver(t, poller, true, nil)

	first := d.Run(context.Background())
	second := d.Run(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, second.Polls())
}

func TestGatherFailure(t *testing.T) {
	poller, _ := script(t, 1, &structs.TransportFailure{Kind: structs.ConnectTimeout, Detail: "dial tcp 192.0.2.1:443: i/o timeout"})
	d, _ := newTestDriver(t, poller, true, nil)

	result := d.Gather(context.Background())

	assert.True(t, result.Failed())
	assert.Equal(t,
		"Error retrieving results for example.com: The assessment service took too long to initiate a connection: dial tcp 192.0.2.1:443: i/o timeout",
		result.String(),
	)
}

func TestGatherRaw(t *testing.T) {
	poller, _ := script(t, 2, inProgress(), ready())
	renderer := report_mock.NewMockRenderer(gomock.NewController(t))

	opts := OptionsDefault()
	opts.Formatted = false
	opts.Renderer = renderer
	d, _ := newTestDriver(t, poller, true, opts)

	result := d.Gather(context.Background())

	assert.False(t, result.Failed())
	assert.False(t, result.Formatted)
	assert.Equal(t, fakeapi.ReadyDocument, string(result.Document))
	assert.Equal(t, fakeapi.ReadyDocument, result.String())
}

func TestGatherFormatted(t *testing.T) {
	poller, _ := script(t, 1, ready())
	renderer := report_mock.NewMockRenderer(gomock.NewController(t))

	renderer.EXPECT().Render(&report.Input{
		Host:       host,
		Document:   json.RawMessage(fakeapi.ReadyDocument),
		RawResults: true,
	}).Return("the report", nil)

	opts := OptionsDefault()
	opts.RawResults = true
	opts.Renderer = renderer
	d, _ := newTestDriver(t, poller, true, opts)

	result := d.Gather(context.Background())

	assert.False(t, result.Failed())
	assert.True(t, result.Formatted)
	assert.Equal(t, "the report", result.String())
}

func TestGatherRenderFailure(t *testing.T) {
	poller, _ := script(t, 1, ready())
	renderer := report_mock.NewMockRenderer(gomock.NewController(t))

	renderer.EXPECT().Render(gomock.Any()).Return("", fmt.Errorf("%w: unexpected EOF", ie.ErrReportRender))

	opts := OptionsDefault()
	opts.Renderer = renderer
	d, _ := newTestDriver(t, poller, true, opts)

	result := d.Gather(context.Background())

	assert.True(t, result.Failed())
	assert.Equal(t,
		"Error retrieving results for example.com: The internal template failed to render: report failed to render: unexpected EOF",
		result.String(),
	)
	assert.Equal(t, StateReportFailed, d.Job().State())
	assert.True(t, d.Job().Complete())
	assert.Nil(t, d.Job().Document())
}

func TestGatherInvalidResults(t *testing.T) {
	doc := &structs.JobStatus{Status: structs.READY, Document: json.RawMessage(`{"host":"example.com","status":"READY"}`)}
	poller, _ := script(t, 1, doc)
	d, _ := newTestDriver(t, poller, true, nil)

	result := d.Gather(context.Background())

	assert.True(t, result.Failed())
	assert.Contains(t, result.String(), "Error retrieving results for example.com: The assessment results could not be reported")
}

func TestGatherDefaultRenderer(t *testing.T) {
	poller, _ := script(t, 1, ready())
	d, _ := newTestDriver(t, poller, true, nil)

	result := d.Gather(context.Background())

	assert.False(t, result.Failed())
	assert.Contains(t, result.String(), "SSL assessment for example.com")
}

func TestNew(t *testing.T) {
	poller := assess_mock.NewMockPoller(gomock.NewController(t))
	req := &structs.JobRequest{Host: host, Cache: structs.UseCache}

	_, err := New(nil, req, nil)
	assert.ErrorIs(t, err, ie.ErrInvalidArg)

	_, err = New(poller, nil, nil)
	assert.ErrorIs(t, err, ie.ErrInvalidArg)

	_, err = New(poller, &structs.JobRequest{Cache: structs.UseCache}, nil)
	assert.ErrorIs(t, err, ie.ErrInvalidArg)

	d, err := New(poller, req, &Options{})
	assert.Nil(t, err)
	assert.NotNil(t, d.opts.Sleep)
	assert.NotNil(t, d.opts.Renderer)
	assert.Equal(t, StateInitial, d.Job().State())
	assert.False(t, d.Job().Complete())
}
