package assess

//go:generate mockgen -source=interface.go -destination=../../internal/mocks/pkg/assess_mock/interface.go -package=assess_mock

import (
	"context"
	"net/url"
	"time"

	"github.com/voidshard/sslcheck/pkg/structs"
)

// Poller performs a single poll of the remote service.
//
// Implemented in sslcheck/pkg/api/http/client.Client
type Poller interface {
	// Analyze issues one request with the given parameters. It must not retry
	// and must not panic; every failure is reported as an Outcome.
	Analyze(ctx context.Context, params url.Values) structs.Outcome
}

// Progress is told about the backoff as it happens.
type Progress interface {
	// Start is called once, before the first wait.
	Start(host string)

	// Tick is called before each wait with the delay about to be slept.
	Tick(delay time.Duration)

	// Done is called once polling stops, if Start was called.
	Done()
}
