package structs

import (
	"fmt"
	"net/url"

	"github.com/voidshard/sslcheck/pkg/errors"
)

// CachePolicy decides whether the remote service may answer from its cache.
type CachePolicy string

const (
	// UseCache accepts a cached assessment up to maxAge hours old.
	UseCache CachePolicy = "use-cache"

	// ForceFresh instructs the service to start a new assessment.
	ForceFresh CachePolicy = "force-fresh"
)

const (
	paramHost      = "host"
	paramAll       = "all"
	paramFromCache = "fromCache"
	paramMaxAge    = "maxAge"
	paramStartNew  = "startNew"

	valueOn     = "on"
	valueDone   = "done"
	cacheMaxAge = "24"
)

// JobRequest is the per-run configuration of an assessment.
//
// It is not changed once polling starts; Params builds new query values for
// every call.
type JobRequest struct {
	// Host is the target host name, eg. www.ssllabs.com
	Host string `json:"host"`

	// Cache is the caching policy for this run.
	Cache CachePolicy `json:"cache"`
}

// NewJobRequest returns a validated request.
func NewJobRequest(host string, cached bool) (*JobRequest, error) {
	r := &JobRequest{Host: host, Cache: ForceFresh}
	if cached {
		r.Cache = UseCache
	}
	return r, r.Validate()
}

func (r *JobRequest) Validate() error {
	if r.Host == "" {
		return fmt.Errorf("%w: host is required", errors.ErrInvalidArg)
	}
	switch r.Cache {
	case UseCache, ForceFresh:
		return nil
	default:
		return fmt.Errorf("%w: unknown cache policy %q", errors.ErrInvalidArg, r.Cache)
	}
}

// Params returns the query string for a poll.
//
// The service treats startNew as a one time trigger, so it is only sent on the
// first call of a ForceFresh run. Cached runs send the cache directives on
// every call.
func (r *JobRequest) Params(first bool) url.Values {
	values := url.Values{}
	values.Set(paramHost, r.Host)
	values.Set(paramAll, valueDone)

	switch {
	case r.Cache == UseCache:
		values.Set(paramFromCache, valueOn)
		values.Set(paramMaxAge, cacheMaxAge)
	case first:
		values.Set(paramStartNew, valueOn)
	}

	return values
}
