package client

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voidshard/sslcheck/pkg/api/http/common"
	"github.com/voidshard/sslcheck/pkg/structs"
)

const (
	defConnectTimeout = 2 * time.Second
	defReadTimeout    = 5 * time.Second
)

// Client performs single polls against the analyze endpoint. It never retries.
type Client struct {
	url *url.URL
	log *zap.Logger

	connectTimeout time.Duration
	readTimeout    time.Duration
	tlsConfig      *tls.Config

	http *http.Client
}

// Option configures a Client.
type Option func(c *Client)

// WithLogger sets the logger used for per request logging.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithTLSConfig sets the TLS config used to talk to the service.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *Client) {
		c.tlsConfig = cfg
	}
}

// WithTimeouts overrides the connect & read timeouts.
func WithTimeouts(connect, read time.Duration) Option {
	return func(c *Client) {
		c.connectTimeout = connect
		c.readTimeout = read
	}
}

func New(address string, opts ...Option) (*Client, error) {
	if !strings.HasSuffix(address, "/") {
		address += "/"
	}
	u, err := url.Parse(address)
	if err != nil {
		return nil, err
	}

	c := &Client{
		url:            u,
		log:            zap.NewNop(),
		connectTimeout: defConnectTimeout,
		readTimeout:    defReadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: c.connectTimeout}).DialContext,
			TLSHandshakeTimeout:   c.connectTimeout,
			TLSClientConfig:       c.tlsConfig,
			ResponseHeaderTimeout: c.readTimeout,
		},
	}

	return c, nil
}

// Analyze performs exactly one GET against the analyze endpoint with the
// given query parameters and classifies what came back.
func (c *Client) Analyze(ctx context.Context, params url.Values) structs.Outcome {
	return genericGet(ctx, c, c.addr(common.API_ANALYZE, params))
}

func (c *Client) addr(path string, params url.Values) *url.URL {
	u := c.url.ResolveReference(&url.URL{Path: path})
	u.RawQuery = params.Encode()
	return u
}
