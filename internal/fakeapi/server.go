// Package fakeapi serves a scripted analyze endpoint for tests.
package fakeapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/voidshard/sslcheck/pkg/api/http/common"
)

const (
	basePath = "/api/v2/"
)

// Response is one scripted reply.
type Response struct {
	Code int
	Body string

	// Delay holds the reply back before any header is written.
	Delay time.Duration

	// Stall writes the headers & half the body, then waits this long.
	Stall time.Duration
}

// Server replays its responses in order, repeating the last one once the
// script runs out. Every request's query string is recorded.
type Server struct {
	lock      sync.Mutex
	log       *zap.Logger
	responses []*Response
	requests  []url.Values

	httpserver *httptest.Server
}

func New(log *zap.Logger, responses ...*Response) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{log: log, responses: responses}

	router := mux.NewRouter()
	router.HandleFunc(basePath+common.API_ANALYZE, s.Analyze).Methods(http.MethodGet)
	router.Use(s.loggingMiddleware)

	s.httpserver = httptest.NewServer(router)
	return s
}

// URL is the base address to hand to the client.
func (s *Server) URL() string {
	return s.httpserver.URL + basePath
}

// Requests returns the query strings received so far.
func (s *Server) Requests() []url.Values {
	s.lock.Lock()
	defer s.lock.Unlock()
	out := make([]url.Values, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) Close() {
	s.httpserver.CloseClientConnections()
	s.httpserver.Close()
}

func (s *Server) next(q url.Values) *Response {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := len(s.requests)
	s.requests = append(s.requests, q)
	if len(s.responses) == 0 {
		return InProgress()
	}
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i]
}

func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	resp := s.next(r.URL.Query())

	if resp.Delay > 0 && !wait(r, resp.Delay) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)

	if resp.Stall > 0 {
		half := len(resp.Body) / 2
		w.Write([]byte(resp.Body[:half]))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		if !wait(r, resp.Stall) {
			return
		}
		w.Write([]byte(resp.Body[half:]))
		return
	}

	w.Write([]byte(resp.Body))
}

// loggingMiddleware shims in a handler middleware that logs requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("fakeapi.request", zap.String("method", r.Method), zap.String("uri", r.RequestURI))
		next.ServeHTTP(w, r)
	})
}

// wait sleeps for d, returning false if the client went away first.
func wait(r *http.Request, d time.Duration) bool {
	select {
	case <-r.Context().Done():
		return false
	case <-time.After(d):
		return true
	}
}

func InProgress() *Response {
	return &Response{Code: http.StatusOK, Body: `{"host":"example.com","status":"IN_PROGRESS"}`}
}

func DNS() *Response {
	return &Response{Code: http.StatusOK, Body: `{"host":"example.com","status":"DNS","statusMessage":"Resolving domain names"}`}
}

func Ready(doc string) *Response {
	return &Response{Code: http.StatusOK, Body: doc}
}

func Errored(msg string) *Response {
	return &Response{Code: http.StatusOK, Body: fmt.Sprintf(`{"host":"example.com","status":"ERROR","statusMessage":%q}`, msg)}
}

func Status(code int, body string) *Response {
	return &Response{Code: code, Body: body}
}

// ReadyDocument is a READY result with one good & one bad endpoint.
const ReadyDocument = `{"host":"example.com","port":443,"protocol":"http","isPublic":false,"status":"READY","startTime":1700000000000,"testTime":1700000090000,"engineVersion":"2.2.0","criteriaVersion":"2009q","endpoints":[{"ipAddress":"192.0.2.1","serverName":"a.example.com","statusMessage":"Ready","grade":"A+","gradeTrustIgnored":"A+","hasWarnings":false,"isExceptional":true,"progress":100,"duration":60000,"delegation":1},{"ipAddress":"192.0.2.2","statusMessage":"Error","hasWarnings":false,"isExceptional":false,"progress":-1,"duration":1000,"delegation":1}]}`
