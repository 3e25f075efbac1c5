package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voidshard/sslcheck/pkg/api/http/common"
	ie "github.com/voidshard/sslcheck/pkg/errors"
	"github.com/voidshard/sslcheck/pkg/structs"
)

// genericGet performs one GET and turns whatever happens into an Outcome.
// Implies the query string is already set.
func genericGet(ctx context.Context, c *Client, addr *url.URL) structs.Outcome {
	reqID := uuid.New().String()
	start := time.Now()
	log := c.log.With(zap.String("req_id", reqID), zap.String("url", addr.String()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		log.Error("analyze.build_request_error", zap.Error(err))
		return transportFailure(structs.TransportOther, err)
	}

	log.Debug("analyze.request")
	resp, err := c.http.Do(req)
	if err != nil {
		kind := classify(err)
		log.Warn("analyze.send_error",
			zap.String("kind", string(kind)),
			zap.Error(err),
			zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
		)
		return transportFailure(kind, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn("analyze.response_body_close_error", zap.Error(closeErr))
		}
	}()

	// headers are in; the body gets the same read timeout
	timer := time.AfterFunc(c.readTimeout, cancel)
	body, err := io.ReadAll(resp.Body)
	expired := !timer.Stop()
	if err != nil {
		kind := structs.TransportOther
		if expired {
			kind = structs.ReadTimeout
		}
		log.Warn("analyze.read_error", zap.String("kind", string(kind)), zap.Error(err))
		return transportFailure(kind, err)
	}

	log.Info("analyze.response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode != http.StatusOK {
		detail, err := serviceErrorDetail(resp.StatusCode, body)
		if err != nil {
			log.Error("analyze.error_detail_missing", zap.Int("status", resp.StatusCode), zap.Error(err))
			return transportFailure(structs.TransportOther, fmt.Errorf("status %d: %w", resp.StatusCode, err))
		}
		return &structs.ServiceError{HTTPStatus: resp.StatusCode, Detail: detail}
	}

	return jobStatus(body)
}

// jobStatus classifies a 200 response by its status field.
func jobStatus(body []byte) structs.Outcome {
	var r common.AnalyzeResponse
	err := json.Unmarshal(body, &r)
	if err != nil {
		return transportFailure(structs.TransportOther, fmt.Errorf("bad json: %w", err))
	}

	status := structs.ToStatus(r.Status)
	switch status {
	case structs.ERROR:
		return &structs.JobStatus{Status: status, Message: r.StatusMessage}
	case structs.READY:
		return &structs.JobStatus{Status: status, Document: json.RawMessage(body)}
	case structs.DNS, structs.IN_PROGRESS:
		return &structs.JobStatus{Status: status}
	default:
		return transportFailure(structs.TransportOther, fmt.Errorf("%w: %q", ie.ErrUnknownStatus, r.Status))
	}
}

// serviceErrorDetail works out the description of a non 200 response.
//
// Documented codes map to fixed strings. Otherwise we use the body's
// statusMessage, falling back to its errors list.
func serviceErrorDetail(code int, body []byte) (string, error) {
	if msg, ok := common.StatusMessages[code]; ok {
		return msg, nil
	}

	var r common.AnalyzeResponse
	err := json.Unmarshal(body, &r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ie.ErrNoErrorDetail, err)
	}
	if r.StatusMessage != "" {
		return r.StatusMessage, nil
	}
	if len(r.Errors) > 0 && string(r.Errors) != "null" {
		return formatErrors(r.Errors), nil
	}
	return "", ie.ErrNoErrorDetail
}

// formatErrors renders the service's [{field, message}] list, or the raw JSON
// if it isn't shaped like that.
func formatErrors(raw json.RawMessage) string {
	var list []common.FieldError
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		return string(raw)
	}

	msgs := []string{}
	for _, e := range list {
		if e.Field == "" {
			msgs = append(msgs, e.Message)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(msgs, "; ")
}

// classify sorts a transport error into connect timeout, read timeout or other.
func classify(err error) structs.TransportKind {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" && opErr.Timeout() {
		return structs.ConnectTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return structs.ReadTimeout
	}
	return structs.TransportOther
}

func transportFailure(kind structs.TransportKind, err error) *structs.TransportFailure {
	return &structs.TransportFailure{Kind: kind, Detail: err.Error()}
}
