package structs

import (
	"encoding/json"
	"fmt"
)

// Outcome is the normalised result of a single poll. It is one of
// TransportFailure, ServiceError or JobStatus.
type Outcome interface {
	// Description is a human readable summary suitable for reporting a failure.
	Description() string

	outcome()
}

// TransportKind classifies a transport level failure.
type TransportKind string

const (
	ConnectTimeout TransportKind = "connect-timeout"
	ReadTimeout    TransportKind = "read-timeout"
	TransportOther TransportKind = "other"
)

// TransportFailure means we never got a usable response.
type TransportFailure struct {
	Kind   TransportKind
	Detail string
}

func (t *TransportFailure) outcome() {}

func (t *TransportFailure) Description() string {
	switch t.Kind {
	case ConnectTimeout:
		return fmt.Sprintf("The assessment service took too long to initiate a connection: %s", t.Detail)
	case ReadTimeout:
		return fmt.Sprintf("The assessment service took too long to respond: %s", t.Detail)
	default:
		return fmt.Sprintf("An error has occurred querying the SSL assessment service: %s", t.Detail)
	}
}

// ServiceError means the service answered with a non 200 status.
type ServiceError struct {
	HTTPStatus int
	Detail     string
}

func (s *ServiceError) outcome() {}

func (s *ServiceError) Description() string {
	return fmt.Sprintf("The service responded with an error!: %d: %s", s.HTTPStatus, s.Detail)
}

// JobStatus is a 200 response carrying the assessment's status.
type JobStatus struct {
	Status Status

	// Document is the full response body, set only when Status is READY.
	Document json.RawMessage

	// Message is the remote statusMessage, set only when Status is ERROR.
	Message string
}

func (j *JobStatus) outcome() {}

func (j *JobStatus) Description() string {
	if j.Status == ERROR {
		return j.Message
	}
	return string(j.Status)
}
