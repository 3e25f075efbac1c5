// Package report turns a finished assessment into something a person can read.
package report

//go:generate mockgen -source=report.go -destination=../../internal/mocks/pkg/report_mock/report.go -package=report_mock

import (
	"encoding/json"

	"github.com/voidshard/sslcheck/pkg/structs"
)

// Input is everything a Renderer gets to work with.
type Input struct {
	// Host is the assessed host, as requested.
	Host string

	// Document is the unmodified READY result.
	Document json.RawMessage

	// RawResults asks for the full document to be embedded in the report.
	RawResults bool
}

// Renderer produces a report or fails; it never panics on bad templates.
type Renderer interface {
	Render(in *Input) (string, error)
}

// Partition splits endpoints into those the service finished assessing and
// the rest.
func Partition(endpoints []*structs.Endpoint) (good, bad []*structs.Endpoint) {
	good = []*structs.Endpoint{}
	bad = []*structs.Endpoint{}
	for _, e := range endpoints {
		if e == nil {
			continue
		}
		if e.IsReady() {
			good = append(good, e)
		} else {
			bad = append(bad, e)
		}
	}
	return good, bad
}
