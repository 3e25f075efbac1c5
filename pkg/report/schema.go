package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/voidshard/sslcheck/pkg/errors"
)

const schemaName = "host.json"

//go:embed host.schema.json
var hostSchema []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaName, bytes.NewReader(hostSchema)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaName)
	})
	return compiled, compileErr
}

// Validate checks a READY document has the shape we report on.
func Validate(doc json.RawMessage) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidResults, err)
	}

	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidResults, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidResults, err)
	}
	return nil
}
