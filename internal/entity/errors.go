package entity

import (
	"errors"
	"fmt"
)

// ErrCredentialsMissing marks a skipped engine reload; it is never a cycle failure.
var ErrCredentialsMissing = errors.New("engine api credentials missing")

// NetworkError covers timeouts, refused connections, and non-2xx responses.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error (%s): %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DataFormatError covers responses and documents with an unexpected JSON shape.
type DataFormatError struct {
	Source string
	Reason string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("unexpected data format (%s): %s", e.Source, e.Reason)
}

// ReconciliationError aborts a cycle without touching the persisted config.
type ReconciliationError struct {
	Reason string
}

func (e *ReconciliationError) Error() string {
	return e.Reason
}

// ConfigIOError covers failures reading, parsing, or writing the engine config file.
type ConfigIOError struct {
	Path string
	Op   string
	Err  error
}

func (e *ConfigIOError) Error() string {
	return fmt.Sprintf("engine config %s failed (%s): %v", e.Op, e.Path, e.Err)
}

func (e *ConfigIOError) Unwrap() error {
	return e.Err
}
