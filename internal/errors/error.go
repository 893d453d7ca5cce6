package errors

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyEngineStream = errors.New("engine returned an empty response stream")
	ErrNoMainLine        = errors.New("record has no main line")
	ErrRecordNotFound    = errors.New("record not found")
	ErrInternal          = errors.New("internal error")
)

// ParseError reports record text rejected by the tokenizer or a later stage.
// Fragment holds the original, uncorrected text near the failure when it can
// still be derived after dialect correction.
type ParseError struct {
	Fragment string
	Pos      int
	Err      error
}

func (e *ParseError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("parse error at %d: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("parse error at %d near %q: %v", e.Pos, e.Fragment, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RangeError reports a coordinate or board size outside the supported domain.
// Inputs are never clamped.
type RangeError struct {
	Input string
	Msg   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("coordinate out of range: %s: %q", e.Msg, e.Input)
}

// EngineError carries the raw payload of an engine failure so the caller can
// surface it verbatim.
type EngineError struct {
	Payload string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine error: %v: %s", e.Err, e.Payload)
	}
	return "engine error: " + e.Payload
}

func (e *EngineError) Unwrap() error { return e.Err }
