// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package protocol defines the wire format spoken between the remote
// agent and the interpreter.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnprocessableBatch indicates input that fails the structural
	// minimum: not a JSON array, or an element carrying none of the
	// four message operations. Individual bad fields inside an
	// otherwise well-formed message are tolerated elsewhere; this is
	// the one condition that propagates to the caller.
	ErrUnprocessableBatch = errors.New("unprocessable message batch")
)

// =============================================================================
// BATCH DECODING
// =============================================================================

// DecodeBatch parses a JSON message batch. It is all-or-nothing: a
// structurally invalid batch yields ErrUnprocessableBatch and no
// messages, so a caller can never partially apply a malformed batch.
func DecodeBatch(data []byte) ([]Message, error) {
	// json.Unmarshal accepts a top-level null into a slice without
	// error, so the array check has to happen before decoding.
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: top-level value is not an array", ErrUnprocessableBatch)
	}
	var batch []Message
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessableBatch, err)
	}
	if err := ValidateBatch(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// ValidateBatch checks that every element carries a recognized
// operation. Used by DecodeBatch and again by the processor before it
// folds a batch, so programmatically built batches get the same
// guarantee.
func ValidateBatch(batch []Message) error {
	for i, msg := range batch {
		if msg.Kind() == KindNone {
			return fmt.Errorf("%w: element %d has no recognized operation", ErrUnprocessableBatch, i)
		}
	}
	return nil
}
