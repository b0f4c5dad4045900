// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package planjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
)

// MalformedPlanError is returned when the model's text is not a JSON plan.
type MalformedPlanError struct {
	// Raw is the text exactly as the model returned it.
	Raw string
	Err error
}

func (e *MalformedPlanError) Error() string {
	return fmt.Sprintf("planjson: response is not valid plan JSON: %v", e.Err)
}

func (e *MalformedPlanError) Unwrap() error {
	return e.Err
}

var errNotObject = errors.New("not a JSON object")

// Result is the outcome of normalizing a model response. Exactly one of Plan
// and Err is set.
type Result struct {
	Plan fitcoachdb.Plan
	Raw  string
	Err  *MalformedPlanError
}

// WellFormed returns whether the response parsed into a plan.
func (r Result) WellFormed() bool {
	return r.Err == nil
}

// Normalize strips code fences and surrounding whitespace from raw and
// parses what remains as a JSON object. The object is kept as decoded and
// its shape is not checked.
func Normalize(raw string) Result {
	text := StripFences(raw)
	if !strings.HasPrefix(text, "{") {
		return malformed(raw, errNotObject)
	}

	var plan fitcoachdb.Plan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return malformed(raw, err)
	}

	return Result{Plan: plan, Raw: raw}
}

// StripFences removes surrounding whitespace and a single pair of markdown
// code fences, such as ```json ... ```, from s.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		// Drop the info string, e.g. json, up to the end of the line.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && isInfoString(rest[:nl]) {
			rest = rest[nl+1:]
		} else if after, ok := cutInfoPrefix(rest); ok {
			rest = after
		}
		s = rest
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isInfoString(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "json")
}

// cutInfoPrefix handles fences without a newline, e.g. ```json{...}```.
func cutInfoPrefix(s string) (string, bool) {
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		return s[4:], true
	}
	return s, false
}

func malformed(raw string, err error) Result {
	return Result{Raw: raw, Err: &MalformedPlanError{Raw: raw, Err: err}}
}
