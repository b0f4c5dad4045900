// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package httpjson reads and writes the JSON bodies of the REST API.
package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
)

// maxBodyBytes caps request bodies. Profiles are small.
const maxBodyBytes = 1 << 20

// ErrorBody is the envelope returned for every failed request.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`

	// RawText is the model output that could not be parsed as a plan.
	RawText string `json:"rawText,omitempty"`
}

// Decode reads a JSON request body into v. A request without a Content-Type
// is read as JSON, any other media type is rejected.
func Decode(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("httpjson: unsupported Content-Type %q, must be application/json", ct) //nolint:err113
		}
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("httpjson: request body is empty") //nolint:err113
		}
		return fmt.Errorf("httpjson: decoding request body: %w", err)
	}
	return nil
}

// Write writes v as the JSON response with the given status.
func Write(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "httpjson: writing response", "error", err)
	}
}

// WriteError writes an error envelope. err may be nil.
func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	body := ErrorBody{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	Write(ctx, w, status, body)
}
