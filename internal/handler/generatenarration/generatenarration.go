// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package generatenarration

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/curioswitch/fitcoach/internal/httpjson"
	"github.com/curioswitch/fitcoach/internal/metrics"
	"github.com/curioswitch/fitcoach/internal/narration"
)

// Opener opens an audio stream for text.
type Opener interface {
	Open(ctx context.Context, text string) (*narration.Stream, error)
}

func NewHandler(speech Opener, metrics *metrics.Metrics) *Handler {
	return &Handler{
		speech:  speech,
		metrics: metrics,
	}
}

// Handler streams narrated audio for text.
type Handler struct {
	speech  Opener
	metrics *metrics.Metrics
}

type request struct {
	Text string `json:"text"`
}

func (h *Handler) GenerateNarration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req request
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(ctx, w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	stream, err := h.speech.Open(ctx, req.Text)
	if err != nil {
		h.writeOpenError(ctx, w, err)
		return
	}
	defer func() {
		_ = stream.Close()
	}()

	w.Header().Set("Content-Type", stream.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	n, err := narration.Relay(ctx, w, stream)
	h.metrics.NarrationBytes(n)
	if err != nil {
		// Headers are sent, the response just ends early.
		slog.WarnContext(ctx, "generatenarration: relaying audio", "error", err, "bytes", n)
	}
}

func (h *Handler) writeOpenError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, narration.ErrEmptyText) {
		httpjson.WriteError(ctx, w, http.StatusBadRequest, "Text is required.", err)
		return
	}

	var cfgErr *narration.ConfigurationError
	if errors.As(err, &cfgErr) {
		slog.ErrorContext(ctx, "generatenarration: narration not configured", "error", err)
		httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Narration service is not configured.", err)
		return
	}

	var svcErr *narration.ServiceError
	if errors.As(err, &svcErr) {
		slog.ErrorContext(ctx, "generatenarration: speech service failed", "error", err, "status", svcErr.StatusCode)
		status := svcErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		body := httpjson.ErrorBody{Message: "Failed to generate narration.", Error: svcErr.Body}
		if body.Error == "" {
			body.Error = err.Error()
		}
		httpjson.Write(ctx, w, status, body)
		return
	}

	slog.ErrorContext(ctx, "generatenarration: opening stream", "error", err)
	httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Failed to generate narration.", err)
}
