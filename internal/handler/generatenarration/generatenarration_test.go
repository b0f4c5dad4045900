// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package generatenarration

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/fitcoach/internal/metrics"
	"github.com/curioswitch/fitcoach/internal/narration"
)

func newSpeechServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func narrate(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users/generate-narration", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.GenerateNarration(rec, req)
	return rec
}

func TestGenerateNarration(t *testing.T) {
	audio := strings.Repeat("\xff\xfb", 50000)
	srv, calls := newSpeechServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte(audio))
	})
	gw := narration.NewGateway(srv.Client(), narration.Config{APIKey: "secret", BaseURL: srv.URL})

	rec := narrate(NewHandler(gw, metrics.New()), `{"text":"Hello. Here is your AI fitness plan."}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, audio, rec.Body.String())
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateNarrationEmptyText(t *testing.T) {
	srv, calls := newSpeechServer(t, func(http.ResponseWriter, *http.Request) {})
	gw := narration.NewGateway(srv.Client(), narration.Config{APIKey: "secret", BaseURL: srv.URL})
	h := NewHandler(gw, nil)

	for _, body := range []string{`{"text":""}`, `{"text":"  "}`, `{}`} {
		rec := narrate(h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"message":"Text is required."`)
	}
	assert.Zero(t, calls.Load())
}

func TestGenerateNarrationNotConfigured(t *testing.T) {
	srv, calls := newSpeechServer(t, func(http.ResponseWriter, *http.Request) {})
	gw := narration.NewGateway(srv.Client(), narration.Config{BaseURL: srv.URL})

	rec := narrate(NewHandler(gw, nil), `{"text":"Hello"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "narration.apikey")
	assert.Zero(t, calls.Load())
}

func TestGenerateNarrationProviderError(t *testing.T) {
	srv, _ := newSpeechServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail":{"status":"quota_exceeded"}}`))
	})
	gw := narration.NewGateway(srv.Client(), narration.Config{APIKey: "secret", BaseURL: srv.URL})

	rec := narrate(NewHandler(gw, nil), `{"text":"Hello"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "quota_exceeded")
	assert.Contains(t, rec.Body.String(), `"message":"Failed to generate narration."`)
}

func TestGenerateNarrationBadBody(t *testing.T) {
	srv, calls := newSpeechServer(t, func(http.ResponseWriter, *http.Request) {})
	gw := narration.NewGateway(srv.Client(), narration.Config{APIKey: "secret", BaseURL: srv.URL})

	rec := narrate(NewHandler(gw, nil), `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, calls.Load())
}
