// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package narration

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/fitcoach/internal/i18n"
)

func TestGatewayOpen(t *testing.T) {
	var got speechRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/text-to-speech/voice-1/stream", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Xi-Api-Key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3audio"))
	}))
	t.Cleanup(srv.Close)

	g := NewGateway(srv.Client(), Config{APIKey: "secret", VoiceID: "voice-1", BaseURL: srv.URL + "/"})
	ctx := i18n.WithUserLanguage(context.Background(), "ja-JP")

	stream, err := g.Open(ctx, "Hello there")
	require.NoError(t, err)
	defer stream.Close()

	audio, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "ID3audio", string(audio))
	assert.Equal(t, "audio/mpeg", stream.ContentType)

	assert.Equal(t, "Hello there", got.Text)
	assert.Equal(t, DefaultModelID, got.ModelID)
	assert.Equal(t, "ja", got.LanguageCode)
}

func TestGatewayOpenEmptyText(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(srv.Close)

	g := NewGateway(srv.Client(), Config{APIKey: "secret", BaseURL: srv.URL})
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := g.Open(context.Background(), text)
		require.ErrorIs(t, err, ErrEmptyText)
	}
	assert.Zero(t, calls.Load())
}

func TestGatewayOpenMissingKey(t *testing.T) {
	g := NewGateway(nil, Config{})
	_, err := g.Open(context.Background(), "Hello")
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "narration.apikey", cfgErr.Setting)
}

func TestGatewayOpenProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":{"status":"invalid_api_key"}}`))
	}))
	t.Cleanup(srv.Close)

	g := NewGateway(srv.Client(), Config{APIKey: "wrong", BaseURL: srv.URL})
	_, err := g.Open(context.Background(), "Hello")

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
	assert.Contains(t, svcErr.Body, "invalid_api_key")
}

func TestGatewayOpenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewGateway(nil, Config{APIKey: "secret", BaseURL: url})
	_, err := g.Open(context.Background(), "Hello")

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusBadGateway, svcErr.StatusCode)
	assert.Error(t, svcErr.Err)
}

type failingReader struct {
	data string
	read bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.read {
		return 0, errors.New("connection reset")
	}
	r.read = true
	return copy(p, r.data), nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("client went away")
}

func TestRelay(t *testing.T) {
	audio := strings.Repeat("a", relayChunkSize*2+10)
	rec := httptest.NewRecorder()

	n, err := Relay(context.Background(), rec, strings.NewReader(audio))
	require.NoError(t, err)
	assert.Equal(t, int64(len(audio)), n)
	assert.Equal(t, audio, rec.Body.String())
	assert.True(t, rec.Flushed)
}

func TestRelayReadFailure(t *testing.T) {
	rec := httptest.NewRecorder()

	n, err := Relay(context.Background(), rec, &failingReader{data: "partial"})
	var streamErr *StreamingError
	require.True(t, errors.As(err, &streamErr))
	assert.Equal(t, int64(7), n)
	assert.Equal(t, int64(7), streamErr.Written)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestRelayWriteFailure(t *testing.T) {
	_, err := Relay(context.Background(), failingWriter{}, strings.NewReader("audio"))
	var streamErr *StreamingError
	require.True(t, errors.As(err, &streamErr))
	assert.Zero(t, streamErr.Written)
}

func TestRelayCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Relay(ctx, httptest.NewRecorder(), strings.NewReader("audio"))
	require.ErrorIs(t, err, context.Canceled)
}
