// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package narration turns plan text into speech with ElevenLabs and relays the
// audio to the caller.
package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/curioswitch/fitcoach/internal/i18n"
)

const (
	DefaultBaseURL = "https://api.elevenlabs.io"
	DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"
	DefaultModelID = "eleven_multilingual_v2"
)

// maxErrorBody caps how much of a provider error response is kept.
const maxErrorBody = 64 << 10

// ErrEmptyText is returned when there is nothing to narrate.
var ErrEmptyText = errors.New("narration: text is empty")

// ConfigurationError is returned when the gateway is missing a setting it needs.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("narration: %s is not configured", e.Setting)
}

// ServiceError is returned when the speech service could not be reached or
// rejected the request. StatusCode is the provider's status, or 502 when no
// response was received.
type ServiceError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("narration: calling speech service: %v", e.Err)
	}
	return fmt.Sprintf("narration: speech service returned status %d: %s", e.StatusCode, e.Body)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Config configures a Gateway.
type Config struct {
	APIKey  string
	VoiceID string
	ModelID string
	BaseURL string
}

// NewGateway returns a Gateway sending requests with client.
func NewGateway(client *http.Client, cfg Config) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultVoiceID
	}
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModelID
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &Gateway{
		client: client,
		cfg:    cfg,
	}
}

// Gateway opens audio streams from the speech service.
type Gateway struct {
	client *http.Client
	cfg    Config
}

type speechRequest struct {
	Text         string `json:"text"`
	ModelID      string `json:"model_id"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Open starts synthesizing text. The caller must close the returned Stream.
// Empty text is rejected before any request is made.
func (g *Gateway) Open(ctx context.Context, text string) (*Stream, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if g.cfg.APIKey == "" {
		return nil, &ConfigurationError{Setting: "narration.apikey"}
	}

	reqJSON, err := json.Marshal(speechRequest{
		Text:         text,
		ModelID:      g.cfg.ModelID,
		LanguageCode: i18n.UserLanguageCode(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("narration: marshalling speech request: %w", err)
	}

	u := g.cfg.BaseURL + "/v1/text-to-speech/" + url.PathEscape(g.cfg.VoiceID) + "/stream"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("narration: creating speech request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Xi-Api-Key", g.cfg.APIKey)

	res, err := g.client.Do(req)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer func() {
			_ = res.Body.Close()
		}()
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, &ServiceError{StatusCode: res.StatusCode, Body: string(body)}
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return &Stream{ContentType: contentType, body: res.Body}, nil
}

// Stream is synthesized audio being received from the speech service.
type Stream struct {
	ContentType string

	body io.ReadCloser
}

// NewStream returns a Stream reading audio from body.
func NewStream(contentType string, body io.ReadCloser) *Stream {
	return &Stream{ContentType: contentType, body: body}
}

func (s *Stream) Read(p []byte) (int, error) {
	return s.body.Read(p)
}

func (s *Stream) Close() error {
	return s.body.Close()
}
