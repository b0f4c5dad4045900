// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package httpjson

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	var v struct {
		Text string `json:"text"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hi"}`))
	require.NoError(t, Decode(req, &v))
	assert.Equal(t, "hi", v.Text)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	require.ErrorContains(t, Decode(req, &v), "empty")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	require.Error(t, Decode(req, &v))
}

func TestDecodeContentType(t *testing.T) {
	var v struct {
		Text string `json:"text"`
	}

	for _, ct := range []string{"application/json", "application/json; charset=utf-8", "Application/JSON"} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hi"}`))
		req.Header.Set("Content-Type", ct)
		require.NoError(t, Decode(req, &v), ct)
	}

	for _, ct := range []string{"text/plain", "application/x-www-form-urlencoded", "multipart/form-data; boundary=x", ";;"} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hi"}`))
		req.Header.Set("Content-Type", ct)
		require.ErrorContains(t, Decode(req, &v), "Content-Type", ct)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), rec, http.StatusNotFound, "Plan not found", errors.New("no such record"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Plan not found","error":"no such record"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteError(context.Background(), rec, http.StatusBadRequest, "Text is required", nil)
	assert.JSONEq(t, `{"message":"Text is required"}`, rec.Body.String())
}
