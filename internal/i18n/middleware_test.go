// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	tests := []struct {
		header   string
		language string
		code     string
	}{
		{header: "", language: "", code: ""},
		{header: "ja-JP", language: "ja-JP", code: "ja"},
		{header: "en-US,en;q=0.9", language: "en-US", code: "en"},
		{header: "fr;q=0.8, en", language: "fr", code: "fr"},
		{header: "*", language: "", code: ""},
		{header: "zh-Hant-TW", language: "zh-Hant-TW", code: "zh"},
	}

	for _, tc := range tests {
		t.Run(tc.header, func(t *testing.T) {
			var gotLanguage, gotCode string
			h := Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				gotLanguage = UserLanguage(r.Context())
				gotCode = UserLanguageCode(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Accept-Language", tc.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.language, gotLanguage)
			assert.Equal(t, tc.code, gotCode)
		})
	}
}
