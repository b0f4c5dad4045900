// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package i18n reads the caller's preferred language from request headers.
package i18n

import (
	"context"
	"net/http"
	"strings"
)

type userLanguageContextKey struct{}

var userLanguageContextKeyInstance = userLanguageContextKey{}

// Middleware stores the first language of the Accept-Language header in the
// request context.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if lng := firstLanguage(r.Header.Get("Accept-Language")); lng != "" {
				r = r.WithContext(WithUserLanguage(r.Context(), lng))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUserLanguage returns a context carrying lng as the user's language.
func WithUserLanguage(ctx context.Context, lng string) context.Context {
	return context.WithValue(ctx, userLanguageContextKeyInstance, lng)
}

// UserLanguage returns the user's language tag, e.g. ja-JP, or an empty string.
func UserLanguage(ctx context.Context) string {
	if lng, ok := ctx.Value(userLanguageContextKeyInstance).(string); ok {
		return lng
	}
	return ""
}

// UserLanguageCode returns the two letter ISO 639-1 code of the user's
// language, e.g. ja, or an empty string.
func UserLanguageCode(ctx context.Context) string {
	lng := UserLanguage(ctx)
	base, _, _ := strings.Cut(lng, "-")
	base = strings.ToLower(base)
	if len(base) != 2 {
		return ""
	}
	return base
}

func firstLanguage(header string) string {
	lng, _, _ := strings.Cut(header, ",")
	lng, _, _ = strings.Cut(lng, ";")
	lng = strings.TrimSpace(lng)
	if lng == "*" {
		return ""
	}
	return lng
}
