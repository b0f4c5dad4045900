// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package cors configures cross-origin access for browser clients.
package cors

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/rs/cors"
)

// Middleware returns CORS middleware allowing origins listed in origins
// exactly, and any http(s) origin whose host ends with one of suffixes.
func Middleware(origins []string, suffixes []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return Allowed(origin, origins, suffixes)
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "Accept-Language", "Authorization"},
	})
	return c.Handler
}

// Allowed reports whether origin may call the API.
func Allowed(origin string, origins []string, suffixes []string) bool {
	if origin == "" {
		return false
	}
	if slices.Contains(origins, origin) {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return false
	}
	host := u.Hostname()
	for _, suffix := range suffixes {
		if suffix == "" {
			continue
		}
		if !strings.HasPrefix(suffix, ".") {
			suffix = "." + suffix
		}
		if strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			return true
		}
	}
	return false
}
