// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Store struct {
	// Database is the Firestore database ID, empty for the default database.
	Database string `koanf:"database"`

	// Collection holds plan records.
	Collection string `koanf:"collection"`
}

type Generation struct {
	// Provider is genai or openai.
	Provider string `koanf:"provider"`

	// Model overrides the provider's default model.
	Model string `koanf:"model"`

	// APIKey is the provider credential. When empty, the SDK reads its usual
	// environment variable, e.g. GOOGLE_API_KEY or OPENAI_API_KEY.
	APIKey string `koanf:"apikey"`
}

type Narration struct {
	// APIKey is the ElevenLabs API key.
	APIKey  string `koanf:"apikey"`
	VoiceID string `koanf:"voiceid"`
	ModelID string `koanf:"modelid"`
	BaseURL string `koanf:"baseurl"`
}

type Export struct {
	// Bucket receives exported plans, defaults to <project>-public.
	Bucket string `koanf:"bucket"`
}

type CORS struct {
	// AllowedOrigins are origins allowed exactly, e.g. http://localhost:5173.
	AllowedOrigins []string `koanf:"allowedorigins"`

	// AllowedOriginSuffixes allow any origin whose host ends with the suffix,
	// e.g. .netlify.app.
	AllowedOriginSuffixes []string `koanf:"allowedoriginsuffixes"`
}

type Config struct {
	config.Common

	Store      Store      `koanf:"store"`
	Generation Generation `koanf:"generation"`
	Narration  Narration  `koanf:"narration"`
	Export     Export     `koanf:"export"`
	CORS       CORS       `koanf:"cors"`
}
