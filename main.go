// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/genai"

	"github.com/curioswitch/fitcoach/internal/config"
	"github.com/curioswitch/fitcoach/internal/cors"
	"github.com/curioswitch/fitcoach/internal/export"
	"github.com/curioswitch/fitcoach/internal/file"
	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
	"github.com/curioswitch/fitcoach/internal/handler/deleteplan"
	"github.com/curioswitch/fitcoach/internal/handler/exportplan"
	"github.com/curioswitch/fitcoach/internal/handler/generatenarration"
	"github.com/curioswitch/fitcoach/internal/handler/generateplan"
	"github.com/curioswitch/fitcoach/internal/handler/getplan"
	"github.com/curioswitch/fitcoach/internal/handler/listplans"
	"github.com/curioswitch/fitcoach/internal/handler/narrationscript"
	"github.com/curioswitch/fitcoach/internal/i18n"
	"github.com/curioswitch/fitcoach/internal/metrics"
	"github.com/curioswitch/fitcoach/internal/narration"
	"github.com/curioswitch/fitcoach/internal/plangen"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("main: loading .env", "error", err)
	}

	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	var db *firestore.Client
	if conf.Store.Database != "" {
		db, err = firestore.NewClientWithDatabase(ctx, conf.Google.Project, conf.Store.Database)
	} else {
		db, err = fbApp.Firestore(ctx)
	}
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	storage, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()
	exportBucket := conf.Export.Bucket
	if exportBucket == "" {
		exportBucket = conf.Google.Project + "-public"
	}

	generator, err := newGenerator(ctx, conf)
	if err != nil {
		return err
	}

	store := fitcoachdb.NewFirestoreStore(db, conf.Store.Collection)
	speech := narration.NewGateway(http.DefaultClient, narration.Config{
		APIKey:  conf.Narration.APIKey,
		VoiceID: conf.Narration.VoiceID,
		ModelID: conf.Narration.ModelID,
		BaseURL: conf.Narration.BaseURL,
	})
	exporter := export.NewExporter(file.NewIO(storage, exportBucket))
	m := metrics.New()

	mux.Use(cors.Middleware(conf.CORS.AllowedOrigins, conf.CORS.AllowedOriginSuffixes))
	mux.Use(i18n.Middleware())

	routes := func(r chi.Router) {
		r.Post("/generate-plan", generateplan.NewHandler(store, generator, m).GeneratePlan)
		r.Get("/plans", listplans.NewHandler(store).ListPlans)
		r.Get("/plans/{id}", getplan.NewHandler(store).GetPlan)
		r.Delete("/plans/{id}", deleteplan.NewHandler(store).DeletePlan)
		r.Get("/plans/{id}/narration-script", narrationscript.NewHandler(store).NarrationScript)
		r.Post("/plans/{id}/export", exportplan.NewHandler(store, exporter, m).ExportPlan)
		r.Post("/generate-narration", generatenarration.NewHandler(speech, m).GenerateNarration)
	}
	mux.Route("/users", routes)
	mux.Route("/apiv1/users", routes)
	mux.Handle("/internal/metrics", m.Handler())

	slog.InfoContext(ctx, "main: serving plans",
		"collection", conf.Store.Collection,
		"provider", conf.Generation.Provider,
		"exportBucket", exportBucket,
	)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}

func newGenerator(ctx context.Context, conf *config.Config) (plangen.Generator, error) {
	switch conf.Generation.Provider {
	case "", plangen.ProviderGenAI:
		genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  conf.Generation.APIKey,
			Backend: genai.BackendGeminiAPI,
			Project: conf.Google.Project,
		})
		if err != nil {
			return nil, fmt.Errorf("main: creating genai client: %w", err)
		}
		return plangen.NewGenAI(genAI, conf.Generation.Model), nil
	case plangen.ProviderOpenAI:
		opts := []option.RequestOption{option.WithMaxRetries(0)}
		if conf.Generation.APIKey != "" {
			opts = append(opts, option.WithAPIKey(conf.Generation.APIKey))
		}
		oai := openai.NewClient(opts...)
		return plangen.NewOpenAI(&oai, conf.Generation.Model), nil
	default:
		return nil, fmt.Errorf("main: unknown generation provider %q", conf.Generation.Provider) //nolint:err113
	}
}
