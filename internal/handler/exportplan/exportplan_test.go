// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package exportplan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/fitcoach/internal/export"
	"github.com/curioswitch/fitcoach/internal/file"
	"github.com/curioswitch/fitcoach/internal/fitcoachdb/fitcoachdbtest"
)

type memoryFiles struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (m *memoryFiles) WriteFile(_ context.Context, path string, _ string, _ []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = append(m.paths, path)
	return file.PublicURL("fitcoach-public", path), nil
}

func TestExportPlan(t *testing.T) {
	ctx := context.Background()
	store := fitcoachdbtest.NewMemoryStore()
	planned, err := store.Create(ctx, fitcoachdbtest.SampleProfile("Ann"))
	require.NoError(t, err)
	_, err = store.AttachPlan(ctx, planned.ID, fitcoachdbtest.SamplePlan())
	require.NoError(t, err)
	unplanned, err := store.Create(ctx, fitcoachdbtest.SampleProfile("Bob"))
	require.NoError(t, err)

	files := &memoryFiles{}
	mux := chi.NewRouter()
	mux.Post("/users/plans/{id}/export", NewHandler(store, export.NewExporter(files), nil).ExportPlan)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/plans/"+planned.ID+"/export", nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"markdownUrl": "https://storage.googleapis.com/fitcoach-public/plans/`+planned.ID+`/plan.md",
		"jsonUrl": "https://storage.googleapis.com/fitcoach-public/plans/`+planned.ID+`/plan.json"
	}`, rec.Body.String())
	assert.ElementsMatch(t, []string{"plans/" + planned.ID + "/plan.md", "plans/" + planned.ID + "/plan.json"}, files.paths)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/plans/"+unplanned.ID+"/export", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/plans/missing/export", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportPlanUploadFailure(t *testing.T) {
	ctx := context.Background()
	store := fitcoachdbtest.NewMemoryStore()
	planned, err := store.Create(ctx, fitcoachdbtest.SampleProfile("Ann"))
	require.NoError(t, err)
	_, err = store.AttachPlan(ctx, planned.ID, fitcoachdbtest.SamplePlan())
	require.NoError(t, err)

	files := &memoryFiles{err: errors.New("bucket unavailable")}
	mux := chi.NewRouter()
	mux.Post("/users/plans/{id}/export", NewHandler(store, export.NewExporter(files), nil).ExportPlan)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/plans/"+planned.ID+"/export", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "bucket unavailable")
}
