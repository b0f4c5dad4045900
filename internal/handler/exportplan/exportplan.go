// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package exportplan

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curioswitch/fitcoach/internal/export"
	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
	"github.com/curioswitch/fitcoach/internal/httpjson"
	"github.com/curioswitch/fitcoach/internal/metrics"
)

// Exporter publishes a saved plan.
type Exporter interface {
	Export(ctx context.Context, rec *fitcoachdb.PlanRecord) (*export.Result, error)
}

func NewHandler(store fitcoachdb.PlanStore, exporter Exporter, metrics *metrics.Metrics) *Handler {
	return &Handler{
		store:    store,
		exporter: exporter,
		metrics:  metrics,
	}
}

// Handler exports a saved plan to storage.
type Handler struct {
	store    fitcoachdb.PlanStore
	exporter Exporter
	metrics  *metrics.Metrics
}

func (h *Handler) ExportPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	rec, err := h.store.Get(ctx, id)
	if errors.Is(err, fitcoachdb.ErrNotFound) {
		httpjson.WriteError(ctx, w, http.StatusNotFound, "Plan not found.", err)
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "exportplan: fetching plan", "error", err, "id", id)
		httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Failed to fetch plan.", err)
		return
	}

	res, err := h.exporter.Export(ctx, rec)
	if errors.Is(err, export.ErrNoPlan) {
		httpjson.WriteError(ctx, w, http.StatusConflict, "Plan has not been generated yet.", err)
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "exportplan: exporting plan", "error", err, "id", id)
		httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Failed to export plan.", err)
		return
	}

	h.metrics.Export()
	httpjson.Write(ctx, w, http.StatusCreated, res)
}
