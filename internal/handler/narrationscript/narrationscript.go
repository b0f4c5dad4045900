// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package narrationscript

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
	"github.com/curioswitch/fitcoach/internal/httpjson"
	"github.com/curioswitch/fitcoach/internal/narration"
)

func NewHandler(store fitcoachdb.PlanStore) *Handler {
	return &Handler{
		store: store,
	}
}

// Handler returns the text to narrate for a saved plan.
type Handler struct {
	store fitcoachdb.PlanStore
}

type response struct {
	Text string `json:"text"`
}

func (h *Handler) NarrationScript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	rec, err := h.store.Get(ctx, id)
	if errors.Is(err, fitcoachdb.ErrNotFound) {
		httpjson.WriteError(ctx, w, http.StatusNotFound, "Plan not found.", err)
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "narrationscript: fetching plan", "error", err, "id", id)
		httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Failed to fetch plan.", err)
		return
	}

	text := narration.Script(rec)
	if text == "" {
		httpjson.WriteError(ctx, w, http.StatusConflict, "Plan has not been generated yet.", nil)
		return
	}

	httpjson.Write(ctx, w, http.StatusOK, response{Text: text})
}
