// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getplan

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
	"github.com/curioswitch/fitcoach/internal/httpjson"
)

func NewHandler(store fitcoachdb.PlanStore) *Handler {
	return &Handler{
		store: store,
	}
}

// Handler returns a single saved record.
type Handler struct {
	store fitcoachdb.PlanStore
}

type response struct {
	Plan *fitcoachdb.PlanRecord `json:"plan"`
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	rec, err := h.store.Get(ctx, id)
	if errors.Is(err, fitcoachdb.ErrNotFound) {
		httpjson.WriteError(ctx, w, http.StatusNotFound, "Plan not found.", err)
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "getplan: fetching plan", "error", err, "id", id)
		httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Failed to fetch plan.", err)
		return
	}

	httpjson.Write(ctx, w, http.StatusOK, response{Plan: rec})
}
