// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package deleteplan

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

// Handler deletes a saved record.
type Handler struct {
	store fitcoachdb.PlanStore
}

type response struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	err := h.store.Delete(ctx, id)
	if errors.Is(err, fitcoachdb.ErrNotFound) {
		httpjson.WriteError(ctx, w, http.StatusNotFound, "Plan not found.", err)
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "deleteplan: deleting plan", "error", err, "id", id)
		httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Failed to delete plan.", err)
		return
	}

	slog.InfoContext(ctx, "deleteplan: deleted plan", "id", id)
	httpjson.Write(ctx, w, http.StatusOK, response{Message: "Plan deleted successfully.", ID: id})
}
