// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listplans

import (
	"log/slog"
	"net/http"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
	"github.com/curioswitch/fitcoach/internal/httpjson"
)

func NewHandler(store fitcoachdb.PlanStore) *Handler {
	return &Handler{
		store: store,
	}
}

// Handler lists saved plans.
type Handler struct {
	store fitcoachdb.PlanStore
}

type response struct {
	Plans []*fitcoachdb.PlanRecord `json:"plans"`
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	plans, err := h.store.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "listplans: listing plans", "error", err)
		httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Failed to fetch plans.", err)
		return
	}
	if plans == nil {
		plans = []*fitcoachdb.PlanRecord{}
	}

	httpjson.Write(ctx, w, http.StatusOK, response{Plans: plans})
}
