// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package generateplan

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
	"github.com/curioswitch/fitcoach/internal/httpjson"
	"github.com/curioswitch/fitcoach/internal/llm"
	"github.com/curioswitch/fitcoach/internal/metrics"
	"github.com/curioswitch/fitcoach/internal/plangen"
	"github.com/curioswitch/fitcoach/internal/planjson"
	"github.com/curioswitch/fitcoach/internal/profile"
)

// NewHandler returns a Handler.
func NewHandler(store fitcoachdb.PlanStore, generator plangen.Generator, metrics *metrics.Metrics) *Handler {
	return &Handler{
		store:     store,
		generator: generator,
		metrics:   metrics,
	}
}

// Handler saves a profile and generates its plan.
type Handler struct {
	store     fitcoachdb.PlanStore
	generator plangen.Generator
	metrics   *metrics.Metrics
}

type response struct {
	Message  string                 `json:"message"`
	UserData *fitcoachdb.PlanRecord `json:"userData"`
}

func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var p fitcoachdb.Profile
	if err := httpjson.Decode(r, &p); err != nil {
		h.metrics.Generation(metrics.OutcomeInvalid)
		httpjson.WriteError(ctx, w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if err := profile.Validate(&p); err != nil {
		h.metrics.Generation(metrics.OutcomeInvalid)
		message := "Please provide all required fields."
		var invalid *profile.InvalidFieldError
		if errors.As(err, &invalid) {
			message = "Please provide valid values for all fields."
		}
		httpjson.WriteError(ctx, w, http.StatusBadRequest, message, err)
		return
	}

	prompt, err := llm.GeneratePlanPrompt(p)
	if err != nil {
		h.metrics.Generation(metrics.OutcomeFailed)
		slog.ErrorContext(ctx, "generateplan: building prompt", "error", err)
		httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Failed to generate AI plan.", err)
		return
	}

	rec, err := h.store.Create(ctx, p)
	if err != nil {
		h.metrics.Generation(metrics.OutcomeFailed)
		slog.ErrorContext(ctx, "generateplan: saving profile", "error", err)
		httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Failed to save user data.", err)
		return
	}

	text, err := h.generator.Generate(ctx, prompt)
	if err != nil {
		h.metrics.Generation(metrics.OutcomeFailed)
		slog.ErrorContext(ctx, "generateplan: generating plan", "error", err, "id", rec.ID)
		httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Failed to generate AI plan.", err)
		return
	}

	res := planjson.Normalize(text)
	if !res.WellFormed() {
		h.metrics.Generation(metrics.OutcomeMalformed)
		slog.WarnContext(ctx, "generateplan: model returned malformed plan", "error", res.Err, "id", rec.ID)
		httpjson.Write(ctx, w, http.StatusInternalServerError, httpjson.ErrorBody{
			Message: "AI returned an invalid plan format.",
			Error:   res.Err.Error(),
			RawText: res.Raw,
		})
		return
	}

	saved, err := h.store.AttachPlan(ctx, rec.ID, res.Plan)
	if err != nil {
		h.metrics.Generation(metrics.OutcomeFailed)
		slog.ErrorContext(ctx, "generateplan: saving plan", "error", err, "id", rec.ID)
		httpjson.WriteError(ctx, w, http.StatusInternalServerError, "Failed to save AI plan.", err)
		return
	}

	h.metrics.Generation(metrics.OutcomeSuccess)
	httpjson.Write(ctx, w, http.StatusCreated, response{
		Message:  "Plan generated successfully.",
		UserData: saved,
	})
}
