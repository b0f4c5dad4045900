// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listplans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
	"github.com/curioswitch/fitcoach/internal/fitcoachdb/fitcoachdbtest"
)

func TestListPlans(t *testing.T) {
	ctx := context.Background()
	store := fitcoachdbtest.NewMemoryStore()

	ids := make([]string, 0, 3)
	for _, name := range []string{"Ann", "Bob", "Cat"} {
		rec, err := store.Create(ctx, fitcoachdbtest.SampleProfile(name))
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}
	_, err := store.AttachPlan(ctx, ids[0], fitcoachdbtest.SamplePlan())
	require.NoError(t, err)
	_, err = store.AttachPlan(ctx, ids[2], fitcoachdbtest.SamplePlan())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	NewHandler(store).ListPlans(rec, httptest.NewRequest(http.MethodGet, "/users/plans", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Plans []fitcoachdb.PlanRecord `json:"plans"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Plans, 2)
	assert.Equal(t, "Cat", body.Plans[0].Name)
	assert.Equal(t, "Ann", body.Plans[1].Name)
	assert.True(t, body.Plans[0].CreatedAt.After(body.Plans[1].CreatedAt))
	for _, p := range body.Plans {
		assert.NotNil(t, p.AIPlan)
	}
}

func TestListPlansEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fitcoachdbtest.NewMemoryStore()).ListPlans(rec, httptest.NewRequest(http.MethodGet, "/users/plans", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"plans":[]}`, rec.Body.String())
}

func TestListPlansStoreFailure(t *testing.T) {
	store := fitcoachdbtest.NewMemoryStore()
	store.Err = &fitcoachdb.PersistenceError{Op: "list", Err: errors.New("unavailable")}

	rec := httptest.NewRecorder()
	NewHandler(store).ListPlans(rec, httptest.NewRequest(http.MethodGet, "/users/plans", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message"`)
}
