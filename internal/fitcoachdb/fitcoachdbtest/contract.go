// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package fitcoachdbtest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
)

// SampleProfile returns a profile with every required field set.
func SampleProfile(name string) fitcoachdb.Profile {
	return fitcoachdb.Profile{
		Name:   name,
		Age:    30,
		Gender: "female",
		Weight: 60,
		Height: 165,
		FitnessGoals: fitcoachdb.FitnessGoals{
			PrimaryGoal:         "Weight Loss",
			CurrentFitnessLevel: "Beginner",
		},
		WorkoutPreferences: fitcoachdb.WorkoutPreferences{WorkoutLocation: "Home"},
		DietaryPreferences: fitcoachdb.DietaryPreferences{Type: "Vegan", Restrictions: []string{"peanuts"}},
	}
}

// SamplePlanJSON is a small plan with one day and one meal, as a model
// would return it.
const SamplePlanJSON = `{
  "workoutPlan": {
    "overview": "Full body",
    "days": [
      {
        "day": "Monday",
        "focus": "Legs",
        "exercises": [{"name": "Squat", "sets": 3, "reps": "10-12", "rest": "60 seconds"}]
      }
    ]
  },
  "dietPlan": {
    "overview": "Balanced",
    "dailyCalories": 1800,
    "hydration": "2 liters",
    "supplements": ["B12"],
    "meals": [
      {
        "meal": "Breakfast",
        "time": "8:00 AM",
        "options": [
          {"name": "Oats", "ingredients": "oats, soy milk", "calories": 350, "protein": "12g", "carbs": "55g", "fats": "8g"}
        ]
      }
    ]
  }
}`

// SamplePlan returns SamplePlanJSON decoded.
func SamplePlan() fitcoachdb.Plan {
	return ParsePlan(SamplePlanJSON)
}

// ParsePlan decodes a plan from JSON, panicking if it is invalid.
func ParsePlan(s string) fitcoachdb.Plan {
	var plan fitcoachdb.Plan
	if err := json.Unmarshal([]byte(s), &plan); err != nil {
		panic(err)
	}
	return plan
}

// RunStoreTests checks the PlanStore contract against the store returned by newStore.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) fitcoachdb.PlanStore) {
	t.Helper()

	t.Run("create then attach", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		rec, err := store.Create(ctx, SampleProfile("Ann"))
		require.NoError(t, err)
		require.NotEmpty(t, rec.ID)
		assert.Nil(t, rec.AIPlan)
		assert.False(t, rec.CreatedAt.IsZero())

		got, err := store.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ann", got.Name)
		assert.Nil(t, got.AIPlan)

		attached, err := store.AttachPlan(ctx, rec.ID, SamplePlan())
		require.NoError(t, err)
		require.NotNil(t, attached.AIPlan)
		assert.Equal(t, SamplePlan(), attached.AIPlan)
		assert.Equal(t, "Full body", attached.AIPlan.Outline().WorkoutPlan.Overview)

		replaced := SamplePlan()
		replaced["workoutPlan"].(map[string]any)["overview"] = "Upper body"
		replaced["notes"] = []any{"kept as is"}
		_, err = store.AttachPlan(ctx, rec.ID, replaced)
		require.NoError(t, err)

		got, err = store.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, replaced, got.AIPlan)
		assert.Equal(t, "Upper body", got.AIPlan.Outline().WorkoutPlan.Overview)
	})

	t.Run("attach unknown", func(t *testing.T) {
		store := newStore(t)
		_, err := store.AttachPlan(context.Background(), "missing", SamplePlan())
		require.ErrorIs(t, err, fitcoachdb.ErrNotFound)
	})

	t.Run("list only planned newest first", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		first, err := store.Create(ctx, SampleProfile("first"))
		require.NoError(t, err)
		_, err = store.Create(ctx, SampleProfile("no plan"))
		require.NoError(t, err)
		second, err := store.Create(ctx, SampleProfile("second"))
		require.NoError(t, err)

		_, err = store.AttachPlan(ctx, first.ID, SamplePlan())
		require.NoError(t, err)
		_, err = store.AttachPlan(ctx, second.ID, SamplePlan())
		require.NoError(t, err)

		recs, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, second.ID, recs[0].ID)
		assert.Equal(t, first.ID, recs[1].ID)
		assert.True(t, recs[0].CreatedAt.After(recs[1].CreatedAt))
		for _, rec := range recs {
			assert.NotNil(t, rec.AIPlan)
			assert.NotEmpty(t, rec.FitnessGoals.PrimaryGoal)
		}
	})

	t.Run("delete", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		rec, err := store.Create(ctx, SampleProfile("Ann"))
		require.NoError(t, err)
		_, err = store.AttachPlan(ctx, rec.ID, SamplePlan())
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, rec.ID))

		recs, err := store.List(ctx)
		require.NoError(t, err)
		for _, r := range recs {
			assert.NotEqual(t, rec.ID, r.ID)
		}

		require.ErrorIs(t, store.Delete(ctx, rec.ID), fitcoachdb.ErrNotFound)
		_, err = store.Get(ctx, rec.ID)
		require.ErrorIs(t, err, fitcoachdb.ErrNotFound)
	})
}
