// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package fitcoachdb

import (
	"encoding/json"
)

// Plan is the workout and diet plan generated for a profile. It is the JSON
// object the model returned, kept as decoded so no key or value is lost.
type Plan map[string]any

// Outline reads the parts of the plan that are rendered for the user. Values
// with an unexpected shape are left empty.
func (p Plan) Outline() Outline {
	var o Outline
	if p == nil {
		return o
	}
	b, err := json.Marshal(p)
	if err != nil {
		return o
	}
	// Type mismatches only skip the mismatched value.
	_ = json.Unmarshal(b, &o)
	return o
}

// Values the model fills in as either numbers or free text, such as sets,
// reps or calories, are kept as the decoded JSON value.

// Outline is the typed view of a Plan.
type Outline struct {
	WorkoutPlan WorkoutPlan `json:"workoutPlan"`
	DietPlan    DietPlan    `json:"dietPlan"`
}

// Exercise is a single exercise within a workout day.
type Exercise struct {
	Name string `json:"name"`
	Sets any    `json:"sets"`
	Reps any    `json:"reps"`

	// Rest is the rest between sets, e.g. "60 seconds".
	Rest any `json:"rest"`
}

// WorkoutDay is the workout for one day of the week. Rest days have no exercises.
type WorkoutDay struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

// WorkoutPlan is a weekly workout schedule.
type WorkoutPlan struct {
	Overview string       `json:"overview"`
	Days     []WorkoutDay `json:"days"`
}

// Macros is a macronutrient breakdown.
type Macros struct {
	Protein any `json:"protein"`
	Carbs   any `json:"carbs"`
	Fats    any `json:"fats"`
}

// MealOption is one dish that can be eaten for a meal slot.
type MealOption struct {
	Name        string `json:"name"`
	Ingredients any    `json:"ingredients"`
	Calories    any    `json:"calories"`
	Protein     any    `json:"protein"`
	Carbs       any    `json:"carbs"`
	Fats        any    `json:"fats"`
}

// Meal is a meal slot of the day, e.g. breakfast, with its options.
type Meal struct {
	Meal    string       `json:"meal"`
	Time    string       `json:"time"`
	Options []MealOption `json:"options"`
}

// DietPlan is the daily diet recommendation.
type DietPlan struct {
	Overview      string  `json:"overview"`
	DailyCalories any     `json:"dailyCalories"`
	Macros        *Macros `json:"macros,omitempty"`
	Hydration     any     `json:"hydration"`
	Supplements   []any   `json:"supplements"`
	Meals         []Meal  `json:"meals"`
}
