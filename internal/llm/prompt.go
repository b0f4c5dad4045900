// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"encoding/json"
	"fmt"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
)

// WeekDays are the days a workout plan must cover, in order.
var WeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func GeneratePlanSystemPrompt() string {
	return generatePlanSystemPrompt
}

const generatePlanSystemPrompt = `You are an expert personal trainer and registered dietitian. You create safe, realistic and
personalized weekly workout plans and daily diet plans. You always answer with a single JSON object and nothing else.`

// GeneratePlanPrompt returns the prompt asking for a plan for the profile.
// The output only depends on the profile.
func GeneratePlanPrompt(p fitcoachdb.Profile) (string, error) {
	profileJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("llm: marshalling profile: %w", err)
	}
	return fmt.Sprintf(generatePlanPrompt, profileJSON, planShape), nil
}

const generatePlanPrompt = `Create a personalized fitness and diet plan for the following user profile.

User profile:
%s

Take into account the user's age, gender, weight (kg), height (cm), primary goal, current fitness level, workout
location, dietary type and restrictions, and any medical conditions or stress level provided. Never recommend food
that conflicts with the dietary type or restrictions, and adapt exercise intensity to the fitness level and medical
conditions.

Respond with a JSON object that has exactly this shape:
%s

Rules:
- "workoutPlan.days" must contain exactly 7 entries, one for each day of the week in order: Monday, Tuesday,
  Wednesday, Thursday, Friday, Saturday, Sunday. Every day of the week must appear exactly once.
- Rest or active recovery days still appear in "days", with a focus such as "Rest" and an empty "exercises" array.
- Every exercise must include "name", "sets", "reps" and a "rest" duration string such as "60 seconds".
- Exercises must be doable at the user's workout location.
- "dietPlan.meals" must list every meal slot of the day (for example Breakfast, Lunch, Snack, Dinner) with a
  suggested "time".
- Every meal slot must offer at least one option, preferably two. Every option must include "name", "ingredients",
  "calories", "protein", "carbs" and "fats".
- "dietPlan.dailyCalories" is the daily calorie target and "dietPlan.macros" the daily macro breakdown.
- Output only the JSON object. Do not add any explanation or text before or after it, and do not wrap it in
  markdown code fences.
`

const planShape = `{
  "workoutPlan": {
    "overview": "string describing the weekly approach",
    "days": [
      {
        "day": "Monday",
        "focus": "string, e.g. Upper Body Strength or Rest",
        "exercises": [
          { "name": "string", "sets": 3, "reps": "10-12", "rest": "60 seconds" }
        ]
      }
    ]
  },
  "dietPlan": {
    "overview": "string describing the nutrition approach",
    "dailyCalories": 2000,
    "macros": { "protein": "150g", "carbs": "200g", "fats": "60g" },
    "hydration": "string with daily water intake advice",
    "supplements": ["string"],
    "meals": [
      {
        "meal": "Breakfast",
        "time": "8:00 AM",
        "options": [
          {
            "name": "string",
            "ingredients": "string listing ingredients and amounts",
            "calories": 400,
            "protein": "25g",
            "carbs": "45g",
            "fats": "12g"
          }
        ]
      }
    ]
  }
}`
