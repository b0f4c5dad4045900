// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package narration

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
)

// Script returns the text read aloud for a saved plan. It is empty when the
// record has no plan.
func Script(rec *fitcoachdb.PlanRecord) string {
	if rec == nil || rec.AIPlan == nil {
		return ""
	}
	plan := rec.AIPlan.Outline()

	var sb strings.Builder
	sb.WriteString("Hello. Here is your AI fitness plan. ")
	fmt.Fprintf(&sb, "You are %s years old and your primary goal is %s. ",
		strconv.FormatFloat(float64(rec.Age), 'f', -1, 64), rec.FitnessGoals.PrimaryGoal)

	sb.WriteString("Let's review the workout plan. ")
	sentence(&sb, plan.WorkoutPlan.Overview)
	for _, day := range plan.WorkoutPlan.Days {
		fmt.Fprintf(&sb, "On %s, the focus is %s. ", day.Day, day.Focus)
		if len(day.Exercises) == 0 {
			sb.WriteString("This is a rest or active recovery day. ")
			continue
		}
		sb.WriteString("You will perform: ")
		for _, ex := range day.Exercises {
			fmt.Fprintf(&sb, "%s: %s sets of %s reps, with %s rest. ", ex.Name, spoken(ex.Sets), spoken(ex.Reps), spoken(ex.Rest))
		}
	}

	diet := plan.DietPlan
	sb.WriteString("Now for the diet plan. ")
	sentence(&sb, diet.Overview)
	if diet.DailyCalories != nil {
		fmt.Fprintf(&sb, "Your target is %s calories. ", spoken(diet.DailyCalories))
	}
	if m := diet.Macros; m != nil {
		fmt.Fprintf(&sb, "Macros are: %s of protein, %s of carbs, and %s of fats. ",
			spoken(m.Protein), spoken(m.Carbs), spoken(m.Fats))
	}
	if h := spoken(diet.Hydration); h != "" {
		fmt.Fprintf(&sb, "For hydration, %s. ", strings.TrimSuffix(h, "."))
	}

	sb.WriteString("Here are your meal options: ")
	for _, meal := range diet.Meals {
		fmt.Fprintf(&sb, "For %s around %s: ", meal.Meal, meal.Time)
		names := make([]string, 0, len(meal.Options))
		for _, opt := range meal.Options {
			names = append(names, opt.Name)
		}
		sb.WriteString(strings.Join(names, ", or "))
		sb.WriteString(". ")
	}

	sb.WriteString("Your plan narration is complete. Good luck!")
	return sb.String()
}

func sentence(sb *strings.Builder, s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	sb.WriteString(strings.TrimSuffix(s, "."))
	sb.WriteString(". ")
}

// spoken formats a value the model returned as either a number or text.
func spoken(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
