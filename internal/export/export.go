// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package export publishes saved plans as downloadable files.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/fitcoach/internal/file"
	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
)

// ErrNoPlan is returned when exporting a record that has no plan yet.
var ErrNoPlan = errors.New("export: record has no plan")

// Result holds the URLs of the exported files.
type Result struct {
	MarkdownURL string `json:"markdownUrl"`
	JSONURL     string `json:"jsonUrl"`
}

// NewExporter returns an Exporter writing to files.
func NewExporter(files file.Writer) *Exporter {
	return &Exporter{
		files: files,
	}
}

// Exporter uploads a plan sheet and the raw record for a saved plan.
type Exporter struct {
	files file.Writer
}

// Export uploads plans/<id>/plan.md and plans/<id>/plan.json.
func (e *Exporter) Export(ctx context.Context, rec *fitcoachdb.PlanRecord) (*Result, error) {
	if rec.AIPlan == nil {
		return nil, ErrNoPlan
	}

	recJSON, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshalling record: %w", err)
	}
	md := RenderMarkdown(rec)

	dir := "plans/" + rec.ID + "/"
	var res Result

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		url, err := e.files.WriteFile(ctx, dir+"plan.md", "text/markdown; charset=utf-8", []byte(md))
		if err != nil {
			return fmt.Errorf("export: uploading plan sheet: %w", err)
		}
		res.MarkdownURL = url
		return nil
	})
	grp.Go(func() error {
		url, err := e.files.WriteFile(ctx, dir+"plan.json", "application/json", recJSON)
		if err != nil {
			return fmt.Errorf("export: uploading plan record: %w", err)
		}
		res.JSONURL = url
		return nil
	})
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return &res, nil
}

// RenderMarkdown returns the plan sheet for a record.
func RenderMarkdown(rec *fitcoachdb.PlanRecord) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Fitness plan for %s\n\n", rec.Name)
	if !rec.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "Created %s\n\n", rec.CreatedAt.UTC().Format("2006-01-02"))
	}

	sb.WriteString("## Profile\n\n")
	fmt.Fprintf(&sb, "- Age: %s\n", number(rec.Age))
	fmt.Fprintf(&sb, "- Gender: %s\n", rec.Gender)
	fmt.Fprintf(&sb, "- Weight: %s kg\n", number(rec.Weight))
	fmt.Fprintf(&sb, "- Height: %s cm\n", number(rec.Height))
	fmt.Fprintf(&sb, "- Goal: %s\n", rec.FitnessGoals.PrimaryGoal)
	fmt.Fprintf(&sb, "- Fitness level: %s\n", rec.FitnessGoals.CurrentFitnessLevel)
	fmt.Fprintf(&sb, "- Workout location: %s\n", rec.WorkoutPreferences.WorkoutLocation)
	fmt.Fprintf(&sb, "- Diet: %s\n", rec.DietaryPreferences.Type)
	if len(rec.DietaryPreferences.Restrictions) > 0 {
		fmt.Fprintf(&sb, "- Restrictions: %s\n", strings.Join(rec.DietaryPreferences.Restrictions, ", "))
	}
	if info := rec.AdditionalInformation; info != nil {
		if info.MedicalConditions != "" {
			fmt.Fprintf(&sb, "- Medical conditions: %s\n", info.MedicalConditions)
		}
		if info.StressLevel != "" {
			fmt.Fprintf(&sb, "- Stress level: %s\n", info.StressLevel)
		}
	}

	if rec.AIPlan == nil {
		return sb.String()
	}
	plan := rec.AIPlan.Outline()

	sb.WriteString("\n## Workout plan\n\n")
	if plan.WorkoutPlan.Overview != "" {
		sb.WriteString(plan.WorkoutPlan.Overview + "\n\n")
	}
	sb.WriteString("| Day | Focus | Exercises |\n")
	sb.WriteString("| --- | --- | --- |\n")
	for _, day := range plan.WorkoutPlan.Days {
		exercises := "Rest"
		if len(day.Exercises) > 0 {
			parts := make([]string, 0, len(day.Exercises))
			for _, ex := range day.Exercises {
				parts = append(parts, fmt.Sprintf("%s %sx%s (rest %s)", ex.Name, cell(ex.Sets), cell(ex.Reps), cell(ex.Rest)))
			}
			exercises = strings.Join(parts, "<br>")
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", escape(day.Day), escape(day.Focus), escape(exercises))
	}

	diet := plan.DietPlan
	sb.WriteString("\n## Diet plan\n\n")
	if diet.Overview != "" {
		sb.WriteString(diet.Overview + "\n\n")
	}
	if diet.DailyCalories != nil {
		fmt.Fprintf(&sb, "- Daily calories: %s\n", cell(diet.DailyCalories))
	}
	if m := diet.Macros; m != nil {
		fmt.Fprintf(&sb, "- Macros: protein %s, carbs %s, fats %s\n", cell(m.Protein), cell(m.Carbs), cell(m.Fats))
	}
	if diet.Hydration != nil {
		fmt.Fprintf(&sb, "- Hydration: %s\n", cell(diet.Hydration))
	}
	if len(diet.Supplements) > 0 {
		supplements := make([]string, 0, len(diet.Supplements))
		for _, s := range diet.Supplements {
			supplements = append(supplements, cell(s))
		}
		fmt.Fprintf(&sb, "- Supplements: %s\n", strings.Join(supplements, ", "))
	}

	sb.WriteString("\n| Meal | Time | Options |\n")
	sb.WriteString("| --- | --- | --- |\n")
	for _, meal := range diet.Meals {
		parts := make([]string, 0, len(meal.Options))
		for _, opt := range meal.Options {
			parts = append(parts, fmt.Sprintf("%s: %s kcal, protein %s, carbs %s, fats %s",
				opt.Name, cell(opt.Calories), cell(opt.Protein), cell(opt.Carbs), cell(opt.Fats)))
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", escape(meal.Meal), escape(meal.Time), escape(strings.Join(parts, "<br>")))
	}

	return sb.String()
}

func number(n fitcoachdb.Number) string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
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

func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
