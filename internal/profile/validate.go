// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
)

// ErrValidation matches every error returned by Validate.
var ErrValidation = errors.New("profile: invalid profile")

// MissingFieldError is returned when a required field is absent or empty.
// Numeric fields must also be greater than zero.
type MissingFieldError struct {
	// Field is the dotted JSON path of the field, e.g. fitnessGoals.primaryGoal.
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidFieldError is returned when a field is not one of its allowed values.
type InvalidFieldError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid value %q for %s, must be one of %s", e.Value, e.Field, strings.Join(e.Allowed, ", "))
}

func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// allowedValues are the allowed values of enumerated fields by JSON path.
var allowedValues = map[string][]string{
	"fitnessGoals.primaryGoal":           fitcoachdb.PrimaryGoals,
	"fitnessGoals.currentFitnessLevel":   fitcoachdb.FitnessLevels,
	"workoutPreferences.workoutLocation": fitcoachdb.WorkoutLocations,
	"dietaryPreferences.type":            fitcoachdb.DietTypes,
	"additionalInformation.stressLevel":  fitcoachdb.StressLevels,
}

// Validate checks that p has every required field and that enumerated fields
// have allowed values. Enumerated values are rewritten to their canonical
// spelling, so "hybrid" becomes "Hybrid".
func Validate(p *fitcoachdb.Profile) error {
	enums := map[string]*string{
		"fitnessGoals.primaryGoal":           &p.FitnessGoals.PrimaryGoal,
		"fitnessGoals.currentFitnessLevel":   &p.FitnessGoals.CurrentFitnessLevel,
		"workoutPreferences.workoutLocation": &p.WorkoutPreferences.WorkoutLocation,
		"dietaryPreferences.type":            &p.DietaryPreferences.Type,
	}
	if info := p.AdditionalInformation; info != nil {
		enums["additionalInformation.stressLevel"] = &info.StressLevel
	}

	p.Name = strings.TrimSpace(p.Name)
	p.Gender = strings.TrimSpace(p.Gender)
	for _, v := range enums {
		*v = strings.TrimSpace(*v)
	}

	if err := validate.Struct(p); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return fmt.Errorf("profile: validating: %w", err)
		}
		return fieldError(errs)
	}

	for field, v := range enums {
		if *v == "" {
			continue
		}
		canonical, ok := canonicalize(*v, allowedValues[field])
		if !ok {
			return &InvalidFieldError{Field: field, Value: *v, Allowed: allowedValues[field]}
		}
		*v = canonical
	}

	restrictions := p.DietaryPreferences.Restrictions[:0]
	for _, r := range p.DietaryPreferences.Restrictions {
		if r = strings.TrimSpace(r); r != "" {
			restrictions = append(restrictions, r)
		}
	}
	p.DietaryPreferences.Restrictions = restrictions

	return nil
}

// fieldError returns the error for the first missing field, or else for the
// first field with a value that is not allowed.
func fieldError(errs validator.ValidationErrors) error {
	for _, fe := range errs {
		switch fe.Tag() {
		case "required", "gt":
			return &MissingFieldError{Field: fieldPath(fe)}
		}
	}
	fe := errs[0]
	field := fieldPath(fe)
	return &InvalidFieldError{Field: field, Value: fmt.Sprint(fe.Value()), Allowed: allowedValues[field]}
}

// fieldPath drops the struct name from the namespace, e.g.
// Profile.fitnessGoals.primaryGoal becomes fitnessGoals.primaryGoal.
func fieldPath(fe validator.FieldError) string {
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}

func canonicalize(value string, allowed []string) (string, bool) {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return a, true
		}
	}
	return "", false
}
