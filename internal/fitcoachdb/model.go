// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package fitcoachdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Number is a profile measurement. Forms submit numbers as strings, so both
// JSON numbers and numeric strings are accepted. An empty string or null
// decodes to zero. NaN and infinities are rejected.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("fitcoachdb: %q is not a number", s)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// FitnessGoals are what the user wants to achieve.
type FitnessGoals struct {
	// PrimaryGoal is one of PrimaryGoals.
	PrimaryGoal string `firestore:"primaryGoal" json:"primaryGoal" validate:"required,oneofci='Weight Loss' 'Muscle Gain' 'General Fitness' 'Build Strength' 'Improve Endurance' 'Increase Flexibility'"`

	// CurrentFitnessLevel is one of FitnessLevels.
	CurrentFitnessLevel string `firestore:"currentFitnessLevel" json:"currentFitnessLevel" validate:"required,oneofci=Beginner Intermediate Advanced"`
}

// WorkoutPreferences are constraints on how the user trains.
type WorkoutPreferences struct {
	// WorkoutLocation is one of WorkoutLocations.
	WorkoutLocation string `firestore:"workoutLocation" json:"workoutLocation" validate:"required,oneofci=Home Gym Outdoor Hybrid"`
}

// DietaryPreferences are constraints on what the user eats.
type DietaryPreferences struct {
	// Type is one of DietTypes.
	Type string `firestore:"type" json:"type" validate:"required,oneofci=Vegetarian Vegan Non-Vegetarian Keto Pescatarian Other"`

	// Restrictions are free-form restrictions such as allergies.
	Restrictions []string `firestore:"restrictions" json:"restrictions"`
}

// AdditionalInformation is optional context about the user.
type AdditionalInformation struct {
	MedicalConditions string `firestore:"medicalConditions" json:"medicalConditions,omitempty"`

	// StressLevel is empty or one of StressLevels.
	StressLevel string `firestore:"stressLevel" json:"stressLevel,omitempty" validate:"omitempty,oneofci=Low Medium High"`
}

// Profile is the fitness and diet intake submitted by a user.
type Profile struct {
	Name   string `firestore:"name" json:"name" validate:"required"`
	Age    Number `firestore:"age" json:"age" validate:"gt=0"`
	Gender string `firestore:"gender" json:"gender" validate:"required"`

	// Weight is the body weight in kilograms.
	Weight Number `firestore:"weight" json:"weight" validate:"gt=0"`

	// Height is the body height in centimeters.
	Height Number `firestore:"height" json:"height" validate:"gt=0"`

	FitnessGoals          FitnessGoals           `firestore:"fitnessGoals" json:"fitnessGoals"`
	WorkoutPreferences    WorkoutPreferences     `firestore:"workoutPreferences" json:"workoutPreferences"`
	DietaryPreferences    DietaryPreferences     `firestore:"dietaryPreferences" json:"dietaryPreferences"`
	AdditionalInformation *AdditionalInformation `firestore:"additionalInformation" json:"additionalInformation,omitempty"`
}

// Allowed values of the enumerated profile fields. The validate tags above
// list the same values.
var (
	PrimaryGoals = []string{
		"Weight Loss", "Muscle Gain", "General Fitness", "Build Strength", "Improve Endurance", "Increase Flexibility",
	}
	FitnessLevels    = []string{"Beginner", "Intermediate", "Advanced"}
	WorkoutLocations = []string{"Home", "Gym", "Outdoor", "Hybrid"}
	DietTypes        = []string{"Vegetarian", "Vegan", "Non-Vegetarian", "Keto", "Pescatarian", "Other"}
	StressLevels     = []string{"Low", "Medium", "High"}
)

// PlanRecord is a profile together with its generated plan. Records are
// stored in a single collection keyed by ID.
type PlanRecord struct {
	// ID is the unique identifier of the record, assigned on creation.
	ID string `firestore:"id" json:"_id"`

	Profile

	// AIPlan is the generated plan, nil until generation succeeds.
	AIPlan Plan `firestore:"aiPlan" json:"aiPlan"`

	// HasPlan mirrors AIPlan != nil so listings can filter on it.
	HasPlan bool `firestore:"hasPlan" json:"-"`

	// CreatedAt is when the profile was first saved.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
