package calories

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks caller-supplied data that fails validation before it
// ever reaches the model pipeline.
var ErrInvalidInput = errors.New("invalid input")

// ActivityLevel describes how active a person is day to day.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtraActive      ActivityLevel = "extra_active"
)

// activityMultipliers maps activity levels to their TDEE multiplier. It is
// the single source of truth for valid activity levels.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	ExtraActive:      1.9,
}

// HealthProfile holds the anthropometric input for a calorie estimate.
type HealthProfile struct {
	HeightFeet    int           `json:"heightFeet"`
	HeightInches  int           `json:"heightInches"`
	WeightLbs     float64       `json:"weight"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
}

// Validate checks the profile against the accepted ranges.
func (p HealthProfile) Validate() error {
	if p.HeightFeet < 0 {
		return fmt.Errorf("%w: heightFeet must not be negative, got %d", ErrInvalidInput, p.HeightFeet)
	}
	if p.HeightInches < 0 || p.HeightInches > 11 {
		return fmt.Errorf("%w: heightInches must be between 0 and 11, got %d", ErrInvalidInput, p.HeightInches)
	}
	if p.WeightLbs <= 0 {
		return fmt.Errorf("%w: weight must be positive, got %g", ErrInvalidInput, p.WeightLbs)
	}
	if _, ok := activityMultipliers[p.ActivityLevel]; !ok {
		return fmt.Errorf("%w: unknown activity level %q", ErrInvalidInput, p.ActivityLevel)
	}
	return nil
}

// Estimate computes the daily calorie target for a profile using the
// Mifflin-St Jeor equation and an activity multiplier.
//
// The equation normally takes age and biological sex as inputs. Neither is
// collected here, so the estimate applies a fixed policy uniformly: age 30
// and the male "+5" constant. The result is a baseline, not medical advice.
func Estimate(profile HealthProfile) (int, error) {
	if err := profile.Validate(); err != nil {
		return 0, err
	}

	totalInches := profile.HeightFeet*12 + profile.HeightInches
	heightCM := float64(totalInches) * 2.54
	weightKG := profile.WeightLbs * 0.453592

	// BMR = 10*weight(kg) + 6.25*height(cm) - 5*age + 5, age fixed at 30
	bmr := 10*weightKG + 6.25*heightCM - 5*30 + 5

	return int(bmr * activityMultipliers[profile.ActivityLevel]), nil
}
