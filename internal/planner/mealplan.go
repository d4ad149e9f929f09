package planner

import (
	"fmt"
	"strings"

	"meal-planner-api/internal/calories"
)

// DayMeal represents the meals for a single day.
type DayMeal struct {
	Day       string `json:"day"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	Snacks    string `json:"snacks"`
}

// MealPlan is an ordered sequence of day plans, one entry per requested day.
// It is returned to the caller and never persisted server-side.
type MealPlan []DayMeal

// validateMealPlan enforces the meal-plan schema on decoded model output:
// exactly the requested number of days, every field filled in.
func validateMealPlan(plan MealPlan, days int) error {
	if len(plan) != days {
		return fmt.Errorf("expected %d day entries, got %d", days, len(plan))
	}
	for i, day := range plan {
		for field, value := range map[string]string{
			"day":       day.Day,
			"breakfast": day.Breakfast,
			"lunch":     day.Lunch,
			"dinner":    day.Dinner,
			"snacks":    day.Snacks,
		} {
			if strings.TrimSpace(value) == "" {
				return fmt.Errorf("day %d is missing %q", i+1, field)
			}
		}
	}
	return nil
}

// validateDays checks the requested plan length against the accepted range.
func validateDays(days int) error {
	if days < 1 || days > 14 {
		return fmt.Errorf("%w: days must be between 1 and 14, got %d", calories.ErrInvalidInput, days)
	}
	return nil
}
