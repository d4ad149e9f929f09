package planner

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"meal-planner-api/internal/calories"
	"meal-planner-api/internal/recipe"
)

//go:embed mealplan_prompt.md
var mealPlanPrompt string

//go:embed grocery_prompt.md
var groceryPrompt string

type mealPlanPromptData struct {
	Days               int
	HeightFeet         int
	HeightInches       int
	WeightLbs          float64
	ActivityLevel      string
	DailyCalories      int
	DietaryConstraints string
	Recipes            string
}

type groceryPromptData struct {
	MealPlanJSON string
}

// buildMealPlanPrompt renders the meal-plan prompt. Output is deterministic
// for identical inputs; no randomness enters at this layer.
func buildMealPlanPrompt(profile calories.HealthProfile, days, dailyCalories int, constraints []string, recipes []recipe.Recipe) (string, error) {
	data := mealPlanPromptData{
		Days:               days,
		HeightFeet:         profile.HeightFeet,
		HeightInches:       profile.HeightInches,
		WeightLbs:          profile.WeightLbs,
		ActivityLevel:      strings.ReplaceAll(string(profile.ActivityLevel), "_", " "),
		DailyCalories:      dailyCalories,
		DietaryConstraints: strings.Join(constraints, ", "),
	}

	if len(recipes) > 0 {
		recipesJSON, err := json.MarshalIndent(recipes, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal recipes for prompt: %w", err)
		}
		data.Recipes = string(recipesJSON)
	}

	tmpl, err := template.New("mealplan").Parse(mealPlanPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// buildGroceryPrompt renders the grocery-extraction prompt for a meal plan.
func buildGroceryPrompt(plan MealPlan) (string, error) {
	planJSON, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal meal plan for prompt: %w", err)
	}

	tmpl, err := template.New("grocery").Parse(groceryPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, groceryPromptData{MealPlanJSON: string(planJSON)}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
