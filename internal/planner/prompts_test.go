package planner

import (
	"strings"
	"testing"

	"meal-planner-api/internal/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMealPlanPromptDeterministic(t *testing.T) {
	profile := testProfile()

	first, err := buildMealPlanPrompt(profile, 7, 1975, []string{"vegetarian"}, nil)
	require.NoError(t, err)
	second, err := buildMealPlanPrompt(profile, 7, 1975, []string{"vegetarian"}, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildMealPlanPromptContent(t *testing.T) {
	prompt, err := buildMealPlanPrompt(testProfile(), 3, 1975, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "3-day meal plan")
	assert.Contains(t, prompt, "5 feet, 10 inches")
	assert.Contains(t, prompt, "150 lbs")
	assert.Contains(t, prompt, "Estimated Daily Calories: 1975")
	assert.Contains(t, prompt, `"meal_plan"`)
	assert.Contains(t, prompt, "sedentary")
	assert.NotContains(t, prompt, "Dietary Constraints")
	assert.NotContains(t, prompt, "available recipes")
}

func TestBuildMealPlanPromptActivityLevelReadable(t *testing.T) {
	profile := testProfile()
	profile.ActivityLevel = "moderately_active"

	prompt, err := buildMealPlanPrompt(profile, 7, 2100, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "moderately active")
	assert.NotContains(t, prompt, "moderately_active")
}

func TestBuildMealPlanPromptWithRecipes(t *testing.T) {
	recipes := []recipe.Recipe{
		{ID: "1", Name: "Pasta", Ingredients: []string{"pasta", "tomato"}},
	}

	prompt, err := buildMealPlanPrompt(testProfile(), 7, 1975, nil, recipes)
	require.NoError(t, err)
	assert.Contains(t, prompt, "available recipes")
	assert.Contains(t, prompt, "Pasta")
}

func TestBuildGroceryPromptEmbedsPlan(t *testing.T) {
	plan := MealPlan{
		{Day: "Monday", Breakfast: "Oatmeal", Lunch: "Salad", Dinner: "Salmon with rice", Snacks: "Yogurt"},
	}

	prompt, err := buildGroceryPrompt(plan)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Salmon with rice")
	assert.Contains(t, prompt, `"grocery_list"`)
	assert.True(t, strings.Contains(prompt, `"link": null`))
}
