package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"meal-planner-api/internal/calories"
	"meal-planner-api/internal/grocery"
	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/recipe"
	"meal-planner-api/internal/session"
	"meal-planner-api/internal/shared"

	"go.uber.org/zap"
)

const defaultRecipeLimit = 50

// RecipeSource supplies catalog recipes for prompt context. Optional.
type RecipeSource interface {
	Recipes(ctx context.Context, limit int) ([]recipe.Recipe, error)
}

// MetricsRecorder receives per-step call metadata. Optional.
type MetricsRecorder interface {
	RecordMeta(ctx context.Context, meta shared.StepMeta) error
}

// PlanRequest carries the validated inputs for a meal-plan generation.
type PlanRequest struct {
	Profile            calories.HealthProfile
	Days               int
	RecipeLimit        int
	DietaryConstraints []string
}

// Planner composes the calorie estimate, prompt construction, model
// invocation, response validation and session storage into the two
// end-to-end operations of the service.
type Planner struct {
	structured *llm.StructuredGenerator
	sessions   session.Store
	recipes    RecipeSource
	metrics    MetricsRecorder
	logger     *zap.Logger
}

// NewPlanner creates a new Planner instance. recipes and metrics may be nil.
func NewPlanner(gen llm.TextGenerator, sessions session.Store, recipes RecipeSource, metrics MetricsRecorder, logger *zap.Logger) *Planner {
	return &Planner{
		structured: llm.NewStructuredGenerator(gen, logger),
		sessions:   sessions,
		recipes:    recipes,
		metrics:    metrics,
		logger:     logger,
	}
}

// GenerateMealPlan produces a meal plan for the given health profile. Either
// a fully validated plan is returned or an error; never a partial plan.
func (p *Planner) GenerateMealPlan(ctx context.Context, req PlanRequest) (MealPlan, error) {
	if req.Days == 0 {
		req.Days = 7
	}
	if err := validateDays(req.Days); err != nil {
		return nil, err
	}

	dailyCalories, err := calories.Estimate(req.Profile)
	if err != nil {
		return nil, err
	}

	var catalog []recipe.Recipe
	if p.recipes != nil {
		limit := req.RecipeLimit
		if limit <= 0 {
			limit = defaultRecipeLimit
		}
		catalog, err = p.recipes.Recipes(ctx, limit)
		if err != nil {
			// The catalog only enriches the prompt; plan without it.
			p.logger.Warn("failed to fetch recipe catalog", zap.Error(err))
			catalog = nil
		}
	}

	prompt, err := buildMealPlanPrompt(req.Profile, req.Days, dailyCalories, req.DietaryConstraints, catalog)
	if err != nil {
		return nil, err
	}

	var plan MealPlan
	res, err := p.structured.Generate(ctx, "meal_plan", prompt, func(data []byte) error {
		var raw struct {
			MealPlan MealPlan `json:"meal_plan"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if err := validateMealPlan(raw.MealPlan, req.Days); err != nil {
			return err
		}
		plan = raw.MealPlan
		return nil
	})
	p.recordMetrics(ctx, "meal_plan", res)
	if err != nil {
		return nil, err
	}

	p.logger.Info("generated meal plan",
		zap.Int("days", req.Days),
		zap.Int("daily_calories", dailyCalories),
		zap.Int("attempts", res.Attempts))
	return plan, nil
}

// GenerateGroceryList extracts a consolidated grocery list from a meal plan
// and stores it under a fresh session id. The create is atomic: the session
// only exists once the full validated list is stored.
func (p *Planner) GenerateGroceryList(ctx context.Context, plan MealPlan) (string, grocery.List, error) {
	if len(plan) == 0 {
		return "", nil, fmt.Errorf("%w: meal plan is empty", calories.ErrInvalidInput)
	}

	prompt, err := buildGroceryPrompt(plan)
	if err != nil {
		return "", nil, err
	}

	var list grocery.List
	res, err := p.structured.Generate(ctx, "grocery_list", prompt, func(data []byte) error {
		var raw struct {
			GroceryList grocery.List `json:"grocery_list"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if err := validateGroceryList(raw.GroceryList); err != nil {
			return err
		}
		list = raw.GroceryList
		return nil
	})
	p.recordMetrics(ctx, "grocery_list", res)
	if err != nil {
		return "", nil, err
	}

	list = grocery.Consolidate(list)

	sessionID, err := p.sessions.Create(ctx, list)
	if err != nil {
		return "", nil, fmt.Errorf("failed to store grocery list: %w", err)
	}

	p.logger.Info("created grocery list",
		zap.String("session_id", sessionID),
		zap.Int("items", len(list)),
		zap.Int("attempts", res.Attempts))
	return sessionID, list, nil
}

// validateGroceryList enforces the grocery-list schema on decoded model
// output: at least one item, required fields filled in.
func validateGroceryList(list grocery.List) error {
	if len(list) == 0 {
		return fmt.Errorf("grocery list is empty")
	}
	for i, it := range list {
		if strings.TrimSpace(it.Item) == "" {
			return fmt.Errorf("item %d has no name", i+1)
		}
		if strings.TrimSpace(it.Quantity) == "" {
			return fmt.Errorf("item %d (%s) has no quantity", i+1, it.Item)
		}
		if strings.TrimSpace(it.Category) == "" {
			return fmt.Errorf("item %d (%s) has no category", i+1, it.Item)
		}
	}
	return nil
}

func (p *Planner) recordMetrics(ctx context.Context, step string, res llm.GenerateResult) {
	if p.metrics == nil || res.Attempts == 0 {
		return
	}
	if err := p.metrics.RecordMeta(ctx, shared.StepMeta{
		Step:     step,
		Usage:    res.Usage,
		Attempts: res.Attempts,
		Latency:  res.Latency,
	}); err != nil {
		p.logger.Warn("failed to record call metrics", zap.Error(err))
	}
}
