// Package api exposes the planner over HTTP. It is thin glue: request
// binding, error-to-status mapping and response shaping around the core
// pipeline.
package api

import (
	"errors"
	"net/http"
	"time"

	"meal-planner-api/internal/calories"
	"meal-planner-api/internal/grocery"
	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/planner"
	"meal-planner-api/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const apiVersion = "1.0.0"

// Handler handles meal-plan and grocery-list requests.
type Handler struct {
	planner  *planner.Planner
	sessions session.Store
	logger   *zap.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(p *planner.Planner, sessions session.Store, logger *zap.Logger) *Handler {
	return &Handler{
		planner:  p,
		sessions: sessions,
		logger:   logger,
	}
}

// NewRouter builds the gin engine with CORS and all routes registered.
func NewRouter(h *Handler, corsOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/", h.Health)
	router.POST("/mealplan", h.GenerateMealPlan)
	router.POST("/grocery-list", h.CreateGroceryList)
	router.GET("/grocery-list/:session_id", h.GetGroceryList)
	router.DELETE("/grocery-list/:session_id", h.DeleteGroceryList)

	return router
}

// Health returns basic API information to verify the service is running.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Meal Planner API",
		"version": apiVersion,
		"status":  "healthy",
	})
}

type mealPlanRequest struct {
	HeightFeet         int      `json:"heightFeet"`
	HeightInches       int      `json:"heightInches"`
	Weight             float64  `json:"weight" binding:"required"`
	ActivityLevel      string   `json:"activityLevel" binding:"required"`
	Days               int      `json:"days"`
	RecipeLimit        int      `json:"recipeLimit"`
	DietaryConstraints []string `json:"dietaryConstraints"`
}

// GenerateMealPlan handles POST /mealplan.
func (h *Handler) GenerateMealPlan(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.planner.GenerateMealPlan(c.Request.Context(), planner.PlanRequest{
		Profile: calories.HealthProfile{
			HeightFeet:    req.HeightFeet,
			HeightInches:  req.HeightInches,
			WeightLbs:     req.Weight,
			ActivityLevel: calories.ActivityLevel(req.ActivityLevel),
		},
		Days:               req.Days,
		RecipeLimit:        req.RecipeLimit,
		DietaryConstraints: req.DietaryConstraints,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meal_plan":    plan,
		"generated_at": time.Now().UTC(),
	})
}

type groceryListRequest struct {
	MealPlan planner.MealPlan `json:"meal_plan" binding:"required"`
}

// CreateGroceryList handles POST /grocery-list.
func (h *Handler) CreateGroceryList(c *gin.Context) {
	var req groceryListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, list, err := h.planner.GenerateGroceryList(c.Request.Context(), req.MealPlan)
	if err != nil {
		h.renderError(c, err)
		return
	}

	grouped, categories := grocery.GroupByCategory(list)
	c.JSON(http.StatusOK, gin.H{
		"session_id":     sessionID,
		"grocery_list":   list,
		"categories":     grouped,
		"category_order": categories,
		"created_at":     time.Now().UTC(),
	})
}

// GetGroceryList handles GET /grocery-list/:session_id.
func (h *Handler) GetGroceryList(c *gin.Context) {
	sessionID := c.Param("session_id")

	list, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	grouped, categories := grocery.GroupByCategory(list)
	c.JSON(http.StatusOK, gin.H{
		"session_id":     sessionID,
		"grocery_list":   list,
		"categories":     grouped,
		"category_order": categories,
		"retrieved_at":   time.Now().UTC(),
	})
}

// DeleteGroceryList handles DELETE /grocery-list/:session_id.
func (h *Handler) DeleteGroceryList(c *gin.Context) {
	sessionID := c.Param("session_id")

	if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Grocery list for session " + sessionID + " has been deleted",
		"deleted_at": time.Now().UTC(),
	})
}

// renderError maps the core error taxonomy onto HTTP statuses so callers can
// tell bad input from a degraded model from a missing session.
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, calories.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "grocery list not found"})
	case errors.Is(err, llm.ErrModelUnavailable):
		h.logger.Error("model unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI model unavailable"})
	case errors.Is(err, llm.ErrModelCallFailed), errors.Is(err, llm.ErrResponseInvalid):
		h.logger.Error("model pipeline failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI service degraded: " + err.Error()})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
