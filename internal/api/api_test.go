package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/planner"
	"meal-planner-api/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const groceryResponse = `{
  "grocery_list": [
    {"item": "Chicken Breast", "quantity": "2 lbs", "category": "Protein", "link": null, "protein": "25g", "carbs": "0g", "fats": "3g", "cals": "165"},
    {"item": "Apples", "quantity": "6", "category": "Produce", "link": null}
  ]
}`

type stubGenerator struct{}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	if strings.Contains(prompt, "grocery list") {
		return llm.ContentResponse{Content: groceryResponse}, nil
	}

	days := []map[string]string{}
	for i := 1; i <= 3; i++ {
		days = append(days, map[string]string{
			"day":       fmt.Sprintf("Day %d", i),
			"breakfast": "Oatmeal",
			"lunch":     "Salad",
			"dinner":    "Salmon",
			"snacks":    "Yogurt",
		})
	}
	content, _ := json.Marshal(map[string]any{"meal_plan": days})
	return llm.ContentResponse{Content: string(content)}, nil
}

func newTestRouter(t *testing.T) (http.Handler, session.Store) {
	t.Helper()

	store := session.NewMemoryStore(0)
	p := planner.NewPlanner(&stubGenerator{}, store, nil, nil, zap.NewNop())
	return NewRouter(NewHandler(p, store, zap.NewNop()), "http://localhost:3000"), store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, "GET", "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestGenerateMealPlanEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, "POST", "/mealplan", map[string]any{
		"heightFeet":    5,
		"heightInches":  10,
		"weight":        150,
		"activityLevel": "sedentary",
		"days":          3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		MealPlan []map[string]string `json:"meal_plan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.MealPlan, 3)
}

func TestGenerateMealPlanRejectsBadInput(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, "POST", "/mealplan", map[string]any{
		"heightFeet":    5,
		"heightInches":  10,
		"weight":        150,
		"activityLevel": "hyperactive",
		"days":          3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGroceryListLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	plan := []map[string]string{
		{"day": "Monday", "breakfast": "Oatmeal", "lunch": "Salad", "dinner": "Salmon", "snacks": "Yogurt"},
	}
	w := doJSON(t, router, "POST", "/grocery-list", map[string]any{"meal_plan": plan})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		SessionID   string           `json:"session_id"`
		GroceryList []map[string]any `json:"grocery_list"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.SessionID)
	require.NotEmpty(t, created.GroceryList)

	w = doJSON(t, router, "GET", "/grocery-list/"+created.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched struct {
		GroceryList []map[string]any `json:"grocery_list"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.GroceryList, fetched.GroceryList)

	w = doJSON(t, router, "DELETE", "/grocery-list/"+created.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/grocery-list/"+created.SessionID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "DELETE", "/grocery-list/"+created.SessionID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetGroceryListUnknownSession(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, "GET", "/grocery-list/not-a-session", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
