package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Recipe is the slim recipe shape fed into prompts as planning context.
type Recipe struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

// Client fetches recipes from the external recipe catalog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a recipe catalog client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Recipes fetches up to limit recipes from the catalog.
func (c *Client) Recipes(ctx context.Context, limit int) ([]Recipe, error) {
	url := fmt.Sprintf("%s/recipes?limit=%d", c.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recipe service error: status=%d", resp.StatusCode)
	}

	var payload struct {
		Recipes []Recipe `json:"recipes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}

	return payload.Recipes, nil
}
