package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.spoonacular.com"

// Recipe is a candidate suggestion from the recipe API.
type Recipe struct {
	ID                    int     `json:"id"`
	Title                 string  `json:"title"`
	Image                 string  `json:"image"`
	UsedIngredientCount   int     `json:"usedIngredientCount"`
	MissedIngredientCount int     `json:"missedIngredientCount"`
	Likes                 float64 `json:"likes"`
}

// Client calls the Spoonacular findByIngredients endpoint. Pure
// pass-through: no caching, no retry.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point at a fake server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// FindByIngredients asks for recipes ranked to maximize used ingredients
// (ranking=2), ignoring pantry staples, nine candidates at a time.
func (c *Client) FindByIngredients(ctx context.Context, ingredients string) ([]Recipe, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing Spoonacular API key")
	}

	q := url.Values{}
	q.Set("ingredients", ingredients)
	q.Set("number", "9")
	q.Set("ranking", "2")
	q.Set("ignorePantry", "true")
	q.Set("apiKey", c.apiKey)

	endpoint := fmt.Sprintf("%s/recipes/findByIngredients?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var remote struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &remote)
		if remote.Message == "" {
			remote.Message = "Failed to fetch recipes."
		}
		return nil, fmt.Errorf("recipe api error (%d): %s", resp.StatusCode, remote.Message)
	}

	var recipes []Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		return nil, fmt.Errorf("recipe api returned invalid JSON: %w", err)
	}
	return recipes, nil
}
