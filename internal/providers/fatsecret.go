package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultFatSecretTokenURL = "https://oauth.fatsecret.com/connect/token"
	DefaultFatSecretAPIURL   = "https://platform.fatsecret.com/rest/server.api"

	fatSecretProvider   = "fatsecret"
	fatSecretMaxResults = 5
)

var foodDescriptionFields = map[string]*regexp.Regexp{
	"Calories": regexp.MustCompile(`Calories:\s*([0-9.]+)`),
	"Fat":      regexp.MustCompile(`Fat:\s*([0-9.]+)`),
	"Carbs":    regexp.MustCompile(`Carbs:\s*([0-9.]+)`),
	"Protein":  regexp.MustCompile(`Protein:\s*([0-9.]+)`),
}

// FoodSearchItem is one search hit, with macros per listed serving.
type FoodSearchItem struct {
	Name        string  `json:"name"`
	ServingQty  float64 `json:"servingQty"`
	ServingUnit string  `json:"servingUnit"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Fat         float64 `json:"fat"`
	Carbs       float64 `json:"carbs"`
}

type FatSecretConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	APIURL       string
}

type FatSecretClient struct {
	config     FatSecretConfig
	httpClient *http.Client
	tokens     *TokenCache
	now        func() time.Time
}

func NewFatSecretClient(config FatSecretConfig, httpClient *http.Client) *FatSecretClient {
	config.ClientID = strings.TrimSpace(config.ClientID)
	config.ClientSecret = strings.TrimSpace(config.ClientSecret)
	if config.TokenURL == "" {
		config.TokenURL = DefaultFatSecretTokenURL
	}
	if config.APIURL == "" {
		config.APIURL = DefaultFatSecretAPIURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	return &FatSecretClient{
		config:     config,
		httpClient: httpClient,
		tokens:     NewTokenCache(DefaultTokenRefreshMargin),
		now:        time.Now,
	}
}

type fatSecretTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (client *FatSecretClient) fetchToken(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "basic")

	request, err := http.NewRequest(http.MethodPost, client.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("build fatsecret token request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.SetBasicAuth(client.config.ClientID, client.config.ClientSecret)

	var payload fatSecretTokenResponse
	if err := doJSON(ctx, client.httpClient, fatSecretProvider, request, &payload); err != nil {
		return "", 0, err
	}
	return payload.AccessToken, time.Duration(payload.ExpiresIn) * time.Second, nil
}

type fatSecretFood struct {
	Name        string `json:"food_name"`
	Description string `json:"food_description"`
}

type fatSecretSearchResponse struct {
	Foods *struct {
		Food json.RawMessage `json:"food"`
	} `json:"foods"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SearchFoods returns at most five foods matching query. An empty result set is not an error.
func (client *FatSecretClient) SearchFoods(ctx context.Context, query string) ([]FoodSearchItem, error) {
	if client.config.ClientID == "" || client.config.ClientSecret == "" {
		return nil, fmt.Errorf("fatsecret: %w", ErrNotConfigured)
	}

	token, err := client.tokens.Get(ctx, client.now(), client.fetchToken)
	if err != nil {
		return nil, fmt.Errorf("fatsecret token: %w", err)
	}

	params := url.Values{}
	params.Set("method", "foods.search")
	params.Set("search_expression", query)
	params.Set("format", "json")
	params.Set("max_results", strconv.Itoa(fatSecretMaxResults))

	request, err := http.NewRequest(http.MethodGet, client.config.APIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build fatsecret search request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+token)

	var payload fatSecretSearchResponse
	if err := doJSON(ctx, client.httpClient, fatSecretProvider, request, &payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		client.tokens.Invalidate()
		return nil, fmt.Errorf("fatsecret error %d: %s", payload.Error.Code, payload.Error.Message)
	}
	if payload.Foods == nil {
		return []FoodSearchItem{}, nil
	}

	foods, err := decodeFatSecretFoods(payload.Foods.Food)
	if err != nil {
		return nil, err
	}
	items := make([]FoodSearchItem, 0, len(foods))
	for _, food := range foods {
		items = append(items, FoodSearchItem{
			Name:        food.Name,
			ServingQty:  1,
			ServingUnit: "serving",
			Calories:    parseFoodDescriptionField(food.Description, "Calories"),
			Protein:     parseFoodDescriptionField(food.Description, "Protein"),
			Fat:         parseFoodDescriptionField(food.Description, "Fat"),
			Carbs:       parseFoodDescriptionField(food.Description, "Carbs"),
		})
	}
	return items, nil
}

// decodeFatSecretFoods accepts both shapes of foods.food: a single object for
// one hit and an array otherwise.
func decodeFatSecretFoods(raw json.RawMessage) ([]fatSecretFood, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var foods []fatSecretFood
		if err := json.Unmarshal(trimmed, &foods); err != nil {
			return nil, fmt.Errorf("decode fatsecret food list: %w", err)
		}
		return foods, nil
	}

	var food fatSecretFood
	if err := json.Unmarshal(trimmed, &food); err != nil {
		return nil, fmt.Errorf("decode fatsecret food: %w", err)
	}
	return []fatSecretFood{food}, nil
}

// parseFoodDescriptionField reads a number out of descriptions such as
// "Per 100g - Calories: 52kcal | Fat: 0.17g | Carbs: 13.81g | Protein: 0.26g".
func parseFoodDescriptionField(description string, field string) float64 {
	pattern, ok := foodDescriptionFields[field]
	if !ok {
		return 0
	}
	match := pattern.FindStringSubmatch(description)
	if len(match) != 2 {
		return 0
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return value
}
