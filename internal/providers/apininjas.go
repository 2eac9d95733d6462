package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultAPINinjasURL = "https://api.api-ninjas.com/v1/caloriesburned"

	apiNinjasProvider = "api-ninjas"
)

type ActivityEstimate struct {
	Name            string  `json:"name"`
	DurationMinutes float64 `json:"durationMinutes"`
	TotalCalories   float64 `json:"totalCalories"`
	CaloriesPerHour float64 `json:"caloriesPerHour"`
}

type APINinjasClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewAPINinjasClient(apiKey string, endpoint string, httpClient *http.Client) *APINinjasClient {
	if endpoint == "" {
		endpoint = DefaultAPINinjasURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	return &APINinjasClient{apiKey: strings.TrimSpace(apiKey), endpoint: endpoint, httpClient: httpClient}
}

type apiNinjasActivity struct {
	Name            string  `json:"name"`
	CaloriesPerHour float64 `json:"calories_per_hour"`
	DurationMinutes float64 `json:"duration_minutes"`
	TotalCalories   float64 `json:"total_calories"`
}

// CaloriesBurned estimates burn for activity. Zero duration or weight leaves
// the upstream defaults in place.
func (client *APINinjasClient) CaloriesBurned(ctx context.Context, activity string, durationMinutes float64, weight float64) ([]ActivityEstimate, error) {
	if client.apiKey == "" {
		return nil, fmt.Errorf("api-ninjas: %w", ErrNotConfigured)
	}

	params := url.Values{}
	params.Set("activity", activity)
	if durationMinutes > 0 {
		params.Set("duration", strconv.FormatFloat(durationMinutes, 'f', -1, 64))
	}
	if weight > 0 {
		params.Set("weight", strconv.FormatFloat(weight, 'f', -1, 64))
	}

	request, err := http.NewRequest(http.MethodGet, client.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build api-ninjas request: %w", err)
	}
	request.Header.Set("X-Api-Key", client.apiKey)

	var activities []apiNinjasActivity
	if err := doJSON(ctx, client.httpClient, apiNinjasProvider, request, &activities); err != nil {
		return nil, err
	}

	estimates := make([]ActivityEstimate, 0, len(activities))
	for _, item := range activities {
		estimates = append(estimates, ActivityEstimate{
			Name:            item.Name,
			DurationMinutes: item.DurationMinutes,
			TotalCalories:   item.TotalCalories,
			CaloriesPerHour: item.CaloriesPerHour,
		})
	}
	return estimates, nil
}
