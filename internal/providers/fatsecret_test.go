package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fatSecretFake struct {
	server      *httptest.Server
	tokenCalls  atomic.Int32
	searchCalls atomic.Int32
	searchBody  string
	lastQuery   string
}

func newFatSecretFake(t *testing.T, searchBody string) *fatSecretFake {
	t.Helper()

	fake := &fatSecretFake{searchBody: searchBody}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		fake.tokenCalls.Add(1)
		clientID, secret, ok := r.BasicAuth()
		if !ok || clientID != "client" || secret != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc","expires_in":86400,"token_type":"Bearer"}`))
	})
	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		fake.searchCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fake.lastQuery = r.URL.Query().Get("search_expression")
		assert.Equal(t, "foods.search", r.URL.Query().Get("method"))
		assert.Equal(t, "5", r.URL.Query().Get("max_results"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fake.searchBody))
	})
	fake.server = httptest.NewServer(mux)
	t.Cleanup(fake.server.Close)
	return fake
}

func (fake *fatSecretFake) client() *FatSecretClient {
	return NewFatSecretClient(FatSecretConfig{
		ClientID:     " client ",
		ClientSecret: "secret",
		TokenURL:     fake.server.URL + "/token",
		APIURL:       fake.server.URL + "/api",
	}, fake.server.Client())
}

func TestFatSecretSearchParsesFoodArray(t *testing.T) {
	fake := newFatSecretFake(t, `{"foods":{"food":[
		{"food_name":"Apple","food_description":"Per 100g - Calories: 52kcal | Fat: 0.17g | Carbs: 13.81g | Protein: 0.26g"},
		{"food_name":"Apple Pie","food_description":"Per 1 slice - Calories: 296kcal | Fat: 13.75g | Carbs: 42.5g | Protein: 2.4g"}
	],"max_results":"5","total_results":"2"}}`)

	items, err := fake.client().SearchFoods(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "apple", fake.lastQuery)
	assert.Equal(t, FoodSearchItem{
		Name:        "Apple",
		ServingQty:  1,
		ServingUnit: "serving",
		Calories:    52,
		Protein:     0.26,
		Fat:         0.17,
		Carbs:       13.81,
	}, items[0])
	assert.InDelta(t, 296, items[1].Calories, 0.0001)
}

func TestFatSecretSearchAcceptsSingleFoodObject(t *testing.T) {
	fake := newFatSecretFake(t, `{"foods":{"food":{"food_name":"Kiwi","food_description":"Per 100g - Calories: 61kcal | Fat: 0.52g | Carbs: 14.66g | Protein: 1.14g"}}}`)

	items, err := fake.client().SearchFoods(context.Background(), "kiwi")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Kiwi", items[0].Name)
	assert.InDelta(t, 1.14, items[0].Protein, 0.0001)
}

func TestFatSecretSearchWithoutFoodsReturnsEmptyList(t *testing.T) {
	fake := newFatSecretFake(t, `{"foods":{"max_results":"5","total_results":"0"}}`)

	items, err := fake.client().SearchFoods(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	bare := newFatSecretFake(t, `{}`)
	items, err = bare.client().SearchFoods(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFatSecretSearchReusesCachedToken(t *testing.T) {
	fake := newFatSecretFake(t, `{"foods":{"food":[]}}`)
	client := fake.client()

	for i := 0; i < 3; i++ {
		_, err := client.SearchFoods(context.Background(), "rice")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), fake.tokenCalls.Load())
	assert.Equal(t, int32(3), fake.searchCalls.Load())

	client.now = func() time.Time { return time.Now().Add(24*time.Hour - 30*time.Second) }
	_, err := client.SearchFoods(context.Background(), "rice")
	require.NoError(t, err)
	assert.Equal(t, int32(2), fake.tokenCalls.Load())
}

func TestFatSecretSearchFailures(t *testing.T) {
	t.Run("upstream error payload", func(t *testing.T) {
		fake := newFatSecretFake(t, `{"error":{"code":13,"message":"Invalid token"}}`)
		_, err := fake.client().SearchFoods(context.Background(), "apple")
		require.Error(t, err)
	})

	t.Run("token rejected", func(t *testing.T) {
		fake := newFatSecretFake(t, `{}`)
		client := NewFatSecretClient(FatSecretConfig{
			ClientID:     "client",
			ClientSecret: "wrong",
			TokenURL:     fake.server.URL + "/token",
			APIURL:       fake.server.URL + "/api",
		}, fake.server.Client())

		_, err := client.SearchFoods(context.Background(), "apple")
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
		assert.Equal(t, int32(0), fake.searchCalls.Load())
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewFatSecretClient(FatSecretConfig{}, nil).SearchFoods(context.Background(), "apple")
		require.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("malformed body", func(t *testing.T) {
		fake := newFatSecretFake(t, `{"foods":`)
		_, err := fake.client().SearchFoods(context.Background(), "apple")
		require.Error(t, err)
	})
}

func TestParseFoodDescriptionField(t *testing.T) {
	description := "Per 1 cup - Calories: 216kcal | Fat: 1.76g | Carbs: 44.77g | Protein: 5.03g"

	assert.InDelta(t, 216, parseFoodDescriptionField(description, "Calories"), 0.0001)
	assert.InDelta(t, 1.76, parseFoodDescriptionField(description, "Fat"), 0.0001)
	assert.InDelta(t, 44.77, parseFoodDescriptionField(description, "Carbs"), 0.0001)
	assert.InDelta(t, 5.03, parseFoodDescriptionField(description, "Protein"), 0.0001)
	assert.Zero(t, parseFoodDescriptionField("no numbers here", "Calories"))
	assert.Zero(t, parseFoodDescriptionField(description, "Sodium"))
}
