package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlife/internal/db"
	"github.com/terraincognita07/fitlife/internal/providers"
	"gorm.io/gorm"
)

const (
	testSecretKey = "test-secret-key-with-at-least-32-characters"
	testPassword  = "StrongPass1"
)

type recordingMailer struct {
	mu   sync.Mutex
	err  error
	urls []string
}

func (mailer *recordingMailer) SendPasswordReset(_ context.Context, _ string, resetURL string) error {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if mailer.err != nil {
		return mailer.err
	}
	mailer.urls = append(mailer.urls, resetURL)
	return nil
}

func (mailer *recordingMailer) lastToken(t *testing.T) string {
	t.Helper()
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.urls) == 0 {
		t.Fatal("expected a reset email to be sent")
	}
	last := mailer.urls[len(mailer.urls)-1]
	index := strings.LastIndex(last, "/reset-password/")
	if index < 0 {
		t.Fatalf("unexpected reset url %q", last)
	}
	return last[index+len("/reset-password/"):]
}

type stubFoodSearcher struct {
	items []providers.FoodSearchItem
	err   error
}

func (stub *stubFoodSearcher) SearchFoods(context.Context, string) ([]providers.FoodSearchItem, error) {
	return stub.items, stub.err
}

type stubActivityEstimator struct {
	estimates []providers.ActivityEstimate
	err       error
}

func (stub *stubActivityEstimator) CaloriesBurned(context.Context, string, float64, float64) ([]providers.ActivityEstimate, error) {
	return stub.estimates, stub.err
}

type stubChatCoach struct {
	reply string
	err   error
}

func (stub *stubChatCoach) Reply(context.Context, []providers.ChatMessage) (string, error) {
	return stub.reply, stub.err
}

var errUpstream = errors.New("upstream unavailable")

type testApp struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
	mailer   *recordingMailer
}

func newTestApp(t *testing.T, options Options) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "fitlife-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	mail := &recordingMailer{}
	options.SecretKey = testSecretKey
	options.ClientURL = "http://localhost:5173"
	if options.Mailer == nil {
		options.Mailer = mail
	}

	handler, err := NewHandler(database, options)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, handler)

	return &testApp{app: app, handler: handler, database: database, mailer: mail}
}

type testResponse struct {
	status  int
	cookies []*http.Cookie
	body    map[string]any
}

func (response testResponse) message() string {
	message, _ := response.body["message"].(string)
	return message
}

func (response testResponse) data() map[string]any {
	data, _ := response.body["data"].(map[string]any)
	return data
}

func (response testResponse) dataList() []any {
	list, _ := response.body["data"].([]any)
	return list
}

func (response testResponse) cookie(name string) *http.Cookie {
	for _, cookie := range response.cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func (ta *testApp) do(t *testing.T, method string, path string, token string, payload any) testResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read %s %s body: %v", method, path, err)
	}
	decoded := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode %s %s body %q: %v", method, path, string(raw), err)
		}
	}

	return testResponse{status: response.StatusCode, cookies: response.Cookies(), body: decoded}
}

// registerAndLogin creates an account through the API and returns its bearer token.
func (ta *testApp) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	registered := ta.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Tester", "email": email, "password": testPassword,
	})
	if registered.status != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d (%s)", registered.status, registered.message())
	}

	return ta.login(t, email, testPassword)
}

func (ta *testApp) login(t *testing.T, email string, password string) string {
	t.Helper()

	loggedIn := ta.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": email, "password": password})
	if loggedIn.status != http.StatusOK {
		t.Fatalf("expected login status 200, got %d (%s)", loggedIn.status, loggedIn.message())
	}
	token, _ := loggedIn.data()["accessToken"].(string)
	if token == "" {
		t.Fatal("expected access token in login response")
	}
	return token
}

func todayKey() string {
	return time.Now().UTC().Format("2006-01-02")
}

func formatID(id float64) string {
	return strconv.FormatUint(uint64(id), 10)
}
