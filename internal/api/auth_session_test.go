package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlife/internal/models"
)

func TestRegisterDuplicateEmailReturnsConflict(t *testing.T) {
	ta := newTestApp(t, Options{})
	payload := fiber.Map{"name": "First", "email": "dup@example.com", "password": testPassword}

	if response := ta.do(t, http.MethodPost, "/api/auth/register", "", payload); response.status != http.StatusCreated {
		t.Fatalf("expected first register status 201, got %d", response.status)
	}

	payload["email"] = "  DUP@example.com "
	response := ta.do(t, http.MethodPost, "/api/auth/register", "", payload)
	if response.status != http.StatusConflict {
		t.Fatalf("expected duplicate register status 409, got %d", response.status)
	}
	if response.message() != "email already exists" {
		t.Fatalf("unexpected conflict message %q", response.message())
	}

	var count int64
	ta.database.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one stored user, got %d", count)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	ta := newTestApp(t, Options{})

	response := ta.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Weak", "email": "weak@example.com", "password": "short",
	})
	if response.status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.status)
	}
	if response.body["errors"] == nil {
		t.Fatal("expected validation details in errors field")
	}
}

func TestRegisterResponseOmitsPasswordHash(t *testing.T) {
	ta := newTestApp(t, Options{})

	response := ta.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Private", "email": "private@example.com", "password": testPassword,
	})
	if response.status != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.status)
	}
	data := response.data()
	if data["email"] != "private@example.com" {
		t.Fatalf("expected normalized email in response, got %v", data["email"])
	}
	for _, key := range []string{"passwordHash", "PasswordHash", "resetTokenHash"} {
		if _, present := data[key]; present {
			t.Fatalf("did not expect %s in user payload", key)
		}
	}
}

func TestLoginWithWrongPasswordIssuesNoSession(t *testing.T) {
	ta := newTestApp(t, Options{})
	ta.registerAndLogin(t, "wrong@example.com")

	response := ta.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "wrong@example.com", "password": "WrongPass9"})
	if response.status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.status)
	}
	if response.message() != "invalid credentials" {
		t.Fatalf("unexpected message %q", response.message())
	}
	if response.cookie(authCookieName) != nil {
		t.Fatal("did not expect a session cookie after failed login")
	}
	if _, present := response.body["data"]; present {
		t.Fatal("did not expect data in failed login response")
	}
}

func TestLoginWithUnknownEmailMatchesWrongPassword(t *testing.T) {
	ta := newTestApp(t, Options{})

	response := ta.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "nobody@example.com", "password": testPassword})
	if response.status != http.StatusUnauthorized || response.message() != "invalid credentials" {
		t.Fatalf("expected 401 invalid credentials, got %d %q", response.status, response.message())
	}
}

func TestLoginSetsHTTPOnlySessionCookie(t *testing.T) {
	ta := newTestApp(t, Options{})
	ta.registerAndLogin(t, "cookie@example.com")

	response := ta.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "cookie@example.com", "password": testPassword})
	if response.status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.status)
	}
	cookie := response.cookie(authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie")
	}
	if !cookie.HttpOnly {
		t.Fatal("expected session cookie to be HttpOnly")
	}
	if cookie.Path != "/" {
		t.Fatalf("expected cookie path /, got %q", cookie.Path)
	}
	if response.data()["accessToken"] != cookie.Value {
		t.Fatal("expected body token to match cookie value")
	}
}

func TestLoginThrottlesRepeatedFailures(t *testing.T) {
	ta := newTestApp(t, Options{})
	payload := fiber.Map{"email": "ghost@example.com", "password": testPassword}

	for attempt := 0; attempt < maxAuthFailures; attempt++ {
		if response := ta.do(t, http.MethodPost, "/api/auth/login", "", payload); response.status != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected status 401, got %d", attempt+1, response.status)
		}
	}

	response := ta.do(t, http.MethodPost, "/api/auth/login", "", payload)
	if response.status != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 after %d failures, got %d", maxAuthFailures, response.status)
	}
}

func TestCheckAuthRequiresValidToken(t *testing.T) {
	ta := newTestApp(t, Options{})
	token := ta.registerAndLogin(t, "check@example.com")

	missing := ta.do(t, http.MethodGet, "/api/auth/check-auth", "", nil)
	if missing.status != http.StatusUnauthorized || missing.message() != "unauthorized request" {
		t.Fatalf("expected 401 unauthorized request, got %d %q", missing.status, missing.message())
	}

	garbage := ta.do(t, http.MethodGet, "/api/auth/check-auth", "not-a-jwt", nil)
	if garbage.status != http.StatusUnauthorized || garbage.message() != "invalid access token" {
		t.Fatalf("expected 401 invalid access token, got %d %q", garbage.status, garbage.message())
	}

	valid := ta.do(t, http.MethodGet, "/api/auth/check-auth", token, nil)
	if valid.status != http.StatusOK {
		t.Fatalf("expected status 200 with bearer token, got %d", valid.status)
	}
	if valid.data()["email"] != "check@example.com" {
		t.Fatalf("expected current user in response, got %v", valid.data())
	}
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	ta := newTestApp(t, Options{})
	token := ta.registerAndLogin(t, "logout@example.com")

	response := ta.do(t, http.MethodGet, "/api/auth/logout", token, nil)
	if response.status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.status)
	}
	cookie := response.cookie(authCookieName)
	if cookie == nil {
		t.Fatal("expected logout to overwrite the session cookie")
	}
	if cookie.Value != "" {
		t.Fatalf("expected empty cookie value, got %q", cookie.Value)
	}
}

func TestHealthReportsOK(t *testing.T) {
	ta := newTestApp(t, Options{})

	response := ta.do(t, http.MethodGet, "/healthz", "", nil)
	if response.status != http.StatusOK || response.body["status"] != "ok" {
		t.Fatalf("expected healthy response, got %d %v", response.status, response.body)
	}
}

func TestAuthFallsBackToBearerWhenCookieIsStale(t *testing.T) {
	ta := newTestApp(t, Options{})
	token := ta.registerAndLogin(t, "dual@example.com")

	checkAuth := func(cookieValue string, bearer string) int {
		t.Helper()
		request := httptest.NewRequest(http.MethodGet, "/api/auth/check-auth", nil)
		request.Header.Set("Cookie", authCookieName+"="+cookieValue)
		request.Header.Set("Authorization", "Bearer "+bearer)

		response, err := ta.app.Test(request, -1)
		if err != nil {
			t.Fatalf("check-auth request failed: %v", err)
		}
		defer response.Body.Close()
		return response.StatusCode
	}

	if status := checkAuth("stale-token", token); status != http.StatusOK {
		t.Fatalf("expected valid bearer to win over stale cookie, got %d", status)
	}
	if status := checkAuth(token, "garbage"); status != http.StatusOK {
		t.Fatalf("expected valid cookie to be accepted, got %d", status)
	}
	if status := checkAuth("stale-token", "garbage"); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no token verifies, got %d", status)
	}
}
