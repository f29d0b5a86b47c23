package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/existflow/ironplan/internal/token"
)

func TestRegister_Success(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Alice",
		"email":    "a@x.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		User    struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, rec, &resp)

	if resp.Message != "User registered successfully" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if resp.User.ID == "" || resp.User.Email != "a@x.com" {
		t.Fatalf("unexpected user %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked in response: %s", rec.Body.String())
	}
}

func TestRegister_EnumeratesAllViolatedFields(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "",
		"email":    "not-an-email",
		"password": "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	decodeBody(t, rec, &resp)

	fields := map[string]bool{}
	for _, fe := range resp.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{"name", "email", "password"} {
		if !fields[want] {
			t.Fatalf("expected violation for %q, got %v", want, fields)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "Alice", "a@x.com")

	rec := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Impostor",
		"email":    "a@x.com",
		"password": "secret2",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &resp)
	if resp.Message != "Email already in use" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestLogin_ReturnsVerifiableToken(t *testing.T) {
	srv := newTestServer(t)
	bearer, userID := registerAndLogin(t, srv, "Alice", "a@x.com")

	got, err := token.NewService(testSecret).Verify(bearer)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != userID {
		t.Fatalf("token carries %s, expected %s", got, userID)
	}
}

// Wrong password and unknown email must be indistinguishable so the
// login endpoint cannot be used to probe which accounts exist.
func TestLogin_NoUserExistenceLeakage(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "Alice", "a@x.com")

	wrongPassword := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "wrong-password",
	})
	unknownEmail := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "wrong-password",
	})

	if wrongPassword.Code != http.StatusBadRequest || unknownEmail.Code != http.StatusBadRequest {
		t.Fatalf("expected 400/400, got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("responses differ: %q vs %q", wrongPassword.Body.String(), unknownEmail.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, wrongPassword, &resp)
	if resp.Message != "Invalid credentials" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestMe(t *testing.T) {
	srv := newTestServer(t)
	bearer, userID := registerAndLogin(t, srv, "Alice", "a@x.com")

	rec := doJSON(t, srv, http.MethodGet, "/me", bearer, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	decodeBody(t, rec, &user)
	if user.ID != userID || user.Email != "a@x.com" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer format", "Basic abc"},
		{"garbage token", "Bearer not-a-real-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/projects", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}
