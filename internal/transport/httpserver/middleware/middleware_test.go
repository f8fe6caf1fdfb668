package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"

	"fittrack-go/internal/config"
	"fittrack-go/pkg/logger"
)

type stubVerifier struct {
	tokens map[string]User
}

func (v stubVerifier) Verify(_ context.Context, token string) (User, error) {
	user, ok := v.tokens[token]
	if !ok {
		return User{}, ErrInvalidToken
	}
	return user, nil
}

type recordingProfiles struct {
	calls []string
	err   error
}

func (p *recordingProfiles) UpsertIdentity(_ context.Context, userID, email, _ string) error {
	p.calls = append(p.calls, userID+"|"+email)
	return p.err
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		userID, _ := UserIDFromContext(r.Context())
		_, _ = w.Write([]byte(user.ID + ":" + userID))
	})
}

func TestAuthAcceptsValidToken(t *testing.T) {
	profiles := &recordingProfiles{}
	verifier := stubVerifier{tokens: map[string]User{"good": {ID: "u1", Email: "a@example.com"}}}
	mw := NewAuth(config.AuthConfig{}, verifier, profiles, logger.Nop()).Middleware(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "bearer good")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "u1:u1" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if len(profiles.calls) != 1 || profiles.calls[0] != "u1|a@example.com" {
		t.Fatalf("expected identity upsert, got %v", profiles.calls)
	}
}

func TestAuthRejectsBadHeaders(t *testing.T) {
	verifier := stubVerifier{tokens: map[string]User{"good": {ID: "u1"}}}
	mw := NewAuth(config.AuthConfig{}, verifier, nil, logger.Nop()).Middleware(echoUser())

	for _, header := range []string{"", "good", "Basic good", "Bearer bad", "Bearer good extra"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthUpsertFailureDoesNotBlock(t *testing.T) {
	profiles := &recordingProfiles{err: errors.New("db down")}
	verifier := stubVerifier{tokens: map[string]User{"good": {ID: "u1"}}}
	mw := NewAuth(config.AuthConfig{}, verifier, profiles, logger.Nop()).Middleware(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthSkipUsesMockUser(t *testing.T) {
	cfg := config.AuthConfig{SkipAuth: true, MockUserID: " mock "}
	mw := NewAuth(cfg, nil, nil, logger.Nop()).Middleware(echoUser())

	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "mock:mock" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}

	cfg.MockUserID = ""
	mw = NewAuth(cfg, nil, nil, logger.Nop()).Middleware(echoUser())
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthWithoutVerifier(t *testing.T) {
	mw := NewAuth(config.AuthConfig{}, nil, nil, logger.Nop()).Middleware(echoUser())
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestSupabaseVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Header.Get("apikey") != "key" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"email":"a@example.com","user":{"sub":"u1"},"user_metadata":{"full_name":"Ann","avatar_url":"http://img"}}`))
	}))
	defer srv.Close()

	verifier, err := NewSupabaseVerifier(config.AuthConfig{SupabaseURL: srv.URL + "/", SupabaseKey: "key"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, err := verifier.Verify(context.Background(), "good")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "u1" || user.Name != "Ann" || user.AvatarURL != "http://img" {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := verifier.Verify(context.Background(), "bad"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSupabaseVerifierRequiresConfig(t *testing.T) {
	if _, err := NewSupabaseVerifier(config.AuthConfig{}); err == nil {
		t.Fatalf("expected error")
	}
}

type stubIDTokens struct{}

func (stubIDTokens) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if idToken != "good" {
		return nil, errors.New("expired")
	}
	return &auth.Token{UID: "fb1", Claims: map[string]interface{}{"email": "b@example.com", "picture": "http://pic"}}, nil
}

func TestFirebaseVerifier(t *testing.T) {
	verifier := &FirebaseVerifier{client: stubIDTokens{}}

	user, err := verifier.Verify(context.Background(), "good")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "fb1" || user.Email != "b@example.com" || user.AvatarURL != "http://pic" {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := verifier.Verify(context.Background(), "bad"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := NewCORS([]string{"https://app.example", " "})(next)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("expected allowed origin header")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("expected origin not echoed")
	}
}
