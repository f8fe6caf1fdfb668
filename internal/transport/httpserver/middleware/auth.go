package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fittrack-go/internal/config"
	"fittrack-go/pkg/logger"
)

var ErrInvalidToken = errors.New("invalid token")

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
)

type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

// TokenVerifier resolves a bearer token to the user it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (User, error)
}

type ProfileSaver interface {
	UpsertIdentity(ctx context.Context, userID, email, avatarURL string) error
}

type Auth struct {
	verifier TokenVerifier
	profiles ProfileSaver
	skipAuth bool
	mockUser User
	log      logger.Logger
}

func NewAuth(cfg config.AuthConfig, verifier TokenVerifier, profiles ProfileSaver, log logger.Logger) *Auth {
	return &Auth{
		verifier: verifier,
		profiles: profiles,
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			ID:        strings.TrimSpace(cfg.MockUserID),
			Email:     strings.TrimSpace(cfg.MockUserEmail),
			Name:      strings.TrimSpace(cfg.MockUserName),
			AvatarURL: strings.TrimSpace(cfg.MockUserAvatar),
		},
		log: log,
	}
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			user := a.mockUser
			if user.ID == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
				return
			}
			a.serve(next, w, r, user)
			return
		}

		if a.verifier == nil {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		user, err := a.verifier.Verify(r.Context(), token)
		if err != nil || user.ID == "" {
			a.log.Debug("auth: token rejected", "err", err)
			unauthorized(w)
			return
		}

		a.serve(next, w, r, user)
	})
}

func (a *Auth) serve(next http.Handler, w http.ResponseWriter, r *http.Request, user User) {
	if a.profiles != nil {
		if err := a.profiles.UpsertIdentity(r.Context(), user.ID, user.Email, user.AvatarURL); err != nil {
			a.log.InternalError("auth: upsert identity failed", err, "user_id", user.ID)
		}
	}
	next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func stringFromMap(values map[string]interface{}, key string) string {
	if values == nil {
		return ""
	}
	value, ok := values[key]
	if !ok {
		return ""
	}
	parsed, ok := value.(string)
	if !ok {
		return ""
	}
	return parsed
}
