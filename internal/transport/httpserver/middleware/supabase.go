package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fittrack-go/internal/config"
)

type userResponse struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	Sub          string                 `json:"sub"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	User         struct {
		ID  string `json:"id"`
		Sub string `json:"sub"`
	} `json:"user"`
}

// SupabaseVerifier checks tokens against the Supabase auth user endpoint.
type SupabaseVerifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSupabaseVerifier(cfg config.AuthConfig) (*SupabaseVerifier, error) {
	baseURL := strings.TrimRight(cfg.SupabaseURL, "/")
	if baseURL == "" || cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("supabase url and key are required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &SupabaseVerifier{
		baseURL: baseURL,
		apiKey:  cfg.SupabaseKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("%w: status %d", ErrInvalidToken, resp.StatusCode)
	}

	var payload userResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID := firstNonEmpty(payload.ID, payload.Sub, payload.User.ID, payload.User.Sub)
	if userID == "" {
		return User{}, ErrInvalidToken
	}

	return User{
		ID:        userID,
		Email:     payload.Email,
		Name:      firstNonEmpty(stringFromMap(payload.UserMetadata, "name"), stringFromMap(payload.UserMetadata, "full_name")),
		AvatarURL: stringFromMap(payload.UserMetadata, "avatar_url"),
	}, nil
}
