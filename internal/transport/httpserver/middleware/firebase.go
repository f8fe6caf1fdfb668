package middleware

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier checks Firebase Authentication ID tokens.
type FirebaseVerifier struct {
	client idTokenVerifier
}

func NewFirebaseVerifier(ctx context.Context, projectID string) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (User, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return User{
		ID:        decoded.UID,
		Email:     stringFromMap(decoded.Claims, "email"),
		Name:      stringFromMap(decoded.Claims, "name"),
		AvatarURL: stringFromMap(decoded.Claims, "picture"),
	}, nil
}
