package profile

import "context"

type Repository interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	SaveProfile(ctx context.Context, profile *Profile) error
	UpsertIdentity(ctx context.Context, userID, email, avatarURL string) error
}
