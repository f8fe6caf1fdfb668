package firestore

import (
	"context"

	"fittrack-go/internal/domain/profile"
)

type ProfileRepository struct {
	client *Client
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*profile.Profile, error) {
	p, err := r.client.Users().Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) SaveProfile(ctx context.Context, p *profile.Profile) error {
	return r.client.Users().Doc(p.UserID).Set(ctx, p)
}

func (r *ProfileRepository) UpsertIdentity(ctx context.Context, userID, email, avatarURL string) error {
	fields := map[string]interface{}{
		"updatedAt": firestoreServerTime,
	}
	if email != "" {
		fields["email"] = email
	}
	if avatarURL != "" {
		fields["avatarUrl"] = avatarURL
	}
	return r.client.Users().Doc(userID).Merge(ctx, fields)
}
