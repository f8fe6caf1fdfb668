package profiles

import (
	"context"
	"errors"
	"time"

	profiledomain "fittrack-go/internal/domain/profile"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetProfile(ctx context.Context, userID string) (*profiledomain.Profile, error) {
	var profile profiledomain.Profile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profiledomain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresRepository) SaveProfile(ctx context.Context, profile *profiledomain.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"athlete_type",
				"weight_kg",
				"height_cm",
				"weekly_workouts_target",
				"weekly_meals_target",
				"weight_unit",
				"height_unit",
				"dark_mode",
				"onboarded",
				"updated_at",
			}),
		}).
		Create(profile).Error
}

// UpsertIdentity creates a default profile on first sight of a user and only
// refreshes the identity columns afterwards.
func (r *PostgresRepository) UpsertIdentity(ctx context.Context, userID, email, avatarURL string) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if email != "" {
		updates["email"] = email
	}
	if avatarURL != "" {
		updates["avatar_url"] = avatarURL
	}

	profile := profiledomain.Default(userID)
	profile.Email = email
	profile.AvatarURL = avatarURL

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Create(&profile).Error
}
