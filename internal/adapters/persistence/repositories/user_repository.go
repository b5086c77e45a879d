package repositories

import (
	"context"

	"roomfinder/internal/adapters/persistence/models"
	"roomfinder/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userProfileRepository implements UserProfileRepository interface
type userProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository creates a new user profile repository
func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &userProfileRepository{db: db}
}

var userProfileColumns = []string{
	"name", "gender", "budget", "lease_duration", "smoking", "drinking",
	"open_to_mixed_gender", "open_to_roommate_find", "profile_picture",
	"contact_email", "contact_phone", "contact_preferred_contact", "updated_at",
}

func (r *userProfileRepository) withSaved(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("SavedListings", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC, listing_id ASC")
	})
}

// Create creates a new user profile
func (r *userProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	m := models.UserProfileFromDomain(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapError(err)
	}
	profile.CreatedAt, profile.UpdatedAt = m.CreatedAt, m.UpdatedAt
	if profile.SavedListingIDs == nil {
		profile.SavedListingIDs = []string{}
	}
	return nil
}

// GetByID gets a user profile by ID
func (r *userProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	var profile models.UserProfile
	if err := r.withSaved(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, wrapError(err)
	}
	return profile.ToDomain(), nil
}

// GetByUsername gets a user profile by username
func (r *userProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	var profile models.UserProfile
	if err := r.withSaved(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
		return nil, wrapError(err)
	}
	return profile.ToDomain(), nil
}

// List returns every user profile ordered by username
func (r *userProfileRepository) List(ctx context.Context) ([]*domain.UserProfile, error) {
	var rows []models.UserProfile
	if err := r.withSaved(ctx).Order("username ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	profiles := make([]*domain.UserProfile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, rows[i].ToDomain())
	}
	return profiles, nil
}

// Update writes the mutable profile columns
func (r *userProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	m := models.UserProfileFromDomain(profile)
	res := r.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("username = ?", profile.Username).
		Select(userProfileColumns).
		Updates(m)
	return updateExisting(ctx, r.db, res, &models.UserProfile{}, "username = ?", profile.Username)
}

// DeleteByUsername removes the profile and its saved listing rows
func (r *userProfileRepository) DeleteByUsername(ctx context.Context, username string) error {
	id, err := r.idOf(ctx, username)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Where("user_profile_id = ?", id).Delete(&models.SavedListing{}).Error; err != nil {
		return err
	}
	return deleteExisting(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.UserProfile{}))
}

// AddSavedListing inserts the pair unless it already exists
func (r *userProfileRepository) AddSavedListing(ctx context.Context, username, listingID string) error {
	id, err := r.idOf(ctx, username)
	if err != nil {
		return err
	}

	saved := &models.SavedListing{UserProfileID: id, ListingID: listingID}
	return wrapError(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(saved).Error)
}

// RemoveSavedListing deletes the pair and reports whether it existed
func (r *userProfileRepository) RemoveSavedListing(ctx context.Context, username, listingID string) (bool, error) {
	id, err := r.idOf(ctx, username)
	if err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).
		Where("user_profile_id = ? AND listing_id = ?", id, listingID).
		Delete(&models.SavedListing{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RemoveSavedListings deletes saved rows pointing at listingIDs
func (r *userProfileRepository) RemoveSavedListings(ctx context.Context, listingIDs []string) (int64, error) {
	if len(listingIDs) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Where("listing_id IN ?", listingIDs).
		Delete(&models.SavedListing{})
	return res.RowsAffected, res.Error
}

func (r *userProfileRepository) idOf(ctx context.Context, username string) (string, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).Select("id").Where("username = ?", username).First(&profile).Error
	if err != nil {
		return "", wrapError(err)
	}
	return profile.ID, nil
}
