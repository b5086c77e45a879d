package services

import (
	"context"
	"errors"
	"time"

	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/core/domain"
	"roomfinder/internal/pkg/sanitize"

	"go.uber.org/zap"
)

// Profile errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already completed")
	ErrRoleMismatch    = errors.New("endpoint not available for this role")
	ErrListingNotFound = errors.New("listing not found")
	ErrListingNotSaved = errors.New("listing is not in saved listings")
	ErrNotProfileOwner = errors.New("not allowed to act on another profile")
)

// ContactInfoInput represents contact details input
type ContactInfoInput struct {
	Email            string               `json:"email" validate:"required,email,max=254"`
	Phone            string               `json:"phone" validate:"omitempty,max=30"`
	PreferredContact domain.ContactMethod `json:"preferredContact" validate:"required,oneof=email phone"`
}

func (c *ContactInfoInput) toDomain() domain.ContactInfo {
	return domain.ContactInfo{
		Email:            c.Email,
		Phone:            sanitize.Text(c.Phone),
		PreferredContact: c.PreferredContact,
	}
}

// CompleteUserProfileInput represents roommate-seeker onboarding input.
// Name defaults to the account name.
type CompleteUserProfileInput struct {
	Name               string           `json:"name" validate:"omitempty,max=100"`
	Gender             domain.Gender    `json:"gender" validate:"required,oneof=Male Female"`
	Budget             *float64         `json:"budget" validate:"required,gte=0"`
	LeaseDuration      int              `json:"leaseDuration" validate:"required,gte=1,lte=12"`
	Smoking            bool             `json:"smoking"`
	Drinking           bool             `json:"drinking"`
	OpenToMixedGender  bool             `json:"openToMixedGender"`
	OpenToRoommateFind bool             `json:"openToRoommateFind"`
	ProfilePicture     string           `json:"profilePicture" validate:"max=2048"`
	ContactInfo        ContactInfoInput `json:"contactInfo"`
}

// UpdateUserProfileInput represents a partial profile update
type UpdateUserProfileInput struct {
	Name               *string           `json:"name" validate:"omitempty,min=1,max=100"`
	Gender             *domain.Gender    `json:"gender" validate:"omitempty,oneof=Male Female"`
	Budget             *float64          `json:"budget" validate:"omitempty,gte=0"`
	LeaseDuration      *int              `json:"leaseDuration" validate:"omitempty,gte=1,lte=12"`
	Smoking            *bool             `json:"smoking"`
	Drinking           *bool             `json:"drinking"`
	OpenToMixedGender  *bool             `json:"openToMixedGender"`
	OpenToRoommateFind *bool             `json:"openToRoommateFind"`
	ProfilePicture     *string           `json:"profilePicture" validate:"omitempty,max=2048"`
	ContactInfo        *ContactInfoInput `json:"contactInfo"`
}

// UserService handles roommate-seeker profiles, roommate search and saved listings
type UserService struct {
	store repositories.Store
	log   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(store repositories.Store, log *zap.Logger) *UserService {
	return &UserService{store: store, log: log}
}

// CompleteProfile creates the caller's profile and marks onboarding done in one transaction
func (s *UserService) CompleteProfile(ctx context.Context, caller Identity, input *CompleteUserProfileInput) (*domain.UserProfile, error) {
	if caller.Role != domain.RoleUser {
		return nil, ErrRoleMismatch
	}

	var profile *domain.UserProfile
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		account, err := tx.Accounts().GetByUsername(ctx, caller.Username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		if account.OnboardingComplete {
			return ErrProfileExists
		}

		name := sanitize.Text(input.Name)
		if name == "" {
			name = account.Name
		}

		profile = &domain.UserProfile{
			ID:                 account.ID,
			Username:           account.Username,
			Name:               name,
			Gender:             input.Gender,
			Budget:             *input.Budget,
			LeaseDuration:      input.LeaseDuration,
			Smoking:            input.Smoking,
			Drinking:           input.Drinking,
			OpenToMixedGender:  input.OpenToMixedGender,
			OpenToRoommateFind: input.OpenToRoommateFind,
			ProfilePicture:     input.ProfilePicture,
			ContactInfo:        input.ContactInfo.toDomain(),
			SavedListingIDs:    []string{},
		}
		if err := tx.Users().Create(ctx, profile); err != nil {
			if errors.Is(err, domain.ErrDuplicateEntry) {
				return ErrProfileExists
			}
			return err
		}

		if name != account.Name {
			if err := tx.Accounts().UpdateName(ctx, account.Username, name); err != nil {
				return err
			}
		}
		return tx.Accounts().SetOnboardingComplete(ctx, account.Username, true)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user profile completed", zap.String("username", profile.Username))
	return profile, nil
}

// GetProfile returns the caller's own profile
func (s *UserService) GetProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	return s.byUsername(ctx, s.store, username)
}

// UpdateProfile applies a partial update; a name change is mirrored on the account
func (s *UserService) UpdateProfile(ctx context.Context, username string, input *UpdateUserProfileInput) (*domain.UserProfile, error) {
	var profile *domain.UserProfile
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		var err error
		profile, err = s.byUsername(ctx, tx, username)
		if err != nil {
			return err
		}

		nameChanged := false
		if input.Name != nil {
			name := sanitize.Text(*input.Name)
			nameChanged = name != profile.Name
			profile.Name = name
		}
		if input.Gender != nil {
			profile.Gender = *input.Gender
		}
		if input.Budget != nil {
			profile.Budget = *input.Budget
		}
		if input.LeaseDuration != nil {
			profile.LeaseDuration = *input.LeaseDuration
		}
		if input.Smoking != nil {
			profile.Smoking = *input.Smoking
		}
		if input.Drinking != nil {
			profile.Drinking = *input.Drinking
		}
		if input.OpenToMixedGender != nil {
			profile.OpenToMixedGender = *input.OpenToMixedGender
		}
		if input.OpenToRoommateFind != nil {
			profile.OpenToRoommateFind = *input.OpenToRoommateFind
		}
		if input.ProfilePicture != nil {
			profile.ProfilePicture = *input.ProfilePicture
		}
		if input.ContactInfo != nil {
			profile.ContactInfo = input.ContactInfo.toDomain()
		}
		profile.UpdatedAt = time.Now().UTC()

		if err := tx.Users().Update(ctx, profile); err != nil {
			return err
		}
		if nameChanged {
			return tx.Accounts().UpdateName(ctx, username, profile.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetPublicProfile returns the anonymous view of a profile
func (s *UserService) GetPublicProfile(ctx context.Context, userID string) (*domain.PublicUserProfile, error) {
	profile, err := s.GetFullProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.Public(), nil
}

// GetFullProfile returns every field of a profile
func (s *UserService) GetFullProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// PotentialRoommates filters every profile; exclude, when set, removes the caller
func (s *UserService) PotentialRoommates(ctx context.Context, query RoommateQuery, exclude string) ([]*domain.UserProfile, error) {
	filter, err := query.Parse()
	if err != nil {
		return nil, err
	}

	profiles, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]*domain.UserProfile, 0, len(profiles))
	for _, p := range profiles {
		if exclude != "" && p.Username == exclude {
			continue
		}
		if filter.Match(p) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// SaveListing adds a live listing to the caller's saved set; saving twice is a no-op
func (s *UserService) SaveListing(ctx context.Context, username, listingID string) error {
	if _, _, err := s.store.Listers().FindListing(ctx, listingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrListingNotFound
		}
		return err
	}

	if err := s.store.Users().AddSavedListing(ctx, username, listingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}

// SaveListingFor is SaveListing addressed by profile id; the id must be the caller's
func (s *UserService) SaveListingFor(ctx context.Context, caller Identity, userID, listingID string) error {
	if userID != caller.UserID {
		return ErrNotProfileOwner
	}
	return s.SaveListing(ctx, caller.Username, listingID)
}

// UnsaveListing removes a listing from the saved set
func (s *UserService) UnsaveListing(ctx context.Context, username, listingID string) error {
	removed, err := s.store.Users().RemoveSavedListing(ctx, username, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	if !removed {
		return ErrListingNotSaved
	}
	return nil
}

// SavedListings resolves the saved ids against live listings, skipping deleted ones
func (s *UserService) SavedListings(ctx context.Context, username string) ([]*domain.Listing, error) {
	profile, err := s.byUsername(ctx, s.store, username)
	if err != nil {
		return nil, err
	}
	if len(profile.SavedListingIDs) == 0 {
		return []*domain.Listing{}, nil
	}

	all, err := s.store.Listers().ListListings(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Listing, len(all))
	for _, l := range all {
		byID[l.ID] = l
	}

	listings := make([]*domain.Listing, 0, len(profile.SavedListingIDs))
	for _, id := range profile.SavedListingIDs {
		if l, ok := byID[id]; ok {
			listings = append(listings, l)
		}
	}
	return listings, nil
}

func (s *UserService) byUsername(ctx context.Context, store repositories.Store, username string) (*domain.UserProfile, error) {
	profile, err := store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
