package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/core/domain"
	"roomfinder/internal/pkg/password"
	"roomfinder/internal/pkg/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Lister errors
var (
	ErrListerNotFound = errors.New("lister not found")
	ErrNotOwner       = errors.New("only the owner may modify this resource")
)

// RegisterListerInput represents a public lister registration
type RegisterListerInput struct {
	Username       string           `json:"username" validate:"required,min=3,max=50"`
	Password       string           `json:"password" validate:"required,min=8,max=72"`
	Name           string           `json:"name" validate:"required,max=100"`
	ProfilePicture string           `json:"profilePicture" validate:"max=2048"`
	ContactInfo    ContactInfoInput `json:"contactInfo"`
}

// CompleteListerProfileInput represents lister onboarding input.
// Name defaults to the account name.
type CompleteListerProfileInput struct {
	Name           string           `json:"name" validate:"omitempty,max=100"`
	ProfilePicture string           `json:"profilePicture" validate:"max=2048"`
	ContactInfo    ContactInfoInput `json:"contactInfo"`
}

// UpdateListerProfileInput represents a partial lister update
type UpdateListerProfileInput struct {
	Name           *string           `json:"name" validate:"omitempty,min=1,max=100"`
	ProfilePicture *string           `json:"profilePicture" validate:"omitempty,max=2048"`
	ContactInfo    *ContactInfoInput `json:"contactInfo"`
}

// ListingInput represents a new listing
type ListingInput struct {
	DistanceFromUniv  *float64 `json:"distanceFromUniv" validate:"required,gte=0"`
	Rent              *float64 `json:"rent" validate:"required,gte=0"`
	Description       string   `json:"description" validate:"max=5000"`
	NumberOfRooms     *int     `json:"numberOfRooms" validate:"required,gte=0"`
	NumberOfBathrooms *float64 `json:"numberOfBathrooms" validate:"required,gte=0"`
	SquareFoot        *float64 `json:"squareFoot" validate:"required,gte=0"`
	Address           string   `json:"address" validate:"required,max=500"`
	Latitude          *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude         *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// UpdateListingInput represents a partial listing update
type UpdateListingInput struct {
	DistanceFromUniv  *float64 `json:"distanceFromUniv" validate:"omitempty,gte=0"`
	Rent              *float64 `json:"rent" validate:"omitempty,gte=0"`
	Description       *string  `json:"description" validate:"omitempty,max=5000"`
	NumberOfRooms     *int     `json:"numberOfRooms" validate:"omitempty,gte=0"`
	NumberOfBathrooms *float64 `json:"numberOfBathrooms" validate:"omitempty,gte=0"`
	SquareFoot        *float64 `json:"squareFoot" validate:"omitempty,gte=0"`
	Address           *string  `json:"address" validate:"omitempty,min=1,max=500"`
	Latitude          *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude         *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// ListingDetail is a listing together with its owner's contact card
type ListingDetail struct {
	Listing *domain.Listing       `json:"listing"`
	Lister  *domain.ListerSummary `json:"lister"`
}

// ListerService handles lister profiles, their listings and listing search
type ListerService struct {
	store repositories.Store
	log   *zap.Logger
}

// NewListerService creates a new lister service
func NewListerService(store repositories.Store, log *zap.Logger) *ListerService {
	return &ListerService{store: store, log: log}
}

// Register creates a lister account and its profile in one transaction.
// The account is onboarded immediately.
func (s *ListerService) Register(ctx context.Context, input *RegisterListerInput) (*domain.ListerProfile, error) {
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:                 uuid.NewString(),
		Username:           strings.TrimSpace(input.Username),
		Password:           hashed,
		Name:               sanitize.Text(input.Name),
		Role:               domain.RoleLister,
		OnboardingComplete: true,
	}
	lister := &domain.ListerProfile{
		ID:             account.ID,
		Username:       account.Username,
		Name:           account.Name,
		ProfilePicture: input.ProfilePicture,
		ContactInfo:    input.ContactInfo.toDomain(),
		Listings:       []domain.Listing{},
	}

	err = s.store.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.Accounts().Create(ctx, account); err != nil {
			return err
		}
		return tx.Listers().Create(ctx, lister)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.log.Info("lister registered", zap.String("username", lister.Username))
	return lister, nil
}

// CompleteProfile creates the caller's lister profile and marks onboarding done in one transaction
func (s *ListerService) CompleteProfile(ctx context.Context, caller Identity, input *CompleteListerProfileInput) (*domain.ListerProfile, error) {
	if caller.Role != domain.RoleLister {
		return nil, ErrRoleMismatch
	}

	var lister *domain.ListerProfile
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

		lister = &domain.ListerProfile{
			ID:             account.ID,
			Username:       account.Username,
			Name:           name,
			ProfilePicture: input.ProfilePicture,
			ContactInfo:    input.ContactInfo.toDomain(),
			Listings:       []domain.Listing{},
		}
		if err := tx.Listers().Create(ctx, lister); err != nil {
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

	s.log.Info("lister profile completed", zap.String("username", lister.Username))
	return lister, nil
}

// GetLister returns a lister with its listings
func (s *ListerService) GetLister(ctx context.Context, username string) (*domain.ListerProfile, error) {
	return s.byUsername(ctx, s.store, username)
}

// ListListers returns every lister ordered by username
func (s *ListerService) ListListers(ctx context.Context) ([]*domain.ListerProfile, error) {
	return s.store.Listers().List(ctx)
}

// UpdateProfile applies a partial update; a name change is mirrored on the account
func (s *ListerService) UpdateProfile(ctx context.Context, username string, input *UpdateListerProfileInput) (*domain.ListerProfile, error) {
	var lister *domain.ListerProfile
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		var err error
		lister, err = s.byUsername(ctx, tx, username)
		if err != nil {
			return err
		}

		nameChanged := false
		if input.Name != nil {
			name := sanitize.Text(*input.Name)
			nameChanged = name != lister.Name
			lister.Name = name
		}
		if input.ProfilePicture != nil {
			lister.ProfilePicture = *input.ProfilePicture
		}
		if input.ContactInfo != nil {
			lister.ContactInfo = input.ContactInfo.toDomain()
		}
		lister.UpdatedAt = time.Now().UTC()

		if err := tx.Listers().Update(ctx, lister); err != nil {
			return err
		}
		if nameChanged {
			return tx.Accounts().UpdateName(ctx, username, lister.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lister, nil
}

// DeleteLister removes the profile, its listings and the account in one transaction.
// Only the lister itself or an admin may do this.
func (s *ListerService) DeleteLister(ctx context.Context, caller Identity, username string) error {
	if caller.Username != username && !caller.IsAdmin() {
		return ErrNotOwner
	}
	return deleteProfileAndAccount(ctx, s.store, username, func(ctx context.Context, tx repositories.Store) error {
		err := tx.Listers().DeleteByUsername(ctx, username)
		if errors.Is(err, domain.ErrNotFound) {
			return ErrListerNotFound
		}
		return err
	})
}

// CreateListing adds a listing to the caller's own profile
func (s *ListerService) CreateListing(ctx context.Context, caller Identity, username string, input *ListingInput) (*domain.Listing, error) {
	if caller.Username != username {
		return nil, ErrNotOwner
	}

	listing := &domain.Listing{
		ID:                uuid.NewString(),
		DistanceFromUniv:  *input.DistanceFromUniv,
		Rent:              *input.Rent,
		Description:       sanitize.Text(input.Description),
		NumberOfRooms:     *input.NumberOfRooms,
		NumberOfBathrooms: *input.NumberOfBathrooms,
		SquareFoot:        *input.SquareFoot,
		Address:           sanitize.Text(input.Address),
		Latitude:          *input.Latitude,
		Longitude:         *input.Longitude,
	}

	if err := s.store.Listers().AddListing(ctx, username, listing); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrListerNotFound
		}
		return nil, err
	}

	s.log.Info("listing created", zap.String("lister", username), zap.String("listing_id", listing.ID))
	return listing, nil
}

// ListerListings returns the listings of one lister
func (s *ListerService) ListerListings(ctx context.Context, username string) ([]domain.Listing, error) {
	lister, err := s.byUsername(ctx, s.store, username)
	if err != nil {
		return nil, err
	}
	return lister.Listings, nil
}

// GetListerListing returns one listing of one lister
func (s *ListerService) GetListerListing(ctx context.Context, username, listingID string) (*domain.Listing, error) {
	lister, err := s.byUsername(ctx, s.store, username)
	if err != nil {
		return nil, err
	}
	listing, ok := lister.FindListing(listingID)
	if !ok {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

// UpdateListing applies a partial update to an owned listing; the id is preserved
func (s *ListerService) UpdateListing(ctx context.Context, caller Identity, username, listingID string, input *UpdateListingInput) (*domain.Listing, error) {
	if caller.Username != username {
		return nil, ErrNotOwner
	}

	var listing *domain.Listing
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		lister, err := s.byUsername(ctx, tx, username)
		if err != nil {
			return err
		}
		found, ok := lister.FindListing(listingID)
		if !ok {
			return ErrListingNotFound
		}
		listing = found

		if input.DistanceFromUniv != nil {
			listing.DistanceFromUniv = *input.DistanceFromUniv
		}
		if input.Rent != nil {
			listing.Rent = *input.Rent
		}
		if input.Description != nil {
			listing.Description = sanitize.Text(*input.Description)
		}
		if input.NumberOfRooms != nil {
			listing.NumberOfRooms = *input.NumberOfRooms
		}
		if input.NumberOfBathrooms != nil {
			listing.NumberOfBathrooms = *input.NumberOfBathrooms
		}
		if input.SquareFoot != nil {
			listing.SquareFoot = *input.SquareFoot
		}
		if input.Address != nil {
			listing.Address = sanitize.Text(*input.Address)
		}
		if input.Latitude != nil {
			listing.Latitude = *input.Latitude
		}
		if input.Longitude != nil {
			listing.Longitude = *input.Longitude
		}
		listing.UpdatedAt = time.Now().UTC()

		err = tx.Listers().UpdateListing(ctx, username, listing)
		if errors.Is(err, domain.ErrNotFound) {
			return ErrListingNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// DeleteListing removes an owned listing
func (s *ListerService) DeleteListing(ctx context.Context, caller Identity, username, listingID string) error {
	if caller.Username != username {
		return ErrNotOwner
	}
	if _, err := s.byUsername(ctx, s.store, username); err != nil {
		return err
	}

	err := s.store.Listers().DeleteListing(ctx, username, listingID)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrListingNotFound
	}
	return err
}

// SearchListings scans every listing of every lister through the parsed filters.
// Results keep the store order: createdAt, then id.
func (s *ListerService) SearchListings(ctx context.Context, query ListingQuery) ([]*domain.Listing, error) {
	filter, err := query.Parse()
	if err != nil {
		return nil, err
	}

	all, err := s.store.Listers().ListListings(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]*domain.Listing, 0, len(all))
	for _, l := range all {
		if filter.Match(l) {
			matches = append(matches, l)
		}
	}
	return matches, nil
}

// GetListingDetail returns a listing with its owner's contact card
func (s *ListerService) GetListingDetail(ctx context.Context, listingID string) (*ListingDetail, error) {
	listing, lister, err := s.store.Listers().FindListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	return &ListingDetail{
		Listing: listing,
		Lister: &domain.ListerSummary{
			Username:    lister.Username,
			Name:        lister.Name,
			ContactInfo: lister.ContactInfo,
		},
	}, nil
}

func (s *ListerService) byUsername(ctx context.Context, store repositories.Store, username string) (*domain.ListerProfile, error) {
	lister, err := store.Listers().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrListerNotFound
		}
		return nil, err
	}
	return lister, nil
}

// deleteProfileAndAccount runs deleteProfile and removes the account in one transaction.
// A profile whose account is already gone is still deleted.
func deleteProfileAndAccount(ctx context.Context, store repositories.Store, username string, deleteProfile func(ctx context.Context, tx repositories.Store) error) error {
	return store.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := deleteProfile(ctx, tx); err != nil {
			return err
		}
		err := tx.Accounts().DeleteByUsername(ctx, username)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	})
}
