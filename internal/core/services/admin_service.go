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

// Admin errors
var (
	ErrAdminNotFound    = errors.New("admin not found")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
)

// CreateAdminInput represents create admin input
type CreateAdminInput struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	Name           string `json:"name" validate:"required,max=100"`
	ProfilePicture string `json:"profilePicture" validate:"max=2048"`
}

// UpdateAdminInput represents a partial admin update
type UpdateAdminInput struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=100"`
	Password       *string `json:"password" validate:"omitempty,min=8,max=72"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,max=2048"`
}

// AdminService handles administrator accounts and moderation
type AdminService struct {
	store repositories.Store
	log   *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(store repositories.Store, log *zap.Logger) *AdminService {
	return &AdminService{store: store, log: log}
}

// CreateAdmin creates an admin account and its profile in one transaction
func (s *AdminService) CreateAdmin(ctx context.Context, input *CreateAdminInput) (*domain.AdminProfile, error) {
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:                 uuid.NewString(),
		Username:           strings.TrimSpace(input.Username),
		Password:           hashed,
		Name:               sanitize.Text(input.Name),
		Role:               domain.RoleAdmin,
		OnboardingComplete: true,
	}
	admin := &domain.AdminProfile{
		ID:             account.ID,
		Username:       account.Username,
		Name:           account.Name,
		ProfilePicture: input.ProfilePicture,
	}

	err = s.store.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.Accounts().Create(ctx, account); err != nil {
			return err
		}
		return tx.Admins().Create(ctx, admin)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.log.Info("admin created", zap.String("username", admin.Username))
	return admin, nil
}

// ListAdmins returns every admin ordered by username
func (s *AdminService) ListAdmins(ctx context.Context) ([]*domain.AdminProfile, error) {
	return s.store.Admins().List(ctx)
}

// GetAdmin returns one admin
func (s *AdminService) GetAdmin(ctx context.Context, username string) (*domain.AdminProfile, error) {
	admin, err := s.store.Admins().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

// UpdateAdmin applies a partial update. A new password is re-hashed onto the account.
func (s *AdminService) UpdateAdmin(ctx context.Context, username string, input *UpdateAdminInput) (*domain.AdminProfile, error) {
	var hashed string
	if input.Password != nil {
		var err error
		if hashed, err = password.Hash(*input.Password); err != nil {
			return nil, err
		}
	}

	var admin *domain.AdminProfile
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		var err error
		admin, err = tx.Admins().GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrAdminNotFound
			}
			return err
		}

		nameChanged := false
		if input.Name != nil {
			name := sanitize.Text(*input.Name)
			nameChanged = name != admin.Name
			admin.Name = name
		}
		if input.ProfilePicture != nil {
			admin.ProfilePicture = *input.ProfilePicture
		}
		admin.UpdatedAt = time.Now().UTC()

		if err := tx.Admins().Update(ctx, admin); err != nil {
			return err
		}
		if nameChanged {
			if err := tx.Accounts().UpdateName(ctx, username, admin.Name); err != nil {
				return err
			}
		}
		if hashed != "" {
			return tx.Accounts().UpdatePassword(ctx, username, hashed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// DeleteAdmin removes an admin profile and its account. Admins cannot remove themselves.
func (s *AdminService) DeleteAdmin(ctx context.Context, caller Identity, username string) error {
	if caller.Username == username {
		return ErrCannotDeleteSelf
	}
	err := deleteProfileAndAccount(ctx, s.store, username, func(ctx context.Context, tx repositories.Store) error {
		err := tx.Admins().DeleteByUsername(ctx, username)
		if errors.Is(err, domain.ErrNotFound) {
			return ErrAdminNotFound
		}
		return err
	})
	if err == nil {
		s.log.Info("admin deleted", zap.String("username", username), zap.String("by", caller.Username))
	}
	return err
}

// ListUsers returns every roommate-seeker profile
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.UserProfile, error) {
	return s.store.Users().List(ctx)
}

// ListListers returns every lister profile
func (s *AdminService) ListListers(ctx context.Context) ([]*domain.ListerProfile, error) {
	return s.store.Listers().List(ctx)
}

// ListListings returns every listing with its owner's username
func (s *AdminService) ListListings(ctx context.Context) ([]*domain.Listing, error) {
	return s.store.Listers().ListListings(ctx)
}

// DeleteUser removes a user profile and its account in one transaction
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	profile, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	err = deleteProfileAndAccount(ctx, s.store, profile.Username, func(ctx context.Context, tx repositories.Store) error {
		err := tx.Users().DeleteByUsername(ctx, profile.Username)
		if errors.Is(err, domain.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	})
	if err == nil {
		s.log.Info("user deleted by admin", zap.String("username", profile.Username))
	}
	return err
}

// DeleteLister removes a lister, its listings and its account in one transaction
func (s *AdminService) DeleteLister(ctx context.Context, listerID string) error {
	lister, err := s.store.Listers().GetByID(ctx, listerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrListerNotFound
		}
		return err
	}

	err = deleteProfileAndAccount(ctx, s.store, lister.Username, func(ctx context.Context, tx repositories.Store) error {
		err := tx.Listers().DeleteByUsername(ctx, lister.Username)
		if errors.Is(err, domain.ErrNotFound) {
			return ErrListerNotFound
		}
		return err
	})
	if err == nil {
		s.log.Info("lister deleted by admin", zap.String("username", lister.Username))
	}
	return err
}

// DeleteListing removes any listing regardless of owner
func (s *AdminService) DeleteListing(ctx context.Context, listingID string) error {
	_, lister, err := s.store.Listers().FindListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrListingNotFound
		}
		return err
	}

	err = s.store.Listers().DeleteListing(ctx, lister.Username, listingID)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrListingNotFound
	}
	return err
}
