package repositories

import (
	"context"

	"roomfinder/internal/core/domain"
)

// AccountRepository defines credential record operations.
// Lookups return domain.ErrNotFound; unique username violations return domain.ErrDuplicateEntry.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	SetOnboardingComplete(ctx context.Context, username string, complete bool) error
	UpdateName(ctx context.Context, username, name string) error
	UpdatePassword(ctx context.Context, username, hash string) error
	DeleteByUsername(ctx context.Context, username string) error
}

// AdminRepository defines admin profile operations
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.AdminProfile) error
	GetByUsername(ctx context.Context, username string) (*domain.AdminProfile, error)
	List(ctx context.Context) ([]*domain.AdminProfile, error)
	Update(ctx context.Context, admin *domain.AdminProfile) error
	DeleteByUsername(ctx context.Context, username string) error
}

// UserProfileRepository defines roommate-seeker profile operations
type UserProfileRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) error
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error)
	List(ctx context.Context) ([]*domain.UserProfile, error)
	// Update writes every mutable field except the saved listing set
	Update(ctx context.Context, profile *domain.UserProfile) error
	DeleteByUsername(ctx context.Context, username string) error

	// AddSavedListing is idempotent
	AddSavedListing(ctx context.Context, username, listingID string) error
	// RemoveSavedListing reports whether the id was present
	RemoveSavedListing(ctx context.Context, username, listingID string) (bool, error)
	// RemoveSavedListings drops the given listing ids from every profile and returns how many were removed
	RemoveSavedListings(ctx context.Context, listingIDs []string) (int64, error)
}

// ListerRepository defines lister profile and listing operations.
// Profiles are always returned with their listings.
type ListerRepository interface {
	Create(ctx context.Context, lister *domain.ListerProfile) error
	GetByID(ctx context.Context, id string) (*domain.ListerProfile, error)
	GetByUsername(ctx context.Context, username string) (*domain.ListerProfile, error)
	List(ctx context.Context) ([]*domain.ListerProfile, error)
	// Update writes the profile fields, never the listings
	Update(ctx context.Context, lister *domain.ListerProfile) error
	DeleteByUsername(ctx context.Context, username string) error

	AddListing(ctx context.Context, username string, listing *domain.Listing) error
	UpdateListing(ctx context.Context, username string, listing *domain.Listing) error
	DeleteListing(ctx context.Context, username, listingID string) error
	// FindListing locates a listing across all listers
	FindListing(ctx context.Context, listingID string) (*domain.Listing, *domain.ListerProfile, error)
	// ListListings returns every listing with ListerUsername populated
	ListListings(ctx context.Context) ([]*domain.Listing, error)
}

// ReportRepository defines moderation report operations
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	List(ctx context.Context) ([]*domain.Report, error)
	Delete(ctx context.Context, id string) error
}

// Store bundles the repositories of one backing database
type Store interface {
	Accounts() AccountRepository
	Admins() AdminRepository
	Users() UserProfileRepository
	Listers() ListerRepository
	Reports() ReportRepository

	// WithinTransaction runs fn atomically. Repositories reached through tx
	// (and used with the ctx handed to fn) take part in the transaction.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error

	Ping(ctx context.Context) error
	Close() error
}
