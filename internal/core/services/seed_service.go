package services

import (
	"context"
	"fmt"

	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/config"
	"roomfinder/internal/core/domain"

	"go.uber.org/zap"
)

// SamplePassword is the password of every sample account
const SamplePassword = "Password123!"

// SeedService bootstraps accounts through the regular service paths
type SeedService struct {
	store   repositories.Store
	auth    *AuthService
	users   *UserService
	listers *ListerService
	admins  *AdminService
	log     *zap.Logger
}

// NewSeedService creates a new seed service
func NewSeedService(store repositories.Store, cfg *config.Config, log *zap.Logger) *SeedService {
	return &SeedService{
		store:   store,
		auth:    NewAuthService(store, cfg, log),
		users:   NewUserService(store, log),
		listers: NewListerService(store, log),
		admins:  NewAdminService(store, log),
		log:     log,
	}
}

// SeedAdmin creates the bootstrap administrator unless its username is taken.
// Nothing happens when no username is configured.
func (s *SeedService) SeedAdmin(ctx context.Context, seed config.SeedConfig) error {
	if seed.AdminUsername == "" {
		return nil
	}

	exists, err := s.store.Accounts().ExistsByUsername(ctx, seed.AdminUsername)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	name := seed.AdminName
	if name == "" {
		name = seed.AdminUsername
	}

	if _, err := s.admins.CreateAdmin(ctx, &CreateAdminInput{
		Username: seed.AdminUsername,
		Password: seed.AdminPassword,
		Name:     name,
	}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	s.log.Info("bootstrap admin created", zap.String("username", seed.AdminUsername))
	return nil
}

// SeedSampleData loads the sample roommate seekers, listers and listings.
// Accounts that already exist are left untouched.
func (s *SeedService) SeedSampleData(ctx context.Context) error {
	for i := range sampleUsers {
		sample := &sampleUsers[i]
		created, err := s.seedUser(ctx, sample)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", sample.username, err)
		}
		if created {
			s.log.Info("sample user created", zap.String("username", sample.username))
		}
	}

	for i := range sampleListers {
		sample := &sampleListers[i]
		created, err := s.seedLister(ctx, sample)
		if err != nil {
			return fmt.Errorf("seed lister %s: %w", sample.input.Username, err)
		}
		if created {
			s.log.Info("sample lister created",
				zap.String("username", sample.input.Username),
				zap.Int("listings", len(sample.listings)),
			)
		}
	}
	return nil
}

func (s *SeedService) seedUser(ctx context.Context, sample *sampleUser) (bool, error) {
	exists, err := s.store.Accounts().ExistsByUsername(ctx, sample.username)
	if err != nil || exists {
		return false, err
	}

	auth, err := s.auth.Signup(ctx, &SignupInput{
		Username: sample.username,
		Password: SamplePassword,
		Role:     domain.RoleUser,
		Name:     sample.profile.Name,
	})
	if err != nil {
		return false, err
	}

	caller := Identity{UserID: auth.User.ID, Username: auth.User.Username, Name: auth.User.Name, Role: auth.User.Role}
	if _, err := s.users.CompleteProfile(ctx, caller, &sample.profile); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SeedService) seedLister(ctx context.Context, sample *sampleLister) (bool, error) {
	exists, err := s.store.Accounts().ExistsByUsername(ctx, sample.input.Username)
	if err != nil || exists {
		return false, err
	}

	input := sample.input
	input.Password = SamplePassword
	lister, err := s.listers.Register(ctx, &input)
	if err != nil {
		return false, err
	}

	caller := Identity{UserID: lister.ID, Username: lister.Username, Name: lister.Name, Role: domain.RoleLister}
	for i := range sample.listings {
		if _, err := s.listers.CreateListing(ctx, caller, lister.Username, &sample.listings[i]); err != nil {
			return false, err
		}
	}
	return true, nil
}
