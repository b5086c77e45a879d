package services

import (
	"context"
	"os"
	"testing"

	"roomfinder/internal/adapters/persistence/memstore"
	"roomfinder/internal/config"
	"roomfinder/internal/core/domain"
	"roomfinder/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	password.SetCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

type fixture struct {
	store   *memstore.Store
	auth    *AuthService
	users   *UserService
	listers *ListerService
	admins  *AdminService
	reports *ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	log := zap.NewNop()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}

	return &fixture{
		store:   store,
		auth:    NewAuthService(store, cfg, log),
		users:   NewUserService(store, log),
		listers: NewListerService(store, log),
		admins:  NewAdminService(store, log),
		reports: NewReportService(store, log),
	}
}

func (f *fixture) signup(t *testing.T, username string, role domain.Role) Identity {
	t.Helper()

	res, err := f.auth.Signup(context.Background(), &SignupInput{
		Username: username,
		Password: "password123",
		Role:     role,
		Name:     username,
	})
	require.NoError(t, err)
	return Identity{UserID: res.User.ID, Username: res.User.Username, Name: res.User.Name, Role: res.User.Role}
}

func (f *fixture) seeker(t *testing.T, username string, mutate func(in *CompleteUserProfileInput)) Identity {
	t.Helper()

	caller := f.signup(t, username, domain.RoleUser)
	in := &CompleteUserProfileInput{
		Gender:        domain.GenderFemale,
		Budget:        f64(1500),
		LeaseDuration: 12,
		ContactInfo:   ContactInfoInput{Email: username + "@example.com", PreferredContact: domain.ContactEmail},
	}
	if mutate != nil {
		mutate(in)
	}
	_, err := f.users.CompleteProfile(context.Background(), caller, in)
	require.NoError(t, err)
	return caller
}

func (f *fixture) lister(t *testing.T, username string) Identity {
	t.Helper()

	lister, err := f.listers.Register(context.Background(), &RegisterListerInput{
		Username:    username,
		Password:    "password123",
		Name:        username,
		ContactInfo: ContactInfoInput{Email: username + "@example.com", PreferredContact: domain.ContactEmail},
	})
	require.NoError(t, err)
	return Identity{UserID: lister.ID, Username: lister.Username, Name: lister.Name, Role: domain.RoleLister}
}

func (f *fixture) listing(t *testing.T, owner Identity, rent float64, mutate func(in *ListingInput)) *domain.Listing {
	t.Helper()

	in := listingInput(1.0, rent, 2, 1, 900, "72 Hemenway St, Boston, MA", 42.3424, -71.0892, "sample")
	if mutate != nil {
		mutate(&in)
	}
	listing, err := f.listers.CreateListing(context.Background(), owner, owner.Username, &in)
	require.NoError(t, err)
	return listing
}
