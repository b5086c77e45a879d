package services

import (
	"context"
	"testing"

	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/config"
	"roomfinder/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdminService_AdminCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.admins.CreateAdmin(ctx, &CreateAdminInput{Username: "root", Password: "password123", Name: "Root"})
	require.NoError(t, err)

	account, err := f.store.Accounts().GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, account.Role)
	assert.Equal(t, admin.ID, account.ID)

	_, err = f.admins.CreateAdmin(ctx, &CreateAdminInput{Username: "root", Password: "password123", Name: "Dup"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	newPassword := "new-password-1"
	name := "Root Admin"
	updated, err := f.admins.UpdateAdmin(ctx, "root", &UpdateAdminInput{Name: &name, Password: &newPassword})
	require.NoError(t, err)
	assert.Equal(t, "Root Admin", updated.Name)

	_, err = f.auth.Login(ctx, &LoginInput{Username: "root", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	login, err := f.auth.Login(ctx, &LoginInput{Username: "root", Password: newPassword})
	require.NoError(t, err)
	assert.Equal(t, "Root Admin", login.User.Name)

	_, err = f.admins.CreateAdmin(ctx, &CreateAdminInput{Username: "helper", Password: "password123", Name: "Helper"})
	require.NoError(t, err)
	admins, err := f.admins.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "helper", admins[0].Username)

	root := Identity{UserID: admin.ID, Username: "root", Role: domain.RoleAdmin}
	assert.ErrorIs(t, f.admins.DeleteAdmin(ctx, root, "root"), ErrCannotDeleteSelf)
	require.NoError(t, f.admins.DeleteAdmin(ctx, root, "helper"))
	_, err = f.admins.GetAdmin(ctx, "helper")
	assert.ErrorIs(t, err, ErrAdminNotFound)
	exists, err := f.store.Accounts().ExistsByUsername(ctx, "helper")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAdminService_Moderation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seeker := f.seeker(t, "sarah.j", nil)
	alice := f.lister(t, "alice")
	bob := f.lister(t, "bob")
	f.listing(t, alice, 1000, nil)
	doomed := f.listing(t, bob, 2000, nil)

	users, err := f.admins.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	listings, err := f.admins.ListListings(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	for _, l := range listings {
		assert.NotEmpty(t, l.ListerUsername)
	}

	require.NoError(t, f.admins.DeleteListing(ctx, doomed.ID))
	assert.ErrorIs(t, f.admins.DeleteListing(ctx, doomed.ID), ErrListingNotFound)

	require.NoError(t, f.admins.DeleteUser(ctx, seeker.UserID))
	assert.ErrorIs(t, f.admins.DeleteUser(ctx, seeker.UserID), ErrProfileNotFound)
	_, err = f.auth.Login(ctx, &LoginInput{Username: "sarah.j", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, f.admins.DeleteLister(ctx, alice.UserID))
	assert.ErrorIs(t, f.admins.DeleteLister(ctx, alice.UserID), ErrListerNotFound)

	listers, err := f.admins.ListListers(ctx)
	require.NoError(t, err)
	require.Len(t, listers, 1)
	assert.Equal(t, "bob", listers[0].Username)
	assert.Empty(t, listers[0].Listings)
}

func TestReportService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reporter := Identity{Username: "sarah.j", Role: domain.RoleUser}

	report, err := f.reports.Create(ctx, reporter, &CreateReportInput{
		UserID:   "no-such-user",
		Username: "spammer",
		Reason:   domain.ReasonSpam,
		Comments: "<script>alert(1)</script>Sends links",
	})
	require.NoError(t, err)
	assert.Equal(t, "sarah.j", report.ReportedBy)
	assert.Equal(t, "Sends links", report.Comments)

	reports, err := f.reports.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	require.NoError(t, f.reports.Delete(ctx, report.ID))
	assert.ErrorIs(t, f.reports.Delete(ctx, report.ID), ErrReportNotFound)
}

func TestCronService_PruneSavedListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seeker := f.seeker(t, "sarah.j", nil)
	owner := f.lister(t, "alice")
	kept := f.listing(t, owner, 1000, nil)
	gone := f.listing(t, owner, 2000, nil)
	require.NoError(t, f.users.SaveListing(ctx, seeker.Username, kept.ID))
	require.NoError(t, f.users.SaveListing(ctx, seeker.Username, gone.ID))
	require.NoError(t, f.listers.DeleteListing(ctx, owner, owner.Username, gone.ID))

	cron := NewCronService(f.store, "", zap.NewNop())
	require.NoError(t, cron.Start())
	defer cron.Stop()

	removed, err := cron.PruneSavedListings(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	profile, err := f.users.GetProfile(ctx, seeker.Username)
	require.NoError(t, err)
	assert.Equal(t, []string{kept.ID}, profile.SavedListingIDs)
}

// afterListListings runs hook once right after the first listing scan
type afterListListings struct {
	repositories.Store
	hook func()
}

func (s *afterListListings) Listers() repositories.ListerRepository {
	return listingScanHook{ListerRepository: s.Store.Listers(), s: s}
}

type listingScanHook struct {
	repositories.ListerRepository
	s *afterListListings
}

func (l listingScanHook) ListListings(ctx context.Context) ([]*domain.Listing, error) {
	listings, err := l.ListerRepository.ListListings(ctx)
	if hook := l.s.hook; hook != nil {
		l.s.hook = nil
		hook()
	}
	return listings, err
}

func TestCronService_PruneKeepsListingSavedDuringRun(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seeker := f.seeker(t, "sarah.j", nil)
	owner := f.lister(t, "alice")
	gone := f.listing(t, owner, 2000, nil)
	require.NoError(t, f.users.SaveListing(ctx, seeker.Username, gone.ID))
	require.NoError(t, f.listers.DeleteListing(ctx, owner, owner.Username, gone.ID))

	var fresh *domain.Listing
	store := &afterListListings{Store: f.store, hook: func() {
		fresh = f.listing(t, owner, 1200, nil)
		require.NoError(t, f.users.SaveListing(ctx, seeker.Username, fresh.ID))
	}}

	removed, err := NewCronService(store, "", zap.NewNop()).PruneSavedListings(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	require.NotNil(t, fresh)
	profile, err := f.users.GetProfile(ctx, seeker.Username)
	require.NoError(t, err)
	assert.Equal(t, []string{fresh.ID}, profile.SavedListingIDs)
}

func TestCronService_InvalidSchedule(t *testing.T) {
	f := newFixture(t)
	cron := NewCronService(f.store, "every now and then", zap.NewNop())
	assert.Error(t, cron.Start())
}

func TestSeedService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	seeder := NewSeedService(f.store, cfg, zap.NewNop())

	seed := config.SeedConfig{AdminUsername: "root", AdminPassword: "bootstrap-pass"}
	require.NoError(t, seeder.SeedAdmin(ctx, seed))
	require.NoError(t, seeder.SeedAdmin(ctx, seed))
	require.NoError(t, seeder.SeedAdmin(ctx, config.SeedConfig{}))

	login, err := f.auth.Login(ctx, &LoginInput{Username: "root", Password: "bootstrap-pass"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, login.User.Role)

	require.NoError(t, seeder.SeedSampleData(ctx))
	require.NoError(t, seeder.SeedSampleData(ctx))

	users, err := f.admins.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, len(sampleUsers))

	listings, err := f.listers.SearchListings(ctx, ListingQuery{})
	require.NoError(t, err)
	assert.Len(t, listings, 5)

	_, err = f.auth.Login(ctx, &LoginInput{Username: "john.smith", Password: SamplePassword})
	assert.NoError(t, err)
}
