// Package storetest holds behaviour checks every repositories.Store
// implementation must pass. Driver packages call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run executes the suite; newStore must return an empty store
func Run(t *testing.T, newStore func(t *testing.T) repositories.Store) {
	t.Run("Accounts", func(t *testing.T) { testAccounts(t, newStore(t)) })
	t.Run("UserProfiles", func(t *testing.T) { testUserProfiles(t, newStore(t)) })
	t.Run("SavedListings", func(t *testing.T) { testSavedListings(t, newStore(t)) })
	t.Run("Listings", func(t *testing.T) { testListings(t, newStore(t)) })
	t.Run("Reports", func(t *testing.T) { testReports(t, newStore(t)) })
	t.Run("TransactionRollback", func(t *testing.T) { testRollback(t, newStore(t)) })
}

func newAccount(username string, role domain.Role) *domain.Account {
	return &domain.Account{
		ID:       uuid.NewString(),
		Username: username,
		Password: "hash",
		Name:     username,
		Role:     role,
	}
}

func newListing(rent float64) *domain.Listing {
	return &domain.Listing{
		ID:                uuid.NewString(),
		DistanceFromUniv:  1.2,
		Rent:              rent,
		Description:       "Near campus",
		NumberOfRooms:     2,
		NumberOfBathrooms: 1.5,
		SquareFoot:        900,
		Address:           "123 University Ave",
		Latitude:          40.7128,
		Longitude:         -74.006,
	}
}

func testAccounts(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	repo := s.Accounts()

	acc := newAccount("sarah.j", domain.RoleUser)
	require.NoError(t, repo.Create(ctx, acc))
	assert.False(t, acc.CreatedAt.IsZero())

	err := repo.Create(ctx, newAccount("sarah.j", domain.RoleLister))
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	got, err := repo.GetByUsername(ctx, "sarah.j")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, domain.RoleUser, got.Role)

	byID, err := repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "sarah.j", byID.Username)

	require.NoError(t, repo.SetOnboardingComplete(ctx, "sarah.j", true))
	require.NoError(t, repo.UpdateName(ctx, "sarah.j", "Sarah Johnson"))
	got, err = repo.GetByUsername(ctx, "sarah.j")
	require.NoError(t, err)
	assert.True(t, got.OnboardingComplete)
	assert.Equal(t, "Sarah Johnson", got.Name)

	assert.ErrorIs(t, repo.SetOnboardingComplete(ctx, "nobody", true), domain.ErrNotFound)

	exists, err := repo.ExistsByUsername(ctx, "sarah.j")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteByUsername(ctx, "sarah.j"))
	_, err = repo.GetByUsername(ctx, "sarah.j")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteByUsername(ctx, "sarah.j"), domain.ErrNotFound)
}

func testUserProfiles(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	repo := s.Users()

	for _, name := range []string{"zoe", "adam"} {
		require.NoError(t, repo.Create(ctx, &domain.UserProfile{
			ID:            uuid.NewString(),
			Username:      name,
			Name:          name,
			Gender:        domain.GenderFemale,
			Budget:        1200,
			LeaseDuration: 12,
			ContactInfo:   domain.ContactInfo{Email: name + "@example.com", PreferredContact: domain.ContactEmail},
		}))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "adam", all[0].Username)
	assert.Equal(t, "zoe", all[1].Username)

	adam := all[0]
	adam.Budget = 1500
	adam.Smoking = true
	adam.ContactInfo.Phone = "555-0100"
	require.NoError(t, repo.Update(ctx, adam))

	got, err := repo.GetByID(ctx, adam.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, got.Budget)
	assert.True(t, got.Smoking)
	assert.Equal(t, "555-0100", got.ContactInfo.Phone)
	assert.NotNil(t, got.SavedListingIDs)

	err = repo.Create(ctx, &domain.UserProfile{ID: uuid.NewString(), Username: "adam", Gender: domain.GenderMale})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	require.NoError(t, repo.DeleteByUsername(ctx, "adam"))
	_, err = repo.GetByUsername(ctx, "adam")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testSavedListings(t *testing.T, s repositories.Store) {
	ctx := context.Background()

	require.NoError(t, s.Users().Create(ctx, &domain.UserProfile{
		ID: uuid.NewString(), Username: "sarah.j", Name: "Sarah", Gender: domain.GenderFemale,
		Budget: 1000, LeaseDuration: 6,
	}))
	require.NoError(t, s.Listers().Create(ctx, &domain.ListerProfile{
		ID: uuid.NewString(), Username: "john.smith", Name: "John",
	}))
	listing := newListing(1800)
	require.NoError(t, s.Listers().AddListing(ctx, "john.smith", listing))

	users := s.Users()
	require.NoError(t, users.AddSavedListing(ctx, "sarah.j", listing.ID))
	require.NoError(t, users.AddSavedListing(ctx, "sarah.j", listing.ID))
	require.NoError(t, users.AddSavedListing(ctx, "sarah.j", "gone-listing"))

	got, err := users.GetByUsername(ctx, "sarah.j")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{listing.ID, "gone-listing"}, got.SavedListingIDs)

	removed, err := users.RemoveSavedListings(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = users.RemoveSavedListings(ctx, []string{"gone-listing"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	got, err = users.GetByUsername(ctx, "sarah.j")
	require.NoError(t, err)
	assert.Equal(t, []string{listing.ID}, got.SavedListingIDs)

	ok, err := users.RemoveSavedListing(ctx, "sarah.j", listing.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = users.RemoveSavedListing(ctx, "sarah.j", listing.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, users.AddSavedListing(ctx, "nobody", listing.ID), domain.ErrNotFound)
}

func testListings(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	repo := s.Listers()

	lister := &domain.ListerProfile{
		ID:          uuid.NewString(),
		Username:    "john.smith",
		Name:        "John Smith",
		ContactInfo: domain.ContactInfo{Email: "john@example.com", PreferredContact: domain.ContactEmail},
	}
	require.NoError(t, repo.Create(ctx, lister))

	first := newListing(1800)
	first.CreatedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	second := newListing(2500)
	require.NoError(t, repo.AddListing(ctx, "john.smith", second))
	require.NoError(t, repo.AddListing(ctx, "john.smith", first))
	assert.Equal(t, "john.smith", first.ListerUsername)

	got, err := repo.GetByUsername(ctx, "john.smith")
	require.NoError(t, err)
	require.Len(t, got.Listings, 2)
	assert.Equal(t, first.ID, got.Listings[0].ID)
	assert.Equal(t, second.ID, got.Listings[1].ID)

	updated := *second
	updated.Rent = 2600
	updated.Description = "Renovated"
	require.NoError(t, repo.UpdateListing(ctx, "john.smith", &updated))

	found, owner, err := repo.FindListing(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)
	assert.Equal(t, 2600.0, found.Rent)
	assert.Equal(t, "Renovated", found.Description)
	assert.Equal(t, "john.smith", owner.Username)
	assert.Equal(t, "john.smith", found.ListerUsername)

	missing := newListing(1)
	assert.ErrorIs(t, repo.UpdateListing(ctx, "john.smith", missing), domain.ErrNotFound)

	all, err := repo.ListListings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, "john.smith", all[1].ListerUsername)

	require.NoError(t, repo.DeleteListing(ctx, "john.smith", first.ID))
	assert.ErrorIs(t, repo.DeleteListing(ctx, "john.smith", first.ID), domain.ErrNotFound)
	_, _, err = repo.FindListing(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	lister.Name = "John A. Smith"
	lister.ContactInfo.Phone = "555-0101"
	require.NoError(t, repo.Update(ctx, lister))
	byID, err := repo.GetByID(ctx, lister.ID)
	require.NoError(t, err)
	assert.Equal(t, "John A. Smith", byID.Name)
	assert.Len(t, byID.Listings, 1)

	require.NoError(t, repo.DeleteByUsername(ctx, "john.smith"))
	all, err = repo.ListListings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testReports(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	repo := s.Reports()

	older := &domain.Report{
		ID: uuid.NewString(), TargetUserID: "u1", Username: "spammer", Reason: domain.ReasonSpam,
		ReportedAt: time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond),
	}
	newer := &domain.Report{
		ID: uuid.NewString(), TargetUserID: "u2", Username: "faker", Reason: domain.ReasonFakeProfile,
		ReportedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	require.NoError(t, repo.Delete(ctx, older.ID))
	assert.ErrorIs(t, repo.Delete(ctx, older.ID), domain.ErrNotFound)
}

var errAbort = errors.New("abort")

func testRollback(t *testing.T, s repositories.Store) {
	ctx := context.Background()

	err := s.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.Accounts().Create(ctx, newAccount("ghost", domain.RoleUser)); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	exists, err := s.Accounts().ExistsByUsername(ctx, "ghost")
	require.NoError(t, err)
	if txStore, ok := s.(interface{ SupportsTransactions() bool }); ok && !txStore.SupportsTransactions() {
		t.Skip("store runs without transactions")
	}
	assert.False(t, exists)

	err = s.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		return tx.Accounts().Create(ctx, newAccount("kept", domain.RoleUser))
	})
	require.NoError(t, err)
	exists, err = s.Accounts().ExistsByUsername(ctx, "kept")
	require.NoError(t, err)
	assert.True(t, exists)
}
