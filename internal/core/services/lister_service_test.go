package services

import (
	"context"
	"testing"

	"roomfinder/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListerService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.lister(t, "alice")

	account, err := f.store.Accounts().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLister, account.Role)
	assert.True(t, account.OnboardingComplete)

	_, err = f.listers.Register(ctx, &RegisterListerInput{Username: "alice", Password: "password123", Name: "Again"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// the failed registration must not leave a second profile behind
	listers, err := f.listers.ListListers(ctx)
	require.NoError(t, err)
	assert.Len(t, listers, 1)
}

func TestListerService_CompleteProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	caller := f.signup(t, "bob", domain.RoleLister)

	in := &CompleteListerProfileInput{
		ContactInfo: ContactInfoInput{Email: "bob@example.com", PreferredContact: domain.ContactEmail},
	}
	lister, err := f.listers.CompleteProfile(ctx, caller, in)
	require.NoError(t, err)
	assert.Equal(t, caller.UserID, lister.ID)
	assert.Equal(t, "bob", lister.Name)

	_, err = f.listers.CompleteProfile(ctx, caller, in)
	assert.ErrorIs(t, err, ErrProfileExists)

	seeker := f.signup(t, "carol", domain.RoleUser)
	_, err = f.listers.CompleteProfile(ctx, seeker, in)
	assert.ErrorIs(t, err, ErrRoleMismatch)
}

func TestListerService_ListingLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.lister(t, "alice")

	in := listingInput(0.3, 1800, 2, 2.5, 850, "72 Hemenway St, Boston, MA", 42.3424, -71.0892, "Cozy & bright")
	created, err := f.listers.CreateListing(ctx, alice, "alice", &in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	listings, err := f.listers.ListerListings(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	got := listings[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 0.3, got.DistanceFromUniv)
	assert.Equal(t, 1800.0, got.Rent)
	assert.Equal(t, "Cozy & bright", got.Description)
	assert.Equal(t, 2, got.NumberOfRooms)
	assert.Equal(t, 2.5, got.NumberOfBathrooms)
	assert.Equal(t, 850.0, got.SquareFoot)
	assert.Equal(t, "72 Hemenway St, Boston, MA", got.Address)
	assert.Equal(t, 42.3424, got.Latitude)
	assert.Equal(t, -71.0892, got.Longitude)

	rent := 1900.0
	updated, err := f.listers.UpdateListing(ctx, alice, "alice", created.ID, &UpdateListingInput{Rent: &rent})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 1900.0, updated.Rent)
	assert.Equal(t, "Cozy & bright", updated.Description)

	one, err := f.listers.GetListerListing(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1900.0, one.Rent)

	require.NoError(t, f.listers.DeleteListing(ctx, alice, "alice", created.ID))
	_, err = f.listers.GetListerListing(ctx, "alice", created.ID)
	assert.ErrorIs(t, err, ErrListingNotFound)
	assert.ErrorIs(t, f.listers.DeleteListing(ctx, alice, "alice", created.ID), ErrListingNotFound)
}

func TestListerService_OwnerChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.lister(t, "alice")
	mallory := f.lister(t, "mallory")
	listing := f.listing(t, alice, 1000, nil)

	in := listingInput(1, 1, 1, 1, 1, "x", 0, 0, "")
	_, err := f.listers.CreateListing(ctx, mallory, "alice", &in)
	assert.ErrorIs(t, err, ErrNotOwner)

	rent := 1.0
	_, err = f.listers.UpdateListing(ctx, mallory, "alice", listing.ID, &UpdateListingInput{Rent: &rent})
	assert.ErrorIs(t, err, ErrNotOwner)

	assert.ErrorIs(t, f.listers.DeleteListing(ctx, mallory, "alice", listing.ID), ErrNotOwner)
	assert.ErrorIs(t, f.listers.DeleteLister(ctx, mallory, "alice"), ErrNotOwner)
}

func TestListerService_DeleteListerRemovesAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.lister(t, "alice")
	f.listing(t, alice, 1000, nil)

	require.NoError(t, f.listers.DeleteLister(ctx, alice, "alice"))

	_, err := f.listers.GetLister(ctx, "alice")
	assert.ErrorIs(t, err, ErrListerNotFound)
	_, err = f.auth.Login(ctx, &LoginInput{Username: "alice", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	all, err := f.listers.SearchListings(ctx, ListingQuery{})
	require.NoError(t, err)
	assert.Empty(t, all)

	admin := Identity{Username: "root", Role: domain.RoleAdmin}
	f.lister(t, "bob")
	require.NoError(t, f.listers.DeleteLister(ctx, admin, "bob"))
	assert.ErrorIs(t, f.listers.DeleteLister(ctx, admin, "bob"), ErrListerNotFound)
}

func TestListerService_SearchListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.lister(t, "alice")
	bob := f.lister(t, "bob")

	cheap := f.listing(t, alice, 1500, nil)
	mid := f.listing(t, bob, 2500, func(in *ListingInput) { in.Address = "15 Calumet St, Boston, MA" })
	pricey := f.listing(t, alice, 3600, func(in *ListingInput) { in.NumberOfRooms = intp(4) })

	ids := func(ls []*domain.Listing) []string {
		out := make([]string, 0, len(ls))
		for _, l := range ls {
			out = append(out, l.ID)
		}
		return out
	}

	inRange, err := f.listers.SearchListings(ctx, ListingQuery{Rent: "1500-2500"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{cheap.ID, mid.ID}, ids(inRange))

	high, err := f.listers.SearchListings(ctx, ListingQuery{Rent: "3500+"})
	require.NoError(t, err)
	assert.Equal(t, []string{pricey.ID}, ids(high))

	byAddress, err := f.listers.SearchListings(ctx, ListingQuery{Address: "CALUMET"})
	require.NoError(t, err)
	require.Len(t, byAddress, 1)
	assert.Equal(t, "bob", byAddress[0].ListerUsername)

	rooms, err := f.listers.SearchListings(ctx, ListingQuery{Rooms: "4"})
	require.NoError(t, err)
	assert.Equal(t, []string{pricey.ID}, ids(rooms))

	_, err = f.listers.SearchListings(ctx, ListingQuery{Rent: "1500-"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestListerService_GetListingDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.lister(t, "alice")
	listing := f.listing(t, alice, 1000, nil)

	detail, err := f.listers.GetListingDetail(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, detail.Listing.ID)
	assert.Equal(t, "alice", detail.Lister.Username)
	assert.Equal(t, "alice@example.com", detail.Lister.ContactInfo.Email)

	_, err = f.listers.GetListingDetail(ctx, "missing")
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestListerService_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.lister(t, "alice")

	name := "Alice Cooper"
	lister, err := f.listers.UpdateProfile(ctx, "alice", &UpdateListerProfileInput{
		Name:        &name,
		ContactInfo: &ContactInfoInput{Email: "ac@example.com", PreferredContact: domain.ContactEmail},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", lister.Name)

	account, err := f.store.Accounts().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", account.Name)
}
