package services

import (
	"context"
	"testing"

	"roomfinder/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CompleteProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	caller := f.signup(t, "sarah.j", domain.RoleUser)

	profile, err := f.users.CompleteProfile(ctx, caller, &CompleteUserProfileInput{
		Name:          "Sarah <b>Johnson</b>",
		Gender:        domain.GenderFemale,
		Budget:        f64(2000),
		LeaseDuration: 12,
		ContactInfo:   ContactInfoInput{Email: "sarah@example.com", PreferredContact: domain.ContactEmail},
	})
	require.NoError(t, err)
	assert.Equal(t, caller.UserID, profile.ID)
	assert.Equal(t, "Sarah Johnson", profile.Name)

	account, err := f.store.Accounts().GetByUsername(ctx, "sarah.j")
	require.NoError(t, err)
	assert.True(t, account.OnboardingComplete)
	assert.Equal(t, "Sarah Johnson", account.Name)

	_, err = f.users.CompleteProfile(ctx, caller, &CompleteUserProfileInput{
		Gender: domain.GenderFemale, Budget: f64(1), LeaseDuration: 1,
	})
	assert.ErrorIs(t, err, ErrProfileExists)
}

func TestUserService_CompleteProfileWrongRole(t *testing.T) {
	f := newFixture(t)
	caller := f.signup(t, "alice", domain.RoleLister)

	_, err := f.users.CompleteProfile(context.Background(), caller, &CompleteUserProfileInput{
		Gender: domain.GenderFemale, Budget: f64(1), LeaseDuration: 1,
	})
	assert.ErrorIs(t, err, ErrRoleMismatch)
}

func TestUserService_UpdateProfileSyncsAccountName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seeker(t, "sarah.j", nil)

	name := "Sarah J."
	budget := 2400.0
	smoking := true
	updated, err := f.users.UpdateProfile(ctx, "sarah.j", &UpdateUserProfileInput{
		Name:    &name,
		Budget:  &budget,
		Smoking: &smoking,
		ContactInfo: &ContactInfoInput{
			Email: "new@example.com", Phone: "555-0100", PreferredContact: domain.ContactPhone,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2400.0, updated.Budget)
	assert.Equal(t, 12, updated.LeaseDuration)

	stored, err := f.users.GetProfile(ctx, "sarah.j")
	require.NoError(t, err)
	assert.Equal(t, "Sarah J.", stored.Name)
	assert.True(t, stored.Smoking)
	assert.Equal(t, domain.ContactPhone, stored.ContactInfo.PreferredContact)

	account, err := f.store.Accounts().GetByUsername(ctx, "sarah.j")
	require.NoError(t, err)
	assert.Equal(t, "Sarah J.", account.Name)

	_, err = f.users.UpdateProfile(ctx, "ghost", &UpdateUserProfileInput{Name: &name})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUserService_PublicAndFullProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	caller := f.seeker(t, "sarah.j", nil)

	public, err := f.users.GetPublicProfile(ctx, caller.UserID)
	require.NoError(t, err)
	assert.Equal(t, "sarah.j", public.Name)

	full, err := f.users.GetFullProfile(ctx, caller.UserID)
	require.NoError(t, err)
	assert.Equal(t, "sarah.j@example.com", full.ContactInfo.Email)

	_, err = f.users.GetPublicProfile(ctx, "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUserService_PotentialRoommates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seeker(t, "zoe", func(in *CompleteUserProfileInput) {
		in.Budget = f64(2000)
		in.Smoking = true
		in.OpenToMixedGender = true
	})
	f.seeker(t, "adam", func(in *CompleteUserProfileInput) {
		in.Budget = f64(1200)
		in.LeaseDuration = 6
	})
	me := f.seeker(t, "me", func(in *CompleteUserProfileInput) {
		in.Budget = f64(1500)
	})

	all, err := f.users.PotentialRoommates(ctx, RoommateQuery{}, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "adam", all[0].Username)

	others, err := f.users.PotentialRoommates(ctx, RoommateQuery{}, me.Username)
	require.NoError(t, err)
	assert.Len(t, others, 2)
	for _, p := range others {
		assert.NotEqual(t, me.Username, p.Username)
	}

	smokers, err := f.users.PotentialRoommates(ctx, RoommateQuery{Smoking: "smoking"}, me.Username)
	require.NoError(t, err)
	require.Len(t, smokers, 1)
	assert.Equal(t, "zoe", smokers[0].Username)

	budget, err := f.users.PotentialRoommates(ctx, RoommateQuery{Budget: "1000-1600", LeaseDuration: "12"}, "")
	require.NoError(t, err)
	require.Len(t, budget, 1)
	assert.Equal(t, "me", budget[0].Username)

	_, err = f.users.PotentialRoommates(ctx, RoommateQuery{Budget: "x"}, "")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestUserService_SavedListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seeker := f.seeker(t, "sarah.j", nil)
	owner := f.lister(t, "john.smith")
	first := f.listing(t, owner, 1800, nil)
	second := f.listing(t, owner, 2500, nil)

	require.NoError(t, f.users.SaveListing(ctx, seeker.Username, first.ID))
	require.NoError(t, f.users.SaveListing(ctx, seeker.Username, first.ID))
	require.NoError(t, f.users.SaveListingFor(ctx, seeker, seeker.UserID, second.ID))

	profile, err := f.users.GetProfile(ctx, seeker.Username)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, profile.SavedListingIDs)

	assert.ErrorIs(t, f.users.SaveListing(ctx, seeker.Username, "missing"), ErrListingNotFound)
	assert.ErrorIs(t, f.users.SaveListingFor(ctx, seeker, "someone-else", first.ID), ErrNotProfileOwner)

	// deleting a listing leaves a dangling id that reads skip
	require.NoError(t, f.listers.DeleteListing(ctx, owner, owner.Username, first.ID))
	saved, err := f.users.SavedListings(ctx, seeker.Username)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, second.ID, saved[0].ID)
	assert.Equal(t, "john.smith", saved[0].ListerUsername)

	require.NoError(t, f.users.UnsaveListing(ctx, seeker.Username, second.ID))
	assert.ErrorIs(t, f.users.UnsaveListing(ctx, seeker.Username, second.ID), ErrListingNotSaved)
	assert.ErrorIs(t, f.users.UnsaveListing(ctx, "ghost", second.ID), ErrProfileNotFound)
}
