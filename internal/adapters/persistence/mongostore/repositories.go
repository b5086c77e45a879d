package mongostore

import (
	"context"
	"sort"

	"roomfinder/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var byUsernameAsc = options.Find().SetSort(bson.D{{Key: "username", Value: 1}})

// accountRepo stores credential records
type accountRepo struct{ col *mongo.Collection }

func (r accountRepo) Create(ctx context.Context, account *domain.Account) error {
	stamp(&account.CreatedAt, &account.UpdatedAt)
	return insertOne(ctx, r.col, account)
}

func (r accountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return findOne[domain.Account](ctx, r.col, byID(id))
}

func (r accountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return findOne[domain.Account](ctx, r.col, byUsername(username))
}

func (r accountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, byUsername(username), options.Count().SetLimit(1))
	return n > 0, err
}

func (r accountRepo) SetOnboardingComplete(ctx context.Context, username string, complete bool) error {
	return r.set(ctx, username, bson.E{Key: "onboardingComplete", Value: complete})
}

func (r accountRepo) UpdateName(ctx context.Context, username, name string) error {
	return r.set(ctx, username, bson.E{Key: "name", Value: name})
}

func (r accountRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	return r.set(ctx, username, bson.E{Key: "password", Value: hash})
}

func (r accountRepo) set(ctx context.Context, username string, field bson.E) error {
	update := bson.D{{Key: "$set", Value: bson.D{field, {Key: "updatedAt", Value: now()}}}}
	return updateOne(ctx, r.col, byUsername(username), update)
}

func (r accountRepo) DeleteByUsername(ctx context.Context, username string) error {
	return deleteOne(ctx, r.col, byUsername(username))
}

// adminRepo stores admin profiles
type adminRepo struct{ col *mongo.Collection }

func (r adminRepo) Create(ctx context.Context, admin *domain.AdminProfile) error {
	stamp(&admin.CreatedAt, &admin.UpdatedAt)
	return insertOne(ctx, r.col, admin)
}

func (r adminRepo) GetByUsername(ctx context.Context, username string) (*domain.AdminProfile, error) {
	return findOne[domain.AdminProfile](ctx, r.col, byUsername(username))
}

func (r adminRepo) List(ctx context.Context) ([]*domain.AdminProfile, error) {
	return findMany[domain.AdminProfile](ctx, r.col, bson.D{}, byUsernameAsc)
}

func (r adminRepo) Update(ctx context.Context, admin *domain.AdminProfile) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: admin.Name},
		{Key: "profilePicture", Value: admin.ProfilePicture},
		{Key: "updatedAt", Value: now()},
	}}}
	return updateOne(ctx, r.col, byUsername(admin.Username), update)
}

func (r adminRepo) DeleteByUsername(ctx context.Context, username string) error {
	return deleteOne(ctx, r.col, byUsername(username))
}

// userRepo stores roommate-seeker profiles
type userRepo struct{ col *mongo.Collection }

func (r userRepo) Create(ctx context.Context, profile *domain.UserProfile) error {
	if profile.SavedListingIDs == nil {
		profile.SavedListingIDs = []string{}
	}
	stamp(&profile.CreatedAt, &profile.UpdatedAt)
	return insertOne(ctx, r.col, profile)
}

func (r userRepo) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	return r.normalize(findOne[domain.UserProfile](ctx, r.col, byID(id)))
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	return r.normalize(findOne[domain.UserProfile](ctx, r.col, byUsername(username)))
}

func (r userRepo) normalize(u *domain.UserProfile, err error) (*domain.UserProfile, error) {
	if err != nil {
		return nil, err
	}
	if u.SavedListingIDs == nil {
		u.SavedListingIDs = []string{}
	}
	return u, nil
}

func (r userRepo) List(ctx context.Context) ([]*domain.UserProfile, error) {
	users, err := findMany[domain.UserProfile](ctx, r.col, bson.D{}, byUsernameAsc)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		_, _ = r.normalize(u, nil)
	}
	return users, nil
}

func (r userRepo) Update(ctx context.Context, profile *domain.UserProfile) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: profile.Name},
		{Key: "gender", Value: profile.Gender},
		{Key: "budget", Value: profile.Budget},
		{Key: "leaseDuration", Value: profile.LeaseDuration},
		{Key: "smoking", Value: profile.Smoking},
		{Key: "drinking", Value: profile.Drinking},
		{Key: "openToMixedGender", Value: profile.OpenToMixedGender},
		{Key: "openToRoommateFind", Value: profile.OpenToRoommateFind},
		{Key: "profilePicture", Value: profile.ProfilePicture},
		{Key: "contactInfo", Value: profile.ContactInfo},
		{Key: "updatedAt", Value: now()},
	}}}
	return updateOne(ctx, r.col, byUsername(profile.Username), update)
}

func (r userRepo) DeleteByUsername(ctx context.Context, username string) error {
	return deleteOne(ctx, r.col, byUsername(username))
}

func (r userRepo) AddSavedListing(ctx context.Context, username, listingID string) error {
	update := bson.D{{Key: "$addToSet", Value: bson.D{{Key: "savedListingIds", Value: listingID}}}}
	return updateOne(ctx, r.col, byUsername(username), update)
}

func (r userRepo) RemoveSavedListing(ctx context.Context, username, listingID string) (bool, error) {
	update := bson.D{{Key: "$pull", Value: bson.D{{Key: "savedListingIds", Value: listingID}}}}
	res, err := r.col.UpdateOne(ctx, byUsername(username), update)
	if err != nil {
		return false, wrapError(err)
	}
	if res.MatchedCount == 0 {
		return false, domain.ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

// RemoveSavedListings reports the number of profiles that changed
func (r userRepo) RemoveSavedListings(ctx context.Context, listingIDs []string) (int64, error) {
	if len(listingIDs) == 0 {
		return 0, nil
	}
	filter := bson.D{{Key: "savedListingIds", Value: bson.D{{Key: "$in", Value: listingIDs}}}}
	update := bson.D{{Key: "$pull", Value: bson.D{
		{Key: "savedListingIds", Value: bson.D{{Key: "$in", Value: listingIDs}}},
	}}}
	res, err := r.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, wrapError(err)
	}
	return res.ModifiedCount, nil
}

// listerRepo stores lister profiles with embedded listings
type listerRepo struct{ col *mongo.Collection }

func (r listerRepo) Create(ctx context.Context, lister *domain.ListerProfile) error {
	if lister.Listings == nil {
		lister.Listings = []domain.Listing{}
	}
	stamp(&lister.CreatedAt, &lister.UpdatedAt)
	for i := range lister.Listings {
		stamp(&lister.Listings[i].CreatedAt, &lister.Listings[i].UpdatedAt)
		lister.Listings[i].ListerUsername = lister.Username
	}
	return insertOne(ctx, r.col, lister)
}

func (r listerRepo) GetByID(ctx context.Context, id string) (*domain.ListerProfile, error) {
	return prepare(findOne[domain.ListerProfile](ctx, r.col, byID(id)))
}

func (r listerRepo) GetByUsername(ctx context.Context, username string) (*domain.ListerProfile, error) {
	return prepare(findOne[domain.ListerProfile](ctx, r.col, byUsername(username)))
}

// prepare orders embedded listings and fills the derived owner field
func prepare(l *domain.ListerProfile, err error) (*domain.ListerProfile, error) {
	if err != nil {
		return nil, err
	}
	if l.Listings == nil {
		l.Listings = []domain.Listing{}
	}
	for i := range l.Listings {
		l.Listings[i].ListerUsername = l.Username
	}
	sort.SliceStable(l.Listings, func(i, j int) bool {
		return listingLess(&l.Listings[i], &l.Listings[j])
	})
	return l, nil
}

func (r listerRepo) List(ctx context.Context) ([]*domain.ListerProfile, error) {
	listers, err := findMany[domain.ListerProfile](ctx, r.col, bson.D{}, byUsernameAsc)
	if err != nil {
		return nil, err
	}
	for _, l := range listers {
		_, _ = prepare(l, nil)
	}
	return listers, nil
}

func (r listerRepo) Update(ctx context.Context, lister *domain.ListerProfile) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: lister.Name},
		{Key: "profilePicture", Value: lister.ProfilePicture},
		{Key: "contactInfo", Value: lister.ContactInfo},
		{Key: "updatedAt", Value: now()},
	}}}
	return updateOne(ctx, r.col, byUsername(lister.Username), update)
}

func (r listerRepo) DeleteByUsername(ctx context.Context, username string) error {
	return deleteOne(ctx, r.col, byUsername(username))
}

func (r listerRepo) AddListing(ctx context.Context, username string, listing *domain.Listing) error {
	stamp(&listing.CreatedAt, &listing.UpdatedAt)
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "listings", Value: listing}}}}
	if err := updateOne(ctx, r.col, byUsername(username), update); err != nil {
		return err
	}
	listing.ListerUsername = username
	return nil
}

func (r listerRepo) UpdateListing(ctx context.Context, username string, listing *domain.Listing) error {
	if listing.UpdatedAt.IsZero() {
		listing.UpdatedAt = now()
	}
	filter := bson.D{{Key: "username", Value: username}, {Key: "listings._id", Value: listing.ID}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "listings.$", Value: listing}}}}
	if err := updateOne(ctx, r.col, filter, update); err != nil {
		return err
	}
	listing.ListerUsername = username
	return nil
}

func (r listerRepo) DeleteListing(ctx context.Context, username, listingID string) error {
	filter := bson.D{{Key: "username", Value: username}, {Key: "listings._id", Value: listingID}}
	update := bson.D{{Key: "$pull", Value: bson.D{
		{Key: "listings", Value: bson.D{{Key: "_id", Value: listingID}}},
	}}}
	return updateOne(ctx, r.col, filter, update)
}

func (r listerRepo) FindListing(ctx context.Context, listingID string) (*domain.Listing, *domain.ListerProfile, error) {
	lister, err := prepare(findOne[domain.ListerProfile](ctx, r.col, bson.D{{Key: "listings._id", Value: listingID}}))
	if err != nil {
		return nil, nil, err
	}
	listing, ok := lister.FindListing(listingID)
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	return listing, lister, nil
}

func (r listerRepo) ListListings(ctx context.Context) ([]*domain.Listing, error) {
	listers, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]*domain.Listing, 0)
	for _, l := range listers {
		for i := range l.Listings {
			listings = append(listings, &l.Listings[i])
		}
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return listingLess(listings[i], listings[j])
	})
	return listings, nil
}

func listingLess(a, b *domain.Listing) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// reportRepo stores moderation reports
type reportRepo struct{ col *mongo.Collection }

func (r reportRepo) Create(ctx context.Context, report *domain.Report) error {
	if report.ReportedAt.IsZero() {
		report.ReportedAt = now()
	}
	return insertOne(ctx, r.col, report)
}

func (r reportRepo) List(ctx context.Context) ([]*domain.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "reportedAt", Value: -1}, {Key: "_id", Value: 1}})
	return findMany[domain.Report](ctx, r.col, bson.D{}, opts)
}

func (r reportRepo) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.col, byID(id))
}
