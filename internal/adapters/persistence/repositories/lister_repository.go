package repositories

import (
	"context"

	"roomfinder/internal/adapters/persistence/models"
	"roomfinder/internal/core/domain"

	"gorm.io/gorm"
)

// listerRepository implements ListerRepository interface
type listerRepository struct {
	db *gorm.DB
}

// NewListerRepository creates a new lister repository
func NewListerRepository(db *gorm.DB) ListerRepository {
	return &listerRepository{db: db}
}

var listingColumns = []string{
	"distance_from_univ", "rent", "description", "number_of_rooms", "number_of_bathrooms",
	"square_foot", "address", "latitude", "longitude", "updated_at",
}

func (r *listerRepository) withListings(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Listings", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC, id ASC")
	})
}

// Create creates a lister profile together with any listings it already carries
func (r *listerRepository) Create(ctx context.Context, lister *domain.ListerProfile) error {
	m := models.ListerFromDomain(lister)
	for i := range lister.Listings {
		m.Listings = append(m.Listings, *models.ListingFromDomain(lister.ID, &lister.Listings[i]))
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapError(err)
	}
	lister.CreatedAt, lister.UpdatedAt = m.CreatedAt, m.UpdatedAt
	if lister.Listings == nil {
		lister.Listings = []domain.Listing{}
	}
	return nil
}

// GetByID gets a lister by ID
func (r *listerRepository) GetByID(ctx context.Context, id string) (*domain.ListerProfile, error) {
	var lister models.ListerProfile
	if err := r.withListings(ctx).Where("id = ?", id).First(&lister).Error; err != nil {
		return nil, wrapError(err)
	}
	return lister.ToDomain(), nil
}

// GetByUsername gets a lister by username
func (r *listerRepository) GetByUsername(ctx context.Context, username string) (*domain.ListerProfile, error) {
	var lister models.ListerProfile
	if err := r.withListings(ctx).Where("username = ?", username).First(&lister).Error; err != nil {
		return nil, wrapError(err)
	}
	return lister.ToDomain(), nil
}

// List returns all listers ordered by username
func (r *listerRepository) List(ctx context.Context) ([]*domain.ListerProfile, error) {
	var rows []models.ListerProfile
	if err := r.withListings(ctx).Order("username ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	listers := make([]*domain.ListerProfile, 0, len(rows))
	for i := range rows {
		listers = append(listers, rows[i].ToDomain())
	}
	return listers, nil
}

// Update writes the profile columns
func (r *listerRepository) Update(ctx context.Context, lister *domain.ListerProfile) error {
	m := models.ListerFromDomain(lister)
	res := r.db.WithContext(ctx).Model(&models.ListerProfile{}).
		Where("username = ?", lister.Username).
		Select("name", "profile_picture", "contact_email", "contact_phone", "contact_preferred_contact", "updated_at").
		Updates(m)
	return updateExisting(ctx, r.db, res, &models.ListerProfile{}, "username = ?", lister.Username)
}

// DeleteByUsername removes the lister and every listing it owns
func (r *listerRepository) DeleteByUsername(ctx context.Context, username string) error {
	id, err := r.idOf(ctx, username)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Where("lister_id = ?", id).Delete(&models.Listing{}).Error; err != nil {
		return err
	}
	return deleteExisting(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ListerProfile{}))
}

// AddListing appends a listing to the lister
func (r *listerRepository) AddListing(ctx context.Context, username string, listing *domain.Listing) error {
	id, err := r.idOf(ctx, username)
	if err != nil {
		return err
	}

	m := models.ListingFromDomain(id, listing)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapError(err)
	}
	listing.CreatedAt, listing.UpdatedAt = m.CreatedAt, m.UpdatedAt
	listing.ListerUsername = username
	return nil
}

// UpdateListing overwrites the listing fields; the ID never changes
func (r *listerRepository) UpdateListing(ctx context.Context, username string, listing *domain.Listing) error {
	id, err := r.idOf(ctx, username)
	if err != nil {
		return err
	}

	var existing models.Listing
	if err := r.db.WithContext(ctx).Where("id = ? AND lister_id = ?", listing.ID, id).First(&existing).Error; err != nil {
		return wrapError(err)
	}

	m := models.ListingFromDomain(id, listing)
	if err := r.db.WithContext(ctx).Model(&existing).Select(listingColumns).Updates(m).Error; err != nil {
		return wrapError(err)
	}
	listing.ListerUsername = username
	return nil
}

// DeleteListing removes one listing of the lister
func (r *listerRepository) DeleteListing(ctx context.Context, username, listingID string) error {
	id, err := r.idOf(ctx, username)
	if err != nil {
		return err
	}
	return deleteExisting(r.db.WithContext(ctx).Where("id = ? AND lister_id = ?", listingID, id).Delete(&models.Listing{}))
}

// FindListing returns the listing and its owner
func (r *listerRepository) FindListing(ctx context.Context, listingID string) (*domain.Listing, *domain.ListerProfile, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		return nil, nil, wrapError(err)
	}

	lister, err := r.GetByID(ctx, listing.ListerID)
	if err != nil {
		return nil, nil, err
	}

	found := listing.ToDomain()
	found.ListerUsername = lister.Username
	return found, lister, nil
}

// ListListings returns every listing joined with its owner's username
func (r *listerRepository) ListListings(ctx context.Context) ([]*domain.Listing, error) {
	var rows []models.ListingWithLister
	err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Select("listings.*, lister_profiles.username AS lister_username").
		Joins("JOIN lister_profiles ON lister_profiles.id = listings.lister_id").
		Order("listings.created_at ASC, listings.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	listings := make([]*domain.Listing, 0, len(rows))
	for i := range rows {
		listing := rows[i].Listing.ToDomain()
		listing.ListerUsername = rows[i].ListerUsername
		listings = append(listings, listing)
	}
	return listings, nil
}

func (r *listerRepository) idOf(ctx context.Context, username string) (string, error) {
	var lister models.ListerProfile
	err := r.db.WithContext(ctx).Select("id").Where("username = ?", username).First(&lister).Error
	if err != nil {
		return "", wrapError(err)
	}
	return lister.ID, nil
}

// reportRepository implements ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	return wrapError(r.db.WithContext(ctx).Create(models.ReportFromDomain(report)).Error)
}

// List returns reports newest first
func (r *reportRepository) List(ctx context.Context) ([]*domain.Report, error) {
	var rows []models.Report
	if err := r.db.WithContext(ctx).Order("reported_at DESC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	reports := make([]*domain.Report, 0, len(rows))
	for i := range rows {
		reports = append(reports, rows[i].ToDomain())
	}
	return reports, nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	return deleteExisting(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Report{}))
}
