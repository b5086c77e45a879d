package models

import (
	"time"

	"roomfinder/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Accounts & admin profiles
// ============================================================

// Account represents accounts table
type Account struct {
	ID                 string    `gorm:"primaryKey;size:36"`
	Username           string    `gorm:"uniqueIndex;size:50;not null"`
	Password           string    `gorm:"size:255;not null"`
	Name               string    `gorm:"size:100;not null"`
	Role               string    `gorm:"size:20;not null;default:'user'"`
	OnboardingComplete bool      `gorm:"default:false"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) ToDomain() *domain.Account {
	return &domain.Account{
		ID:                 a.ID,
		Username:           a.Username,
		Password:           a.Password,
		Name:               a.Name,
		Role:               domain.Role(a.Role),
		OnboardingComplete: a.OnboardingComplete,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func AccountFromDomain(a *domain.Account) *Account {
	return &Account{
		ID:                 a.ID,
		Username:           a.Username,
		Password:           a.Password,
		Name:               a.Name,
		Role:               string(a.Role),
		OnboardingComplete: a.OnboardingComplete,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// AdminProfile represents admin_profiles table
type AdminProfile struct {
	ID             string    `gorm:"primaryKey;size:36"`
	Username       string    `gorm:"uniqueIndex;size:50;not null"`
	Name           string    `gorm:"size:100;not null"`
	ProfilePicture string    `gorm:"size:500"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}

func (a *AdminProfile) ToDomain() *domain.AdminProfile {
	return &domain.AdminProfile{
		ID:             a.ID,
		Username:       a.Username,
		Name:           a.Name,
		ProfilePicture: a.ProfilePicture,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func AdminFromDomain(a *domain.AdminProfile) *AdminProfile {
	return &AdminProfile{
		ID:             a.ID,
		Username:       a.Username,
		Name:           a.Name,
		ProfilePicture: a.ProfilePicture,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ============================================================
// Roommate seekers
// ============================================================

// ContactInfo is embedded into profile tables with a contact_ prefix
type ContactInfo struct {
	Email            string `gorm:"size:255"`
	Phone            string `gorm:"size:50"`
	PreferredContact string `gorm:"size:10;default:'email'"`
}

func (c ContactInfo) toDomain() domain.ContactInfo {
	return domain.ContactInfo{
		Email:            c.Email,
		Phone:            c.Phone,
		PreferredContact: domain.ContactMethod(c.PreferredContact),
	}
}

func contactFromDomain(c domain.ContactInfo) ContactInfo {
	return ContactInfo{
		Email:            c.Email,
		Phone:            c.Phone,
		PreferredContact: string(c.PreferredContact),
	}
}

// UserProfile represents user_profiles table
type UserProfile struct {
	ID                 string         `gorm:"primaryKey;size:36"`
	Username           string         `gorm:"uniqueIndex;size:50;not null"`
	Name               string         `gorm:"size:100;not null"`
	Gender             string         `gorm:"size:10;not null"`
	Budget             float64        `gorm:"not null"`
	LeaseDuration      int            `gorm:"not null"`
	Smoking            bool           `gorm:"default:false"`
	Drinking           bool           `gorm:"default:false"`
	OpenToMixedGender  bool           `gorm:"default:false"`
	OpenToRoommateFind bool           `gorm:"default:false"`
	ProfilePicture     string         `gorm:"size:500"`
	ContactInfo        ContactInfo    `gorm:"embedded;embeddedPrefix:contact_"`
	SavedListings      []SavedListing `gorm:"foreignKey:UserProfileID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (u *UserProfile) ToDomain() *domain.UserProfile {
	saved := make([]string, 0, len(u.SavedListings))
	for _, s := range u.SavedListings {
		saved = append(saved, s.ListingID)
	}

	return &domain.UserProfile{
		ID:                 u.ID,
		Username:           u.Username,
		Name:               u.Name,
		Gender:             domain.Gender(u.Gender),
		Budget:             u.Budget,
		LeaseDuration:      u.LeaseDuration,
		Smoking:            u.Smoking,
		Drinking:           u.Drinking,
		OpenToMixedGender:  u.OpenToMixedGender,
		OpenToRoommateFind: u.OpenToRoommateFind,
		ProfilePicture:     u.ProfilePicture,
		ContactInfo:        u.ContactInfo.toDomain(),
		SavedListingIDs:    saved,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// UserProfileFromDomain converts everything but the saved listing set,
// which lives in its own table.
func UserProfileFromDomain(u *domain.UserProfile) *UserProfile {
	return &UserProfile{
		ID:                 u.ID,
		Username:           u.Username,
		Name:               u.Name,
		Gender:             string(u.Gender),
		Budget:             u.Budget,
		LeaseDuration:      u.LeaseDuration,
		Smoking:            u.Smoking,
		Drinking:           u.Drinking,
		OpenToMixedGender:  u.OpenToMixedGender,
		OpenToRoommateFind: u.OpenToRoommateFind,
		ProfilePicture:     u.ProfilePicture,
		ContactInfo:        contactFromDomain(u.ContactInfo),
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// SavedListing represents saved_listings table. listing_id is a soft
// reference; rows pointing at deleted listings are pruned by the maintenance job.
type SavedListing struct {
	UserProfileID string    `gorm:"primaryKey;size:36"`
	ListingID     string    `gorm:"primaryKey;size:36;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (SavedListing) TableName() string {
	return "saved_listings"
}

// ============================================================
// Listers & listings
// ============================================================

// ListerProfile represents lister_profiles table
type ListerProfile struct {
	ID             string      `gorm:"primaryKey;size:36"`
	Username       string      `gorm:"uniqueIndex;size:50;not null"`
	Name           string      `gorm:"size:100;not null"`
	ProfilePicture string      `gorm:"size:500"`
	ContactInfo    ContactInfo `gorm:"embedded;embeddedPrefix:contact_"`
	Listings       []Listing   `gorm:"foreignKey:ListerID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time   `gorm:"autoCreateTime"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime"`
}

func (ListerProfile) TableName() string {
	return "lister_profiles"
}

func (l *ListerProfile) ToDomain() *domain.ListerProfile {
	listings := make([]domain.Listing, 0, len(l.Listings))
	for i := range l.Listings {
		listing := l.Listings[i].ToDomain()
		listing.ListerUsername = l.Username
		listings = append(listings, *listing)
	}

	return &domain.ListerProfile{
		ID:             l.ID,
		Username:       l.Username,
		Name:           l.Name,
		ProfilePicture: l.ProfilePicture,
		ContactInfo:    l.ContactInfo.toDomain(),
		Listings:       listings,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// ListerFromDomain converts the profile fields only
func ListerFromDomain(l *domain.ListerProfile) *ListerProfile {
	return &ListerProfile{
		ID:             l.ID,
		Username:       l.Username,
		Name:           l.Name,
		ProfilePicture: l.ProfilePicture,
		ContactInfo:    contactFromDomain(l.ContactInfo),
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// Listing represents listings table
type Listing struct {
	ID                string    `gorm:"primaryKey;size:36"`
	ListerID          string    `gorm:"index;size:36;not null"`
	DistanceFromUniv  float64   `gorm:"not null"`
	Rent              float64   `gorm:"not null;index"`
	Description       string    `gorm:"type:text"`
	NumberOfRooms     int       `gorm:"not null"`
	NumberOfBathrooms float64   `gorm:"not null"`
	SquareFoot        float64   `gorm:"not null"`
	Address           string    `gorm:"size:255;not null"`
	Latitude          float64   `gorm:"not null"`
	Longitude         float64   `gorm:"not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (Listing) TableName() string {
	return "listings"
}

func (l *Listing) ToDomain() *domain.Listing {
	listing := &domain.Listing{
		ID:                l.ID,
		DistanceFromUniv:  l.DistanceFromUniv,
		Rent:              l.Rent,
		Description:       l.Description,
		NumberOfRooms:     l.NumberOfRooms,
		NumberOfBathrooms: l.NumberOfBathrooms,
		SquareFoot:        l.SquareFoot,
		Address:           l.Address,
		Latitude:          l.Latitude,
		Longitude:         l.Longitude,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
	return listing
}

// ListingWithLister is a listings row joined with its owner's username
type ListingWithLister struct {
	Listing
	ListerUsername string
}

func ListingFromDomain(listerID string, l *domain.Listing) *Listing {
	return &Listing{
		ID:                l.ID,
		ListerID:          listerID,
		DistanceFromUniv:  l.DistanceFromUniv,
		Rent:              l.Rent,
		Description:       l.Description,
		NumberOfRooms:     l.NumberOfRooms,
		NumberOfBathrooms: l.NumberOfBathrooms,
		SquareFoot:        l.SquareFoot,
		Address:           l.Address,
		Latitude:          l.Latitude,
		Longitude:         l.Longitude,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

// ============================================================
// Moderation
// ============================================================

// Report represents reports table
type Report struct {
	ID           string    `gorm:"primaryKey;size:36"`
	TargetUserID string    `gorm:"index;size:64;not null"`
	Name         string    `gorm:"size:100"`
	Username     string    `gorm:"size:50;not null"`
	Reason       string    `gorm:"size:30;not null"`
	Comments     string    `gorm:"type:text"`
	ReportedBy   string    `gorm:"size:50"`
	ReportedAt   time.Time `gorm:"not null;index"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) ToDomain() *domain.Report {
	return &domain.Report{
		ID:           r.ID,
		TargetUserID: r.TargetUserID,
		Name:         r.Name,
		Username:     r.Username,
		Reason:       domain.ReportReason(r.Reason),
		Comments:     r.Comments,
		ReportedBy:   r.ReportedBy,
		ReportedAt:   r.ReportedAt,
	}
}

func ReportFromDomain(r *domain.Report) *Report {
	return &Report{
		ID:           r.ID,
		TargetUserID: r.TargetUserID,
		Name:         r.Name,
		Username:     r.Username,
		Reason:       string(r.Reason),
		Comments:     r.Comments,
		ReportedBy:   r.ReportedBy,
		ReportedAt:   r.ReportedAt,
	}
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&AdminProfile{},
		&UserProfile{},
		&SavedListing{},
		&ListerProfile{},
		&Listing{},
		&Report{},
	)
}
