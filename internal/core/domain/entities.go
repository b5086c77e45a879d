package domain

import "time"

// Role is the account type carried in tokens
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleLister Role = "lister"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleLister:
		return true
	}
	return false
}

// Gender of a roommate seeker
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// ContactMethod is the preferred way of being contacted
type ContactMethod string

const (
	ContactEmail ContactMethod = "email"
	ContactPhone ContactMethod = "phone"
)

// ReportReason enumerates why a profile was reported
type ReportReason string

const (
	ReasonSpam                 ReportReason = "Spam"
	ReasonFakeProfile          ReportReason = "Fake Profile"
	ReasonInappropriateContent ReportReason = "Inappropriate Content"
	ReasonOther                ReportReason = "Other"
)

// Account is the credential record shared by every role
type Account struct {
	ID                 string    `json:"id" bson:"_id"`
	Username           string    `json:"username" bson:"username"`
	Password           string    `json:"-" bson:"password"`
	Name               string    `json:"name" bson:"name"`
	Role               Role      `json:"role" bson:"role"`
	OnboardingComplete bool      `json:"onboardingComplete" bson:"onboardingComplete"`
	CreatedAt          time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ContactInfo is embedded in user and lister profiles
type ContactInfo struct {
	Email            string        `json:"email" bson:"email"`
	Phone            string        `json:"phone,omitempty" bson:"phone,omitempty"`
	PreferredContact ContactMethod `json:"preferredContact" bson:"preferredContact"`
}

// AdminProfile holds the display data of an administrator
type AdminProfile struct {
	ID             string    `json:"id" bson:"_id"`
	Username       string    `json:"username" bson:"username"`
	Name           string    `json:"name" bson:"name"`
	ProfilePicture string    `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserProfile is the roommate-seeker profile
type UserProfile struct {
	ID                 string      `json:"id" bson:"_id"`
	Username           string      `json:"username" bson:"username"`
	Name               string      `json:"name" bson:"name"`
	Gender             Gender      `json:"gender" bson:"gender"`
	Budget             float64     `json:"budget" bson:"budget"`
	LeaseDuration      int         `json:"leaseDuration" bson:"leaseDuration"`
	Smoking            bool        `json:"smoking" bson:"smoking"`
	Drinking           bool        `json:"drinking" bson:"drinking"`
	OpenToMixedGender  bool        `json:"openToMixedGender" bson:"openToMixedGender"`
	OpenToRoommateFind bool        `json:"openToRoommateFind" bson:"openToRoommateFind"`
	ProfilePicture     string      `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	ContactInfo        ContactInfo `json:"contactInfo" bson:"contactInfo"`
	SavedListingIDs    []string    `json:"savedListingIds" bson:"savedListingIds"`
	CreatedAt          time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// PublicUserProfile is what anonymous visitors may see of a user
type PublicUserProfile struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Gender            Gender  `json:"gender"`
	Budget            float64 `json:"budget"`
	LeaseDuration     int     `json:"leaseDuration"`
	Smoking           bool    `json:"smoking"`
	Drinking          bool    `json:"drinking"`
	OpenToMixedGender bool    `json:"openToMixedGender"`
	ProfilePicture    string  `json:"profilePicture,omitempty"`
}

// Public strips contact details and saved listings
func (u *UserProfile) Public() *PublicUserProfile {
	return &PublicUserProfile{
		ID:                u.ID,
		Name:              u.Name,
		Gender:            u.Gender,
		Budget:            u.Budget,
		LeaseDuration:     u.LeaseDuration,
		Smoking:           u.Smoking,
		Drinking:          u.Drinking,
		OpenToMixedGender: u.OpenToMixedGender,
		ProfilePicture:    u.ProfilePicture,
	}
}

// HasSaved reports whether listingID is in the saved set
func (u *UserProfile) HasSaved(listingID string) bool {
	for _, id := range u.SavedListingIDs {
		if id == listingID {
			return true
		}
	}
	return false
}

// ListerProfile owns zero or more listings
type ListerProfile struct {
	ID             string      `json:"id" bson:"_id"`
	Username       string      `json:"username" bson:"username"`
	Name           string      `json:"name" bson:"name"`
	ProfilePicture string      `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	ContactInfo    ContactInfo `json:"contactInfo" bson:"contactInfo"`
	Listings       []Listing   `json:"listings" bson:"listings"`
	CreatedAt      time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// FindListing returns the owned listing with the given id
func (l *ListerProfile) FindListing(id string) (*Listing, bool) {
	for i := range l.Listings {
		if l.Listings[i].ID == id {
			listing := l.Listings[i]
			listing.ListerUsername = l.Username
			return &listing, true
		}
	}
	return nil, false
}

// Listing is a rentable housing unit
type Listing struct {
	ID                string    `json:"id" bson:"_id"`
	ListerUsername    string    `json:"listerUsername,omitempty" bson:"-"`
	DistanceFromUniv  float64   `json:"distanceFromUniv" bson:"distanceFromUniv"`
	Rent              float64   `json:"rent" bson:"rent"`
	Description       string    `json:"description" bson:"description"`
	NumberOfRooms     int       `json:"numberOfRooms" bson:"numberOfRooms"`
	NumberOfBathrooms float64   `json:"numberOfBathrooms" bson:"numberOfBathrooms"`
	SquareFoot        float64   `json:"squareFoot" bson:"squareFoot"`
	Address           string    `json:"address" bson:"address"`
	Latitude          float64   `json:"latitude" bson:"latitude"`
	Longitude         float64   `json:"longitude" bson:"longitude"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ListerSummary is the owner data shown next to a listing
type ListerSummary struct {
	Username    string      `json:"username"`
	Name        string      `json:"name"`
	ContactInfo ContactInfo `json:"contactInfo"`
}

// Report is a moderation complaint about a user
type Report struct {
	ID           string       `json:"id" bson:"_id"`
	TargetUserID string       `json:"userId" bson:"userId"`
	Name         string       `json:"name,omitempty" bson:"name,omitempty"`
	Username     string       `json:"username" bson:"username"`
	Reason       ReportReason `json:"reason" bson:"reason"`
	Comments     string       `json:"comments,omitempty" bson:"comments,omitempty"`
	ReportedBy   string       `json:"reportedBy,omitempty" bson:"reportedBy,omitempty"`
	ReportedAt   time.Time    `json:"reportedAt" bson:"reportedAt"`
}
