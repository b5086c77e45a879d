package services

import "roomfinder/internal/core/domain"

type sampleUser struct {
	username string
	profile  CompleteUserProfileInput
}

type sampleLister struct {
	input    RegisterListerInput
	listings []ListingInput
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func listingInput(distance, rent float64, rooms int, baths, sqft float64, address string, lat, lon float64, description string) ListingInput {
	return ListingInput{
		DistanceFromUniv:  f64(distance),
		Rent:              f64(rent),
		Description:       description,
		NumberOfRooms:     intp(rooms),
		NumberOfBathrooms: f64(baths),
		SquareFoot:        f64(sqft),
		Address:           address,
		Latitude:          f64(lat),
		Longitude:         f64(lon),
	}
}

var sampleUsers = []sampleUser{
	{"sarah.j", CompleteUserProfileInput{
		Name: "Sarah Johnson", Gender: domain.GenderFemale, Budget: f64(2000), LeaseDuration: 12,
		OpenToRoommateFind: true,
		ProfilePicture:     "https://images.unsplash.com/photo-1494790108377-be9c29b29330",
		ContactInfo:        ContactInfoInput{Email: "sarah.j@example.com", Phone: "123-456-7890", PreferredContact: domain.ContactEmail},
	}},
	{"michael.c", CompleteUserProfileInput{
		Name: "Michael Chen", Gender: domain.GenderMale, Budget: f64(1500), LeaseDuration: 3,
		Drinking: true, OpenToMixedGender: true, OpenToRoommateFind: true,
		ProfilePicture: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d",
		ContactInfo:    ContactInfoInput{Email: "michael.c@example.com", Phone: "123-456-7891", PreferredContact: domain.ContactPhone},
	}},
	{"emma.w", CompleteUserProfileInput{
		Name: "Emma Wilson", Gender: domain.GenderFemale, Budget: f64(2500), LeaseDuration: 12,
		Drinking: true, OpenToMixedGender: true, OpenToRoommateFind: true,
		ProfilePicture: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80",
		ContactInfo:    ContactInfoInput{Email: "emma.w@example.com", Phone: "123-456-7892", PreferredContact: domain.ContactEmail},
	}},
	{"david.p", CompleteUserProfileInput{
		Name: "David Park", Gender: domain.GenderMale, Budget: f64(1800), LeaseDuration: 1,
		Smoking: true, Drinking: true, OpenToRoommateFind: true,
		ProfilePicture: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e",
		ContactInfo:    ContactInfoInput{Email: "david.p@example.com", Phone: "123-456-7893", PreferredContact: domain.ContactPhone},
	}},
	{"pariv.p", CompleteUserProfileInput{
		Name: "Pariv Patel", Gender: domain.GenderMale, Budget: f64(1800), LeaseDuration: 1,
		Smoking: true, Drinking: true,
		ProfilePicture: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e",
		ContactInfo:    ContactInfoInput{Email: "pariv.p@example.com", Phone: "123-456-7894", PreferredContact: domain.ContactPhone},
	}},
}

var sampleListers = []sampleLister{
	{
		input: RegisterListerInput{
			Username:    "john.smith",
			Name:        "John Smith",
			ContactInfo: ContactInfoInput{Email: "john.smith@example.com", Phone: "617-555-0101", PreferredContact: domain.ContactEmail},
		},
		listings: []ListingInput{
			listingInput(0.3, 1800, 2, 1, 850, "72 Hemenway St, Boston, MA", 42.3424, -71.0892,
				"Cozy 2-bed apartment with modern amenities, walking distance to campus."),
			listingInput(1.5, 2500, 3, 2, 1200, "15 Calumet St, Boston, MA", 42.3305, -71.1018,
				"Spacious 3-bed unit with updated kitchen, perfect for students."),
		},
	},
	{
		input: RegisterListerInput{
			Username:    "mary.jones",
			Name:        "Mary Jones",
			ContactInfo: ContactInfoInput{Email: "mary.jones@example.com", Phone: "617-555-0102", PreferredContact: domain.ContactPhone},
		},
		listings: []ListingInput{
			listingInput(0.8, 1500, 1, 1, 600, "310 Huntington Ave, Boston, MA", 42.3420, -71.0852,
				"Studio apartment in historic building, all utilities included."),
		},
	},
	{
		input: RegisterListerInput{
			Username:    "david.wilson",
			Name:        "David Wilson",
			ContactInfo: ContactInfoInput{Email: "david.wilson@example.com", Phone: "617-555-0103", PreferredContact: domain.ContactEmail},
		},
		listings: []ListingInput{
			listingInput(2.1, 3200, 4, 2.5, 1800, "40 Bickford St, Jamaica Plain, MA", 42.3235, -71.1020,
				"Large 4-bed house with backyard, perfect for group living."),
			listingInput(0.4, 2200, 2, 2, 950, "1 Westland Ave, Boston, MA", 42.3440, -71.0870,
				"Luxury 2-bed with in-unit laundry and parking spot."),
		},
	},
}
