package services

import (
	"testing"

	"roomfinder/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    Range
		wantErr bool
	}{
		{in: "1500-2500", want: Range{Min: 1500, Max: 2500}},
		{in: "0.5-1.5", want: Range{Min: 0.5, Max: 1.5}},
		{in: "3500+", want: Range{Min: 3500, Unbounded: true}},
		{in: "3500-+", want: Range{Min: 3500, Unbounded: true}},
		{in: " 10 - 20 ", want: Range{Min: 10, Max: 20}},
		// query decoding turns an unescaped '+' into a space
		{in: "3500 ", want: Range{Min: 3500, Unbounded: true}},
		{in: "3500- ", want: Range{Min: 3500, Unbounded: true}},
		{in: "2500-1500", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1500", wantErr: true},
		{in: "1-2-3", wantErr: true},
		{in: "+", wantErr: true},
		{in: "-5-10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRange(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestRange_Contains(t *testing.T) {
	bounded := Range{Min: 1500, Max: 2500}
	assert.True(t, bounded.Contains(1500))
	assert.True(t, bounded.Contains(2500))
	assert.False(t, bounded.Contains(1499.99))
	assert.False(t, bounded.Contains(2500.01))

	open := Range{Min: 3500, Unbounded: true}
	assert.True(t, open.Contains(1e9))
	assert.False(t, open.Contains(3499))
}

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 0, Haversine(42.34, -71.09, 42.34, -71.09), 1e-9)
	// Boston to New York City
	assert.InDelta(t, 306, Haversine(42.3601, -71.0589, 40.7128, -74.0060), 5)
}

func TestListingQuery_Parse(t *testing.T) {
	tests := []struct {
		name    string
		query   ListingQuery
		wantErr string
	}{
		{name: "empty", query: ListingQuery{}},
		{name: "all valid", query: ListingQuery{Rent: "1000-2000", Distance: "0-2", SquareFootage: "500+", Rooms: "2", Bathrooms: "1.5", Latitude: "42.3", Longitude: "-71.1"}},
		{name: "bad rent", query: ListingQuery{Rent: "cheap"}, wantErr: "rent"},
		{name: "bad square footage", query: ListingQuery{SquareFootage: "900-100"}, wantErr: "squareFootage"},
		{name: "minimum rooms and bathrooms", query: ListingQuery{Rooms: "4+", Bathrooms: "2.5+"}},
		{name: "decoded plus", query: ListingQuery{Rooms: "4 ", Bathrooms: "2.5 "}},
		{name: "bad rooms", query: ListingQuery{Rooms: "two"}, wantErr: "rooms"},
		{name: "fractional rooms", query: ListingQuery{Rooms: "2.5"}, wantErr: "rooms"},
		{name: "bare plus rooms", query: ListingQuery{Rooms: "+"}, wantErr: "rooms"},
		{name: "bad bathrooms", query: ListingQuery{Bathrooms: "x"}, wantErr: "bathrooms"},
		{name: "latitude alone", query: ListingQuery{Latitude: "42.3"}, wantErr: "latitude/longitude"},
		{name: "latitude out of range", query: ListingQuery{Latitude: "91", Longitude: "0"}, wantErr: "latitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.query.Parse()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidFilter)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestListingFilter_Match(t *testing.T) {
	listing := &domain.Listing{
		DistanceFromUniv:  0.8,
		Rent:              1800,
		NumberOfRooms:     2,
		NumberOfBathrooms: 1.5,
		SquareFoot:        850,
		Address:           "72 Hemenway St, Boston, MA",
		Latitude:          42.3424,
		Longitude:         -71.0892,
	}

	tests := []struct {
		name  string
		query ListingQuery
		want  bool
	}{
		{"no filters", ListingQuery{}, true},
		{"rent inside", ListingQuery{Rent: "1500-2500"}, true},
		{"rent outside", ListingQuery{Rent: "3500+"}, false},
		{"distance", ListingQuery{Distance: "0-1"}, true},
		{"square footage", ListingQuery{SquareFootage: "900+"}, false},
		{"rooms exact", ListingQuery{Rooms: "2"}, true},
		{"rooms mismatch", ListingQuery{Rooms: "3"}, false},
		{"rooms at least", ListingQuery{Rooms: "2+"}, true},
		{"rooms at least too many", ListingQuery{Rooms: "4+"}, false},
		{"fractional bathrooms", ListingQuery{Bathrooms: "1.5"}, true},
		{"bathrooms exact mismatch", ListingQuery{Bathrooms: "1"}, false},
		{"bathrooms at least", ListingQuery{Bathrooms: "1+"}, true},
		{"bathrooms at least too many", ListingQuery{Bathrooms: "2.5+"}, false},
		{"address case-insensitive", ListingQuery{Address: "hemenway"}, true},
		{"address mismatch", ListingQuery{Address: "cambridge"}, false},
		{"nearby", ListingQuery{Latitude: "42.3398", Longitude: "-71.0892"}, true},
		{"far away", ListingQuery{Latitude: "40.7128", Longitude: "-74.0060"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.query.Parse()
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Match(listing))
		})
	}
}

func TestRoommateQuery_Parse(t *testing.T) {
	f, err := RoommateQuery{Budget: "1000-2000", LeaseDuration: "6", Smoking: "non-smoking", Drinking: "true", GenderPreference: "multiple-gender"}.Parse()
	require.NoError(t, err)
	assert.Equal(t, 6, *f.LeaseDuration)
	assert.False(t, *f.Smoking)
	assert.True(t, *f.Drinking)
	assert.True(t, *f.OpenToMixedGender)

	f, err = RoommateQuery{GenderPreference: "same-gender", Drinking: "non-drinking"}.Parse()
	require.NoError(t, err)
	assert.False(t, *f.OpenToMixedGender)
	assert.False(t, *f.Drinking)
	assert.Nil(t, f.Smoking)

	f, err = RoommateQuery{GenderPreference: "single-gender"}.Parse()
	require.NoError(t, err)
	assert.False(t, *f.OpenToMixedGender)

	for _, q := range []RoommateQuery{
		{Budget: "lots"},
		{LeaseDuration: "13"},
		{LeaseDuration: "six"},
		{Smoking: "sometimes"},
		{Drinking: "smoking"},
		{GenderPreference: "any"},
	} {
		_, err := q.Parse()
		assert.ErrorIs(t, err, ErrInvalidFilter, "%+v", q)
	}
}
