package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"roomfinder/internal/core/domain"
)

// ErrInvalidFilter is wrapped by every query-string parse failure
var ErrInvalidFilter = errors.New("invalid filter")

// SearchRadiusKm is the cutoff of the coordinate filter
const SearchRadiusKm = 5.0

const earthRadiusKm = 6371.0

// Range is an inclusive numeric interval; Max is ignored when Unbounded
type Range struct {
	Min       float64
	Max       float64
	Unbounded bool
}

// ParseRange accepts "min-max", "min-+" and "min+"
func ParseRange(s string) (*Range, error) {
	s = restorePlus(s)

	if strings.HasSuffix(s, "+") {
		minStr := strings.TrimSuffix(strings.TrimSuffix(s, "+"), "-")
		min, err := parseBound(minStr)
		if err != nil {
			return nil, err
		}
		return &Range{Min: min, Unbounded: true}, nil
	}

	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%q is not of the form min-max or min+", s)
	}
	min, err := parseBound(parts[0])
	if err != nil {
		return nil, err
	}
	max, err := parseBound(parts[1])
	if err != nil {
		return nil, err
	}
	if min > max {
		return nil, fmt.Errorf("minimum %v exceeds maximum %v", min, max)
	}
	return &Range{Min: min, Max: max}, nil
}

// restorePlus trims s. A lone bound followed by a space was "n+" before query
// decoding turned the unescaped '+' into a space, so the '+' is put back.
func restorePlus(s string) string {
	t := strings.TrimSpace(s)
	if t == "" || !strings.HasSuffix(s, " ") || strings.HasSuffix(t, "+") {
		return t
	}
	if strings.Contains(strings.TrimSuffix(t, "-"), "-") {
		return t
	}
	return t + "+"
}

// parseCount accepts an exact value "n" or a lower bound "n+"
func parseCount(raw string, whole bool) (*Range, error) {
	s := restorePlus(raw)
	atLeast := strings.HasSuffix(s, "+")
	v, err := parseBound(strings.TrimSuffix(s, "+"))
	if err != nil {
		return nil, err
	}
	if whole && v != math.Trunc(v) {
		return nil, fmt.Errorf("%q is not a whole number", raw)
	}
	if atLeast {
		return &Range{Min: v, Unbounded: true}, nil
	}
	return &Range{Min: v, Max: v}, nil
}

func parseBound(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%q is negative", s)
	}
	return v, nil
}

// Contains reports whether v lies in the range
func (r *Range) Contains(v float64) bool {
	if v < r.Min {
		return false
	}
	return r.Unbounded || v <= r.Max
}

// Haversine returns the great-circle distance in kilometres
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func filterError(name string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidFilter, name, err)
}

// ============================================================
// Listings
// ============================================================

// ListingQuery holds the raw query-string filters of a listing search
type ListingQuery struct {
	Distance      string
	Rent          string
	SquareFootage string
	Rooms         string
	Bathrooms     string
	Address       string
	Latitude      string
	Longitude     string
}

// ListingFilter is a parsed ListingQuery; nil fields do not filter
type ListingFilter struct {
	Distance      *Range
	Rent          *Range
	SquareFootage *Range
	Rooms         *Range
	Bathrooms     *Range
	Address       string
	Near          *struct{ Lat, Lon float64 }
}

// Parse validates every present filter
func (q ListingQuery) Parse() (*ListingFilter, error) {
	f := &ListingFilter{Address: strings.ToLower(strings.TrimSpace(q.Address))}

	ranges := []struct {
		name string
		raw  string
		dst  **Range
	}{
		{"distance", q.Distance, &f.Distance},
		{"rent", q.Rent, &f.Rent},
		{"squareFootage", q.SquareFootage, &f.SquareFootage},
	}
	for _, r := range ranges {
		if r.raw == "" {
			continue
		}
		parsed, err := ParseRange(r.raw)
		if err != nil {
			return nil, filterError(r.name, err)
		}
		*r.dst = parsed
	}

	if q.Rooms != "" {
		rooms, err := parseCount(q.Rooms, true)
		if err != nil {
			return nil, filterError("rooms", err)
		}
		f.Rooms = rooms
	}

	if q.Bathrooms != "" {
		baths, err := parseCount(q.Bathrooms, false)
		if err != nil {
			return nil, filterError("bathrooms", err)
		}
		f.Bathrooms = baths
	}

	switch {
	case q.Latitude == "" && q.Longitude == "":
	case q.Latitude == "" || q.Longitude == "":
		return nil, filterError("latitude/longitude", errors.New("both coordinates are required"))
	default:
		lat, err := strconv.ParseFloat(strings.TrimSpace(q.Latitude), 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, filterError("latitude", fmt.Errorf("%q is not a latitude", q.Latitude))
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(q.Longitude), 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, filterError("longitude", fmt.Errorf("%q is not a longitude", q.Longitude))
		}
		f.Near = &struct{ Lat, Lon float64 }{lat, lon}
	}

	return f, nil
}

// Match reports whether the listing passes every filter
func (f *ListingFilter) Match(l *domain.Listing) bool {
	if f.Distance != nil && !f.Distance.Contains(l.DistanceFromUniv) {
		return false
	}
	if f.Rent != nil && !f.Rent.Contains(l.Rent) {
		return false
	}
	if f.SquareFootage != nil && !f.SquareFootage.Contains(l.SquareFoot) {
		return false
	}
	if f.Rooms != nil && !f.Rooms.Contains(float64(l.NumberOfRooms)) {
		return false
	}
	if f.Bathrooms != nil && !f.Bathrooms.Contains(l.NumberOfBathrooms) {
		return false
	}
	if f.Address != "" && !strings.Contains(strings.ToLower(l.Address), f.Address) {
		return false
	}
	if f.Near != nil && Haversine(f.Near.Lat, f.Near.Lon, l.Latitude, l.Longitude) > SearchRadiusKm {
		return false
	}
	return true
}

// ============================================================
// Roommates
// ============================================================

// RoommateQuery holds the raw query-string filters of a roommate search
type RoommateQuery struct {
	Budget           string
	LeaseDuration    string
	Smoking          string
	Drinking         string
	GenderPreference string
}

// RoommateFilter is a parsed RoommateQuery
type RoommateFilter struct {
	Budget            *Range
	LeaseDuration     *int
	Smoking           *bool
	Drinking          *bool
	OpenToMixedGender *bool
}

// Parse validates every present filter
func (q RoommateQuery) Parse() (*RoommateFilter, error) {
	f := &RoommateFilter{}

	if q.Budget != "" {
		r, err := ParseRange(q.Budget)
		if err != nil {
			return nil, filterError("budget", err)
		}
		f.Budget = r
	}

	if q.LeaseDuration != "" {
		months, err := strconv.Atoi(strings.TrimSpace(q.LeaseDuration))
		if err != nil || months < 1 || months > 12 {
			return nil, filterError("leaseDuration", fmt.Errorf("%q is not a month count between 1 and 12", q.LeaseDuration))
		}
		f.LeaseDuration = &months
	}

	var err error
	if f.Smoking, err = parseHabit("smoking", q.Smoking); err != nil {
		return nil, err
	}
	if f.Drinking, err = parseHabit("drinking", q.Drinking); err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(q.GenderPreference)) {
	case "":
	case "multiple-gender":
		f.OpenToMixedGender = boolPtr(true)
	case "same-gender", "single-gender":
		f.OpenToMixedGender = boolPtr(false)
	default:
		return nil, filterError("genderPreference", fmt.Errorf("%q is not multiple-gender, same-gender or single-gender", q.GenderPreference))
	}

	return f, nil
}

// parseHabit accepts "<habit>", "non-<habit>", "true" and "false"
func parseHabit(name, raw string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil, nil
	case name, "true":
		return boolPtr(true), nil
	case "non-" + name, "false":
		return boolPtr(false), nil
	}
	return nil, filterError(name, fmt.Errorf("%q is not %s or non-%s", raw, name, name))
}

// Match reports whether the profile passes every filter
func (f *RoommateFilter) Match(u *domain.UserProfile) bool {
	if f.Budget != nil && !f.Budget.Contains(u.Budget) {
		return false
	}
	if f.LeaseDuration != nil && u.LeaseDuration != *f.LeaseDuration {
		return false
	}
	if f.Smoking != nil && u.Smoking != *f.Smoking {
		return false
	}
	if f.Drinking != nil && u.Drinking != *f.Drinking {
		return false
	}
	if f.OpenToMixedGender != nil && u.OpenToMixedGender != *f.OpenToMixedGender {
		return false
	}
	return true
}

func boolPtr(b bool) *bool { return &b }
