package services

import (
	"context"
	"sort"
	"time"

	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/core/domain"

	"go.uber.org/zap"
)

// recentLimit caps the recent activity lists of the dashboard
const recentLimit = 5

// DashboardService handles dashboard operations
type DashboardService struct {
	store repositories.Store
	log   *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store repositories.Store, log *zap.Logger) *DashboardService {
	return &DashboardService{store: store, log: log}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// Account statistics
	TotalAdmins       int64 `json:"totalAdmins"`
	TotalUsers        int64 `json:"totalUsers"`
	TotalListers      int64 `json:"totalListers"`
	OpenToRoommates   int64 `json:"openToRoommates"`
	TotalSavedEntries int64 `json:"totalSavedEntries"`

	// Listing statistics
	TotalListings     int64   `json:"totalListings"`
	AverageRent       float64 `json:"averageRent"`
	ListingsThisMonth int64   `json:"listingsThisMonth"`

	// Moderation
	TotalReports    int64                         `json:"totalReports"`
	ReportsByReason map[domain.ReportReason]int64 `json:"reportsByReason"`

	// Recent activity
	RecentListings []*domain.Listing `json:"recentListings"`
	RecentReports  []*domain.Report  `json:"recentReports"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{
		ReportsByReason: make(map[domain.ReportReason]int64),
	}

	admins, err := s.store.Admins().List(ctx)
	if err != nil {
		return nil, err
	}
	data.TotalAdmins = int64(len(admins))

	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	data.TotalUsers = int64(len(users))
	for _, u := range users {
		if u.OpenToRoommateFind {
			data.OpenToRoommates++
		}
		data.TotalSavedEntries += int64(len(u.SavedListingIDs))
	}

	listers, err := s.store.Listers().List(ctx)
	if err != nil {
		return nil, err
	}
	data.TotalListers = int64(len(listers))

	listings, err := s.store.Listers().ListListings(ctx)
	if err != nil {
		return nil, err
	}
	data.TotalListings = int64(len(listings))

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var rentSum float64
	for _, l := range listings {
		rentSum += l.Rent
		if !l.CreatedAt.Before(monthStart) {
			data.ListingsThisMonth++
		}
	}
	if len(listings) > 0 {
		data.AverageRent = rentSum / float64(len(listings))
	}

	reports, err := s.store.Reports().List(ctx)
	if err != nil {
		return nil, err
	}
	data.TotalReports = int64(len(reports))
	for _, r := range reports {
		data.ReportsByReason[r.Reason]++
	}

	// Recent activity, newest first
	sort.SliceStable(listings, func(i, j int) bool { return listings[i].CreatedAt.After(listings[j].CreatedAt) })
	sort.SliceStable(reports, func(i, j int) bool { return reports[i].ReportedAt.After(reports[j].ReportedAt) })
	data.RecentListings = listings[:min(recentLimit, len(listings))]
	data.RecentReports = reports[:min(recentLimit, len(reports))]

	return data, nil
}
