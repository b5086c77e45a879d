package memstore

import (
	"context"
	"sort"

	"roomfinder/internal/core/domain"
)

// ============================================================
// Accounts
// ============================================================

type accountRepo struct{ s *Store }

func (r accountRepo) Create(ctx context.Context, account *domain.Account) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.accounts[account.Username]; ok {
		return domain.ErrDuplicateEntry
	}
	stamp(&account.CreatedAt, &account.UpdatedAt)
	r.s.accounts[account.Username] = cloneAccount(account)
	return nil
}

func (r accountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r accountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneAccount(a), nil
}

func (r accountRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.accounts[username]
	return ok, nil
}

func (r accountRepo) SetOnboardingComplete(ctx context.Context, username string, complete bool) error {
	return r.mutate(ctx, username, func(a *domain.Account) { a.OnboardingComplete = complete })
}

func (r accountRepo) UpdateName(ctx context.Context, username, name string) error {
	return r.mutate(ctx, username, func(a *domain.Account) { a.Name = name })
}

func (r accountRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	return r.mutate(ctx, username, func(a *domain.Account) { a.Password = hash })
}

func (r accountRepo) mutate(ctx context.Context, username string, fn func(a *domain.Account)) error {
	defer r.s.lock(ctx)()

	a, ok := r.s.accounts[username]
	if !ok {
		return domain.ErrNotFound
	}
	fn(a)
	a.UpdatedAt = now()
	return nil
}

func (r accountRepo) DeleteByUsername(ctx context.Context, username string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.accounts[username]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.accounts, username)
	return nil
}

// ============================================================
// Admin profiles
// ============================================================

type adminRepo struct{ s *Store }

func (r adminRepo) Create(ctx context.Context, admin *domain.AdminProfile) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.admins[admin.Username]; ok {
		return domain.ErrDuplicateEntry
	}
	stamp(&admin.CreatedAt, &admin.UpdatedAt)
	r.s.admins[admin.Username] = cloneAdmin(admin)
	return nil
}

func (r adminRepo) GetByUsername(_ context.Context, username string) (*domain.AdminProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.admins[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneAdmin(a), nil
}

func (r adminRepo) List(_ context.Context) ([]*domain.AdminProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	admins := make([]*domain.AdminProfile, 0, len(r.s.admins))
	for _, k := range sortedKeys(r.s.admins) {
		admins = append(admins, cloneAdmin(r.s.admins[k]))
	}
	return admins, nil
}

func (r adminRepo) Update(ctx context.Context, admin *domain.AdminProfile) error {
	defer r.s.lock(ctx)()

	existing, ok := r.s.admins[admin.Username]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Name = admin.Name
	existing.ProfilePicture = admin.ProfilePicture
	existing.UpdatedAt = now()
	return nil
}

func (r adminRepo) DeleteByUsername(ctx context.Context, username string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.admins[username]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.admins, username)
	return nil
}

// ============================================================
// User profiles
// ============================================================

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, profile *domain.UserProfile) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.users[profile.Username]; ok {
		return domain.ErrDuplicateEntry
	}
	if profile.SavedListingIDs == nil {
		profile.SavedListingIDs = []string{}
	}
	stamp(&profile.CreatedAt, &profile.UpdatedAt)
	r.s.users[profile.Username] = cloneUser(profile)
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*domain.UserProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r userRepo) List(_ context.Context) ([]*domain.UserProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*domain.UserProfile, 0, len(r.s.users))
	for _, k := range sortedKeys(r.s.users) {
		users = append(users, cloneUser(r.s.users[k]))
	}
	return users, nil
}

func (r userRepo) Update(ctx context.Context, profile *domain.UserProfile) error {
	defer r.s.lock(ctx)()

	existing, ok := r.s.users[profile.Username]
	if !ok {
		return domain.ErrNotFound
	}
	updated := cloneUser(profile)
	updated.ID = existing.ID
	updated.SavedListingIDs = existing.SavedListingIDs
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = now()
	r.s.users[profile.Username] = updated
	return nil
}

func (r userRepo) DeleteByUsername(ctx context.Context, username string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.users[username]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, username)
	return nil
}

func (r userRepo) AddSavedListing(ctx context.Context, username, listingID string) error {
	defer r.s.lock(ctx)()

	u, ok := r.s.users[username]
	if !ok {
		return domain.ErrNotFound
	}
	if !u.HasSaved(listingID) {
		u.SavedListingIDs = append(u.SavedListingIDs, listingID)
	}
	return nil
}

func (r userRepo) RemoveSavedListing(ctx context.Context, username, listingID string) (bool, error) {
	defer r.s.lock(ctx)()

	u, ok := r.s.users[username]
	if !ok {
		return false, domain.ErrNotFound
	}
	kept := u.SavedListingIDs[:0]
	removed := false
	for _, id := range u.SavedListingIDs {
		if id == listingID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	u.SavedListingIDs = kept
	return removed, nil
}

func (r userRepo) RemoveSavedListings(ctx context.Context, listingIDs []string) (int64, error) {
	drop := make(map[string]struct{}, len(listingIDs))
	for _, id := range listingIDs {
		drop[id] = struct{}{}
	}

	defer r.s.lock(ctx)()

	var removed int64
	for _, u := range r.s.users {
		kept := make([]string, 0, len(u.SavedListingIDs))
		for _, id := range u.SavedListingIDs {
			if _, ok := drop[id]; ok {
				removed++
			} else {
				kept = append(kept, id)
			}
		}
		u.SavedListingIDs = kept
	}
	return removed, nil
}

// ============================================================
// Listers & listings
// ============================================================

type listerRepo struct{ s *Store }

func (r listerRepo) Create(ctx context.Context, lister *domain.ListerProfile) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.listers[lister.Username]; ok {
		return domain.ErrDuplicateEntry
	}
	if lister.Listings == nil {
		lister.Listings = []domain.Listing{}
	}
	stamp(&lister.CreatedAt, &lister.UpdatedAt)
	for i := range lister.Listings {
		stamp(&lister.Listings[i].CreatedAt, &lister.Listings[i].UpdatedAt)
		lister.Listings[i].ListerUsername = lister.Username
	}
	r.s.listers[lister.Username] = cloneLister(lister)
	return nil
}

func (r listerRepo) GetByID(_ context.Context, id string) (*domain.ListerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, l := range r.s.listers {
		if l.ID == id {
			return cloneLister(l), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r listerRepo) GetByUsername(_ context.Context, username string) (*domain.ListerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.listers[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneLister(l), nil
}

func (r listerRepo) List(_ context.Context) ([]*domain.ListerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	listers := make([]*domain.ListerProfile, 0, len(r.s.listers))
	for _, k := range sortedKeys(r.s.listers) {
		listers = append(listers, cloneLister(r.s.listers[k]))
	}
	return listers, nil
}

func (r listerRepo) Update(ctx context.Context, lister *domain.ListerProfile) error {
	defer r.s.lock(ctx)()

	existing, ok := r.s.listers[lister.Username]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Name = lister.Name
	existing.ProfilePicture = lister.ProfilePicture
	existing.ContactInfo = lister.ContactInfo
	existing.UpdatedAt = now()
	return nil
}

func (r listerRepo) DeleteByUsername(ctx context.Context, username string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.listers[username]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.listers, username)
	return nil
}

func (r listerRepo) AddListing(ctx context.Context, username string, listing *domain.Listing) error {
	defer r.s.lock(ctx)()

	l, ok := r.s.listers[username]
	if !ok {
		return domain.ErrNotFound
	}
	stamp(&listing.CreatedAt, &listing.UpdatedAt)
	listing.ListerUsername = username
	l.Listings = append(l.Listings, *listing)
	sortListings(l.Listings)
	return nil
}

func (r listerRepo) UpdateListing(ctx context.Context, username string, listing *domain.Listing) error {
	defer r.s.lock(ctx)()

	l, ok := r.s.listers[username]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range l.Listings {
		if l.Listings[i].ID == listing.ID {
			updated := *listing
			updated.CreatedAt = l.Listings[i].CreatedAt
			updated.ListerUsername = username
			if updated.UpdatedAt.IsZero() {
				updated.UpdatedAt = now()
			}
			l.Listings[i] = updated
			listing.ListerUsername = username
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r listerRepo) DeleteListing(ctx context.Context, username, listingID string) error {
	defer r.s.lock(ctx)()

	l, ok := r.s.listers[username]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range l.Listings {
		if l.Listings[i].ID == listingID {
			l.Listings = append(l.Listings[:i], l.Listings[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r listerRepo) FindListing(_ context.Context, listingID string) (*domain.Listing, *domain.ListerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, l := range r.s.listers {
		if listing, ok := l.FindListing(listingID); ok {
			return listing, cloneLister(l), nil
		}
	}
	return nil, nil, domain.ErrNotFound
}

func (r listerRepo) ListListings(_ context.Context) ([]*domain.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	listings := make([]*domain.Listing, 0)
	for _, l := range r.s.listers {
		for i := range l.Listings {
			listing := l.Listings[i]
			listing.ListerUsername = l.Username
			listings = append(listings, &listing)
		}
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return listingLess(listings[i], listings[j])
	})
	return listings, nil
}

// ============================================================
// Reports
// ============================================================

type reportRepo struct{ s *Store }

func (r reportRepo) Create(ctx context.Context, report *domain.Report) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.reports[report.ID]; ok {
		return domain.ErrDuplicateEntry
	}
	if report.ReportedAt.IsZero() {
		report.ReportedAt = now()
	}
	r.s.reports[report.ID] = cloneReport(report)
	return nil
}

func (r reportRepo) List(_ context.Context) ([]*domain.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reports := make([]*domain.Report, 0, len(r.s.reports))
	for _, rep := range r.s.reports {
		reports = append(reports, cloneReport(rep))
	}
	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].ReportedAt.Equal(reports[j].ReportedAt) {
			return reports[i].ReportedAt.After(reports[j].ReportedAt)
		}
		return reports[i].ID < reports[j].ID
	})
	return reports, nil
}

func (r reportRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.reports[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.reports, id)
	return nil
}
