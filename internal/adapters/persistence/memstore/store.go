// Package memstore is a process-local Store used for development (DB_DRIVER=memory)
// and as the backing store of service and HTTP tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/core/domain"
)

// Store keeps every record in maps keyed by username (reports by id).
// Transactions are serialised and rolled back from a snapshot on error;
// writes outside a transaction wait for the open one to finish.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	accounts map[string]*domain.Account
	admins   map[string]*domain.AdminProfile
	users    map[string]*domain.UserProfile
	listers  map[string]*domain.ListerProfile
	reports  map[string]*domain.Report
}

var _ repositories.Store = (*Store)(nil)

// New returns an empty store
func New() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		admins:   make(map[string]*domain.AdminProfile),
		users:    make(map[string]*domain.UserProfile),
		listers:  make(map[string]*domain.ListerProfile),
		reports:  make(map[string]*domain.Report),
	}
}

func (s *Store) Accounts() repositories.AccountRepository  { return accountRepo{s} }
func (s *Store) Admins() repositories.AdminRepository      { return adminRepo{s} }
func (s *Store) Users() repositories.UserProfileRepository { return userRepo{s} }
func (s *Store) Listers() repositories.ListerRepository    { return listerRepo{s} }
func (s *Store) Reports() repositories.ReportRepository    { return reportRepo{s} }

type txKey struct{}

// WithinTransaction runs fn with exclusive transactional access; nested calls join the outer one
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx, s)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true), s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// lock takes the write lock. Outside a transaction it also holds txMu so a
// rollback never discards a write that landed while the transaction was open.
func (s *Store) lock(ctx context.Context) (unlock func()) {
	if ctx.Value(txKey{}) != nil {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error { return nil }

type snapshot struct {
	accounts map[string]*domain.Account
	admins   map[string]*domain.AdminProfile
	users    map[string]*domain.UserProfile
	listers  map[string]*domain.ListerProfile
	reports  map[string]*domain.Report
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		accounts: make(map[string]*domain.Account, len(s.accounts)),
		admins:   make(map[string]*domain.AdminProfile, len(s.admins)),
		users:    make(map[string]*domain.UserProfile, len(s.users)),
		listers:  make(map[string]*domain.ListerProfile, len(s.listers)),
		reports:  make(map[string]*domain.Report, len(s.reports)),
	}
	for k, v := range s.accounts {
		snap.accounts[k] = cloneAccount(v)
	}
	for k, v := range s.admins {
		snap.admins[k] = cloneAdmin(v)
	}
	for k, v := range s.users {
		snap.users[k] = cloneUser(v)
	}
	for k, v := range s.listers {
		snap.listers[k] = cloneLister(v)
	}
	for k, v := range s.reports {
		snap.reports[k] = cloneReport(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = snap.accounts
	s.admins = snap.admins
	s.users = snap.users
	s.listers = snap.listers
	s.reports = snap.reports
}

func now() time.Time {
	return time.Now().UTC()
}

func stamp(created, updated *time.Time) {
	t := now()
	if created.IsZero() {
		*created = t
	}
	if updated.IsZero() {
		*updated = t
	}
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func cloneAdmin(a *domain.AdminProfile) *domain.AdminProfile {
	c := *a
	return &c
}

func cloneUser(u *domain.UserProfile) *domain.UserProfile {
	c := *u
	c.SavedListingIDs = append([]string{}, u.SavedListingIDs...)
	return &c
}

func cloneLister(l *domain.ListerProfile) *domain.ListerProfile {
	c := *l
	c.Listings = make([]domain.Listing, len(l.Listings))
	copy(c.Listings, l.Listings)
	for i := range c.Listings {
		c.Listings[i].ListerUsername = l.Username
	}
	return &c
}

func cloneReport(r *domain.Report) *domain.Report {
	c := *r
	return &c
}

func sortListings(listings []domain.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return listingLess(&listings[i], &listings[j])
	})
}

func listingLess(a, b *domain.Listing) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
