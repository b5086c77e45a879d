package repositories

import (
	"context"
	"errors"

	"roomfinder/internal/core/domain"

	"gorm.io/gorm"
)

// gormStore implements Store on a relational database through gorm
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store over an open gorm connection
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Accounts() AccountRepository  { return NewAccountRepository(s.db) }
func (s *gormStore) Admins() AdminRepository      { return NewAdminRepository(s.db) }
func (s *gormStore) Users() UserProfileRepository { return NewUserProfileRepository(s.db) }
func (s *gormStore) Listers() ListerRepository    { return NewListerRepository(s.db) }
func (s *gormStore) Reports() ReportRepository    { return NewReportRepository(s.db) }

// WithinTransaction wraps fn in a database transaction
func (s *gormStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &gormStore{db: tx})
	})
}

// Ping checks the underlying connection
func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// wrapError maps gorm errors to domain errors
func wrapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateEntry
	}
	return err
}

// updateExisting runs an UPDATE and reports ErrNotFound when no row matches.
// MySQL counts only changed rows, so a zero count is confirmed with a lookup.
func updateExisting(ctx context.Context, db, res *gorm.DB, model interface{}, query string, args ...interface{}) error {
	if res.Error != nil {
		return wrapError(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return wrapError(err)
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// deleteExisting runs a DELETE and reports ErrNotFound when nothing was removed
func deleteExisting(res *gorm.DB) error {
	if res.Error != nil {
		return wrapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
