package repositories

import (
	"context"

	"roomfinder/internal/adapters/persistence/models"
	"roomfinder/internal/core/domain"

	"gorm.io/gorm"
)

// accountRepository implements AccountRepository interface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	m := models.AccountFromDomain(account)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapError(err)
	}
	account.CreatedAt, account.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

// GetByID gets an account by ID
func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, wrapError(err)
	}
	return account.ToDomain(), nil
}

// GetByUsername gets an account by username
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return nil, wrapError(err)
	}
	return account.ToDomain(), nil
}

// ExistsByUsername checks if username exists
func (r *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// SetOnboardingComplete flips the onboarding flag
func (r *accountRepository) SetOnboardingComplete(ctx context.Context, username string, complete bool) error {
	return r.update(ctx, username, map[string]interface{}{"onboarding_complete": complete})
}

// UpdateName keeps the account display name in sync with the profile
func (r *accountRepository) UpdateName(ctx context.Context, username, name string) error {
	return r.update(ctx, username, map[string]interface{}{"name": name})
}

// UpdatePassword updates the password hash
func (r *accountRepository) UpdatePassword(ctx context.Context, username, hash string) error {
	return r.update(ctx, username, map[string]interface{}{"password": hash})
}

func (r *accountRepository) update(ctx context.Context, username string, values map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Account{}).Where("username = ?", username).Updates(values)
	return updateExisting(ctx, r.db, res, &models.Account{}, "username = ?", username)
}

// DeleteByUsername removes an account permanently
func (r *accountRepository) DeleteByUsername(ctx context.Context, username string) error {
	return deleteExisting(r.db.WithContext(ctx).Where("username = ?", username).Delete(&models.Account{}))
}

// adminRepository implements AdminRepository interface
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin profile repository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.AdminProfile) error {
	m := models.AdminFromDomain(admin)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapError(err)
	}
	admin.CreatedAt, admin.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminProfile, error) {
	var admin models.AdminProfile
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, wrapError(err)
	}
	return admin.ToDomain(), nil
}

func (r *adminRepository) List(ctx context.Context) ([]*domain.AdminProfile, error) {
	var rows []models.AdminProfile
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	admins := make([]*domain.AdminProfile, 0, len(rows))
	for i := range rows {
		admins = append(admins, rows[i].ToDomain())
	}
	return admins, nil
}

func (r *adminRepository) Update(ctx context.Context, admin *domain.AdminProfile) error {
	m := models.AdminFromDomain(admin)
	res := r.db.WithContext(ctx).Model(&models.AdminProfile{}).
		Where("username = ?", admin.Username).
		Select("name", "profile_picture", "updated_at").
		Updates(m)
	return updateExisting(ctx, r.db, res, &models.AdminProfile{}, "username = ?", admin.Username)
}

func (r *adminRepository) DeleteByUsername(ctx context.Context, username string) error {
	return deleteExisting(r.db.WithContext(ctx).Where("username = ?", username).Delete(&models.AdminProfile{}))
}
