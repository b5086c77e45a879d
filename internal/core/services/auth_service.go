package services

import (
	"context"
	"errors"
	"strings"

	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/config"
	"roomfinder/internal/core/domain"
	"roomfinder/internal/pkg/jwt"
	"roomfinder/internal/pkg/password"
	"roomfinder/internal/pkg/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrAccountNotFound    = errors.New("account not found")
)

// Identity is the authenticated caller, decoded from the access token.
// Role profiles share the account ID, so UserID is also the caller's profile id.
type Identity struct {
	UserID   string
	Username string
	Name     string
	Role     domain.Role
}

// IsAdmin reports whether the caller holds the admin role
func (i Identity) IsAdmin() bool { return i.Role == domain.RoleAdmin }

// AccountView is the public part of an account
type AccountView struct {
	ID                 string      `json:"id"`
	Username           string      `json:"username"`
	Name               string      `json:"name"`
	Role               domain.Role `json:"role"`
	OnboardingComplete bool        `json:"onboardingComplete"`
}

func newAccountView(a *domain.Account) *AccountView {
	return &AccountView{
		ID:                 a.ID,
		Username:           a.Username,
		Name:               a.Name,
		Role:               a.Role,
		OnboardingComplete: a.OnboardingComplete,
	}
}

// AuthService handles signup, login and token issuance
type AuthService struct {
	store     repositories.Store
	jwtSecret string
	log       *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store repositories.Store, cfg *config.Config, log *zap.Logger) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: cfg.JWT.Secret,
		log:       log,
	}
}

// SignupInput represents signup input. Admins are never created here.
type SignupInput struct {
	Username string      `json:"username" validate:"required,min=3,max=50"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Role     domain.Role `json:"role" validate:"required,oneof=user lister"`
	Name     string      `json:"name" validate:"required,max=100"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *AccountView `json:"user"`
}

// Signup creates an account with onboarding still pending
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*AuthResponse, error) {
	username := strings.TrimSpace(input.Username)

	// 1. Check username
	exists, err := s.store.Accounts().ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	// 2. Hash password
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 3. Create account
	account := &domain.Account{
		ID:       uuid.NewString(),
		Username: username,
		Password: hashed,
		Name:     sanitize.Text(input.Name),
		Role:     input.Role,
	}
	if err := s.store.Accounts().Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.log.Info("account created", zap.String("username", account.Username), zap.String("role", string(account.Role)))

	return s.issue(account)
}

// Login authenticates by username and password. Unknown usernames and wrong
// passwords are indistinguishable, including in timing.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	account, err := s.store.Accounts().GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			password.VerifyMissing(input.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, account.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(account)
}

// Me returns the caller's account
func (s *AuthService) Me(ctx context.Context, username string) (*AccountView, error) {
	account, err := s.store.Accounts().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return newAccountView(account), nil
}

func (s *AuthService) issue(account *domain.Account) (*AuthResponse, error) {
	token, err := jwt.GenerateAccessToken(account.ID, account.Username, account.Name, string(account.Role), s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: newAccountView(account)}, nil
}
