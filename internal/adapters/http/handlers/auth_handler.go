package handlers

import (
	"errors"

	"roomfinder/internal/core/services"
	"roomfinder/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	log         *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// Signup handles account registration
// @Summary Sign up
// @Description Create a user or lister account and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.SignupInput true "Signup data"
// @Success 201 {object} response.Response{data=services.AuthResponse}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input services.SignupInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	result, err := h.authService.Signup(c.UserContext(), &input)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return response.Conflict(c, "Username already exists")
		}
		return serverError(c, h.log, "Failed to sign up", err)
	}

	return response.Created(c, "User registered successfully", result)
}

// Login handles login
// @Summary Log in
// @Description Authenticate with username and password. Also mounted at /auth/signin.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response{data=services.AuthResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	result, err := h.authService.Login(c.UserContext(), &input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid username or password")
		}
		return serverError(c, h.log, "Failed to login", err)
	}

	return response.Success(c, "Login successful", result)
}

// Me handles getting current user info
// @Summary Get current user
// @Description Get the account of the token holder
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=services.AccountView}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account, err := h.authService.Me(c.UserContext(), caller(c).Username)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			return response.NotFound(c, "Account not found")
		}
		return serverError(c, h.log, "Failed to get user info", err)
	}

	return response.Success(c, "User info retrieved successfully", account)
}
