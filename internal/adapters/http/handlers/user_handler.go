package handlers

import (
	"errors"

	"roomfinder/internal/adapters/http/middleware"
	"roomfinder/internal/core/domain"
	"roomfinder/internal/core/services"
	"roomfinder/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler handles roommate-seeker profile endpoints
type UserHandler struct {
	userService *services.UserService
	log         *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// userError maps user service errors to responses
func (h *UserHandler) userError(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		return response.NotFound(c, "Profile not found")
	case errors.Is(err, services.ErrAccountNotFound):
		return response.NotFound(c, "Account not found")
	case errors.Is(err, services.ErrProfileExists):
		return response.Conflict(c, "Profile already completed")
	case errors.Is(err, services.ErrRoleMismatch):
		return response.Forbidden(c, "This endpoint is not available for your role")
	case errors.Is(err, services.ErrListingNotFound):
		return response.NotFound(c, "Listing not found")
	case errors.Is(err, services.ErrListingNotSaved):
		return response.NotFound(c, "Listing is not in saved listings")
	case errors.Is(err, services.ErrNotProfileOwner):
		return response.Forbidden(c, "You can only manage your own saved listings")
	case errors.Is(err, services.ErrInvalidFilter):
		return response.BadRequest(c, err.Error())
	default:
		return serverError(c, h.log, message, err)
	}
}

// CompleteProfile handles first-time profile creation
// @Summary Complete user profile
// @Description Create the roommate profile of a freshly signed up user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CompleteUserProfileInput true "Profile"
// @Success 201 {object} response.Response{data=domain.UserProfile}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/complete-profile [post]
func (h *UserHandler) CompleteProfile(c *fiber.Ctx) error {
	var input services.CompleteUserProfileInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	profile, err := h.userService.CompleteProfile(c.UserContext(), caller(c), &input)
	if err != nil {
		return h.userError(c, "Failed to complete profile", err)
	}

	return response.Created(c, "Profile completed successfully", profile)
}

// GetProfile handles getting own profile
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=domain.UserProfile}
// @Failure 404 {object} response.Response
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.UserContext(), caller(c).Username)
	if err != nil {
		return h.userError(c, "Failed to get profile", err)
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// UpdateProfile handles partial profile updates
// @Summary Update own profile
// @Description Only the fields present in the body change. Also mounted at /users/update-profile.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateUserProfileInput true "Fields to change"
// @Success 200 {object} response.Response{data=domain.UserProfile}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var input services.UpdateUserProfileInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	profile, err := h.userService.UpdateProfile(c.UserContext(), caller(c).Username, &input)
	if err != nil {
		return h.userError(c, "Failed to update profile", err)
	}

	return response.Success(c, "Profile updated successfully", profile)
}

// PublicProfile handles the anonymous profile view
// @Summary Public user profile
// @Description Profile without contact details or saved listings
// @Tags Users
// @Produce json
// @Param userId path string true "Profile ID"
// @Success 200 {object} response.Response{data=domain.PublicUserProfile}
// @Failure 404 {object} response.Response
// @Router /users/profile/{userId} [get]
func (h *UserHandler) PublicProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetPublicProfile(c.UserContext(), c.Params("userId"))
	if err != nil {
		return h.userError(c, "Failed to get profile", err)
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// FullProfile handles the authenticated profile view
// @Summary Full user profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Profile ID"
// @Success 200 {object} response.Response{data=domain.UserProfile}
// @Failure 404 {object} response.Response
// @Router /users/profile/{userId}/full [get]
func (h *UserHandler) FullProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetFullProfile(c.UserContext(), c.Params("userId"))
	if err != nil {
		return h.userError(c, "Failed to get profile", err)
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// PotentialRoommates handles roommate search
// @Summary Search roommates
// @Description A valid token excludes the caller's own profile from the results
// @Tags Users
// @Produce json
// @Param budget query string false "Budget range, e.g. 1000-2000 or 1500+"
// @Param leaseDuration query int false "Lease duration in months"
// @Param smoking query string false "smoking | non-smoking"
// @Param drinking query string false "drinking | non-drinking"
// @Param genderPreference query string false "same-gender (or single-gender) | multiple-gender"
// @Success 200 {object} response.Response{data=[]domain.PublicUserProfile}
// @Failure 400 {object} response.Response
// @Router /users/potential-roommates [get]
func (h *UserHandler) PotentialRoommates(c *fiber.Ctx) error {
	query := services.RoommateQuery{
		Budget:           c.Query("budget"),
		LeaseDuration:    c.Query("leaseDuration"),
		Smoking:          c.Query("smoking"),
		Drinking:         c.Query("drinking"),
		GenderPreference: c.Query("genderPreference"),
	}

	var exclude string
	if id, ok := middleware.CurrentIdentity(c); ok {
		exclude = id.Username
	}

	profiles, err := h.userService.PotentialRoommates(c.UserContext(), query, exclude)
	if err != nil {
		return h.userError(c, "Failed to search roommates", err)
	}

	public := make([]*domain.PublicUserProfile, 0, len(profiles))
	for _, p := range profiles {
		public = append(public, p.Public())
	}
	return response.Success(c, "Roommates retrieved successfully", public)
}

// SavedListings handles listing the caller's saved listings
// @Summary Get saved listings
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]domain.Listing}
// @Failure 404 {object} response.Response
// @Router /users/saved-listings [get]
func (h *UserHandler) SavedListings(c *fiber.Ctx) error {
	listings, err := h.userService.SavedListings(c.UserContext(), caller(c).Username)
	if err != nil {
		return h.userError(c, "Failed to get saved listings", err)
	}

	return response.Success(c, "Saved listings retrieved successfully", listings)
}

// SaveListing handles adding a listing to the saved set
// @Summary Save listing
// @Description Saving an already saved listing is a no-op
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param listingId path string true "Listing ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/saved-listings/{listingId} [post]
func (h *UserHandler) SaveListing(c *fiber.Ctx) error {
	if err := h.userService.SaveListing(c.UserContext(), caller(c).Username, c.Params("listingId")); err != nil {
		return h.userError(c, "Failed to save listing", err)
	}

	return response.Success(c, "Listing saved successfully", nil)
}

// SaveListingFor handles the legacy save route that names the profile
// @Summary Save listing (legacy form)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Caller's profile ID"
// @Param listingId path string true "Listing ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/saved-listings/{userId}/{listingId} [post]
func (h *UserHandler) SaveListingFor(c *fiber.Ctx) error {
	err := h.userService.SaveListingFor(c.UserContext(), caller(c), c.Params("userId"), c.Params("listingId"))
	if err != nil {
		return h.userError(c, "Failed to save listing", err)
	}

	return response.Success(c, "Listing saved successfully", nil)
}

// UnsaveListing handles removing a listing from the saved set
// @Summary Remove saved listing
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param listingId path string true "Listing ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/saved-listings/{listingId} [delete]
func (h *UserHandler) UnsaveListing(c *fiber.Ctx) error {
	if err := h.userService.UnsaveListing(c.UserContext(), caller(c).Username, c.Params("listingId")); err != nil {
		return h.userError(c, "Failed to remove saved listing", err)
	}

	return response.Success(c, "Listing removed from saved listings", nil)
}
