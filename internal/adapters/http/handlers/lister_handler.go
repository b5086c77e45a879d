package handlers

import (
	"errors"

	"roomfinder/internal/core/services"
	"roomfinder/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ListerHandler handles lister and listing endpoints
type ListerHandler struct {
	listerService *services.ListerService
	log           *zap.Logger
}

// NewListerHandler creates a new lister handler
func NewListerHandler(listerService *services.ListerService, log *zap.Logger) *ListerHandler {
	return &ListerHandler{
		listerService: listerService,
		log:           log,
	}
}

func (h *ListerHandler) listerError(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, services.ErrListerNotFound):
		return response.NotFound(c, "Lister not found")
	case errors.Is(err, services.ErrListingNotFound):
		return response.NotFound(c, "Listing not found")
	case errors.Is(err, services.ErrUsernameTaken):
		return response.Conflict(c, "Username already exists")
	case errors.Is(err, services.ErrAccountNotFound):
		return response.NotFound(c, "Account not found")
	case errors.Is(err, services.ErrProfileExists):
		return response.Conflict(c, "Profile already completed")
	case errors.Is(err, services.ErrRoleMismatch):
		return response.Forbidden(c, "This endpoint is not available for your role")
	case errors.Is(err, services.ErrNotOwner):
		return response.Forbidden(c, "Only the owner may modify this resource")
	case errors.Is(err, services.ErrInvalidFilter):
		return response.BadRequest(c, err.Error())
	default:
		return serverError(c, h.log, message, err)
	}
}

// Register handles public lister registration
// @Summary Register lister
// @Description Create a lister account and its profile in one step
// @Tags Listers
// @Accept json
// @Produce json
// @Param body body services.RegisterListerInput true "Lister"
// @Success 201 {object} response.Response{data=domain.ListerProfile}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /listers/listers [post]
func (h *ListerHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterListerInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	lister, err := h.listerService.Register(c.UserContext(), &input)
	if err != nil {
		return h.listerError(c, "Failed to register lister", err)
	}

	return response.Created(c, "Lister registered successfully", lister)
}

// ListListers handles listing all listers
// @Summary List listers
// @Tags Listers
// @Produce json
// @Success 200 {object} response.Response{data=[]domain.ListerProfile}
// @Router /listers/listers [get]
func (h *ListerHandler) ListListers(c *fiber.Ctx) error {
	listers, err := h.listerService.ListListers(c.UserContext())
	if err != nil {
		return serverError(c, h.log, "Failed to list listers", err)
	}

	return response.Success(c, "Listers retrieved successfully", listers)
}

// GetLister handles getting a lister by username
// @Summary Get lister
// @Tags Listers
// @Produce json
// @Param username path string true "Lister username"
// @Success 200 {object} response.Response{data=domain.ListerProfile}
// @Failure 404 {object} response.Response
// @Router /listers/listers/{username} [get]
func (h *ListerHandler) GetLister(c *fiber.Ctx) error {
	lister, err := h.listerService.GetLister(c.UserContext(), c.Params("username"))
	if err != nil {
		return h.listerError(c, "Failed to get lister", err)
	}

	return response.Success(c, "Lister retrieved successfully", lister)
}

// DeleteLister handles lister removal by the owner or an admin
// @Summary Delete lister
// @Description Removes the profile, its listings and the account
// @Tags Listers
// @Produce json
// @Security BearerAuth
// @Param username path string true "Lister username"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /listers/listers/{username} [delete]
func (h *ListerHandler) DeleteLister(c *fiber.Ctx) error {
	if err := h.listerService.DeleteLister(c.UserContext(), caller(c), c.Params("username")); err != nil {
		return h.listerError(c, "Failed to delete lister", err)
	}

	return response.Success(c, "Lister deleted successfully", nil)
}

// CompleteProfile handles first-time lister profile creation
// @Summary Complete lister profile
// @Tags Listers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CompleteListerProfileInput true "Profile"
// @Success 201 {object} response.Response{data=domain.ListerProfile}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /listers/complete-profile [post]
func (h *ListerHandler) CompleteProfile(c *fiber.Ctx) error {
	var input services.CompleteListerProfileInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	lister, err := h.listerService.CompleteProfile(c.UserContext(), caller(c), &input)
	if err != nil {
		return h.listerError(c, "Failed to complete profile", err)
	}

	return response.Created(c, "Profile completed successfully", lister)
}

// GetProfile handles getting own lister profile
// @Summary Get own lister profile
// @Tags Listers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=domain.ListerProfile}
// @Failure 404 {object} response.Response
// @Router /listers/profile [get]
func (h *ListerHandler) GetProfile(c *fiber.Ctx) error {
	lister, err := h.listerService.GetLister(c.UserContext(), caller(c).Username)
	if err != nil {
		return h.listerError(c, "Failed to get profile", err)
	}

	return response.Success(c, "Profile retrieved successfully", lister)
}

// UpdateProfile handles partial lister profile updates
// @Summary Update own lister profile
// @Description Also mounted at /listers/update-profile
// @Tags Listers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateListerProfileInput true "Fields to change"
// @Success 200 {object} response.Response{data=domain.ListerProfile}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /listers/profile [put]
func (h *ListerHandler) UpdateProfile(c *fiber.Ctx) error {
	var input services.UpdateListerProfileInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	lister, err := h.listerService.UpdateProfile(c.UserContext(), caller(c).Username, &input)
	if err != nil {
		return h.listerError(c, "Failed to update profile", err)
	}

	return response.Success(c, "Profile updated successfully", lister)
}

// CreateListing handles adding a listing
// @Summary Create listing
// @Tags Listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Lister username"
// @Param body body services.ListingInput true "Listing"
// @Success 201 {object} response.Response{data=domain.Listing}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /listers/listers/{username}/listings [post]
func (h *ListerHandler) CreateListing(c *fiber.Ctx) error {
	var input services.ListingInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	listing, err := h.listerService.CreateListing(c.UserContext(), caller(c), c.Params("username"), &input)
	if err != nil {
		return h.listerError(c, "Failed to create listing", err)
	}

	return response.Created(c, "Listing created successfully", listing)
}

// ListerListings handles listing one lister's listings
// @Summary Lister's listings
// @Tags Listings
// @Produce json
// @Param username path string true "Lister username"
// @Success 200 {object} response.Response{data=[]domain.Listing}
// @Failure 404 {object} response.Response
// @Router /listers/listers/{username}/listings [get]
func (h *ListerHandler) ListerListings(c *fiber.Ctx) error {
	listings, err := h.listerService.ListerListings(c.UserContext(), c.Params("username"))
	if err != nil {
		return h.listerError(c, "Failed to get listings", err)
	}

	return response.Success(c, "Listings retrieved successfully", listings)
}

// GetListerListing handles getting one listing of a lister
// @Summary Get lister's listing
// @Tags Listings
// @Produce json
// @Param username path string true "Lister username"
// @Param listingId path string true "Listing ID"
// @Success 200 {object} response.Response{data=domain.Listing}
// @Failure 404 {object} response.Response
// @Router /listers/listers/{username}/listings/{listingId} [get]
func (h *ListerHandler) GetListerListing(c *fiber.Ctx) error {
	listing, err := h.listerService.GetListerListing(c.UserContext(), c.Params("username"), c.Params("listingId"))
	if err != nil {
		return h.listerError(c, "Failed to get listing", err)
	}

	return response.Success(c, "Listing retrieved successfully", listing)
}

// UpdateListing handles partial listing updates
// @Summary Update listing
// @Description Only the fields present in the body change; the listing keeps its id
// @Tags Listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Lister username"
// @Param listingId path string true "Listing ID"
// @Param body body services.UpdateListingInput true "Fields to change"
// @Success 200 {object} response.Response{data=domain.Listing}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /listers/listers/{username}/listings/{listingId} [put]
func (h *ListerHandler) UpdateListing(c *fiber.Ctx) error {
	var input services.UpdateListingInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	listing, err := h.listerService.UpdateListing(c.UserContext(), caller(c), c.Params("username"), c.Params("listingId"), &input)
	if err != nil {
		return h.listerError(c, "Failed to update listing", err)
	}

	return response.Success(c, "Listing updated successfully", listing)
}

// DeleteListing handles listing removal by its owner
// @Summary Delete listing
// @Tags Listings
// @Produce json
// @Security BearerAuth
// @Param username path string true "Lister username"
// @Param listingId path string true "Listing ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /listers/listers/{username}/listings/{listingId} [delete]
func (h *ListerHandler) DeleteListing(c *fiber.Ctx) error {
	if err := h.listerService.DeleteListing(c.UserContext(), caller(c), c.Params("username"), c.Params("listingId")); err != nil {
		return h.listerError(c, "Failed to delete listing", err)
	}

	return response.Success(c, "Listing deleted successfully", nil)
}

// SearchListings handles listing search across all listers
// @Summary Search listings
// @Tags Listings
// @Produce json
// @Param distance query string false "Distance range, e.g. 0-2 or 1+"
// @Param rent query string false "Rent range, e.g. 1500-2500 or 3500+"
// @Param squareFootage query string false "Square footage range"
// @Param rooms query string false "Number of rooms, exact (2) or at least (4+)"
// @Param bathrooms query string false "Number of bathrooms, exact (1.5) or at least (2.5+)"
// @Param address query string false "Case-insensitive address fragment"
// @Param latitude query number false "Latitude, requires longitude"
// @Param longitude query number false "Longitude, requires latitude"
// @Success 200 {object} response.Response{data=[]domain.Listing}
// @Failure 400 {object} response.Response
// @Router /listers/listings [get]
func (h *ListerHandler) SearchListings(c *fiber.Ctx) error {
	query := services.ListingQuery{
		Distance:      c.Query("distance"),
		Rent:          c.Query("rent"),
		SquareFootage: c.Query("squareFootage"),
		Rooms:         c.Query("rooms"),
		Bathrooms:     c.Query("bathrooms"),
		Address:       c.Query("address"),
		Latitude:      c.Query("latitude"),
		Longitude:     c.Query("longitude"),
	}

	listings, err := h.listerService.SearchListings(c.UserContext(), query)
	if err != nil {
		return h.listerError(c, "Failed to search listings", err)
	}

	return response.Success(c, "Listings retrieved successfully", listings)
}

// GetListing handles the listing detail page
// @Summary Listing detail
// @Description Listing with the owner's name and contact info
// @Tags Listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Response{data=services.ListingDetail}
// @Failure 404 {object} response.Response
// @Router /listers/listings/{id} [get]
func (h *ListerHandler) GetListing(c *fiber.Ctx) error {
	detail, err := h.listerService.GetListingDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.listerError(c, "Failed to get listing", err)
	}

	return response.Success(c, "Listing retrieved successfully", detail)
}
