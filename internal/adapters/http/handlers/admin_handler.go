package handlers

import (
	"errors"

	"roomfinder/internal/core/services"
	"roomfinder/internal/pkg/pagination"
	"roomfinder/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHandler handles administrator and moderation endpoints
type AdminHandler struct {
	adminService *services.AdminService
	log          *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		log:          log,
	}
}

func (h *AdminHandler) adminError(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, services.ErrAdminNotFound):
		return response.NotFound(c, "Admin not found")
	case errors.Is(err, services.ErrUsernameTaken):
		return response.Conflict(c, "Username already exists")
	case errors.Is(err, services.ErrCannotDeleteSelf):
		return response.Forbidden(c, "You cannot delete your own account")
	case errors.Is(err, services.ErrProfileNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, services.ErrListerNotFound):
		return response.NotFound(c, "Lister not found")
	case errors.Is(err, services.ErrListingNotFound):
		return response.NotFound(c, "Listing not found")
	default:
		return serverError(c, h.log, message, err)
	}
}

// paged answers with every item, or one page of them when page or limit is given
func paged[T any](c *fiber.Ctx, message string, items []T) error {
	if !pagination.Requested(c) {
		return response.Success(c, message, items)
	}
	return response.Success(c, message, pagination.Slice(items, pagination.GetParams(c)))
}

// CreateAdmin handles admin creation
// @Summary Create admin
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateAdminInput true "Admin"
// @Success 201 {object} response.Response{data=domain.AdminProfile}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/admin [post]
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var input services.CreateAdminInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	admin, err := h.adminService.CreateAdmin(c.UserContext(), &input)
	if err != nil {
		return h.adminError(c, "Failed to create admin", err)
	}

	return response.Created(c, "Admin created successfully", admin)
}

// ListAdmins handles listing admins
// @Summary List admins
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response{data=[]domain.AdminProfile}
// @Router /admin/admins [get]
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.adminService.ListAdmins(c.UserContext())
	if err != nil {
		return serverError(c, h.log, "Failed to list admins", err)
	}

	return paged(c, "Admins retrieved successfully", admins)
}

// GetAdmin handles getting an admin by username
// @Summary Get admin
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param username path string true "Admin username"
// @Success 200 {object} response.Response{data=domain.AdminProfile}
// @Failure 404 {object} response.Response
// @Router /admin/admin/{username} [get]
func (h *AdminHandler) GetAdmin(c *fiber.Ctx) error {
	admin, err := h.adminService.GetAdmin(c.UserContext(), c.Params("username"))
	if err != nil {
		return h.adminError(c, "Failed to get admin", err)
	}

	return response.Success(c, "Admin retrieved successfully", admin)
}

// UpdateAdmin handles admin updates, including password changes
// @Summary Update admin
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Admin username"
// @Param body body services.UpdateAdminInput true "Fields to change"
// @Success 200 {object} response.Response{data=domain.AdminProfile}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/admin/{username} [put]
func (h *AdminHandler) UpdateAdmin(c *fiber.Ctx) error {
	var input services.UpdateAdminInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	admin, err := h.adminService.UpdateAdmin(c.UserContext(), c.Params("username"), &input)
	if err != nil {
		return h.adminError(c, "Failed to update admin", err)
	}

	return response.Success(c, "Admin updated successfully", admin)
}

// DeleteAdmin handles admin removal
// @Summary Delete admin
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param username path string true "Admin username"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/admin/{username} [delete]
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	if err := h.adminService.DeleteAdmin(c.UserContext(), caller(c), c.Params("username")); err != nil {
		return h.adminError(c, "Failed to delete admin", err)
	}

	return response.Success(c, "Admin deleted successfully", nil)
}

// ListUsers handles listing every user profile
// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response{data=[]domain.UserProfile}
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers(c.UserContext())
	if err != nil {
		return serverError(c, h.log, "Failed to list users", err)
	}

	return paged(c, "Users retrieved successfully", users)
}

// ListListers handles listing every lister profile
// @Summary List listers
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response{data=[]domain.ListerProfile}
// @Router /admin/listers [get]
func (h *AdminHandler) ListListers(c *fiber.Ctx) error {
	listers, err := h.adminService.ListListers(c.UserContext())
	if err != nil {
		return serverError(c, h.log, "Failed to list listers", err)
	}

	return paged(c, "Listers retrieved successfully", listers)
}

// ListListings handles listing every listing with its owner
// @Summary List listings
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response{data=[]domain.Listing}
// @Router /admin/listings [get]
func (h *AdminHandler) ListListings(c *fiber.Ctx) error {
	listings, err := h.adminService.ListListings(c.UserContext())
	if err != nil {
		return serverError(c, h.log, "Failed to list listings", err)
	}

	return paged(c, "Listings retrieved successfully", listings)
}

// DeleteUser handles removal of a user profile and its account
// @Summary Delete user
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Profile ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{userId} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.adminService.DeleteUser(c.UserContext(), c.Params("userId")); err != nil {
		return h.adminError(c, "Failed to delete user", err)
	}

	return response.Success(c, "User deleted successfully", nil)
}

// DeleteLister handles removal of a lister, its listings and its account
// @Summary Delete lister
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param listerId path string true "Lister ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/listers/{listerId} [delete]
func (h *AdminHandler) DeleteLister(c *fiber.Ctx) error {
	if err := h.adminService.DeleteLister(c.UserContext(), c.Params("listerId")); err != nil {
		return h.adminError(c, "Failed to delete lister", err)
	}

	return response.Success(c, "Lister deleted successfully", nil)
}

// DeleteListing handles removal of any listing
// @Summary Delete listing
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param listingId path string true "Listing ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/listings/{listingId} [delete]
func (h *AdminHandler) DeleteListing(c *fiber.Ctx) error {
	if err := h.adminService.DeleteListing(c.UserContext(), c.Params("listingId")); err != nil {
		return h.adminError(c, "Failed to delete listing", err)
	}

	return response.Success(c, "Listing deleted successfully", nil)
}
