package routes

import (
	"time"

	"roomfinder/internal/adapters/http/handlers"
	"roomfinder/internal/adapters/http/middleware"
	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/config"
	"roomfinder/internal/core/domain"
	"roomfinder/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// publicCacheTTL applies to anonymous GET routes over listings and listers
const publicCacheTTL = 30 * time.Second

// NewApp builds the fiber app with every middleware and route installed.
// limiterStorage may be nil to keep rate limiter counters in memory.
func NewApp(store repositories.Store, cfg *config.Config, log *zap.Logger, limiterStorage fiber.Storage) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "roomfinder API",
		ErrorHandler: middleware.ErrorHandler(log),
	})

	metrics := middleware.NewMetrics()
	app.Use(metrics.Middleware())

	// Setup middlewares
	middleware.Setup(app, cfg, limiterStorage)

	app.Get("/metrics", metrics.Handler())

	Setup(app, store, cfg, log, limiterStorage)
	return app
}

// Setup configures all routes for the application
func Setup(app *fiber.App, store repositories.Store, cfg *config.Config, log *zap.Logger, limiterStorage fiber.Storage) {
	// Initialize services
	authService := services.NewAuthService(store, cfg, log)
	userService := services.NewUserService(store, log)
	listerService := services.NewListerService(store, log)
	adminService := services.NewAdminService(store, log)
	reportService := services.NewReportService(store, log)
	dashboardService := services.NewDashboardService(store, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(store, cfg)
	authHandler := handlers.NewAuthHandler(authService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	listerHandler := handlers.NewListerHandler(listerService, log)
	adminHandler := handlers.NewAdminHandler(adminService, log)
	reportHandler := handlers.NewReportHandler(reportService, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	setupAuthRoutes(api.Group("/auth", middleware.NoCacheHeaders()), authHandler, cfg, limiterStorage)
	setupUserRoutes(api.Group("/users"), userHandler, cfg)
	setupListerRoutes(api.Group("/listers"), listerHandler, cfg)

	adminRoutes := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), middleware.NoCacheHeaders())
	setupAdminRoutes(adminRoutes, adminHandler, dashboardHandler)

	setupReportRoutes(api.Group("/report", middleware.NoCacheHeaders()), reportHandler, cfg)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config, limiterStorage fiber.Storage) {
	limit := middleware.AuthRateLimiter(cfg, limiterStorage)

	// Public routes
	router.Post("/signup", limit, handler.Signup)
	router.Post("/login", limit, handler.Login)
	router.Post("/signin", limit, handler.Login)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupUserRoutes configures roommate-seeker routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)
	seeker := middleware.RoleMiddleware(domain.RoleUser)

	// Public routes; a valid token only narrows the roommate search
	router.Get("/potential-roommates", middleware.OptionalAuth(cfg), middleware.NoCacheHeaders(), handler.PotentialRoommates)
	router.Get("/profile/:userId", middleware.CacheControl(publicCacheTTL), handler.PublicProfile)

	// Onboarding and own profile
	router.Post("/complete-profile", auth, handler.CompleteProfile)
	router.Get("/profile", auth, middleware.NoCacheHeaders(), handler.GetProfile)
	router.Put("/profile", auth, handler.UpdateProfile)
	router.Put("/update-profile", auth, handler.UpdateProfile)
	router.Get("/profile/:userId/full", auth, middleware.PrivateCacheHeaders(publicCacheTTL), handler.FullProfile)

	// Saved listings
	saved := router.Group("/saved-listings", auth, seeker, middleware.NoCacheHeaders())
	saved.Get("/", handler.SavedListings)
	saved.Post("/:listingId", handler.SaveListing)
	saved.Post("/:userId/:listingId", handler.SaveListingFor)
	saved.Delete("/:listingId", handler.UnsaveListing)
}

// setupListerRoutes configures lister and listing routes
func setupListerRoutes(router fiber.Router, handler *handlers.ListerHandler, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)
	cache := middleware.CacheControl(publicCacheTTL)
	fresh := middleware.NoCacheHeaders()

	// Listing search is public
	router.Get("/listings", cache, handler.SearchListings)
	router.Get("/listings/:id", cache, handler.GetListing)

	// Own lister profile
	router.Post("/complete-profile", auth, handler.CompleteProfile)
	router.Get("/profile", auth, middleware.NoCacheHeaders(), handler.GetProfile)
	router.Put("/profile", auth, handler.UpdateProfile)
	router.Put("/update-profile", auth, handler.UpdateProfile)

	// Lister directory
	router.Post("/listers", handler.Register)
	router.Get("/listers", cache, handler.ListListers)
	router.Get("/listers/:username", fresh, handler.GetLister)
	router.Delete("/listers/:username", auth, handler.DeleteLister)

	// Listings of one lister; reads reflect the owner's writes immediately and
	// writes are checked against the owner in the service
	router.Get("/listers/:username/listings", fresh, handler.ListerListings)
	router.Get("/listers/:username/listings/:listingId", fresh, handler.GetListerListing)
	router.Post("/listers/:username/listings", auth, handler.CreateListing)
	router.Put("/listers/:username/listings/:listingId", auth, handler.UpdateListing)
	router.Delete("/listers/:username/listings/:listingId", auth, handler.DeleteListing)
}

// setupAdminRoutes configures moderation routes (Admin only)
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler, dashboard *handlers.DashboardHandler) {
	router.Get("/dashboard", dashboard.GetAdminDashboard)

	router.Post("/admin", handler.CreateAdmin)
	router.Get("/admins", handler.ListAdmins)
	router.Get("/admin/:username", handler.GetAdmin)
	router.Put("/admin/:username", handler.UpdateAdmin)
	router.Delete("/admin/:username", handler.DeleteAdmin)

	router.Get("/users", handler.ListUsers)
	router.Get("/listers", handler.ListListers)
	router.Get("/listings", handler.ListListings)

	router.Delete("/users/:userId", handler.DeleteUser)
	router.Delete("/listers/:listerId", handler.DeleteLister)
	router.Delete("/listings/:listingId", handler.DeleteListing)
}

// setupReportRoutes configures report routes
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)

	router.Post("/report", auth, handler.Create)
	router.Get("/report", auth, middleware.AdminOnly(), handler.List)
	router.Delete("/report/:id", auth, middleware.AdminOnly(), handler.Delete)
}
