package routes

import (
	"os"

	authController "bus-buddy/controllers/auth"
	"bus-buddy/controllers/dashboard"
	"bus-buddy/controllers/pass"
	"bus-buddy/controllers/system"
	"bus-buddy/controllers/ticket"
	"bus-buddy/controllers/tracking"
	userController "bus-buddy/controllers/user"
	authClient "bus-buddy/httpServices/auth"
	"bus-buddy/httpServices/imagehost"
	"bus-buddy/httpServices/payment"
	"bus-buddy/logger"
	"bus-buddy/middleware"
	"bus-buddy/services/passes"
	"bus-buddy/services/reset"
	"bus-buddy/services/tickets"
	trackingService "bus-buddy/services/tracking"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, resetService *reset.Service) {
	providerClient := authClient.NewClient(os.Getenv("AUTH_BASE_URL"))
	asyncLogger := logger.NewAsyncLogger(db)
	gateway := payment.NewSimulatedGateway()
	images := imagehost.NewClient()

	passService := passes.NewService(passes.NewGormStore(db))
	ticketService := tickets.NewService(tickets.NewGormStore(db))
	trackingStore := trackingService.NewGormStore(db)

	authCtrl := authController.NewAuthController(providerClient, db, asyncLogger)
	passCtrl := pass.NewPassController(db, asyncLogger, passService, gateway, images)
	ticketCtrl := ticket.NewTicketController(db, asyncLogger, ticketService, gateway)
	userCtrl := userController.NewUserController(db, asyncLogger, images)
	trackingCtrl := tracking.NewTrackingController(db, trackingStore)
	systemCtrl := system.NewSystemController(resetService)
	dashboardCtrl := dashboard.NewDashboardController(db, passService, ticketService)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authCtrl.Login)
	api.Post("/register", authCtrl.Register)
	api.Get("/health", systemCtrl.Health)
	api.Post("/system/reset-trip-counts", systemCtrl.TriggerReset)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAuthentication())
	authGroup.Post("/logout", authCtrl.Logout)
	authGroup.Get("/profile", userCtrl.Show)
	authGroup.Put("/profile", userCtrl.Update)

	/*=============================================================================
	| Pass Routes
	===============================================================================*/
	passGroup := api.Group("/pass").Use(middleware.RequireAuthentication())
	passGroup.Post("/create", passCtrl.Store)
	passGroup.Get("/active", passCtrl.Active)

	/*=============================================================================
	| Ticket Routes
	===============================================================================*/
	ticketGroup := api.Group("/ticket").Use(middleware.RequireAuthentication())
	ticketGroup.Post("/create", ticketCtrl.Store)
	ticketGroup.Get("/list", ticketCtrl.Index)

	/*=============================================================================
	| Tracking Routes
	===============================================================================*/
	trackingGroup := api.Group("/bus").Use(middleware.RequireAuthentication())
	trackingGroup.Get("/location/:route", trackingCtrl.Show)
	trackingGroup.Get("/location/:route/watch", trackingCtrl.Watch)
	trackingGroup.Post("/location", trackingCtrl.Report)

	/*=============================================================================
	| Dashboard Routes
	===============================================================================*/
	dashboardGroup := api.Group("/dashboard").Use(middleware.RequireAuthentication())
	dashboardGroup.Get("/stats", dashboardCtrl.Stats)
	dashboardGroup.Get("/notifications", dashboardCtrl.Notifications)
}
