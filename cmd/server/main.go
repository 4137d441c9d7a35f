package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/brfservice/brf-portal-api/internal/access"
	"github.com/brfservice/brf-portal-api/internal/config"
	"github.com/brfservice/brf-portal-api/internal/constants"
	"github.com/brfservice/brf-portal-api/internal/database"
	"github.com/brfservice/brf-portal-api/internal/handlers"
	"github.com/brfservice/brf-portal-api/internal/middleware"
	"github.com/brfservice/brf-portal-api/internal/repository"
	"github.com/brfservice/brf-portal-api/internal/services"
	"github.com/brfservice/brf-portal-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize attachment storage
	store, err := storage.NewDiskStore(cfg.AttachmentDir)
	if err != nil {
		log.Fatalf("Failed to initialize attachment storage: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	sessionStore, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	vendorRepo := repository.NewVendorRepository(db)

	// Initialize services
	identityService := services.NewIdentityService(userRepo)
	authService := services.NewAuthService(userRepo)
	invitationService := services.NewInvitationService(invitationRepo, userRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, vendorRepo)
	attachmentService := services.NewAttachmentService(invoiceRepo, store)
	orgService := services.NewOrganizationService(orgRepo)
	vendorService := services.NewVendorService(vendorRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, identityService, orgService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, attachmentService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	dashboardHandler := handlers.NewDashboardHandler(invoiceService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "BRF Portal API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public except /me and self-service)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/forgot-password", authHandler.RequestPasswordReset)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PUT("/profile", middleware.RequireAuth(), authHandler.UpdateProfile)
			auth.PUT("/password", middleware.RequireAuth(), authHandler.UpdatePassword)
		}

		// Invitation acceptance routes (public, token-keyed)
		api.GET("/invitations/:token", invitationHandler.Validate)
		api.POST("/invitations/:token/accept", invitationHandler.Accept)

		// Everything below requires a session and a resolved identity
		portal := api.Group("")
		portal.Use(middleware.RequireAuth(), middleware.ResolveIdentity(identityService))
		{
			// Invoice routes
			invoices := portal.Group("/invoices")
			invoices.Use(middleware.RequireCapability(access.CapViewInvoices))
			{
				invoices.GET("", invoiceHandler.List)
				invoices.GET("/:id", invoiceHandler.Get)
				invoices.POST("/:id/attest", invoiceHandler.Attest)
				invoices.POST("/:id/comments", invoiceHandler.AddComment)
				invoices.GET("/:id/attachments", invoiceHandler.ListAttachments)
				invoices.GET("/:id/attachments/:attachmentId", invoiceHandler.DownloadAttachment)

				manage := invoices.Group("")
				manage.Use(middleware.RequireCapability(access.CapManageInvoices))
				{
					manage.POST("", invoiceHandler.Create)
					manage.POST("/:id/send", invoiceHandler.Send)
					manage.POST("/:id/pay", invoiceHandler.MarkPaid)
					manage.PUT("/:id/accounting", invoiceHandler.SaveAccounting)
					manage.POST("/:id/attachments", invoiceHandler.UploadAttachment)
					manage.DELETE("/:id/attachments/:attachmentId", invoiceHandler.DeleteAttachment)
				}
			}

			// Dashboard routes
			dashboard := portal.Group("/dashboard")
			dashboard.Use(middleware.RequireCapability(access.CapViewInvoices))
			{
				dashboard.GET("/stats", dashboardHandler.Stats)
				dashboard.GET("/upcoming", dashboardHandler.Upcoming)
			}

			// Vendor routes
			vendors := portal.Group("/vendors")
			vendors.Use(middleware.RequireCapability(access.CapViewInvoices))
			{
				vendors.GET("", vendorHandler.List)

				manage := vendors.Group("")
				manage.Use(middleware.RequireCapability(access.CapManageOrganization))
				{
					manage.POST("", vendorHandler.Create)
					manage.PUT("/:id", vendorHandler.Update)
				}
			}

			// Organization routes
			org := portal.Group("/organization")
			org.Use(middleware.RequireCapability(access.CapAccessPortal))
			{
				org.GET("", orgHandler.Get)
				org.GET("/members", orgHandler.ListMembers)

				manage := org.Group("")
				manage.Use(middleware.RequireCapability(access.CapManageOrganization))
				{
					manage.PUT("", orgHandler.Update)
					manage.POST("/invitations", invitationHandler.Create)
					manage.GET("/invitations", invitationHandler.List)
				}
			}

			// Cross-organization admin routes
			admin := portal.Group("/admin")
			admin.Use(middleware.RequireCapability(access.CapCrossOrganization))
			{
				admin.GET("/organizations", orgHandler.ListAll)
				admin.POST("/organizations", orgHandler.Create)
				admin.GET("/organizations/:id", orgHandler.GetByID)
			}
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
