package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menuvi/menuvi/internal/audit"
	"github.com/menuvi/menuvi/internal/config"
	"github.com/menuvi/menuvi/internal/handlers"
	"github.com/menuvi/menuvi/internal/middleware"
	"github.com/menuvi/menuvi/internal/session"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, store session.Store, cfg *config.Config) {

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	authHandler := handlers.NewAuthHandler(db, cfg)
	publicHandler := handlers.NewPublicHandler(db)
	picksHandler := handlers.NewPicksHandler(db, store)
	categoryHandler := handlers.NewCategoryHandler(db, auditDispatcher)
	itemHandler := handlers.NewItemHandler(db, auditDispatcher)
	qrHandler := handlers.NewQRHandler(cfg)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	restaurantHandler := handlers.NewRestaurantHandler(db, auditDispatcher)
	userHandler := handlers.NewUserHandler(db)

	resolveTenant := middleware.TenantMiddleware(db)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC MENU SITE
		// ------------------------------
		api.GET("/public/restaurants", publicHandler.Directory)

		publicTenant := api.Group("/public/:slug")
		publicTenant.Use(resolveTenant)
		{
			publicTenant.GET("", publicHandler.Landing)
			publicTenant.GET("/menu/:menuType", publicHandler.Menu)
			publicTenant.GET("/categories/:id", publicHandler.Category)
			publicTenant.GET("/items/:id", publicHandler.Item)
			publicTenant.GET("/search", publicHandler.Search)

			publicTenant.GET("/picks", picksHandler.List)
			publicTenant.POST("/picks/add/:itemID", picksHandler.Add)
			publicTenant.POST("/picks/remove/:itemID", picksHandler.Remove)
			publicTenant.POST("/picks/clear", picksHandler.Clear)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", middleware.AuthMiddleware(cfg), authHandler.Me)

		// ------------------------------
		// ADMIN CONSOLE (tenant-scoped)
		// ------------------------------
		admin := api.Group("/admin/:slug")
		admin.Use(resolveTenant, middleware.AuthMiddleware(cfg), middleware.RequireTenantAccess())
		{
			admin.GET("", categoryHandler.Dashboard)

			admin.GET("/categories", categoryHandler.List)
			admin.POST("/categories", categoryHandler.Create)
			admin.PATCH("/categories/:id", categoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)

			admin.GET("/categories/:id/items", itemHandler.List)
			admin.POST("/categories/:id/items", itemHandler.Create)
			admin.PATCH("/items/:id", itemHandler.Update)
			admin.DELETE("/items/:id", itemHandler.Delete)
			admin.POST("/items/:id/toggle", itemHandler.Toggle)

			admin.GET("/qr", qrHandler.Show)
			admin.GET("/qr.png", qrHandler.Download)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// SUPERADMIN CONSOLE (global)
		// ------------------------------
		superadmin := api.Group("/superadmin")
		superadmin.Use(middleware.AuthMiddleware(cfg), middleware.RequireSuperadmin())
		{
			superadmin.GET("", restaurantHandler.Dashboard)

			superadmin.GET("/restaurants", restaurantHandler.List)
			superadmin.POST("/restaurants", restaurantHandler.Create)
			superadmin.PATCH("/restaurants/:id", restaurantHandler.Update)
			superadmin.DELETE("/restaurants/:id", restaurantHandler.Delete)

			superadmin.GET("/users", userHandler.List)
			superadmin.POST("/users", userHandler.Create)
			superadmin.PATCH("/users/:id", userHandler.Update)
			superadmin.DELETE("/users/:id", userHandler.Delete)
		}
	}
}
