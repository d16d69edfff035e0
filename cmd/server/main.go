// main.go
//
// Property rental back office data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of rentfolio.
// rentfolio is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// rentfolio is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with rentfolio.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/rentfolio/internal/config"
	"github.com/localnerve/rentfolio/internal/database"
	"github.com/localnerve/rentfolio/internal/handlers"
	"github.com/localnerve/rentfolio/internal/middleware"
	"github.com/localnerve/rentfolio/internal/utils"

	_ "github.com/localnerve/rentfolio/docs/api" // Swagger docs
)

// @title Rentfolio API
// @version 1.0.0
// @description Property rental back office data service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/rentfolio
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("rentfolio")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}
	tenantHandler := &handlers.TenantHandler{DB: db}
	roomHandler := &handlers.RoomHandler{DB: db}
	propertyHandler := &handlers.PropertyHandler{DB: db}
	portfolioHandler := &handlers.PortfolioHandler{DB: db}

	// Health
	api.Get("/health", healthHandler.GetHealth)

	// Tenant routes
	api.Get("/tenants", tenantHandler.ListTenants)
	api.Post("/tenants", tenantHandler.CreateTenant)
	api.Get("/tenants/:id", tenantHandler.GetTenant)
	api.Delete("/tenants/:id", middleware.AuthAdmin(cfg), tenantHandler.DeleteTenant)
	api.Post("/tenants/:id/renew", tenantHandler.RenewLease)
	api.Post("/tenants/:id/room", tenantHandler.AttachRoom)
	api.Delete("/tenants/:id/room", tenantHandler.DetachRoom)

	// Unit room routes
	api.Get("/rooms", roomHandler.ListRooms)
	api.Post("/rooms", roomHandler.CreateRoom)
	api.Delete("/rooms/:id", middleware.AuthAdmin(cfg), roomHandler.DeleteRoom)

	// Property routes
	api.Get("/properties", propertyHandler.ListProperties)
	api.Post("/properties", propertyHandler.CreateProperty)
	api.Get("/properties/:id", propertyHandler.GetProperty)
	api.Delete("/properties/:id", middleware.AuthAdmin(cfg), propertyHandler.DeleteProperty)
	api.Post("/properties/:id/tenants", propertyHandler.AssignTenant)
	api.Delete("/properties/:id/tenants/:tenantId", propertyHandler.ReleaseTenant)
	api.Post("/properties/:id/rooms", propertyHandler.AttachRoom)
	api.Delete("/properties/:id/rooms/:roomId", propertyHandler.DetachRoom)

	// Lease manager routes
	api.Get("/managers", portfolioHandler.ListManagers)
	api.Post("/managers", portfolioHandler.CreateManager)
	api.Get("/managers/:id", portfolioHandler.GetManager)
	api.Delete("/managers/:id", middleware.AuthAdmin(cfg), portfolioHandler.DeleteManager)
	api.Post("/managers/:id/properties", portfolioHandler.AddProperty)
	api.Delete("/managers/:id/properties/:propertyId", portfolioHandler.RemoveProperty)
	api.Get("/managers/:id/vacancies", portfolioHandler.GetVacancies)
	api.Get("/managers/:id/overdue", portfolioHandler.GetOverdue)
	api.Get("/managers/:id/revenue", portfolioHandler.GetRevenue)
	api.Post("/managers/:id/reports/lease-expiry", portfolioHandler.CreateExpiryReport)
	api.Get("/managers/:id/reports", portfolioHandler.ListReports)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Authorizer is initialized lazily on the first authenticated request
	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
