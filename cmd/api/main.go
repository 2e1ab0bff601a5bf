package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-stockledger/internal/handler"
	"go-stockledger/internal/middleware"
	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/service"
	"go-stockledger/internal/ws"
	"go-stockledger/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Supplier{},
		&model.Product{},
		&model.Inventory{},
		&model.StockTransaction{},
		&model.InventoryLog{},
		&model.ProductLog{},
	)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	audit := service.NewAuditRecorder(auditRepo)
	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(productRepo, supplierRepo, inventoryRepo, audit, db, wsHub)
	supplierService := service.NewSupplierService(supplierRepo, productRepo, db)
	inventoryService := service.NewInventoryService(inventoryRepo, productRepo, audit, db, wsHub)
	txService := service.NewTransactionService(productRepo, inventoryRepo, txRepo, db, wsHub)
	analyticsService := service.NewAnalyticsService(txRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	txHandler := handler.NewTransactionHandler(txService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "StockLedger API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth())

	// Product Routes (with role checks)
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/logs/:productId", productHandler.GetProductLogs)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", middleware.RequireRole(model.RoleAdmin, model.RoleStockManager), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireRole(model.RoleAdmin, model.RoleStockManager), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleAdmin), productHandler.DeleteProduct)

	// Supplier Routes
	protected.Get("/suppliers", supplierHandler.GetSuppliers)
	protected.Get("/suppliers/:id", supplierHandler.GetSupplier)
	protected.Post("/suppliers", middleware.RequireRole(model.RoleAdmin, model.RoleStockManager), supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", middleware.RequireRole(model.RoleAdmin, model.RoleStockManager), supplierHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequireRole(model.RoleAdmin), supplierHandler.DeleteSupplier)

	// Inventory Routes
	protected.Get("/inventory", inventoryHandler.GetInventory)
	protected.Get("/inventory/logs/:productId", inventoryHandler.GetInventoryLogs)
	protected.Post("/inventory/adjust", middleware.RequireRole(model.RoleAdmin, model.RoleStockManager), inventoryHandler.Adjust)

	// Transaction Routes (posting needs authentication only)
	protected.Get("/transactions", txHandler.GetTransactions)
	protected.Post("/transactions", txHandler.CreateTransaction)

	// Analytics Routes (read-only)
	protected.Get("/analytics/revenue-by-period", analyticsHandler.GetRevenueByPeriod)
	protected.Get("/analytics/stock-movement", analyticsHandler.GetStockMovement)
	protected.Get("/analytics/stats", analyticsHandler.GetStats)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
