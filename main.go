package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/config"
	"github.com/pixelmage/pixelmage-cards-api/controllers"
	"github.com/pixelmage/pixelmage-cards-api/middleware"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/services"
)

func main() {
	log.Println("Starting PixelMage Cards API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.SetConfig(cfg)

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Role{},
		&models.Account{},
		&models.Supplier{},
		&models.Product{},
		&models.CardTemplate{},
		&models.Card{},
		&models.Warehouse{},
		&models.Inventory{},
		&models.WarehouseTransaction{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderLine{},
		&models.Order{},
		&models.OrderItem{},
		&models.CardCollection{},
		&models.CollectionItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed design storage
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitDesignService(s3Service)

	// Initialize the payment processor client
	services.InitPaymentService(cfg)

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures the Gin engine with CORS, auth middleware and
// all API routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	auth := middleware.EnsureValidToken(cfg)

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public catalog
		v1.GET("/products", controllers.ListProducts)
		v1.GET("/products/:id", controllers.GetProduct)
		v1.GET("/cards", controllers.ListCards)
		v1.GET("/cards/:id", controllers.GetCard)
		v1.GET("/card-templates", controllers.ListCardTemplates)
		v1.GET("/card-templates/:id", controllers.GetCardTemplate)
		v1.GET("/collections/public", controllers.ListPublicCollections)

		// Account profile
		v1.POST("/accounts", auth, controllers.CreateAccount)
		v1.GET("/accounts/me", auth, controllers.GetMyAccount)
		v1.PUT("/accounts/me", auth, controllers.UpdateMyAccount)
		v1.GET("/accounts/me/owned-cards", auth, controllers.GetOwnedCards)

		// Customer orders
		v1.POST("/orders", auth, controllers.CreateOrder)
		v1.GET("/orders", auth, controllers.ListMyOrders)
		v1.GET("/orders/:id", auth, controllers.GetOrder)
		v1.POST("/orders/:id/payment/refresh", auth, controllers.RefreshOrderPayment)

		// Collections
		v1.POST("/collections", auth, controllers.CreateCollection)
		v1.GET("/collections", auth, controllers.ListMyCollections)
		v1.GET("/collections/:id", auth, controllers.GetCollection)
		v1.PUT("/collections/:id", auth, controllers.UpdateCollection)
		v1.DELETE("/collections/:id", auth, controllers.DeleteCollection)
		v1.POST("/collections/:id/items", auth, controllers.AddCollectionItem)
		v1.DELETE("/collections/:id/items/:cardId", auth, controllers.RemoveCollectionItem)

		// Admin: catalog management
		v1.POST("/products", auth, controllers.CreateProduct)
		v1.PUT("/products/:id", auth, controllers.UpdateProduct)
		v1.DELETE("/products/:id", auth, controllers.DeleteProduct)
		v1.POST("/cards", auth, controllers.CreateCard)
		v1.PUT("/cards/:id", auth, controllers.UpdateCard)
		v1.DELETE("/cards/:id", auth, controllers.DeleteCard)
		v1.POST("/card-templates", auth, controllers.CreateCardTemplate)
		v1.PUT("/card-templates/:id", auth, controllers.UpdateCardTemplate)
		v1.POST("/card-templates/:id/design", auth, controllers.UploadCardTemplateDesign)
		v1.DELETE("/card-templates/:id", auth, controllers.DeleteCardTemplate)

		// Admin: accounts and roles
		v1.GET("/accounts", auth, controllers.ListAccounts)
		v1.POST("/roles", auth, controllers.CreateRole)
		v1.GET("/roles", auth, controllers.ListRoles)
		v1.DELETE("/roles/:id", auth, controllers.DeleteRole)

		// Admin: suppliers and warehouses
		v1.POST("/suppliers", auth, controllers.CreateSupplier)
		v1.GET("/suppliers", auth, controllers.ListSuppliers)
		v1.GET("/suppliers/:id", auth, controllers.GetSupplier)
		v1.PUT("/suppliers/:id", auth, controllers.UpdateSupplier)
		v1.DELETE("/suppliers/:id", auth, controllers.DeleteSupplier)
		v1.POST("/warehouses", auth, controllers.CreateWarehouse)
		v1.GET("/warehouses", auth, controllers.ListWarehouses)
		v1.GET("/warehouses/:id", auth, controllers.GetWarehouse)
		v1.PUT("/warehouses/:id", auth, controllers.UpdateWarehouse)
		v1.DELETE("/warehouses/:id", auth, controllers.DeleteWarehouse)

		// Admin: inventory ledger
		v1.POST("/inventories", auth, controllers.CreateInventory)
		v1.GET("/inventories", auth, controllers.ListInventories)
		v1.GET("/inventories/:id", auth, controllers.GetInventory)
		v1.PUT("/inventories/:id", auth, controllers.UpdateInventory)
		v1.DELETE("/inventories/:id", auth, controllers.DeleteInventory)

		// Admin: warehouse transaction log
		v1.POST("/warehouse-transactions", auth, controllers.CreateWarehouseTransaction)
		v1.GET("/warehouse-transactions", auth, controllers.ListWarehouseTransactions)
		v1.GET("/warehouse-transactions/:id", auth, controllers.GetWarehouseTransaction)
		v1.PUT("/warehouse-transactions/:id", auth, controllers.UpdateWarehouseTransaction)
		v1.DELETE("/warehouse-transactions/:id", auth, controllers.DeleteWarehouseTransaction)

		// Admin: purchase orders and receiving
		v1.POST("/purchase-orders", auth, controllers.CreatePurchaseOrder)
		v1.GET("/purchase-orders", auth, controllers.ListPurchaseOrders)
		v1.GET("/purchase-orders/:id", auth, controllers.GetPurchaseOrder)
		v1.PUT("/purchase-orders/:id", auth, controllers.UpdatePurchaseOrder)
		v1.DELETE("/purchase-orders/:id", auth, controllers.DeletePurchaseOrder)
		v1.POST("/purchase-orders/:id/lines", auth, controllers.AddPurchaseOrderLine)
		v1.POST("/purchase-orders/:id/lines/:lineId/receive", auth, controllers.ReceivePurchaseOrderLine)

		// Admin: order fulfillment
		v1.GET("/admin/orders", auth, controllers.ListAllOrders)
		v1.PUT("/orders/:id/status", auth, controllers.UpdateOrderStatus)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "PixelMage Cards API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
