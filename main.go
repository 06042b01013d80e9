package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dekii2275/oilandenegry-website-sub000/config"
	"github.com/dekii2275/oilandenegry-website-sub000/controllers"
	"github.com/dekii2275/oilandenegry-website-sub000/middleware"
	"github.com/dekii2275/oilandenegry-website-sub000/models"
	"github.com/dekii2275/oilandenegry-website-sub000/services"
)

func main() {
	// Basic logging
	log.Println("Starting Zenergy Orders API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderLineItem{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Invoice storage is optional: without a bucket, invoices are still
	// rendered per request, just not persisted.
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitInvoiceService(s3Service)
		log.Printf("Invoice storage enabled on bucket %s", cfg.AWSS3Bucket)
	} else {
		log.Println("AWS_S3_BUCKET not set, invoice storage disabled")
	}

	router := buildRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildRouter wires the full API surface: operational endpoints plus the
// JWT-protected order and profile routes the storefront consumes.
func buildRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// The Next.js storefront calls the API cross-origin.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://zenergy.cloud"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		authed := v1.Group("")
		authed.Use(middleware.EnsureValidToken(cfg))
		{
			authed.POST("/users", controllers.CreateUser)
			authed.GET("/users/me", controllers.GetCurrentUser)
			authed.PUT("/users/me", controllers.UpdateUser)

			authed.GET("/orders", controllers.ListOrders)
			authed.POST("/orders", controllers.CreateOrder)
			authed.GET("/orders/:id", controllers.GetOrder)
			authed.POST("/orders/:id/cancel", controllers.CancelOrder)
			authed.GET("/orders/:id/invoice", controllers.GetOrderInvoice)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Zenergy Orders API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
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

	// Ping the database to verify connection
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

	// Get list of tables
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
