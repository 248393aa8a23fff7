package routes

import (
	"net/http"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/config"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/controllers"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/metrics"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.Use(config.RequestLogger())
	r.Use(metrics.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Product reads are open to both roles; mutations are admin-only.
		products := api.Group("/products")
		{
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)

			admin := products.Group("", utils.RequireAdmin())
			admin.POST("", controllers.CreateProduct)
			admin.PUT("/:id", controllers.UpdateProduct)
			admin.DELETE("/:id", controllers.DeleteProduct)
			admin.DELETE("", controllers.BulkDeleteProducts)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", controllers.CreateOrder)
			orders.GET("", controllers.GetOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.PUT("/:id", controllers.UpdateOrder)
			orders.DELETE("/:id", controllers.DeleteOrder)
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Expense routes
		expenses := api.Group("/expenses", utils.RequireAdmin())
		{
			expenses.POST("", controllers.CreateExpense)
			expenses.GET("", controllers.GetExpenses)
			expenses.GET("/:id", controllers.GetExpense)
			expenses.PUT("/:id", controllers.UpdateExpense)
			expenses.DELETE("/:id", controllers.DeleteExpense)
		}

		// Managed user routes; the listing stays open for role lookups
		managedUsers := api.Group("/managedUsers")
		{
			managedUsers.GET("", controllers.GetManagedUsers)
			managedUsers.GET("/:id", controllers.GetManagedUser)

			admin := managedUsers.Group("", utils.RequireAdmin())
			admin.POST("", controllers.CreateManagedUser)
			admin.PUT("/:id", controllers.UpdateManagedUser)
			admin.DELETE("/:id", controllers.DeleteManagedUser)
		}

		// Warehouse routes
		warehouse := api.Group("/warehouse")
		{
			warehouse.GET("", controllers.GetWarehouse)
			warehouse.PUT("/:id", utils.RequireAdmin(), controllers.UpdateWarehouseQuantity)
		}

		// Dashboard routes
		dashboardController := controllers.DashboardController{}
		api.GET("/dashboardStats", utils.RequireAdmin(), dashboardController.GetDashboardStats)
		api.GET("/managerDashboard", dashboardController.GetManagerDashboard)
	}

	return r
}
