package main

import (
	"fmt"
	"os"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/config"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/models"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/routes"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}
	config.InitLogger()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Admin{},
		&models.ManagedUser{},
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Expense{},
	)
}

func main() {
	defer config.Log.Sync()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	stockService := services.NewStockService(config.DB, config.Log)
	stockService.StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)

	config.Log.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		config.Log.Fatal("server stopped", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
