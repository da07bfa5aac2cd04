package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"snackpos/internal/config"
	"snackpos/internal/database"
	"snackpos/internal/handlers"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureMenuIndexes(db); err != nil {
		log.Printf("menu index warning: %v", err)
	}
	if err := database.SeedMenu(db); err != nil {
		log.Printf("menu seed warning: %v", err)
	}

	r := gin.Default()

	api := r.Group("/api")
	{
		api.GET("/menu", handlers.GetMenu(db))

		api.POST("/orders", handlers.CreateOrder(db))
		api.GET("/orders", handlers.GetOrders(db))
		api.GET("/orders/stats/summary", handlers.GetOrderStats(db))
		api.GET("/orders/:id", handlers.GetOrderByID(db))
		api.PUT("/orders/:id", handlers.UpdateOrder(db))
		api.DELETE("/orders/:id", handlers.DeleteOrder(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
