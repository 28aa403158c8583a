package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"civicassets-be/config"
	"civicassets-be/models"
	"civicassets-be/routes"
	"civicassets-be/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}

	log.Println("MongoDB connection established successfully!")

	config.ConnectRedis()

	if err := ensureIndexes(); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	if err := ensureDefaultDepartments(); err != nil {
		log.Fatalf("Failed to seed departments: %v", err)
	}

	r := gin.Default()
	r.Use(cors.Default())

	routes.AuthRoutes(r)
	routes.UserRoutes(r)
	routes.DepartmentRoutes(r)
	routes.AssetRoutes(r)
	routes.ComplaintRoutes(r)
	routes.ApprovalRoutes(r)
	routes.DashboardRoutes(r)

	r.Static("/uploads", utils.UploadsDir())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func ensureIndexes() error {
	if err := models.EnsureUserIndexes(config.GetCollection("users")); err != nil {
		return err
	}
	if err := models.EnsureDepartmentIndexes(config.GetCollection("departments")); err != nil {
		return err
	}
	if err := models.EnsureAssetIndexes(config.GetCollection("assets")); err != nil {
		return err
	}
	return models.EnsureComplaintIndexes(config.GetCollection("complaints"))
}

// ensureDefaultDepartments seeds the standard municipal departments so the
// signup form has choices on a fresh database.
func ensureDefaultDepartments() error {
	defaults := []models.Department{
		{Name: "Electrical", Description: "Streetlights, power-related public infrastructure"},
		{Name: "Roads", Description: "Roads, footpaths, traffic-related assets"},
		{Name: "Water", Description: "Water pipelines, valves, water supply assets"},
		{Name: "Buildings", Description: "Public buildings, structural maintenance"},
		{Name: "Public Utilities", Description: "Other municipal public utilities"},
	}

	collection := config.GetCollection("departments")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, dept := range defaults {
		_, err := collection.UpdateOne(ctx,
			bson.M{"name": dept.Name},
			bson.M{"$setOnInsert": bson.M{
				"name":        dept.Name,
				"description": dept.Description,
				"createdAt":   time.Now(),
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
