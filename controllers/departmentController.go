package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"civicassets-be/config"
	"civicassets-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetDepartments lists all departments sorted by name. Public: the signup
// form needs it before any account exists.
func GetDepartments(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := config.GetCollection("departments").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		log.Println("Error listing departments:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve departments"})
		return
	}
	defer cursor.Close(ctx)

	var departments []models.Department
	if err := cursor.All(ctx, &departments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode departments"})
		return
	}

	response := make([]gin.H, 0, len(departments))
	for _, dept := range departments {
		response = append(response, gin.H{
			"id":          dept.ID,
			"name":        dept.Name,
			"description": dept.Description,
			"hod":         userSummary(ctx, dept.Hod),
			"createdAt":   dept.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// CreateDepartment creates a department. Admin only; names are unique.
func CreateDepartment(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required,max=100"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deptCollection := config.GetCollection("departments")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	department := models.Department{
		ID:          primitive.NewObjectID(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   time.Now(),
	}

	if _, err := deptCollection.InsertOne(ctx, department); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Department already exists"})
			return
		}
		log.Println("Error inserting department:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		return
	}

	c.JSON(http.StatusCreated, department)
}

// UpdateDepartment updates name, description or the hod binding. Admin only.
func UpdateDepartment(c *gin.Context) {
	deptID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	var input struct {
		Name        *string `json:"name,omitempty"`
		Description *string `json:"description,omitempty"`
		Hod         *string `json:"hod,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deptCollection := config.GetCollection("departments")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var department models.Department
	if err := deptCollection.FindOne(ctx, bson.M{"_id": deptID}).Decode(&department); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve department"})
		}
		return
	}

	update := bson.M{}
	if input.Name != nil && *input.Name != "" {
		update["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		update["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Hod != nil {
		if *input.Hod == "" {
			update["hod"] = nil
		} else {
			hodID, err := primitive.ObjectIDFromHex(*input.Hod)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid HOD ID"})
				return
			}
			update["hod"] = hodID
		}
	}

	if len(update) == 0 {
		c.JSON(http.StatusOK, department)
		return
	}

	if _, err := deptCollection.UpdateOne(ctx, bson.M{"_id": deptID}, bson.M{"$set": update}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Department already exists"})
			return
		}
		log.Println("Error updating department:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update department"})
		return
	}

	if err := deptCollection.FindOne(ctx, bson.M{"_id": deptID}).Decode(&department); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          department.ID,
		"name":        department.Name,
		"description": department.Description,
		"hod":         userSummary(ctx, department.Hod),
		"createdAt":   department.CreatedAt,
	})
}
