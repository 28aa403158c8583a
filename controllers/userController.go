package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"civicassets-be/config"
	"civicassets-be/middlewares"
	"civicassets-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAllUsers lists every account with its department populated. Admin only.
func GetAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := config.GetCollection("users").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		log.Println("Error listing users:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	response := make([]gin.H, 0, len(users))
	for _, user := range users {
		response = append(response, gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"role":          user.Role,
			"phone":         user.Phone,
			"adminApproved": user.AdminApproved,
			"hodApproved":   user.HodApproved,
			"isActive":      user.IsActive,
			"department":    departmentSummary(ctx, user.Department),
			"createdAt":     user.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// GetTechnicians lists the fully approved technicians of the HOD's own
// department, the pool complaints and assets can be assigned to.
func GetTechnicians(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"role":          models.RoleTechnician,
		"department":    caller.Department,
		"adminApproved": true,
		"hodApproved":   true,
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := config.GetCollection("users").Find(ctx, filter, findOptions)
	if err != nil {
		log.Println("Error listing technicians:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve technicians"})
		return
	}
	defer cursor.Close(ctx)

	var technicians []models.User
	if err := cursor.All(ctx, &technicians); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode technicians"})
		return
	}

	response := make([]gin.H, 0, len(technicians))
	for _, tech := range technicians {
		response = append(response, gin.H{
			"id":       tech.ID,
			"name":     tech.Name,
			"email":    tech.Email,
			"phone":    tech.Phone,
			"isActive": tech.IsActive,
		})
	}

	c.JSON(http.StatusOK, response)
}

// UpdateUser lets an account edit its own name and phone. Admins may edit
// anyone and toggle isActive on non-admin accounts; toggling isActive does
// not restore approval flags a rejection cleared.
func UpdateUser(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if caller.Role != models.RoleAdmin && caller.ID != targetID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var input struct {
		Name     *string `json:"name,omitempty"`
		Phone    *string `json:"phone,omitempty"`
		IsActive *bool   `json:"isActive,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var target models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": targetID}).Decode(&target); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != nil && *input.Name != "" {
		update["name"] = *input.Name
	}
	if input.Phone != nil && *input.Phone != "" {
		update["phone"] = *input.Phone
	}

	if input.IsActive != nil && caller.Role == models.RoleAdmin {
		if target.Role == models.RoleAdmin && target.ID != caller.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change active status of other admin accounts"})
			return
		}
		update["isActive"] = *input.IsActive
	}

	if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": targetID}, bson.M{"$set": update}); err != nil {
		log.Println("Error updating user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	if err := userCollection.FindOne(ctx, bson.M{"_id": targetID}).Decode(&target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            target.ID,
		"name":          target.Name,
		"email":         target.Email,
		"role":          target.Role,
		"phone":         target.Phone,
		"adminApproved": target.AdminApproved,
		"hodApproved":   target.HodApproved,
		"isActive":      target.IsActive,
		"department":    departmentSummary(ctx, target.Department),
	})
}
