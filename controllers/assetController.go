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

type assetView struct {
	models.Asset
	Department         map[string]interface{} `json:"department"`
	AssignedTechnician map[string]interface{} `json:"assignedTechnician,omitempty"`
}

func newAssetView(ctx context.Context, asset models.Asset) assetView {
	dept := asset.Department
	return assetView{
		Asset:              asset,
		Department:         departmentSummary(ctx, &dept),
		AssignedTechnician: userSummary(ctx, asset.AssignedTechnician),
	}
}

// GetAllAssets lists assets within the caller's scope: HODs their
// department, technicians their assignments, everyone else all assets.
func GetAllAssets(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := config.GetCollection("assets").Find(ctx, assetScopeFilter(caller), findOptions)
	if err != nil {
		log.Println("Error listing assets:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assets"})
		return
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode assets"})
		return
	}

	response := make([]assetView, 0, len(assets))
	for _, asset := range assets {
		response = append(response, newAssetView(ctx, asset))
	}

	c.JSON(http.StatusOK, response)
}

// GetAsset retrieves a single asset; out-of-scope access is an
// authorization failure, not a not-found.
func GetAsset(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var asset models.Asset
	err = config.GetCollection("assets").FindOne(ctx, bson.M{"_id": assetID}).Decode(&asset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		}
		return
	}

	if !assetScopeAllows(caller, &asset) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	c.JSON(http.StatusOK, newAssetView(ctx, asset))
}

// CreateAsset registers a new infrastructure asset. Admin or HOD; an HOD
// may only create assets in their own department.
func CreateAsset(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required,max=200"`
		Category    string `json:"category" binding:"required"`
		Department  string `json:"department" binding:"required"`
		Description string `json:"description"`
		models.LocationInput
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidAssetCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	location, err := models.ParseLocation(input.LocationInput)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deptID, err := primitive.ObjectIDFromHex(input.Department)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	if caller.Role == models.RoleHOD {
		if caller.Department == nil || *caller.Department != deptID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to create asset in this department"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := config.GetCollection("departments").FindOne(ctx, bson.M{"_id": deptID}).Err(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Department not found"})
		return
	}

	asset := models.Asset{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Category:    models.AssetCategory(input.Category),
		Department:  deptID,
		Location:    location,
		Status:      models.AssetSafe,
		Description: input.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := config.GetCollection("assets").InsertOne(ctx, asset); err != nil {
		log.Println("Error inserting asset:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
		return
	}

	c.JSON(http.StatusCreated, newAssetView(ctx, asset))
}

// UpdateAsset mutates an asset within the caller's scope. Technicians may
// only touch assets assigned to them and cannot reassign; assignment
// changes are admin/HOD only.
func UpdateAsset(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	var input struct {
		Name               *string    `json:"name,omitempty"`
		Category           *string    `json:"category,omitempty"`
		Status             *string    `json:"status,omitempty"`
		Description        *string    `json:"description,omitempty"`
		AssignedTechnician *string    `json:"assignedTechnician,omitempty"`
		LastInspectionDate *time.Time `json:"lastInspectionDate,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assetCollection := config.GetCollection("assets")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var asset models.Asset
	err = assetCollection.FindOne(ctx, bson.M{"_id": assetID}).Decode(&asset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		}
		return
	}

	if !assetScopeAllows(caller, &asset) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != nil && *input.Name != "" {
		update["name"] = *input.Name
	}
	if input.Category != nil {
		if !models.ValidAssetCategory(*input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		update["category"] = *input.Category
	}
	if input.Status != nil {
		if !models.ValidAssetStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		update["status"] = *input.Status
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.AssignedTechnician != nil && (caller.Role == models.RoleAdmin || caller.Role == models.RoleHOD) {
		if *input.AssignedTechnician == "" {
			update["assignedTechnician"] = nil
		} else {
			techID, err := primitive.ObjectIDFromHex(*input.AssignedTechnician)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid technician ID"})
				return
			}
			update["assignedTechnician"] = techID
		}
	}
	if input.LastInspectionDate != nil {
		update["lastInspectionDate"] = *input.LastInspectionDate
	}

	if _, err := assetCollection.UpdateOne(ctx, bson.M{"_id": assetID}, bson.M{"$set": update}); err != nil {
		log.Println("Error updating asset:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset"})
		return
	}

	if err := assetCollection.FindOne(ctx, bson.M{"_id": assetID}).Decode(&asset); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		return
	}

	c.JSON(http.StatusOK, newAssetView(ctx, asset))
}

// DeleteAsset removes an asset. Admin only; complaints referencing it are
// left untouched, there is no cascade.
func DeleteAsset(c *gin.Context) {
	assetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("assets").DeleteOne(ctx, bson.M{"_id": assetID})
	if err != nil {
		log.Println("Error deleting asset:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}
