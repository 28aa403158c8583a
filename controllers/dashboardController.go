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
)

// GetDashboardStats returns role-shaped aggregate counts for the caller's
// dashboard home.
func GetDashboardStats(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assetCollection := config.GetCollection("assets")
	complaintCollection := config.GetCollection("complaints")
	userCollection := config.GetCollection("users")

	switch caller.Role {
	case models.RoleAdmin:
		totalAssets, _ := assetCollection.CountDocuments(ctx, bson.M{})
		totalComplaints, _ := complaintCollection.CountDocuments(ctx, bson.M{})
		totalDepartments, _ := config.GetCollection("departments").CountDocuments(ctx, bson.M{})

		// The pending count must match the admin approval queue rules.
		pendingApprovals, _ := userCollection.CountDocuments(ctx, pendingApprovalFilter(caller))

		assetsByStatus, err := countByStatus(ctx, "assets")
		if err != nil {
			log.Println("Error aggregating asset status:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		complaintsByStatus, err := countByStatus(ctx, "complaints")
		if err != nil {
			log.Println("Error aggregating complaint status:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalAssets":        totalAssets,
			"totalComplaints":    totalComplaints,
			"pendingApprovals":   pendingApprovals,
			"totalDepartments":   totalDepartments,
			"assetsByStatus":     assetsByStatus,
			"complaintsByStatus": complaintsByStatus,
		})

	case models.RoleHOD:
		departmentAssets, _ := assetCollection.CountDocuments(ctx, bson.M{"department": caller.Department})
		departmentComplaints, _ := complaintCollection.CountDocuments(ctx, bson.M{"department": caller.Department})
		pendingTechnicianApprovals, _ := userCollection.CountDocuments(ctx, bson.M{
			"role":        models.RoleTechnician,
			"department":  caller.Department,
			"hodApproved": false,
			"isActive":    true,
		})
		technicians, _ := userCollection.CountDocuments(ctx, bson.M{
			"role":          models.RoleTechnician,
			"department":    caller.Department,
			"adminApproved": true,
			"hodApproved":   true,
		})

		c.JSON(http.StatusOK, gin.H{
			"departmentAssets":           departmentAssets,
			"departmentComplaints":       departmentComplaints,
			"pendingTechnicianApprovals": pendingTechnicianApprovals,
			"technicians":                technicians,
		})

	case models.RoleTechnician:
		assignedAssets, _ := assetCollection.CountDocuments(ctx, bson.M{"assignedTechnician": caller.ID})
		assignedComplaints, _ := complaintCollection.CountDocuments(ctx, bson.M{"assignedTo": caller.ID})
		inProgressComplaints, _ := complaintCollection.CountDocuments(ctx, bson.M{
			"assignedTo": caller.ID,
			"status": bson.M{"$in": []models.ComplaintStatus{
				models.Assigned, models.InProgress, models.UnderMaintenance,
			}},
		})

		c.JSON(http.StatusOK, gin.H{
			"assignedAssets":       assignedAssets,
			"assignedComplaints":   assignedComplaints,
			"inProgressComplaints": inProgressComplaints,
		})

	default:
		myComplaints, _ := complaintCollection.CountDocuments(ctx, bson.M{"citizen": caller.ID})
		resolvedComplaints, _ := complaintCollection.CountDocuments(ctx, bson.M{
			"citizen": caller.ID,
			"status":  models.Resolved,
		})
		pendingComplaints, _ := complaintCollection.CountDocuments(ctx, bson.M{
			"citizen": caller.ID,
			"status": bson.M{"$in": []models.ComplaintStatus{
				models.Submitted, models.Assigned, models.InProgress, models.UnderMaintenance,
			}},
		})

		c.JSON(http.StatusOK, gin.H{
			"myComplaints":       myComplaints,
			"resolvedComplaints": resolvedComplaints,
			"pendingComplaints":  pendingComplaints,
		})
	}
}

// countByStatus groups a collection's documents by their status field.
func countByStatus(ctx context.Context, collection string) ([]bson.M, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := config.GetCollection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetMapData returns the scope-filtered assets and complaints rendered on
// the geospatial map view.
func GetMapData(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assetFilter := assetScopeFilter(caller)
	complaintFilter := complaintScopeFilter(caller)

	assetCursor, err := config.GetCollection("assets").Find(ctx, assetFilter)
	if err != nil {
		log.Println("Error listing map assets:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve map data"})
		return
	}
	defer assetCursor.Close(ctx)

	var assets []models.Asset
	if err := assetCursor.All(ctx, &assets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode map data"})
		return
	}

	complaintCursor, err := config.GetCollection("complaints").Find(ctx, complaintFilter)
	if err != nil {
		log.Println("Error listing map complaints:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve map data"})
		return
	}
	defer complaintCursor.Close(ctx)

	var complaints []models.Complaint
	if err := complaintCursor.All(ctx, &complaints); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode map data"})
		return
	}

	assetMarkers := make([]gin.H, 0, len(assets))
	for _, asset := range assets {
		dept := asset.Department
		assetMarkers = append(assetMarkers, gin.H{
			"id":                 asset.ID,
			"name":               asset.Name,
			"category":           asset.Category,
			"status":             asset.Status,
			"location":           asset.Location,
			"complaintCount":     asset.ComplaintCount,
			"department":         departmentSummary(ctx, &dept),
			"assignedTechnician": userSummary(ctx, asset.AssignedTechnician),
		})
	}

	complaintMarkers := make([]gin.H, 0, len(complaints))
	for _, complaint := range complaints {
		complaintMarkers = append(complaintMarkers, gin.H{
			"id":       complaint.ID,
			"title":    complaint.Title,
			"status":   complaint.Status,
			"urgency":  complaint.Urgency,
			"location": complaint.Location,
			"asset":    assetSummary(ctx, complaint.Asset),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"assets":     assetMarkers,
		"complaints": complaintMarkers,
	})
}
