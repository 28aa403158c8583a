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

// GetPendingApprovals returns the caller's approval queue. Admins see HODs
// awaiting admin approval plus technicians already cleared by their HOD;
// HODs see the unapproved technicians of their own department.
func GetPendingApprovals(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := pendingApprovalFilter(caller)
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := config.GetCollection("users").Find(ctx, filter, findOptions)
	if err != nil {
		log.Println("Error listing pending approvals:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pending approvals"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode pending approvals"})
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
			"idProof":       user.IDProof,
			"adminApproved": user.AdminApproved,
			"hodApproved":   user.HodApproved,
			"department":    departmentSummary(ctx, user.Department),
			"createdAt":     user.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// ApproveUser performs one approval transition. An admin grant sets
// adminApproved; approving an HOD additionally binds the department's hod
// reference, refused when the department is missing or already headed by a
// different account. An HOD grant sets hodApproved and is limited to
// technicians of the HOD's own department.
func ApproveUser(c *gin.Context) {
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

	switch caller.Role {
	case models.RoleAdmin:
		if target.Role == models.RoleHOD {
			if target.Department == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "HOD must select a department before approval"})
				return
			}

			deptCollection := config.GetCollection("departments")
			var dept models.Department
			if err := deptCollection.FindOne(ctx, bson.M{"_id": *target.Department}).Decode(&dept); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Department not found"})
				return
			}

			if err := dept.BindHOD(target.ID); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			if _, err := deptCollection.UpdateOne(ctx, bson.M{"_id": dept.ID}, bson.M{"$set": bson.M{"hod": dept.Hod}}); err != nil {
				log.Println("Error binding department HOD:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve user"})
				return
			}
		}
		update["adminApproved"] = true

	case models.RoleHOD:
		sameDepartment := target.Department != nil && caller.Department != nil &&
			*target.Department == *caller.Department
		if target.Role != models.RoleTechnician || !sameDepartment {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to approve this user"})
			return
		}
		update["hodApproved"] = true

	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to approve users"})
		return
	}

	if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": target.ID}, bson.M{"$set": update}); err != nil {
		log.Println("Error approving user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve user"})
		return
	}

	if err := userCollection.FindOne(ctx, bson.M{"_id": target.ID}).Decode(&target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User approved successfully",
		"user": gin.H{
			"id":            target.ID,
			"name":          target.Name,
			"email":         target.Email,
			"role":          target.Role,
			"adminApproved": target.AdminApproved,
			"hodApproved":   target.HodApproved,
			"isActive":      target.IsActive,
			"department":    departmentSummary(ctx, target.Department),
		},
	})
}

// RejectUser deactivates an account and clears both approval flags,
// regardless of its prior state. HODs may only reject technicians of their
// own department.
func RejectUser(c *gin.Context) {
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

	if caller.Role == models.RoleHOD {
		sameDepartment := target.Department != nil && caller.Department != nil &&
			*target.Department == *caller.Department
		if target.Role != models.RoleTechnician || !sameDepartment {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to reject this user"})
			return
		}
	}

	target.Reject()

	update := bson.M{
		"isActive":      target.IsActive,
		"adminApproved": target.AdminApproved,
		"hodApproved":   target.HodApproved,
		"updatedAt":     time.Now(),
	}

	if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": target.ID}, bson.M{"$set": update}); err != nil {
		log.Println("Error rejecting user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User rejected and deactivated"})
}
