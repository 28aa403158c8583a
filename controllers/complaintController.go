package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"civicassets-be/config"
	"civicassets-be/middlewares"
	"civicassets-be/models"
	"civicassets-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type complaintView struct {
	models.Complaint
	Citizen    map[string]interface{} `json:"citizen"`
	Asset      map[string]interface{} `json:"asset,omitempty"`
	Department map[string]interface{} `json:"department,omitempty"`
	AssignedTo map[string]interface{} `json:"assignedTo,omitempty"`
}

func newComplaintView(ctx context.Context, complaint models.Complaint) complaintView {
	citizen := complaint.Citizen
	return complaintView{
		Complaint:  complaint,
		Citizen:    userSummary(ctx, &citizen),
		Asset:      assetSummary(ctx, complaint.Asset),
		Department: departmentSummary(ctx, complaint.Department),
		AssignedTo: userSummary(ctx, complaint.AssignedTo),
	}
}

// GetAllComplaints lists complaints within the caller's scope: citizens
// their own, HODs their department's, technicians their assignments.
func GetAllComplaints(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := config.GetCollection("complaints").Find(ctx, complaintScopeFilter(caller), findOptions)
	if err != nil {
		log.Println("Error listing complaints:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve complaints"})
		return
	}
	defer cursor.Close(ctx)

	var complaints []models.Complaint
	if err := cursor.All(ctx, &complaints); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode complaints"})
		return
	}

	response := make([]complaintView, 0, len(complaints))
	for _, complaint := range complaints {
		response = append(response, newComplaintView(ctx, complaint))
	}

	c.JSON(http.StatusOK, response)
}

// GetComplaint retrieves a single complaint with its maintenance log
// technicians resolved; out-of-scope access yields 403.
func GetComplaint(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	complaintID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var complaint models.Complaint
	err = config.GetCollection("complaints").FindOne(ctx, bson.M{"_id": complaintID}).Decode(&complaint)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve complaint"})
		}
		return
	}

	if !complaintScopeAllows(caller, &complaint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	logs := make([]gin.H, 0, len(complaint.MaintenanceLogs))
	for _, entry := range complaint.MaintenanceLogs {
		technician := entry.Technician
		logs = append(logs, gin.H{
			"technician":  userSummary(ctx, &technician),
			"description": entry.Description,
			"photos":      entry.Photos,
			"status":      entry.Status,
			"date":        entry.Date,
		})
	}

	view := newComplaintView(ctx, complaint)
	c.JSON(http.StatusOK, gin.H{
		"id":              view.ID,
		"title":           view.Title,
		"description":     view.Description,
		"category":        view.Category,
		"image":           view.Image,
		"location":        view.Location,
		"urgency":         view.Urgency,
		"status":          view.Status,
		"citizen":         view.Citizen,
		"asset":           view.Asset,
		"department":      view.Department,
		"assignedTo":      view.AssignedTo,
		"maintenanceLogs": logs,
		"createdAt":       view.CreatedAt,
		"updatedAt":       view.UpdatedAt,
	})
}

// CreateComplaint files a new complaint for the calling citizen via a
// multipart form with an optional photo. When an asset is referenced its
// department is copied onto the complaint and its complaint counter is
// incremented exactly once.
func CreateComplaint(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string `form:"title" binding:"required,max=200"`
		Description string `form:"description" binding:"required,max=2000"`
		Category    string `form:"category" binding:"required"`
		Asset       string `form:"asset"`
		Urgency     string `form:"urgency"`
		Location    string `form:"location"`
		Latitude    string `form:"latitude"`
		Longitude   string `form:"longitude"`
		Lat         string `form:"lat"`
		Lng         string `form:"lng"`
	}

	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidComplaintCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	urgency := models.UrgencyMedium
	if input.Urgency != "" {
		if !models.ValidUrgency(input.Urgency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid urgency"})
			return
		}
		urgency = models.Urgency(input.Urgency)
	}

	location, err := models.ParseFormLocation(input.Location, input.Latitude, input.Longitude, input.Lat, input.Lng)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil {
		imagePath, err = utils.SaveUpload(c, file, "image", utils.UploadComplaints)
		if err != nil {
			respondUploadError(c, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var assetRef *primitive.ObjectID
	var department *primitive.ObjectID
	if input.Asset != "" {
		assetID, err := primitive.ObjectIDFromHex(input.Asset)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
			return
		}

		assetCollection := config.GetCollection("assets")
		var asset models.Asset
		if err := assetCollection.FindOne(ctx, bson.M{"_id": assetID}).Decode(&asset); err == nil {
			dept, inc := asset.RegisterComplaint()
			assetRef = &asset.ID
			department = &dept

			if _, err := assetCollection.UpdateOne(ctx, bson.M{"_id": asset.ID}, inc); err != nil {
				log.Println("Error incrementing complaint count:", err)
			}
		}
	}

	complaint := models.Complaint{
		ID:              primitive.NewObjectID(),
		Citizen:         caller.ID,
		Asset:           assetRef,
		Title:           input.Title,
		Description:     input.Description,
		Category:        models.ComplaintCategory(input.Category),
		Image:           imagePath,
		Location:        location,
		Urgency:         urgency,
		Status:          models.Submitted,
		Department:      department,
		MaintenanceLogs: []models.MaintenanceLog{},
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if _, err := config.GetCollection("complaints").InsertOne(ctx, complaint); err != nil {
		log.Println("Error inserting complaint:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create complaint"})
		return
	}

	c.JSON(http.StatusCreated, newComplaintView(ctx, complaint))
}

// AssignComplaint hands a complaint to a technician and marks it Assigned.
// Admin or HOD; an HOD only within their own department.
func AssignComplaint(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	complaintID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var input struct {
		AssignedTo string `json:"assignedTo" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	technicianID, err := primitive.ObjectIDFromHex(input.AssignedTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid technician ID"})
		return
	}

	complaintCollection := config.GetCollection("complaints")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var complaint models.Complaint
	err = complaintCollection.FindOne(ctx, bson.M{"_id": complaintID}).Decode(&complaint)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve complaint"})
		}
		return
	}

	if caller.Role == models.RoleHOD && !complaintScopeAllows(caller, &complaint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	update := bson.M{
		"assignedTo": technicianID,
		"status":     models.Assigned,
		"updatedAt":  time.Now(),
	}

	if _, err := complaintCollection.UpdateOne(ctx, bson.M{"_id": complaintID}, bson.M{"$set": update}); err != nil {
		log.Println("Error assigning complaint:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign complaint"})
		return
	}

	if err := complaintCollection.FindOne(ctx, bson.M{"_id": complaintID}).Decode(&complaint); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve complaint"})
		return
	}

	c.JSON(http.StatusOK, newComplaintView(ctx, complaint))
}

// UpdateComplaintStatus advances a complaint's status within the caller's
// scope.
func UpdateComplaintStatus(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	complaintID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidComplaintStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	complaintCollection := config.GetCollection("complaints")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var complaint models.Complaint
	err = complaintCollection.FindOne(ctx, bson.M{"_id": complaintID}).Decode(&complaint)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve complaint"})
		}
		return
	}

	if !complaintScopeAllows(caller, &complaint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	update := bson.M{
		"status":    models.ComplaintStatus(input.Status),
		"updatedAt": time.Now(),
	}

	if _, err := complaintCollection.UpdateOne(ctx, bson.M{"_id": complaintID}, bson.M{"$set": update}); err != nil {
		log.Println("Error updating complaint status:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update complaint"})
		return
	}

	if err := complaintCollection.FindOne(ctx, bson.M{"_id": complaintID}).Decode(&complaint); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve complaint"})
		return
	}

	c.JSON(http.StatusOK, newComplaintView(ctx, complaint))
}

// AddMaintenanceLog appends a work log entry to a complaint the calling
// technician is assigned to, with up to 5 photos, and optionally advances
// the complaint status.
func AddMaintenanceLog(c *gin.Context) {
	caller, ok := middlewares.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	complaintID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var input struct {
		Description string `form:"description" binding:"required,max=2000"`
		Status      string `form:"status"`
	}

	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Status != "" && !models.ValidComplaintStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	complaintCollection := config.GetCollection("complaints")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var complaint models.Complaint
	err = complaintCollection.FindOne(ctx, bson.M{"_id": complaintID}).Decode(&complaint)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve complaint"})
		}
		return
	}

	if complaint.AssignedTo == nil || *complaint.AssignedTo != caller.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var photos []string
	if form, err := c.MultipartForm(); err == nil {
		files := form.File["photos"]
		if len(files) > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At most 5 photos are allowed"})
			return
		}
		for _, file := range files {
			path, err := utils.SaveUpload(c, file, "photos", utils.UploadMaintenance)
			if err != nil {
				respondUploadError(c, err)
				return
			}
			photos = append(photos, path)
		}
	}

	entry := complaint.AddMaintenanceLog(caller.ID, input.Description, photos, models.ComplaintStatus(input.Status))

	update := bson.M{
		"$push": bson.M{"maintenanceLogs": entry},
		"$set": bson.M{
			"status":    complaint.Status,
			"updatedAt": complaint.UpdatedAt,
		},
	}

	if _, err := complaintCollection.UpdateOne(ctx, bson.M{"_id": complaintID}, update); err != nil {
		log.Println("Error appending maintenance log:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add maintenance log"})
		return
	}

	if err := complaintCollection.FindOne(ctx, bson.M{"_id": complaintID}).Decode(&complaint); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve complaint"})
		return
	}

	c.JSON(http.StatusOK, newComplaintView(ctx, complaint))
}
