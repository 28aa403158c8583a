package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ComplaintCategory enum
type ComplaintCategory string

const (
	Damage      ComplaintCategory = "Damage"
	Maintenance ComplaintCategory = "Maintenance"
	Safety      ComplaintCategory = "Safety"
	OtherIssue  ComplaintCategory = "Other"
)

// ValidComplaintCategory reports whether s is a known complaint category.
func ValidComplaintCategory(s string) bool {
	switch ComplaintCategory(s) {
	case Damage, Maintenance, Safety, OtherIssue:
		return true
	}
	return false
}

// Urgency enum
type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyMedium   Urgency = "Medium"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

// ValidUrgency reports whether s is a known urgency level.
func ValidUrgency(s string) bool {
	switch Urgency(s) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// ComplaintStatus enum
type ComplaintStatus string

const (
	Submitted        ComplaintStatus = "Submitted"
	Assigned         ComplaintStatus = "Assigned"
	InProgress       ComplaintStatus = "In Progress"
	UnderMaintenance ComplaintStatus = "Under Maintenance"
	Resolved         ComplaintStatus = "Resolved"
)

// ValidComplaintStatus reports whether s is a known complaint status.
func ValidComplaintStatus(s string) bool {
	switch ComplaintStatus(s) {
	case Submitted, Assigned, InProgress, UnderMaintenance, Resolved:
		return true
	}
	return false
}

// MaintenanceLog is an append-only entry a technician records against a
// complaint: what was done, photo evidence and the status at the time.
type MaintenanceLog struct {
	Technician  primitive.ObjectID `bson:"technician" json:"technician"`
	Description string             `bson:"description" json:"description"`
	Photos      []string           `bson:"photos" json:"photos"`
	Status      ComplaintStatus    `bson:"status" json:"status"`
	Date        time.Time          `bson:"date" json:"date"`
}

// Complaint is a citizen-filed report against public infrastructure. The
// citizen reference is immutable and the department is copied once from the
// referenced asset at creation.
type Complaint struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Citizen         primitive.ObjectID  `bson:"citizen" json:"citizen"`
	Asset           *primitive.ObjectID `bson:"asset,omitempty" json:"asset,omitempty"`
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description" json:"description"`
	Category        ComplaintCategory   `bson:"category" json:"category"`
	Image           string              `bson:"image,omitempty" json:"image,omitempty"`
	Location        GeoPoint            `bson:"location" json:"location"`
	Urgency         Urgency             `bson:"urgency" json:"urgency"`
	Status          ComplaintStatus     `bson:"status" json:"status"`
	AssignedTo      *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Department      *primitive.ObjectID `bson:"department,omitempty" json:"department,omitempty"`
	MaintenanceLogs []MaintenanceLog    `bson:"maintenanceLogs" json:"maintenanceLogs"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// AddMaintenanceLog appends a work log entry. When status is empty the
// complaint's current status is snapshotted; otherwise the complaint
// advances to the given status.
func (c *Complaint) AddMaintenanceLog(technician primitive.ObjectID, description string, photos []string, status ComplaintStatus) MaintenanceLog {
	if photos == nil {
		photos = []string{}
	}
	snapshot := c.Status
	if status != "" {
		snapshot = status
		c.Status = status
	}

	entry := MaintenanceLog{
		Technician:  technician,
		Description: description,
		Photos:      photos,
		Status:      snapshot,
		Date:        time.Now(),
	}
	c.MaintenanceLogs = append(c.MaintenanceLogs, entry)
	c.UpdatedAt = time.Now()
	return entry
}

// EnsureComplaintIndexes creates the 2dsphere index for geospatial queries.
func EnsureComplaintIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
