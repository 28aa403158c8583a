package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AssetCategory enum
type AssetCategory string

const (
	Streetlights    AssetCategory = "Streetlights"
	Roads           AssetCategory = "Roads"
	Buildings       AssetCategory = "Buildings"
	WaterPipelines  AssetCategory = "Water Pipelines"
	PublicUtilities AssetCategory = "Public Utilities"
)

// ValidAssetCategory reports whether s is a known asset category.
func ValidAssetCategory(s string) bool {
	switch AssetCategory(s) {
	case Streetlights, Roads, Buildings, WaterPipelines, PublicUtilities:
		return true
	}
	return false
}

// AssetStatus enum
type AssetStatus string

const (
	AssetSafe             AssetStatus = "Safe"
	AssetUnderMaintenance AssetStatus = "Under Maintenance"
	AssetDamaged          AssetStatus = "Damaged"
	AssetRecentlyRepaired AssetStatus = "Recently Repaired"
)

// ValidAssetStatus reports whether s is a known asset status.
func ValidAssetStatus(s string) bool {
	switch AssetStatus(s) {
	case AssetSafe, AssetUnderMaintenance, AssetDamaged, AssetRecentlyRepaired:
		return true
	}
	return false
}

// Asset represents a piece of public infrastructure tracked on the map.
type Asset struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name               string              `bson:"name" json:"name"`
	Category           AssetCategory       `bson:"category" json:"category"`
	Department         primitive.ObjectID  `bson:"department" json:"department"`
	Location           GeoPoint            `bson:"location" json:"location"`
	Status             AssetStatus         `bson:"status" json:"status"`
	AssignedTechnician *primitive.ObjectID `bson:"assignedTechnician,omitempty" json:"assignedTechnician,omitempty"`
	LastInspectionDate *time.Time          `bson:"lastInspectionDate,omitempty" json:"lastInspectionDate,omitempty"`
	Description        string              `bson:"description,omitempty" json:"description,omitempty"`
	ComplaintCount     int64               `bson:"complaintCount" json:"complaintCount"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// RegisterComplaint records that a complaint was filed against the asset.
// It returns the department the new complaint must copy and the store
// update incrementing the asset's complaint counter by exactly one.
func (a *Asset) RegisterComplaint() (primitive.ObjectID, bson.M) {
	a.ComplaintCount++
	return a.Department, bson.M{"$inc": bson.M{"complaintCount": 1}}
}

// EnsureAssetIndexes creates the 2dsphere index for geospatial queries.
func EnsureAssetIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
