package models

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRegisterComplaint(t *testing.T) {
	dept := primitive.NewObjectID()
	asset := Asset{
		ID:             primitive.NewObjectID(),
		Name:           "Main St streetlight",
		Category:       Streetlights,
		Department:     dept,
		ComplaintCount: 3,
	}

	gotDept, update := asset.RegisterComplaint()

	// Filing one complaint copies the asset's department and bumps the
	// counter by exactly one.
	if gotDept != dept {
		t.Errorf("department = %v, want %v", gotDept, dept)
	}
	if asset.ComplaintCount != 4 {
		t.Errorf("complaintCount = %d, want 4", asset.ComplaintCount)
	}

	want := bson.M{"$inc": bson.M{"complaintCount": 1}}
	if !reflect.DeepEqual(update, want) {
		t.Errorf("update = %v, want %v", update, want)
	}
}

func TestRegisterComplaintPerComplaint(t *testing.T) {
	asset := Asset{Department: primitive.NewObjectID()}

	asset.RegisterComplaint()
	asset.RegisterComplaint()

	if asset.ComplaintCount != 2 {
		t.Errorf("complaintCount = %d after two complaints, want 2", asset.ComplaintCount)
	}
}
