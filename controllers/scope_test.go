package controllers

import (
	"reflect"
	"testing"

	"civicassets-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAssetScopeFilter(t *testing.T) {
	dept := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	admin := &models.User{ID: userID, Role: models.RoleAdmin}
	if got := assetScopeFilter(admin); len(got) != 0 {
		t.Errorf("admin filter = %v, want unrestricted", got)
	}

	hod := &models.User{ID: userID, Role: models.RoleHOD, Department: &dept}
	want := bson.M{"department": &dept}
	if got := assetScopeFilter(hod); !reflect.DeepEqual(got, want) {
		t.Errorf("hod filter = %v, want %v", got, want)
	}

	tech := &models.User{ID: userID, Role: models.RoleTechnician, Department: &dept}
	want = bson.M{"assignedTechnician": userID}
	if got := assetScopeFilter(tech); !reflect.DeepEqual(got, want) {
		t.Errorf("technician filter = %v, want %v", got, want)
	}
}

func TestComplaintScopeFilter(t *testing.T) {
	dept := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	citizen := &models.User{ID: userID, Role: models.RoleCitizen}
	want := bson.M{"citizen": userID}
	if got := complaintScopeFilter(citizen); !reflect.DeepEqual(got, want) {
		t.Errorf("citizen filter = %v, want %v", got, want)
	}

	hod := &models.User{ID: userID, Role: models.RoleHOD, Department: &dept}
	want = bson.M{"department": &dept}
	if got := complaintScopeFilter(hod); !reflect.DeepEqual(got, want) {
		t.Errorf("hod filter = %v, want %v", got, want)
	}

	tech := &models.User{ID: userID, Role: models.RoleTechnician, Department: &dept}
	want = bson.M{"assignedTo": userID}
	if got := complaintScopeFilter(tech); !reflect.DeepEqual(got, want) {
		t.Errorf("technician filter = %v, want %v", got, want)
	}
}

func TestComplaintScopeAllows(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	complaint := &models.Complaint{Citizen: owner}

	if !complaintScopeAllows(&models.User{ID: owner, Role: models.RoleCitizen}, complaint) {
		t.Error("a citizen must be able to access their own complaint")
	}
	if complaintScopeAllows(&models.User{ID: stranger, Role: models.RoleCitizen}, complaint) {
		t.Error("a citizen must not access another citizen's complaint")
	}
	if !complaintScopeAllows(&models.User{ID: stranger, Role: models.RoleAdmin}, complaint) {
		t.Error("admin access is unrestricted")
	}

	dept := primitive.NewObjectID()
	otherDept := primitive.NewObjectID()
	deptComplaint := &models.Complaint{Citizen: owner, Department: &dept}

	if !complaintScopeAllows(&models.User{Role: models.RoleHOD, Department: &dept}, deptComplaint) {
		t.Error("an HOD must access complaints of their department")
	}
	if complaintScopeAllows(&models.User{Role: models.RoleHOD, Department: &otherDept}, deptComplaint) {
		t.Error("an HOD must not access another department's complaint")
	}
	if complaintScopeAllows(&models.User{Role: models.RoleHOD, Department: &dept}, complaint) {
		t.Error("an HOD must not access a complaint with no department")
	}

	tech := primitive.NewObjectID()
	assigned := &models.Complaint{Citizen: owner, AssignedTo: &tech}
	if !complaintScopeAllows(&models.User{ID: tech, Role: models.RoleTechnician}, assigned) {
		t.Error("a technician must access complaints assigned to them")
	}
	if complaintScopeAllows(&models.User{ID: stranger, Role: models.RoleTechnician}, assigned) {
		t.Error("a technician must not access complaints assigned to others")
	}
	if complaintScopeAllows(&models.User{ID: tech, Role: models.RoleTechnician}, complaint) {
		t.Error("a technician must not access unassigned complaints")
	}
}

func TestAssetScopeAllows(t *testing.T) {
	dept := primitive.NewObjectID()
	otherDept := primitive.NewObjectID()
	tech := primitive.NewObjectID()

	asset := &models.Asset{Department: dept, AssignedTechnician: &tech}

	if !assetScopeAllows(&models.User{Role: models.RoleHOD, Department: &dept}, asset) {
		t.Error("an HOD must access assets of their department")
	}
	if assetScopeAllows(&models.User{Role: models.RoleHOD, Department: &otherDept}, asset) {
		t.Error("an HOD must not access another department's asset")
	}
	if !assetScopeAllows(&models.User{ID: tech, Role: models.RoleTechnician}, asset) {
		t.Error("a technician must access assets assigned to them")
	}
	if assetScopeAllows(&models.User{ID: primitive.NewObjectID(), Role: models.RoleTechnician}, asset) {
		t.Error("a technician must not access assets assigned to others")
	}
	if !assetScopeAllows(&models.User{Role: models.RoleCitizen}, asset) {
		t.Error("citizens may read any asset")
	}
}

func TestPendingApprovalFilter(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	want := bson.M{
		"isActive": true,
		"$or": []bson.M{
			{"role": models.RoleHOD, "adminApproved": false},
			{"role": models.RoleTechnician, "hodApproved": true, "adminApproved": false},
		},
	}
	if got := pendingApprovalFilter(admin); !reflect.DeepEqual(got, want) {
		t.Errorf("admin queue filter = %v, want %v", got, want)
	}

	dept := primitive.NewObjectID()
	hod := &models.User{Role: models.RoleHOD, Department: &dept}
	want = bson.M{
		"role":        models.RoleTechnician,
		"department":  &dept,
		"hodApproved": false,
		"isActive":    true,
	}
	if got := pendingApprovalFilter(hod); !reflect.DeepEqual(got, want) {
		t.Errorf("hod queue filter = %v, want %v", got, want)
	}
}

// The admin queue must not surface a technician the HOD has not cleared yet,
// even when the technician is otherwise eligible.
func TestAdminQueueExcludesUnclearedTechnicians(t *testing.T) {
	filter := pendingApprovalFilter(&models.User{Role: models.RoleAdmin})

	uncleared := models.User{
		Role:          models.RoleTechnician,
		AdminApproved: false,
		HodApproved:   false,
		IsActive:      true,
	}
	cleared := models.User{
		Role:          models.RoleTechnician,
		AdminApproved: false,
		HodApproved:   true,
		IsActive:      true,
	}
	pendingHOD := models.User{
		Role:          models.RoleHOD,
		AdminApproved: false,
		HodApproved:   true,
		IsActive:      true,
	}
	rejected := models.User{
		Role:          models.RoleTechnician,
		AdminApproved: false,
		HodApproved:   true,
		IsActive:      false,
	}

	if matchesApprovalFilter(filter, uncleared) {
		t.Error("technician without HOD clearance must not appear in the admin queue")
	}
	if !matchesApprovalFilter(filter, cleared) {
		t.Error("HOD-cleared technician must appear in the admin queue")
	}
	if !matchesApprovalFilter(filter, pendingHOD) {
		t.Error("pending HOD must appear in the admin queue")
	}
	if matchesApprovalFilter(filter, rejected) {
		t.Error("inactive accounts must not appear in the admin queue")
	}
}

// matchesApprovalFilter evaluates the approval-queue filter shape against a
// user document the way the store would.
func matchesApprovalFilter(filter bson.M, u models.User) bool {
	if active, ok := filter["isActive"].(bool); ok && u.IsActive != active {
		return false
	}
	branches, ok := filter["$or"].([]bson.M)
	if !ok {
		return false
	}
	for _, branch := range branches {
		if matchesBranch(branch, u) {
			return true
		}
	}
	return false
}

func matchesBranch(branch bson.M, u models.User) bool {
	if role, ok := branch["role"].(models.Role); ok && u.Role != role {
		return false
	}
	if v, ok := branch["adminApproved"].(bool); ok && u.AdminApproved != v {
		return false
	}
	if v, ok := branch["hodApproved"].(bool); ok && u.HodApproved != v {
		return false
	}
	return true
}
