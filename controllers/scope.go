package controllers

import (
	"context"

	"civicassets-be/config"
	"civicassets-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scope filters translate a role into the query constraint limiting which
// records the caller may see. Admins (and citizens, for assets) are
// unrestricted; out-of-scope single-record access is rejected explicitly so
// it surfaces as 403 rather than 404.

func assetScopeFilter(user *models.User) bson.M {
	filter := bson.M{}
	switch user.Role {
	case models.RoleHOD:
		filter["department"] = user.Department
	case models.RoleTechnician:
		filter["assignedTechnician"] = user.ID
	}
	return filter
}

func assetScopeAllows(user *models.User, asset *models.Asset) bool {
	switch user.Role {
	case models.RoleHOD:
		return user.Department != nil && asset.Department == *user.Department
	case models.RoleTechnician:
		return asset.AssignedTechnician != nil && *asset.AssignedTechnician == user.ID
	}
	return true
}

func complaintScopeFilter(user *models.User) bson.M {
	filter := bson.M{}
	switch user.Role {
	case models.RoleCitizen:
		filter["citizen"] = user.ID
	case models.RoleHOD:
		filter["department"] = user.Department
	case models.RoleTechnician:
		filter["assignedTo"] = user.ID
	}
	return filter
}

func complaintScopeAllows(user *models.User, complaint *models.Complaint) bool {
	switch user.Role {
	case models.RoleCitizen:
		return complaint.Citizen == user.ID
	case models.RoleHOD:
		return user.Department != nil && complaint.Department != nil &&
			*complaint.Department == *user.Department
	case models.RoleTechnician:
		return complaint.AssignedTo != nil && *complaint.AssignedTo == user.ID
	}
	return true
}

// pendingApprovalFilter builds the approval queue for the caller. The admin
// queue surfaces HODs awaiting admin approval and technicians already
// cleared by their HOD; an HOD's queue holds the not-yet-cleared technicians
// of their own department.
func pendingApprovalFilter(user *models.User) bson.M {
	if user.Role == models.RoleAdmin {
		return bson.M{
			"isActive": true,
			"$or": []bson.M{
				{"role": models.RoleHOD, "adminApproved": false},
				{"role": models.RoleTechnician, "hodApproved": true, "adminApproved": false},
			},
		}
	}
	return bson.M{
		"role":        models.RoleTechnician,
		"department":  user.Department,
		"hodApproved": false,
		"isActive":    true,
	}
}

// departmentSummary resolves a department reference to a small map for
// embedding in responses, mirroring a populate('department', 'name').
func departmentSummary(ctx context.Context, id *primitive.ObjectID) map[string]interface{} {
	if id == nil {
		return nil
	}
	summary := map[string]interface{}{"id": id}

	var dept models.Department
	if err := config.GetCollection("departments").FindOne(ctx, bson.M{"_id": *id}).Decode(&dept); err == nil {
		summary["name"] = dept.Name
	}
	return summary
}

// userSummary resolves a user reference to name and email for embedding.
func userSummary(ctx context.Context, id *primitive.ObjectID) map[string]interface{} {
	if id == nil {
		return nil
	}
	summary := map[string]interface{}{"id": id}

	var user models.User
	if err := config.GetCollection("users").FindOne(ctx, bson.M{"_id": *id}).Decode(&user); err == nil {
		summary["name"] = user.Name
		summary["email"] = user.Email
	}
	return summary
}

// assetSummary resolves an asset reference to its headline fields.
func assetSummary(ctx context.Context, id *primitive.ObjectID) map[string]interface{} {
	if id == nil {
		return nil
	}
	summary := map[string]interface{}{"id": id}

	var asset models.Asset
	if err := config.GetCollection("assets").FindOne(ctx, bson.M{"_id": *id}).Decode(&asset); err == nil {
		summary["name"] = asset.Name
		summary["category"] = asset.Category
		summary["status"] = asset.Status
	}
	return summary
}
