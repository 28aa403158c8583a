package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleHOD        Role = "hod"
	RoleTechnician Role = "technician"
	RoleCitizen    Role = "citizen"
)

// ValidRole reports whether s is a known account role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleHOD, RoleTechnician, RoleCitizen:
		return true
	}
	return false
}

// User represents an account in the system. HODs and technicians carry a
// department reference, a phone number and an uploaded ID proof path.
type User struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name          string              `bson:"name" json:"name"`
	Email         string              `bson:"email" json:"email"`
	Password      string              `bson:"password,omitempty" json:"-"`
	Role          Role                `bson:"role" json:"role"`
	Department    *primitive.ObjectID `bson:"department,omitempty" json:"department,omitempty"`
	Phone         string              `bson:"phone,omitempty" json:"phone,omitempty"`
	IDProof       string              `bson:"idProof,omitempty" json:"idProof,omitempty"`
	AdminApproved bool                `bson:"adminApproved" json:"adminApproved"`
	HodApproved   bool                `bson:"hodApproved" json:"hodApproved"`
	IsActive      bool                `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// SetApprovalDefaults sets the approval flags a freshly registered account
// starts with:
//   - admin, citizen: both approvals granted
//   - hod: hodApproved pre-set, waits on admin approval only
//   - technician: waits on both HOD and admin approval
func (u *User) SetApprovalDefaults() {
	switch u.Role {
	case RoleAdmin, RoleCitizen:
		u.AdminApproved = true
		u.HodApproved = true
	case RoleHOD:
		u.AdminApproved = false
		u.HodApproved = true
	case RoleTechnician:
		u.AdminApproved = false
		u.HodApproved = false
	}
	u.IsActive = true
}

// PendingGates reports which approval gates still block an account from
// logging in.
type PendingGates struct {
	Admin bool `json:"admin"`
	Hod   bool `json:"hod"`
}

// PendingApprovals returns the gates still blocking this account. Admins and
// citizens never have pending gates.
func (u *User) PendingApprovals() PendingGates {
	switch u.Role {
	case RoleHOD:
		return PendingGates{Admin: !u.AdminApproved}
	case RoleTechnician:
		return PendingGates{Admin: !u.AdminApproved, Hod: !u.HodApproved}
	}
	return PendingGates{}
}

// FullyApproved reports whether every approval gate for the account's role
// has been granted.
func (u *User) FullyApproved() bool {
	g := u.PendingApprovals()
	return !g.Admin && !g.Hod
}

// CanLogin reports whether the account may authenticate at all: it must be
// active and, for hod/technician roles, fully approved.
func (u *User) CanLogin() bool {
	return u.IsActive && u.FullyApproved()
}

// Reject deactivates the account and clears both approval flags. This is
// terminal: flipping isActive back later does not restore the flags.
func (u *User) Reject() {
	u.IsActive = false
	u.AdminApproved = false
	u.HodApproved = false
}

// RequiresDepartment reports whether the role must register with a
// department, phone and ID proof.
func (u *User) RequiresDepartment() bool {
	return u.Role == RoleHOD || u.Role == RoleTechnician
}

// EnsureUserIndexes creates a unique index on email.
func EnsureUserIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
