package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Department groups assets, complaints and staff. Each department is headed
// by at most one HOD account.
type Department struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Hod         *primitive.ObjectID `bson:"hod,omitempty" json:"hod,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}

var ErrDepartmentHasHOD = errors.New("this department already has a Head of Department")

// BindHOD records userID as the department's head. It fails when a different
// account is already bound; re-binding the same account is a no-op.
func (d *Department) BindHOD(userID primitive.ObjectID) error {
	if d.Hod != nil && *d.Hod != userID {
		return ErrDepartmentHasHOD
	}
	d.Hod = &userID
	return nil
}

// EnsureDepartmentIndexes creates the unique name index and the sparse
// unique hod index.
func EnsureDepartmentIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "hod", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
