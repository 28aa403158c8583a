package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBindHOD(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	dept := Department{Name: "Water"}

	if err := dept.BindHOD(first); err != nil {
		t.Fatalf("binding an HOD to a free department: %v", err)
	}
	if dept.Hod == nil || *dept.Hod != first {
		t.Fatalf("hod = %v, want %v", dept.Hod, first)
	}

	// Re-approving the same account must not conflict.
	if err := dept.BindHOD(first); err != nil {
		t.Errorf("re-binding the same HOD: %v", err)
	}

	// A different account must be refused and leave the binding untouched.
	if err := dept.BindHOD(second); err != ErrDepartmentHasHOD {
		t.Errorf("binding a second HOD: err = %v, want ErrDepartmentHasHOD", err)
	}
	if *dept.Hod != first {
		t.Errorf("hod changed to %v after failed bind, want %v", *dept.Hod, first)
	}
}
