package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddMaintenanceLogSnapshotsStatus(t *testing.T) {
	tech := primitive.NewObjectID()
	complaint := Complaint{Status: InProgress}

	entry := complaint.AddMaintenanceLog(tech, "tightened valve", nil, "")

	if entry.Status != InProgress {
		t.Errorf("entry status = %q, want snapshot of current status %q", entry.Status, InProgress)
	}
	if complaint.Status != InProgress {
		t.Errorf("complaint status changed to %q without an explicit advance", complaint.Status)
	}
	if entry.Photos == nil || len(entry.Photos) != 0 {
		t.Errorf("photos = %v, want empty non-nil slice", entry.Photos)
	}
	if entry.Technician != tech {
		t.Errorf("technician = %v, want %v", entry.Technician, tech)
	}
}

func TestAddMaintenanceLogAdvancesStatus(t *testing.T) {
	tech := primitive.NewObjectID()
	complaint := Complaint{Status: Assigned}

	entry := complaint.AddMaintenanceLog(tech, "replaced lamp", []string{"/uploads/maintenance/a.jpg"}, Resolved)

	if complaint.Status != Resolved {
		t.Errorf("complaint status = %q, want %q", complaint.Status, Resolved)
	}
	if entry.Status != Resolved {
		t.Errorf("entry status = %q, want %q", entry.Status, Resolved)
	}
}

func TestMaintenanceLogsAppendOnly(t *testing.T) {
	tech := primitive.NewObjectID()
	complaint := Complaint{Status: Assigned}

	complaint.AddMaintenanceLog(tech, "first visit", nil, InProgress)
	complaint.AddMaintenanceLog(tech, "second visit", nil, Resolved)

	if len(complaint.MaintenanceLogs) != 2 {
		t.Fatalf("log count = %d, want 2", len(complaint.MaintenanceLogs))
	}
	if complaint.MaintenanceLogs[0].Description != "first visit" {
		t.Error("log order changed, entries must append in sequence")
	}
	if complaint.MaintenanceLogs[0].Status != InProgress || complaint.MaintenanceLogs[1].Status != Resolved {
		t.Error("earlier entries must keep their status snapshots")
	}
}
