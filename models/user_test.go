package models

import "testing"

func TestValidRole(t *testing.T) {
	for _, role := range []string{"admin", "hod", "technician", "citizen"} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "superuser", "Admin", "HOD"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}

func TestSetApprovalDefaults(t *testing.T) {
	tests := []struct {
		role          Role
		adminApproved bool
		hodApproved   bool
	}{
		{RoleAdmin, true, true},
		{RoleCitizen, true, true},
		{RoleHOD, false, true},
		{RoleTechnician, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			u := User{Role: tt.role}
			u.SetApprovalDefaults()

			if u.AdminApproved != tt.adminApproved {
				t.Errorf("adminApproved = %v, want %v", u.AdminApproved, tt.adminApproved)
			}
			if u.HodApproved != tt.hodApproved {
				t.Errorf("hodApproved = %v, want %v", u.HodApproved, tt.hodApproved)
			}
			if !u.IsActive {
				t.Error("new accounts must start active")
			}
		})
	}
}

func TestTechnicianCanLogin(t *testing.T) {
	// An active technician may log in iff both approvals are granted.
	tests := []struct {
		name     string
		admin    bool
		hod      bool
		active   bool
		canLogin bool
	}{
		{"both approved", true, true, true, true},
		{"admin only", true, false, true, false},
		{"hod only", false, true, true, false},
		{"neither", false, false, true, false},
		{"both approved but inactive", true, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Role: RoleTechnician, AdminApproved: tt.admin, HodApproved: tt.hod, IsActive: tt.active}
			if got := u.CanLogin(); got != tt.canLogin {
				t.Errorf("CanLogin() = %v, want %v", got, tt.canLogin)
			}
		})
	}
}

func TestHODCanLogin(t *testing.T) {
	// An HOD may log in iff active and admin approved; the hod gate never
	// applies to HODs themselves.
	tests := []struct {
		name     string
		admin    bool
		active   bool
		canLogin bool
	}{
		{"approved and active", true, true, true},
		{"approved but inactive", true, false, false},
		{"unapproved", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Role: RoleHOD, AdminApproved: tt.admin, HodApproved: true, IsActive: tt.active}
			if got := u.CanLogin(); got != tt.canLogin {
				t.Errorf("CanLogin() = %v, want %v", got, tt.canLogin)
			}
		})
	}
}

func TestPendingApprovals(t *testing.T) {
	tech := User{Role: RoleTechnician, AdminApproved: false, HodApproved: false}
	gates := tech.PendingApprovals()
	if !gates.Admin || !gates.Hod {
		t.Errorf("fresh technician gates = %+v, want both pending", gates)
	}

	tech.HodApproved = true
	gates = tech.PendingApprovals()
	if !gates.Admin || gates.Hod {
		t.Errorf("hod-approved technician gates = %+v, want admin only", gates)
	}

	hod := User{Role: RoleHOD, AdminApproved: false, HodApproved: true}
	gates = hod.PendingApprovals()
	if !gates.Admin || gates.Hod {
		t.Errorf("fresh hod gates = %+v, want admin only", gates)
	}

	citizen := User{Role: RoleCitizen}
	if gates := citizen.PendingApprovals(); gates.Admin || gates.Hod {
		t.Errorf("citizen gates = %+v, want none", gates)
	}
}

func TestRejectIsUnconditional(t *testing.T) {
	states := []User{
		{Role: RoleTechnician, AdminApproved: false, HodApproved: false, IsActive: true},
		{Role: RoleTechnician, AdminApproved: true, HodApproved: true, IsActive: true},
		{Role: RoleHOD, AdminApproved: true, HodApproved: true, IsActive: true},
		{Role: RoleCitizen, AdminApproved: true, HodApproved: true, IsActive: false},
	}

	for _, u := range states {
		u.Reject()
		if u.IsActive || u.AdminApproved || u.HodApproved {
			t.Errorf("after Reject: %+v, want inactive with both flags cleared", u)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	u := User{Password: "secret123"}
	if err := u.HashPassword(); err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if u.Password == "secret123" {
		t.Fatal("password stored in plain text")
	}
	if !u.ComparePassword("secret123") {
		t.Error("ComparePassword rejected the correct password")
	}
	if u.ComparePassword("wrong") {
		t.Error("ComparePassword accepted a wrong password")
	}
}
