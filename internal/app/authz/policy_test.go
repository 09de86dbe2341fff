package authz

import (
	"errors"
	"testing"

	"frontdesk/internal/domain/staff"
)

func TestPolicyTable(t *testing.T) {
	cases := []struct {
		role   staff.Role
		action Action
		want   bool
	}{
		{staff.RoleAdmin, ManageStaff, true},
		{staff.RoleManager, ManageStaff, false},
		{staff.RoleReceptionist, CreateBookings, true},
		{staff.RoleReceptionist, ViewReports, false},
		{staff.RoleManager, ViewReports, true},
		{staff.RoleHousekeeping, EditRooms, true},
		{staff.RoleHousekeeping, ViewBookings, false},
		{staff.RoleHousekeeping, CheckInGuests, false},
		{staff.RoleAdmin, CheckOutGuests, true},
	}
	for _, tc := range cases {
		if got := Allowed(tc.role, tc.action); got != tc.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tc.role, tc.action, got, tc.want)
		}
	}
}

func TestAuthorizeReturnsForbidden(t *testing.T) {
	if err := Authorize(staff.RoleReceptionist, ManageStaff); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if err := Authorize(staff.RoleAdmin, ManageStaff); err != nil {
		t.Fatalf("admin should manage staff: %v", err)
	}
}

func TestUnknownRoleAndActionDenied(t *testing.T) {
	if Allowed(staff.Role("intern"), ViewBookings) {
		t.Fatal("unknown role must be denied")
	}
	if Allowed(staff.RoleAdmin, Action("unknown.action")) {
		t.Fatal("unknown action must be denied")
	}
}
