package authz

import (
	"errors"

	"frontdesk/internal/domain/staff"
)

var ErrForbidden = errors.New("authz: action not permitted for role")

// Action names a protected operation. Handlers declare the action they
// need and the policy table below decides which roles may perform it.
type Action string

const (
	ViewBookings   Action = "bookings.view"
	CreateBookings Action = "bookings.create"
	EditBookings   Action = "bookings.edit"
	CancelBookings Action = "bookings.cancel"
	CheckInGuests  Action = "bookings.checkin"
	CheckOutGuests Action = "bookings.checkout"

	ViewRooms   Action = "rooms.view"
	EditRooms   Action = "rooms.edit"
	ViewGuests  Action = "guests.view"
	EditGuests  Action = "guests.edit"
	ManageStaff Action = "staff.manage"
	ViewReports Action = "reports.view"
)

// policy is the single declarative permission table. Role checks live
// here and nowhere else.
var policy = map[Action][]staff.Role{
	ViewBookings:   {staff.RoleAdmin, staff.RoleManager, staff.RoleReceptionist},
	CreateBookings: {staff.RoleAdmin, staff.RoleManager, staff.RoleReceptionist},
	EditBookings:   {staff.RoleAdmin, staff.RoleManager, staff.RoleReceptionist},
	CancelBookings: {staff.RoleAdmin, staff.RoleManager, staff.RoleReceptionist},
	CheckInGuests:  {staff.RoleAdmin, staff.RoleManager, staff.RoleReceptionist},
	CheckOutGuests: {staff.RoleAdmin, staff.RoleManager, staff.RoleReceptionist},

	ViewRooms:   {staff.RoleAdmin, staff.RoleManager, staff.RoleReceptionist, staff.RoleHousekeeping},
	EditRooms:   {staff.RoleAdmin, staff.RoleManager, staff.RoleHousekeeping},
	ViewGuests:  {staff.RoleAdmin, staff.RoleManager, staff.RoleReceptionist},
	EditGuests:  {staff.RoleAdmin, staff.RoleManager, staff.RoleReceptionist},
	ManageStaff: {staff.RoleAdmin},
	ViewReports: {staff.RoleAdmin, staff.RoleManager},
}

// Allowed reports whether the role may perform the action.
func Allowed(role staff.Role, action Action) bool {
	for _, r := range policy[action] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize returns ErrForbidden when the role may not perform the
// action.
func Authorize(role staff.Role, action Action) error {
	if !Allowed(role, action) {
		return ErrForbidden
	}
	return nil
}
