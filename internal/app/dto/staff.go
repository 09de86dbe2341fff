package dto

import (
	"time"

	domainstaff "frontdesk/internal/domain/staff"
)

type StaffView struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId,omitempty"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromStaff(member *domainstaff.Staff) StaffView {
	return StaffView{
		ID:         string(member.ID),
		EmployeeID: member.EmployeeID,
		FirstName:  member.FirstName,
		LastName:   member.LastName,
		Email:      member.Email,
		Phone:      member.Phone,
		Role:       string(member.Role),
		IsActive:   member.IsActive,
		CreatedAt:  member.CreatedAt,
	}
}

type LoginResult struct {
	Token string    `json:"token"`
	Staff StaffView `json:"staff"`
}
