package dto

import (
	"time"

	domainguest "frontdesk/internal/domain/guest"
)

type GuestView struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`

	IDType      string `json:"idType,omitempty"`
	IDNumber    string `json:"idNumber"`
	Nationality string `json:"nationality,omitempty"`

	TotalStays      int   `json:"totalStays"`
	TotalSpentCents int64 `json:"totalSpentCents"`

	VIP       bool      `json:"vip"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromGuest(g *domainguest.Guest) GuestView {
	return GuestView{
		ID:              string(g.ID),
		FirstName:       g.FirstName,
		LastName:        g.LastName,
		Email:           g.Email,
		Phone:           g.Phone,
		IDType:          g.IDType,
		IDNumber:        g.IDNumber,
		Nationality:     g.Nationality,
		TotalStays:      g.TotalStays,
		TotalSpentCents: g.TotalSpentCents,
		VIP:             g.VIP,
		IsActive:        g.IsActive,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

func FromGuests(items []*domainguest.Guest) []GuestView {
	out := make([]GuestView, 0, len(items))
	for _, g := range items {
		out = append(out, FromGuest(g))
	}
	return out
}

type GuestCollection struct {
	Items []GuestView `json:"items"`
	Total int         `json:"total"`
}
