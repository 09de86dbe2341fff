package dto

import (
	"time"

	domainroom "frontdesk/internal/domain/room"
)

type PhotoDTO struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type CapacityBreakdownDTO struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

type RoomView struct {
	ID         string `json:"id"`
	RoomNumber string `json:"roomNumber"`
	Floor      int    `json:"floor"`
	Type       string `json:"type,omitempty"`
	Category   string `json:"category,omitempty"`

	Capacity  int                   `json:"capacity"`
	Breakdown *CapacityBreakdownDTO `json:"capacityBreakdown,omitempty"`

	PricePerNightCents int64 `json:"pricePerNightCents"`

	Status           string     `json:"status"`
	BedConfiguration string     `json:"bedConfiguration,omitempty"`
	Description      string     `json:"description,omitempty"`
	Photos           []PhotoDTO `json:"photos,omitempty"`

	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromRoom(rm *domainroom.Room) RoomView {
	view := RoomView{
		ID:                 string(rm.ID),
		RoomNumber:         rm.RoomNumber,
		Floor:              rm.Floor,
		Type:               rm.Type,
		Category:           rm.Category,
		Capacity:           rm.Capacity,
		PricePerNightCents: rm.PricePerNightCents,
		Status:             string(rm.Status),
		BedConfiguration:   rm.BedConfiguration,
		Description:        rm.Description,
		IsActive:           rm.IsActive,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
	if rm.Breakdown != nil {
		view.Breakdown = &CapacityBreakdownDTO{Adults: rm.Breakdown.Adults, Children: rm.Breakdown.Children}
	}
	for _, p := range rm.Photos {
		view.Photos = append(view.Photos, PhotoDTO{URL: p.URL, Caption: p.Caption})
	}
	return view
}

func FromRooms(items []*domainroom.Room) []RoomView {
	out := make([]RoomView, 0, len(items))
	for _, rm := range items {
		out = append(out, FromRoom(rm))
	}
	return out
}

type RoomCollection struct {
	Items []RoomView `json:"items"`
	Total int        `json:"total"`
}
