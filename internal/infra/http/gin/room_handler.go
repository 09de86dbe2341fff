package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/app/authz"
	"frontdesk/internal/app/dto"
	approoms "frontdesk/internal/app/rooms"
	domainroom "frontdesk/internal/domain/room"
)

type RoomHandler struct {
	Service *approoms.Service
}

type createRoomRequest struct {
	RoomNumber string `json:"roomNumber" binding:"required"`
	Floor      int    `json:"floor"`
	Type       string `json:"type"`
	Category   string `json:"category"`
	Capacity   int    `json:"capacity"`
	Breakdown  *struct {
		Adults   int `json:"adults"`
		Children int `json:"children"`
	} `json:"capacityBreakdown"`
	PricePerNightCents int64  `json:"pricePerNightCents"`
	BedConfiguration   string `json:"bedConfiguration"`
	Description        string `json:"description"`
}

func (h RoomHandler) Create(c *gin.Context) {
	if _, ok := requireAction(c, authz.EditRooms); !ok {
		return
	}
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	params := approoms.CreateParams{
		RoomNumber:       req.RoomNumber,
		Floor:            req.Floor,
		Type:             req.Type,
		Category:         req.Category,
		Capacity:         req.Capacity,
		RateCents:        req.PricePerNightCents,
		BedConfiguration: req.BedConfiguration,
		Description:      req.Description,
	}
	if req.Breakdown != nil {
		params.Breakdown = &domainroom.CapacityBreakdown{Adults: req.Breakdown.Adults, Children: req.Breakdown.Children}
	}
	rm, err := h.Service.Create(c.Request.Context(), params)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, dto.FromRoom(rm))
}

func (h RoomHandler) Get(c *gin.Context) {
	if _, ok := requireAction(c, authz.ViewRooms); !ok {
		return
	}
	rm, err := h.Service.Get(c.Request.Context(), domainroom.ID(c.Param("id")))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromRoom(rm))
}

func (h RoomHandler) List(c *gin.Context) {
	if _, ok := requireAction(c, authz.ViewRooms); !ok {
		return
	}
	items, total, err := h.Service.List(c.Request.Context(), domainroom.ListParams{
		Status: domainroom.Status(c.Query("status")),
		Type:   c.Query("type"),
		Floor:  intQuery(c, "floor", 0),
		Offset: intQuery(c, "offset", 0),
		Limit:  intQuery(c, "limit", 100),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.RoomCollection{Items: dto.FromRooms(items), Total: total})
}

func (h RoomHandler) Available(c *gin.Context) {
	if _, ok := requireAction(c, authz.ViewRooms); !ok {
		return
	}
	checkIn := timeQuery(c, "checkInDate")
	checkOut := timeQuery(c, "checkOutDate")
	items, err := h.Service.Available(c.Request.Context(), checkIn, checkOut, intQuery(c, "capacity", 0), c.Query("type"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.RoomCollection{Items: dto.FromRooms(items), Total: len(items)})
}

type updateRoomRequest struct {
	Floor              *int    `json:"floor"`
	Type               *string `json:"type"`
	Category           *string `json:"category"`
	Capacity           *int    `json:"capacity"`
	PricePerNightCents *int64  `json:"pricePerNightCents"`
	BedConfiguration   *string `json:"bedConfiguration"`
	Description        *string `json:"description"`
}

func (h RoomHandler) Update(c *gin.Context) {
	if _, ok := requireAction(c, authz.EditRooms); !ok {
		return
	}
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	rm, err := h.Service.Update(c.Request.Context(), domainroom.ID(c.Param("id")), approoms.UpdateParams{
		Floor:            req.Floor,
		Type:             req.Type,
		Category:         req.Category,
		Capacity:         req.Capacity,
		RateCents:        req.PricePerNightCents,
		BedConfiguration: req.BedConfiguration,
		Description:      req.Description,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromRoom(rm))
}

type roomStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h RoomHandler) SetStatus(c *gin.Context) {
	if _, ok := requireAction(c, authz.EditRooms); !ok {
		return
	}
	var req roomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	status, err := domainroom.ParseStatus(req.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	rm, err := h.Service.SetStatus(c.Request.Context(), domainroom.ID(c.Param("id")), status)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromRoom(rm))
}

func (h RoomHandler) Delete(c *gin.Context) {
	if _, ok := requireAction(c, authz.EditRooms); !ok {
		return
	}
	if err := h.Service.Deactivate(c.Request.Context(), domainroom.ID(c.Param("id"))); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

// UploadPhoto accepts a multipart form with a "photo" file and an
// optional "caption" field.
func (h RoomHandler) UploadPhoto(c *gin.Context) {
	if _, ok := requireAction(c, authz.EditRooms); !ok {
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "photo file is required")
		return
	}
	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	defer src.Close()

	rm, err := h.Service.AttachPhoto(
		c.Request.Context(),
		domainroom.ID(c.Param("id")),
		file.Filename,
		src,
		file.Header.Get("Content-Type"),
		c.PostForm("caption"),
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromRoom(rm))
}
