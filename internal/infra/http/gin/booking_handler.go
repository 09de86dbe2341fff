package ginserver

import (
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/app/authz"
	appbookings "frontdesk/internal/app/bookings"
	"frontdesk/internal/app/dto"
	domainbooking "frontdesk/internal/domain/booking"
	domainguest "frontdesk/internal/domain/guest"
	domainroom "frontdesk/internal/domain/room"
)

type BookingHandler struct {
	Service *appbookings.Service
}

type createBookingRequest struct {
	GuestID         string    `json:"guestId" binding:"required"`
	RoomID          string    `json:"roomId" binding:"required"`
	CheckInDate     time.Time `json:"checkInDate" binding:"required"`
	CheckOutDate    time.Time `json:"checkOutDate" binding:"required"`
	NumberOfGuests  int       `json:"numberOfGuests" binding:"required"`
	TaxCents        int64     `json:"taxCents"`
	DiscountCents   int64     `json:"discountCents"`
	SpecialRequests string    `json:"specialRequests"`
	Source          string    `json:"source"`
}

func (h BookingHandler) Create(c *gin.Context) {
	p, ok := requireAction(c, authz.CreateBookings)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	bk, err := h.Service.Create(c.Request.Context(), appbookings.CreateParams{
		GuestID:         domainguest.ID(req.GuestID),
		RoomID:          domainroom.ID(req.RoomID),
		CheckIn:         req.CheckInDate,
		CheckOut:        req.CheckOutDate,
		NumberOfGuests:  req.NumberOfGuests,
		TaxCents:        req.TaxCents,
		DiscountCents:   req.DiscountCents,
		SpecialRequests: req.SpecialRequests,
		Source:          req.Source,
		ActorID:         p.ID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, dto.FromBooking(bk))
}

func (h BookingHandler) Get(c *gin.Context) {
	if _, ok := requireAction(c, authz.ViewBookings); !ok {
		return
	}
	bk, err := h.Service.Get(c.Request.Context(), domainbooking.ID(c.Param("id")))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromBooking(bk))
}

func (h BookingHandler) List(c *gin.Context) {
	if _, ok := requireAction(c, authz.ViewBookings); !ok {
		return
	}
	params := domainbooking.ListParams{
		GuestID: domainguest.ID(c.Query("guestId")),
		Offset:  intQuery(c, "offset", 0),
		Limit:   intQuery(c, "limit", 50),
	}
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				params.Statuses = append(params.Statuses, domainbooking.Status(s))
			}
		}
	}
	params.CheckInFrom = timeQuery(c, "checkInFrom")
	params.CheckInTo = timeQuery(c, "checkInTo")
	params.CheckOutFrom = timeQuery(c, "checkOutFrom")
	params.CheckOutTo = timeQuery(c, "checkOutTo")

	items, total, err := h.Service.List(c.Request.Context(), params)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.BookingCollection{Items: dto.FromBookings(items), Total: total})
}

type updateBookingRequest struct {
	GuestID         *string    `json:"guestId"`
	RoomID          *string    `json:"roomId"`
	CheckInDate     *time.Time `json:"checkInDate"`
	CheckOutDate    *time.Time `json:"checkOutDate"`
	NumberOfGuests  *int       `json:"numberOfGuests"`
	TaxCents        *int64     `json:"taxCents"`
	DiscountCents   *int64     `json:"discountCents"`
	PaymentStatus   *string    `json:"paymentStatus"`
	SpecialRequests *string    `json:"specialRequests"`
	Notes           *string    `json:"notes"`
}

func (h BookingHandler) Update(c *gin.Context) {
	if _, ok := requireAction(c, authz.EditBookings); !ok {
		return
	}
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	params := appbookings.UpdateParams{
		CheckIn:         req.CheckInDate,
		CheckOut:        req.CheckOutDate,
		NumberOfGuests:  req.NumberOfGuests,
		TaxCents:        req.TaxCents,
		DiscountCents:   req.DiscountCents,
		SpecialRequests: req.SpecialRequests,
		Notes:           req.Notes,
	}
	if req.GuestID != nil {
		id := domainguest.ID(*req.GuestID)
		params.GuestID = &id
	}
	if req.RoomID != nil {
		id := domainroom.ID(*req.RoomID)
		params.RoomID = &id
	}
	if req.PaymentStatus != nil {
		status, err := domainbooking.ParsePaymentStatus(*req.PaymentStatus)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		params.PaymentStatus = &status
	}
	bk, err := h.Service.Update(c.Request.Context(), domainbooking.ID(c.Param("id")), params)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromBooking(bk))
}

func (h BookingHandler) CheckIn(c *gin.Context) {
	p, ok := requireAction(c, authz.CheckInGuests)
	if !ok {
		return
	}
	bk, err := h.Service.CheckIn(c.Request.Context(), domainbooking.ID(c.Param("id")), p.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromBooking(bk))
}

type checkOutRequest struct {
	AdditionalCharges []struct {
		Description string `json:"description"`
		AmountCents int64  `json:"amountCents"`
	} `json:"additionalCharges"`
}

type checkOutResponse struct {
	Booking                dto.BookingView `json:"booking"`
	AdditionalChargesCents int64           `json:"additionalChargesCents"`
}

func (h BookingHandler) CheckOut(c *gin.Context) {
	p, ok := requireAction(c, authz.CheckOutGuests)
	if !ok {
		return
	}
	var req checkOutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	charges := make([]appbookings.ChargeParams, 0, len(req.AdditionalCharges))
	for _, item := range req.AdditionalCharges {
		charges = append(charges, appbookings.ChargeParams{Description: item.Description, AmountCents: item.AmountCents})
	}
	result, err := h.Service.CheckOut(c.Request.Context(), domainbooking.ID(c.Param("id")), charges, p.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, checkOutResponse{
		Booking:                dto.FromBooking(result.Booking),
		AdditionalChargesCents: result.AdditionalCharges,
	})
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h BookingHandler) Cancel(c *gin.Context) {
	if _, ok := requireAction(c, authz.CancelBookings); !ok {
		return
	}
	var req cancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	bk, err := h.Service.Cancel(c.Request.Context(), domainbooking.ID(c.Param("id")), req.Reason)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromBooking(bk))
}

func (h BookingHandler) NoShow(c *gin.Context) {
	if _, ok := requireAction(c, authz.EditBookings); !ok {
		return
	}
	bk, err := h.Service.MarkNoShow(c.Request.Context(), domainbooking.ID(c.Param("id")))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromBooking(bk))
}

func (h BookingHandler) Arrivals(c *gin.Context) {
	if _, ok := requireAction(c, authz.ViewBookings); !ok {
		return
	}
	day := timeQuery(c, "date")
	if day.IsZero() {
		day = time.Now().UTC()
	}
	items, err := h.Service.Arrivals(c.Request.Context(), day)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.BookingCollection{Items: dto.FromBookings(items), Total: len(items)})
}

func (h BookingHandler) Departures(c *gin.Context) {
	if _, ok := requireAction(c, authz.ViewBookings); !ok {
		return
	}
	day := timeQuery(c, "date")
	if day.IsZero() {
		day = time.Now().UTC()
	}
	items, err := h.Service.Departures(c.Request.Context(), day)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.BookingCollection{Items: dto.FromBookings(items), Total: len(items)})
}
