package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	appbookings "frontdesk/internal/app/bookings"
	"frontdesk/internal/app/dto"
)

// PublicHandler serves unauthenticated reservation lookups.
type PublicHandler struct {
	Bookings *appbookings.Service
}

func (h PublicHandler) LookupBooking(c *gin.Context) {
	bk, err := h.Bookings.ByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.PublicFromBooking(bk))
}
