package ginserver

import (
	"errors"

	gin "github.com/gin-gonic/gin"
	"net/http"

	"frontdesk/internal/app/auth"
	"frontdesk/internal/app/authz"
	dbmongo "frontdesk/internal/infra/db/mongo"
	"frontdesk/internal/infra/storage/memory"

	domainbooking "frontdesk/internal/domain/booking"
	domainguest "frontdesk/internal/domain/guest"
	domainroom "frontdesk/internal/domain/room"
	"frontdesk/internal/domain/shared/daterange"
	domainstaff "frontdesk/internal/domain/staff"
)

// All responses share the {success, data?, message?} envelope.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, response{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, response{Success: false, Message: message})
}

// respondDomainError maps domain sentinel errors onto HTTP statuses.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainbooking.ErrNotFound),
		errors.Is(err, domainroom.ErrNotFound),
		errors.Is(err, domainguest.ErrNotFound),
		errors.Is(err, domainstaff.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainbooking.ErrRoomConflict),
		errors.Is(err, domainbooking.ErrInvalidTransition),
		errors.Is(err, domainbooking.ErrTerminal),
		errors.Is(err, domainbooking.ErrReasonRequired),
		errors.Is(err, domainbooking.ErrActorRequired),
		errors.Is(err, domainbooking.ErrInvalidGuestCount),
		errors.Is(err, domainbooking.ErrNegativeAdjustment),
		errors.Is(err, domainbooking.ErrChargeAmountInvalid),
		errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, domainroom.ErrNumberRequired),
		errors.Is(err, domainroom.ErrInvalidCapacity),
		errors.Is(err, domainroom.ErrNegativeRate),
		errors.Is(err, domainroom.ErrInvalidStatus),
		errors.Is(err, domainroom.ErrInactive),
		errors.Is(err, domainguest.ErrEmailRequired),
		errors.Is(err, domainguest.ErrIDNumberRequired),
		errors.Is(err, domainguest.ErrNameRequired),
		errors.Is(err, domainstaff.ErrEmailRequired),
		errors.Is(err, domainstaff.ErrNameRequired),
		errors.Is(err, domainstaff.ErrPasswordHashEmpty),
		errors.Is(err, domainstaff.ErrInvalidRole):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainroom.ErrNumberTaken),
		errors.Is(err, domainguest.ErrEmailTaken),
		errors.Is(err, domainguest.ErrIDNumberTaken),
		errors.Is(err, domainstaff.ErrEmailTaken),
		errors.Is(err, dbmongo.ErrConcurrentUpdate),
		errors.Is(err, memory.ErrConcurrentUpdate):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrSessionExpired):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, authz.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}
