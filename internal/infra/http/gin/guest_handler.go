package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/app/authz"
	"frontdesk/internal/app/dto"
	appguests "frontdesk/internal/app/guests"
	domainguest "frontdesk/internal/domain/guest"
)

type GuestHandler struct {
	Service *appguests.Service
}

type createGuestRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Phone       string `json:"phone"`
	IDType      string `json:"idType"`
	IDNumber    string `json:"idNumber" binding:"required"`
	Nationality string `json:"nationality"`
}

func (h GuestHandler) Create(c *gin.Context) {
	if _, ok := requireAction(c, authz.EditGuests); !ok {
		return
	}
	var req createGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	g, err := h.Service.Create(c.Request.Context(), appguests.CreateParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		IDType:      req.IDType,
		IDNumber:    req.IDNumber,
		Nationality: req.Nationality,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, dto.FromGuest(g))
}

func (h GuestHandler) Get(c *gin.Context) {
	if _, ok := requireAction(c, authz.ViewGuests); !ok {
		return
	}
	g, err := h.Service.Get(c.Request.Context(), domainguest.ID(c.Param("id")))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromGuest(g))
}

func (h GuestHandler) List(c *gin.Context) {
	if _, ok := requireAction(c, authz.ViewGuests); !ok {
		return
	}
	items, total, err := h.Service.List(c.Request.Context(), domainguest.ListParams{
		Query:  c.Query("q"),
		Offset: intQuery(c, "offset", 0),
		Limit:  intQuery(c, "limit", 50),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.GuestCollection{Items: dto.FromGuests(items), Total: total})
}

type updateGuestRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Phone       *string `json:"phone"`
	IDType      *string `json:"idType"`
	IDNumber    *string `json:"idNumber"`
	Nationality *string `json:"nationality"`
	VIP         *bool   `json:"vip"`
}

func (h GuestHandler) Update(c *gin.Context) {
	if _, ok := requireAction(c, authz.EditGuests); !ok {
		return
	}
	var req updateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	g, err := h.Service.Update(c.Request.Context(), domainguest.ID(c.Param("id")), appguests.UpdateParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		IDType:      req.IDType,
		IDNumber:    req.IDNumber,
		Nationality: req.Nationality,
		VIP:         req.VIP,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromGuest(g))
}

func (h GuestHandler) Delete(c *gin.Context) {
	if _, ok := requireAction(c, authz.EditGuests); !ok {
		return
	}
	if err := h.Service.Deactivate(c.Request.Context(), domainguest.ID(c.Param("id"))); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}
