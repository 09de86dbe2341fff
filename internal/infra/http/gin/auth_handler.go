package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	appauth "frontdesk/internal/app/auth"
	"frontdesk/internal/app/authz"
	"frontdesk/internal/app/dto"
	domainstaff "frontdesk/internal/domain/staff"
)

type AuthHandler struct {
	Service *appauth.Service
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	member, token, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.LoginResult{Token: token, Staff: dto.FromStaff(member)})
}

func (h AuthHandler) Logout(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.Service.Logout(c.Request.Context(), p.Token); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

func (h AuthHandler) Me(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	member, err := h.Service.Resolve(c.Request.Context(), p.Token)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.FromStaff(member))
}

type registerStaffRequest struct {
	EmployeeID string `json:"employeeId"`
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	Password   string `json:"password" binding:"required"`
	Role       string `json:"role" binding:"required"`
}

// Register creates a staff account; admin only.
func (h AuthHandler) Register(c *gin.Context) {
	if _, ok := requireAction(c, authz.ManageStaff); !ok {
		return
	}
	var req registerStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	role, err := domainstaff.ParseRole(req.Role)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	member, err := h.Service.Register(c.Request.Context(), appauth.RegisterParams{
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
		Role:       role,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, dto.FromStaff(member))
}
