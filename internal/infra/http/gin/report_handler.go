package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/app/authz"
	appreports "frontdesk/internal/app/reports"
)

type ReportHandler struct {
	Service *appreports.Service
}

func (h ReportHandler) Occupancy(c *gin.Context) {
	if _, ok := requireAction(c, authz.ViewReports); !ok {
		return
	}
	day := timeQuery(c, "date")
	if day.IsZero() {
		day = time.Now().UTC()
	}
	report, err := h.Service.OccupancyFor(c.Request.Context(), day)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, report)
}

func (h ReportHandler) Revenue(c *gin.Context) {
	if _, ok := requireAction(c, authz.ViewReports); !ok {
		return
	}
	from := timeQuery(c, "from")
	to := timeQuery(c, "to")
	if from.IsZero() || to.IsZero() {
		respondError(c, http.StatusBadRequest, "from and to dates are required")
		return
	}
	report, err := h.Service.RevenueFor(c.Request.Context(), from, to)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, report)
}
