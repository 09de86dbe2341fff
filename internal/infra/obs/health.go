package obs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health serves the probe endpoints. Readiness runs the checks wired
// at startup (store ping, broker) and reports the first failure by
// name.
type Health struct {
	Checks map[string]func() error
}

func (h Health) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}

func (h Health) Ready(c *gin.Context) {
	for name, check := range h.Checks {
		if check == nil {
			continue
		}
		if err := check(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "check": name, "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
