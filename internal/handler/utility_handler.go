package handler

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"itemhub/internal/apierr"

	"github.com/gin-gonic/gin"
)

// UtilityHandler serves the stateless status/demo endpoints
type UtilityHandler struct {
	startedAt time.Time
}

// NewUtilityHandler creates a new UtilityHandler
func NewUtilityHandler(startedAt time.Time) *UtilityHandler {
	return &UtilityHandler{startedAt: startedAt}
}

func (h *UtilityHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status": "online",
			"time":   time.Now().Format(time.RFC3339),
			"uptime": time.Since(h.startedAt).Seconds(),
		},
	})
}

// Echo returns the posted JSON object back to the caller
func (h *UtilityHandler) Echo(c *gin.Context) {
	var body map[string]interface{}
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		c.Error(apierr.ValidationFailed(apierr.FieldError{Field: "body", Message: "Invalid JSON body"}))
		return
	}
	if len(body) == 0 {
		c.Error(apierr.ValidationFailed(apierr.FieldError{Field: "body", Message: "body must not be empty"}))
		return
	}

	body["echoed"] = true
	body["timestamp"] = time.Now().Format(time.RFC3339)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    body,
	})
}

func (h *UtilityHandler) Data(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"title":   "Sample Data",
			"content": "This is dummy data served by the API",
			"items":   []string{"alpha", "beta", "gamma"},
		},
	})
}

func (h *UtilityHandler) Random(c *gin.Context) {
	words := []string{"quartz", "meadow", "ember", "drift", "lattice", "harbor", "signal", "pine"}
	count := rand.Intn(5) + 1
	items := make([]string, count)
	for i := range items {
		items[i] = words[rand.Intn(len(words))]
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"title":        "Random Data",
			"content":      "Randomly generated payload",
			"items":        items,
			"timestamp":    time.Now().Format(time.RFC3339),
			"randomFactor": rand.Float64(),
		},
	})
}

// RegisterUtilityRoutes registers the utility routes
func (h *UtilityHandler) RegisterUtilityRoutes(rg *gin.RouterGroup) {
	rg.GET("/status", h.Status)
	rg.POST("/echo", h.Echo)
	rg.GET("/data", h.Data)
	rg.GET("/random", h.Random)
}
