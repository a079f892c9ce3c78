package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse summarizes what is on disk.
type StatusResponse struct {
	PropertyStores   int      `json:"propertyStores"`
	PropertyCodes    []string `json:"propertyCodes"`
	ReportsGenerated int      `json:"reportsGenerated"`
}

// GetStatus reports how many property stores exist and how many reports
// have been generated.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	codes, err := h.store.Properties()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	reports, err := h.store.CountReports()
	if err != nil {
		reports = 0
	}

	c.JSON(http.StatusOK, StatusResponse{
		PropertyStores:   len(codes),
		PropertyCodes:    codes,
		ReportsGenerated: reports,
	})
}

// ListProperties returns the known property directory.
// GET /api/properties
func (h *Handler) ListProperties(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"properties": h.properties.All()})
}
