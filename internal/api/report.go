package api

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"workorders/internal/report"
)

// GenerateReport renders the property's current work orders as a PDF,
// caches it under the reports directory, and serves it inline.
// GET /api/generate-report/:property_code
func (h *Handler) GenerateReport(c *gin.Context) {
	code := c.Param("property_code")

	if !h.store.Exists(code) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no work orders found for this property"})
		return
	}

	orders, err := h.store.List(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	doc, err := report.Render(report.Options{
		PropertyName: h.properties.Name(code),
		GeneratedAt:  time.Now(),
	}, orders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Fixed per-property path, overwritten on every generation.
	pdfPath := filepath.Join(h.reportsDir, code+"_maintenance_report.pdf")
	if err := doc.OutputFileAndClose(pdfPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.store.LogReport(code, len(orders), pdfPath); err != nil {
		// The report itself is fine; a missing log entry is not worth a 500.
		log.Printf("report log write failed: %v", err)
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s_maintenance_report.pdf", code))
	c.Header("Content-Type", "application/pdf")
	c.File(pdfPath)
}

// ReportHistory lists a property's logged report generations, newest first.
// GET /api/reports/history/:property_code
func (h *Handler) ReportHistory(c *gin.Context) {
	entries, err := h.store.ReportHistory(c.Param("property_code"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": entries})
}
