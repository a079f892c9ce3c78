package api

import (
	"github.com/gin-gonic/gin"

	"workorders/internal/model"
	"workorders/internal/store"
)

// Handler wires the work-order API onto a store.
type Handler struct {
	store      *store.Store
	properties *model.PropertyDirectory
	reportsDir string
}

// NewHandler creates the API handler.
func NewHandler(st *store.Store, properties *model.PropertyDirectory, reportsDir string) *Handler {
	return &Handler{
		store:      st,
		properties: properties,
		reportsDir: reportsDir,
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// work orders
	router.POST("/work-orders", h.CreateWorkOrders)
	router.GET("/work-orders/:property_code", h.ListWorkOrders)
	router.POST("/remove-work-order", h.RemoveWorkOrder)
	router.POST("/edit-work-order", h.EditWorkOrder)
	router.POST("/update-room-status", h.UpdateRoomStatus)

	// reports
	router.GET("/generate-report/:property_code", h.GenerateReport)
	router.GET("/reports/history/:property_code", h.ReportHistory)

	// system
	router.GET("/status", h.GetStatus)
	router.GET("/properties", h.ListProperties)
}
