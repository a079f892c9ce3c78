package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"workorders/internal/model"
	"workorders/internal/store"
)

type workOrderRequest struct {
	PropertyCode   string `json:"property_code"`
	RoomNumbers    string `json:"room_numbers"`
	WorkOrders     string `json:"work_orders"`
	CompletionDate string `json:"completion_date"`
}

type removeWorkOrderRequest struct {
	PropertyCode string `json:"property_code"`
	RoomNumber   string `json:"room_number"`
}

type editWorkOrderRequest struct {
	PropertyCode   string `json:"property_code"`
	RoomNumber     string `json:"room_number"`
	WorkOrder      string `json:"work_order"`
	CompletionDate string `json:"completion_date"`
}

type updateRoomStatusRequest struct {
	PropertyCode string `json:"property_code"`
	RoomNumber   string `json:"room_number"`
	Status       string `json:"status"`
	BestRoom     string `json:"best_room"`
}

// CreateWorkOrders records work orders for one or more rooms.
// POST /api/work-orders
func (h *Handler) CreateWorkOrders(c *gin.Context) {
	var req workOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.PropertyCode == "" || req.RoomNumbers == "" || req.WorkOrders == "" || req.CompletionDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	rooms := splitList(req.RoomNumbers)
	texts := splitList(req.WorkOrders)

	if err := h.store.Submit(req.PropertyCode, rooms, texts, req.CompletionDate); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrListMismatch) || errors.Is(err, store.ErrBadDate) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Work orders saved successfully"})
}

// ListWorkOrders returns every work order for a property, oldest row first.
// An unknown property yields an empty list.
// GET /api/work-orders/:property_code
func (h *Handler) ListWorkOrders(c *gin.Context) {
	orders, err := h.store.List(c.Param("property_code"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"work_orders": orders})
}

// RemoveWorkOrder deletes a room's work-order row.
// POST /api/remove-work-order
func (h *Handler) RemoveWorkOrder(c *gin.Context) {
	var req removeWorkOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.PropertyCode == "" || req.RoomNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	if err := h.store.Remove(req.PropertyCode, req.RoomNumber); err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Work order for room %s removed successfully", req.RoomNumber),
	})
}

// EditWorkOrder replaces a room's work-order text and completion date.
// POST /api/edit-work-order
func (h *Handler) EditWorkOrder(c *gin.Context) {
	var req editWorkOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.PropertyCode == "" || req.RoomNumber == "" || req.WorkOrder == "" || req.CompletionDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	if err := h.store.Edit(req.PropertyCode, req.RoomNumber, req.WorkOrder, req.CompletionDate); err != nil {
		if errors.Is(err, store.ErrBadDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Work order updated successfully"})
}

// UpdateRoomStatus sets a room's status and best-room designation.
// POST /api/update-room-status
func (h *Handler) UpdateRoomStatus(c *gin.Context) {
	var req updateRoomStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.PropertyCode == "" || req.RoomNumber == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}
	if req.BestRoom == "" {
		req.BestRoom = model.BestRoomDefault
	}

	if err := h.store.UpdateStatus(req.PropertyCode, req.RoomNumber, req.Status, req.BestRoom); err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room status updated successfully"})
}

// writeStoreError maps store sentinels onto HTTP statuses: missing property
// or room is 404, anything else is a 500 with the message as diagnostic.
func (h *Handler) writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrPropertyNotFound) || errors.Is(err, store.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// splitList splits a comma-separated list, trimming whitespace around each
// element. Empty elements survive so that length mismatches stay visible.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
