package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"workorders/internal/model"
	"workorders/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	reportsDir := filepath.Join(dir, "reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		t.Fatalf("mkdir reports: %v", err)
	}

	st, err := store.New(filepath.Join(dir, "uploads"), filepath.Join(dir, "workorders.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	h := NewHandler(st, model.NewPropertyDirectory(nil), reportsDir)
	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	return r, st, reportsDir
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func listOrders(t *testing.T, r *gin.Engine, code string) []model.WorkOrder {
	t.Helper()

	w := doJSON(t, r, http.MethodGet, "/api/work-orders/"+code, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		WorkOrders []model.WorkOrder `json:"work_orders"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	return resp.WorkOrders
}

func TestCreateAndListWorkOrders(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/work-orders", map[string]string{
		"property_code":   "NY198",
		"room_numbers":    "101,102",
		"work_orders":     "Fix sink,Replace bulb",
		"completion_date": "2025-03-01",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}

	orders := listOrders(t, r, "NY198")
	if len(orders) != 2 {
		t.Fatalf("len(orders)=%d, want 2", len(orders))
	}
	if orders[0].RoomNumber != "101" || orders[0].WorkOrder != "Fix sink" ||
		orders[0].Status != "Pending" || orders[0].BestRoom != "No" {
		t.Fatalf("orders[0]=%+v", orders[0])
	}
	if orders[1].RoomNumber != "102" || orders[1].WorkOrder != "Replace bulb" {
		t.Fatalf("orders[1]=%+v", orders[1])
	}
}

func TestCreateWorkOrdersValidation(t *testing.T) {
	r, _, _ := newTestRouter(t)

	// Two rooms, three orders.
	w := doJSON(t, r, http.MethodPost, "/api/work-orders", map[string]string{
		"property_code":   "NY198",
		"room_numbers":    "101,102",
		"work_orders":     "a,b,c",
		"completion_date": "2025-03-01",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("mismatch status=%d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/work-orders", map[string]string{
		"property_code":   "NY198",
		"room_numbers":    "101",
		"work_orders":     "a",
		"completion_date": "13-2025-01",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date status=%d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/work-orders", map[string]string{
		"property_code": "NY198",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields status=%d, want 400", w.Code)
	}
}

func TestListUnknownPropertyIsEmpty(t *testing.T) {
	r, _, _ := newTestRouter(t)

	if orders := listOrders(t, r, "ZZ999"); len(orders) != 0 {
		t.Fatalf("orders=%+v, want empty", orders)
	}
}

func TestRemoveWorkOrder(t *testing.T) {
	r, _, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/work-orders", map[string]string{
		"property_code":   "NY198",
		"room_numbers":    "101,102",
		"work_orders":     "Fix sink,Replace bulb",
		"completion_date": "2025-03-01",
	})

	w := doJSON(t, r, http.MethodPost, "/api/remove-work-order", map[string]string{
		"property_code": "NY198",
		"room_number":   "101",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("remove status=%d body=%s", w.Code, w.Body.String())
	}

	orders := listOrders(t, r, "NY198")
	if len(orders) != 1 || orders[0].RoomNumber != "102" {
		t.Fatalf("orders=%+v, want only room 102", orders)
	}
}

func TestRemoveWorkOrderNotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/remove-work-order", map[string]string{
		"property_code": "NY198",
		"room_number":   "101",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing store status=%d, want 404", w.Code)
	}

	doJSON(t, r, http.MethodPost, "/api/work-orders", map[string]string{
		"property_code":   "NY198",
		"room_numbers":    "101",
		"work_orders":     "Fix sink",
		"completion_date": "2025-03-01",
	})
	w = doJSON(t, r, http.MethodPost, "/api/remove-work-order", map[string]string{
		"property_code": "NY198",
		"room_number":   "999",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing room status=%d, want 404", w.Code)
	}
}

func TestEditWorkOrder(t *testing.T) {
	r, _, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/work-orders", map[string]string{
		"property_code":   "NY198",
		"room_numbers":    "101",
		"work_orders":     "Fix sink",
		"completion_date": "2025-03-01",
	})

	w := doJSON(t, r, http.MethodPost, "/api/edit-work-order", map[string]string{
		"property_code":   "NY198",
		"room_number":     "101",
		"work_order":      "Replace faucet",
		"completion_date": "2025-05-20",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("edit status=%d body=%s", w.Code, w.Body.String())
	}

	orders := listOrders(t, r, "NY198")
	if orders[0].WorkOrder != "Replace faucet" || orders[0].CompletionDate != "2025-05-20" {
		t.Fatalf("orders[0]=%+v", orders[0])
	}

	w = doJSON(t, r, http.MethodPost, "/api/edit-work-order", map[string]string{
		"property_code": "NY198",
		"room_number":   "101",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields status=%d, want 400", w.Code)
	}
}

func TestUpdateRoomStatus(t *testing.T) {
	r, _, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/work-orders", map[string]string{
		"property_code":   "NY198",
		"room_numbers":    "101",
		"work_orders":     "Fix sink",
		"completion_date": "2025-03-01",
	})

	w := doJSON(t, r, http.MethodPost, "/api/update-room-status", map[string]string{
		"property_code": "NY198",
		"room_number":   "101",
		"status":        "Completed",
		"best_room":     "Yes",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", w.Code, w.Body.String())
	}

	orders := listOrders(t, r, "NY198")
	if orders[0].Status != "Completed" || orders[0].BestRoom != "Yes" {
		t.Fatalf("orders[0]=%+v", orders[0])
	}

	// best_room defaults to No when omitted.
	w = doJSON(t, r, http.MethodPost, "/api/update-room-status", map[string]string{
		"property_code": "NY198",
		"room_number":   "101",
		"status":        "Pending",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", w.Code, w.Body.String())
	}
	orders = listOrders(t, r, "NY198")
	if orders[0].BestRoom != "No" {
		t.Fatalf("BestRoom=%q, want No", orders[0].BestRoom)
	}
}
