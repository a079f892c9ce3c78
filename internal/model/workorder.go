package model

// StatusPending is the status assigned to newly created work orders.
const StatusPending = "Pending"

// BestRoomDefault is what an absent best-room cell normalizes to.
const BestRoomDefault = "No"

// DateLayout is the canonical completion-date form (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// WorkOrder is one row of a property's work-order table.
type WorkOrder struct {
	RoomNumber     string `json:"room_number"`
	WorkOrder      string `json:"work_order"`
	CompletionDate string `json:"completion_date"`
	Status         string `json:"status"`
	BestRoom       string `json:"best_room"`
}

// ReportEntry is one logged report generation.
type ReportEntry struct {
	ID           string `json:"id"`
	PropertyCode string `json:"propertyCode"`
	RowCount     int    `json:"rowCount"`
	FilePath     string `json:"filePath"`
	GeneratedAt  string `json:"generatedAt"`
}
