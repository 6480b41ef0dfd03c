package models

import "time"

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusActive, SessionStatusCompleted, SessionStatusCancelled:
		return true
	default:
		return false
	}
}

// InventorySession is one bounded audit exercise. The device population is
// snapshotted at creation time; devices registered afterwards never join the
// session. Once completed or cancelled no record under it may change.
type InventorySession struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Status      SessionStatus `json:"status"`
	CreatedBy   int           `json:"created_by_user_id"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at"`
	DeviceTypes []DeviceType  `json:"device_types"`
}

type InventorySessionRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   *string `json:"description"`
	DeviceTypeIDs []int   `json:"device_type_ids" binding:"required,min=1"`
}

type InventorySessionPatch struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Status      *SessionStatus `json:"status"`
}

// InventoryRecord is one device's check state within one session. Checked
// records carry both stamp fields; unchecked records carry neither.
type InventoryRecord struct {
	ID        int        `json:"id"`
	SessionID int        `json:"inventory_session_id"`
	DeviceID  int        `json:"device_id"`
	Checked   bool       `json:"checked"`
	CheckedAt *time.Time `json:"checked_at"`
	CheckedBy *int       `json:"checked_by_user_id"`
	Notes     *string    `json:"notes"`
}

type InventoryRecordRequest struct {
	DeviceID int     `json:"device_id" binding:"required"`
	Checked  bool    `json:"checked"`
	Notes    *string `json:"notes"`
}

type InventoryRecordPatch struct {
	Checked *bool   `json:"checked"`
	Notes   *string `json:"notes"`
}

// InventoryStatistics summarizes session progress. Progress is rounded to
// two decimal places and reported as 0.0 for an empty session.
type InventoryStatistics struct {
	TotalDevices     int     `json:"total_devices"`
	CheckedDevices   int     `json:"checked_devices"`
	RemainingDevices int     `json:"remaining_devices"`
	ProgressPercent  float64 `json:"progress_percent"`
}
