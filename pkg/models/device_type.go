package models

// DeviceType classifies devices; its two-digit code is the second segment
// of generated inventory numbers, e.g. "02".
type DeviceType struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Code        string  `json:"code" db:"code"`
	Description *string `json:"description" db:"description"`
}

type DeviceTypeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required,max=2"`
	Description *string `json:"description"`
}

type DeviceTypePatch struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}
