package models

import "time"

// Device is the canonical record of a physical asset. Custody is mutated
// exclusively by the movement ledger, never through the update endpoint.
type Device struct {
	ID              int        `json:"id"`
	CompanyID       int        `json:"company_id"`
	DeviceTypeID    int        `json:"device_type_id"`
	BrandID         int        `json:"brand_id"`
	ModelID         int        `json:"model_id"`
	SerialNumber    string     `json:"serial_number"`
	InventoryNumber string     `json:"inventory_number"`
	Custody         Custody    `json:"current_location"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// FlatDeviceRecord is the scan target for device rows; the location pair is
// folded into the Custody union before leaving the repository.
type FlatDeviceRecord struct {
	ID                  int        `db:"id"`
	CompanyID           int        `db:"company_id"`
	DeviceTypeID        int        `db:"device_type_id"`
	BrandID             int        `db:"brand_id"`
	ModelID             int        `db:"model_id"`
	SerialNumber        string     `db:"serial_number"`
	InventoryNumber     string     `db:"inventory_number"`
	CurrentLocationType string     `db:"current_location_type"`
	CurrentLocationID   int        `db:"current_location_id"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           *time.Time `db:"updated_at"`
}

func (f *FlatDeviceRecord) TransformToDevice() Device {
	return Device{
		ID:              f.ID,
		CompanyID:       f.CompanyID,
		DeviceTypeID:    f.DeviceTypeID,
		BrandID:         f.BrandID,
		ModelID:         f.ModelID,
		SerialNumber:    f.SerialNumber,
		InventoryNumber: f.InventoryNumber,
		Custody: Custody{
			Type: LocationType(f.CurrentLocationType),
			ID:   f.CurrentLocationID,
		},
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

type DeviceRequest struct {
	CompanyID       int     `json:"company_id" binding:"required"`
	DeviceTypeID    int     `json:"device_type_id" binding:"required"`
	BrandID         int     `json:"brand_id" binding:"required"`
	ModelID         int     `json:"model_id" binding:"required"`
	SerialNumber    string  `json:"serial_number" binding:"required"`
	InventoryNumber *string `json:"inventory_number"`
	Custody         Custody `json:"current_location" binding:"required"`
}

// DevicePatch carries only the fields present in the update payload.
// Custody is deliberately absent: location changes go through movements.
type DevicePatch struct {
	CompanyID       *int    `json:"company_id"`
	DeviceTypeID    *int    `json:"device_type_id"`
	BrandID         *int    `json:"brand_id"`
	ModelID         *int    `json:"model_id"`
	SerialNumber    *string `json:"serial_number"`
	InventoryNumber *string `json:"inventory_number"`
}

func (p DevicePatch) IsEmpty() bool {
	return p.CompanyID == nil && p.DeviceTypeID == nil && p.BrandID == nil &&
		p.ModelID == nil && p.SerialNumber == nil && p.InventoryNumber == nil
}

// DeviceFilter narrows device listings; zero values mean "no filter".
type DeviceFilter struct {
	DeviceTypeID *int
	BrandID      *int
	LocationType *LocationType
	LocationID   *int
	Offset       int
	Limit        int
}
