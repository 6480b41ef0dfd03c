package labels

import (
	"encoding/base64"
	"fmt"

	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/skip2/go-qrcode"
)

// DeviceLookup resolves devices and the catalog names printed on labels.
type DeviceLookup interface {
	GetDevice(id int) (*models.Device, error)
	ListDevices(filter models.DeviceFilter) ([]models.Device, error)
}

type CatalogLookup interface {
	GetCompany(id int) (*models.Company, error)
	GetDeviceType(id int) (*models.DeviceType, error)
	GetBrand(id int) (*models.Brand, error)
	GetModel(id int) (*models.Model, error)
}

// LabelData is everything a printed asset label carries: the inventory
// number both as text and as a QR image.
type LabelData struct {
	DeviceID        int    `json:"device_id"`
	InventoryNumber string `json:"inventory_number"`
	SerialNumber    string `json:"serial_number"`
	Company         string `json:"company"`
	DeviceType      string `json:"device_type"`
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	QRCode          string `json:"qr_code"`
}

type LabelService struct {
	devices DeviceLookup
	catalog CatalogLookup
	size    int
	level   qrcode.RecoveryLevel
}

func NewService(devices DeviceLookup, catalog CatalogLookup) *LabelService {
	return &LabelService{
		devices: devices,
		catalog: catalog,
		size:    256,
		level:   qrcode.Medium,
	}
}

// QRCodePNG renders the device's inventory number as a PNG QR code. The
// encoded payload is the bare inventory number so any scanner can feed it
// straight into the by-inventory lookup endpoint.
func (s *LabelService) QRCodePNG(deviceID int) ([]byte, error) {
	device, err := s.devices.GetDevice(deviceID)
	if err != nil {
		return nil, err
	}

	code, err := qrcode.New(device.InventoryNumber, s.level)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := code.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

func (s *LabelService) LabelData(deviceID int) (*LabelData, error) {
	device, err := s.devices.GetDevice(deviceID)
	if err != nil {
		return nil, err
	}

	return s.buildLabel(device)
}

// PrintSheet builds label data for every requested device; an empty ID list
// means all devices.
func (s *LabelService) PrintSheet(deviceIDs []int) ([]LabelData, error) {
	var devices []models.Device

	if len(deviceIDs) == 0 {
		all, err := s.devices.ListDevices(models.DeviceFilter{})
		if err != nil {
			return nil, err
		}
		devices = all
	} else {
		for _, id := range deviceIDs {
			device, err := s.devices.GetDevice(id)
			if err != nil {
				return nil, err
			}
			devices = append(devices, *device)
		}
	}

	sheet := make([]LabelData, 0, len(devices))
	for i := range devices {
		label, err := s.buildLabel(&devices[i])
		if err != nil {
			return nil, err
		}
		sheet = append(sheet, *label)
	}

	return sheet, nil
}

func (s *LabelService) buildLabel(device *models.Device) (*LabelData, error) {
	company, err := s.catalog.GetCompany(device.CompanyID)
	if err != nil {
		return nil, err
	}
	deviceType, err := s.catalog.GetDeviceType(device.DeviceTypeID)
	if err != nil {
		return nil, err
	}
	brand, err := s.catalog.GetBrand(device.BrandID)
	if err != nil {
		return nil, err
	}
	model, err := s.catalog.GetModel(device.ModelID)
	if err != nil {
		return nil, err
	}

	pngBytes, err := qrcode.Encode(device.InventoryNumber, s.level, s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return &LabelData{
		DeviceID:        device.ID,
		InventoryNumber: device.InventoryNumber,
		SerialNumber:    device.SerialNumber,
		Company:         company.Name,
		DeviceType:      deviceType.Name,
		Brand:           brand.Name,
		Model:           model.Name,
		QRCode:          "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes),
	}, nil
}
