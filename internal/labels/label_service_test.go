package labels

import (
	"strings"
	"testing"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeviceLookup struct {
	mock.Mock
}

func (m *MockDeviceLookup) GetDevice(id int) (*models.Device, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Device), args.Error(1)
}

func (m *MockDeviceLookup) ListDevices(filter models.DeviceFilter) ([]models.Device, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Device), args.Error(1)
}

type MockCatalogLookup struct {
	mock.Mock
}

func (m *MockCatalogLookup) GetCompany(id int) (*models.Company, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *MockCatalogLookup) GetDeviceType(id int) (*models.DeviceType, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeviceType), args.Error(1)
}

func (m *MockCatalogLookup) GetBrand(id int) (*models.Brand, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}

func (m *MockCatalogLookup) GetModel(id int) (*models.Model, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Model), args.Error(1)
}

func sampleDevice() *models.Device {
	return &models.Device{
		ID:              7,
		CompanyID:       1,
		DeviceTypeID:    2,
		BrandID:         3,
		ModelID:         4,
		SerialNumber:    "SN-1001",
		InventoryNumber: "WWP-02/0005",
	}
}

func stubCatalog(catalog *MockCatalogLookup) {
	catalog.On("GetCompany", 1).Return(&models.Company{ID: 1, Name: "WWP Logistics"}, nil)
	catalog.On("GetDeviceType", 2).Return(&models.DeviceType{ID: 2, Name: "Monitor"}, nil)
	catalog.On("GetBrand", 3).Return(&models.Brand{ID: 3, Name: "Dell"}, nil)
	catalog.On("GetModel", 4).Return(&models.Model{ID: 4, Name: "P2419H"}, nil)
}

func TestQRCodePNG(t *testing.T) {
	devices := new(MockDeviceLookup)
	catalog := new(MockCatalogLookup)
	service := NewService(devices, catalog)

	devices.On("GetDevice", 7).Return(sampleDevice(), nil)

	pngBytes, err := service.QRCodePNG(7)
	require.NoError(t, err)
	require.NotEmpty(t, pngBytes)

	// PNG magic number
	assert.Equal(t, byte(0x89), pngBytes[0])
	assert.Equal(t, byte(0x50), pngBytes[1])
	assert.Equal(t, byte(0x4E), pngBytes[2])
	assert.Equal(t, byte(0x47), pngBytes[3])
}

func TestQRCodePNGDeviceNotFound(t *testing.T) {
	devices := new(MockDeviceLookup)
	catalog := new(MockCatalogLookup)
	service := NewService(devices, catalog)

	devices.On("GetDevice", 99).Return(nil, custom_error.NewNotFound("Device not found"))

	_, err := service.QRCodePNG(99)

	assert.Error(t, err)
	assert.True(t, custom_error.IsNotFound(err))
}

func TestLabelData(t *testing.T) {
	devices := new(MockDeviceLookup)
	catalog := new(MockCatalogLookup)
	service := NewService(devices, catalog)

	devices.On("GetDevice", 7).Return(sampleDevice(), nil)
	stubCatalog(catalog)

	label, err := service.LabelData(7)
	require.NoError(t, err)

	assert.Equal(t, "WWP-02/0005", label.InventoryNumber)
	assert.Equal(t, "WWP Logistics", label.Company)
	assert.Equal(t, "Monitor", label.DeviceType)
	assert.Equal(t, "Dell", label.Brand)
	assert.Equal(t, "P2419H", label.Model)
	assert.True(t, strings.HasPrefix(label.QRCode, "data:image/png;base64,"))
}

func TestPrintSheetAllDevices(t *testing.T) {
	devices := new(MockDeviceLookup)
	catalog := new(MockCatalogLookup)
	service := NewService(devices, catalog)

	devices.On("ListDevices", models.DeviceFilter{}).Return([]models.Device{*sampleDevice()}, nil)
	stubCatalog(catalog)

	sheet, err := service.PrintSheet(nil)
	require.NoError(t, err)
	require.Len(t, sheet, 1)
	assert.Equal(t, "WWP-02/0005", sheet[0].InventoryNumber)
	devices.AssertNotCalled(t, "GetDevice", mock.Anything)
}
