package devices

import (
	"testing"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDeviceRepository struct {
	mock.Mock
}

func (m *MockDeviceRepository) GetDevice(id int) (*models.Device, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Device), args.Error(1)
}

func (m *MockDeviceRepository) FindByInventoryNumber(inventoryNumber string) (*models.Device, error) {
	args := m.Called(inventoryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Device), args.Error(1)
}

func (m *MockDeviceRepository) ListDevices(filter models.DeviceFilter) ([]models.Device, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Device), args.Error(1)
}

func (m *MockDeviceRepository) SerialNumberExists(serialNumber string, excludeID int) (bool, error) {
	args := m.Called(serialNumber, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeviceRepository) InventoryNumberExists(inventoryNumber string, excludeID int) (bool, error) {
	args := m.Called(inventoryNumber, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeviceRepository) ListInventoryNumbers(companyID, deviceTypeID int) ([]string, error) {
	args := m.Called(companyID, deviceTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDeviceRepository) InsertDevice(req models.DeviceRequest, inventoryNumber string) (*models.Device, error) {
	args := m.Called(req, inventoryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Device), args.Error(1)
}

func (m *MockDeviceRepository) UpdateDevice(id int, patch models.DevicePatch) (*models.Device, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Device), args.Error(1)
}

func (m *MockDeviceRepository) DeleteDevice(id int) error {
	args := m.Called(id)
	return args.Error(0)
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

func (m *MockCatalogLookup) GetWarehouse(id int) (*models.Warehouse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

type MockEmployeeLookup struct {
	mock.Mock
}

func (m *MockEmployeeLookup) GetEmployee(id int) (*models.Employee, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func newServiceWithMocks() (*DeviceService, *MockDeviceRepository, *MockCatalogLookup, *MockEmployeeLookup) {
	repo := new(MockDeviceRepository)
	catalog := new(MockCatalogLookup)
	employees := new(MockEmployeeLookup)
	return NewService(repo, catalog, employees), repo, catalog, employees
}

func stubCatalogRefs(catalog *MockCatalogLookup) {
	catalog.On("GetCompany", 1).Return(&models.Company{ID: 1, Name: "WWP Logistics", Code: "WWP"}, nil)
	catalog.On("GetDeviceType", 2).Return(&models.DeviceType{ID: 2, Name: "Monitor", Code: "02"}, nil)
	catalog.On("GetBrand", 3).Return(&models.Brand{ID: 3, Name: "Dell"}, nil)
	catalog.On("GetModel", 4).Return(&models.Model{ID: 4, Name: "P2419H", BrandID: 3}, nil)
}

func validDeviceRequest() models.DeviceRequest {
	return models.DeviceRequest{
		CompanyID:    1,
		DeviceTypeID: 2,
		BrandID:      3,
		ModelID:      4,
		SerialNumber: "SN-1001",
		Custody:      models.WarehouseRef(5),
	}
}

func TestCreateDeviceGeneratesInventoryNumber(t *testing.T) {
	service, repo, catalog, _ := newServiceWithMocks()

	stubCatalogRefs(catalog)
	catalog.On("GetWarehouse", 5).Return(&models.Warehouse{ID: 5, Name: "Main"}, nil)

	req := validDeviceRequest()

	repo.On("SerialNumberExists", "SN-1001", 0).Return(false, nil)
	repo.On("ListInventoryNumbers", 1, 2).Return([]string{"WWP-02/0001", "WWP-02/0022", "WWP-01/0099"}, nil)
	repo.On("InsertDevice", req, "WWP-02/0023").
		Return(&models.Device{ID: 10, InventoryNumber: "WWP-02/0023"}, nil)

	device, err := service.CreateDevice(req)

	assert.NoError(t, err)
	assert.Equal(t, "WWP-02/0023", device.InventoryNumber)
	repo.AssertExpectations(t)
}

func TestCreateDeviceWithExplicitInventoryNumber(t *testing.T) {
	service, repo, catalog, _ := newServiceWithMocks()

	stubCatalogRefs(catalog)
	catalog.On("GetWarehouse", 5).Return(&models.Warehouse{ID: 5, Name: "Main"}, nil)

	req := validDeviceRequest()
	number := "LEGACY-77"
	req.InventoryNumber = &number

	repo.On("SerialNumberExists", "SN-1001", 0).Return(false, nil)
	repo.On("InventoryNumberExists", "LEGACY-77", 0).Return(false, nil)
	repo.On("InsertDevice", req, "LEGACY-77").
		Return(&models.Device{ID: 11, InventoryNumber: "LEGACY-77"}, nil)

	device, err := service.CreateDevice(req)

	assert.NoError(t, err)
	assert.Equal(t, "LEGACY-77", device.InventoryNumber)
	repo.AssertNotCalled(t, "ListInventoryNumbers", mock.Anything, mock.Anything)
}

func TestCreateDeviceSerialConflict(t *testing.T) {
	service, repo, catalog, _ := newServiceWithMocks()

	stubCatalogRefs(catalog)
	catalog.On("GetWarehouse", 5).Return(&models.Warehouse{ID: 5, Name: "Main"}, nil)

	repo.On("SerialNumberExists", "SN-1001", 0).Return(true, nil)

	_, err := service.CreateDevice(validDeviceRequest())

	assert.Error(t, err)
	assert.True(t, custom_error.IsConflict(err))
	assert.EqualError(t, err, "Device with this serial number already exists")
	repo.AssertNotCalled(t, "InsertDevice", mock.Anything, mock.Anything)
}

func TestCreateDeviceInventoryNumberConflict(t *testing.T) {
	service, repo, catalog, _ := newServiceWithMocks()

	stubCatalogRefs(catalog)
	catalog.On("GetWarehouse", 5).Return(&models.Warehouse{ID: 5, Name: "Main"}, nil)

	req := validDeviceRequest()
	number := "WWP-02/0001"
	req.InventoryNumber = &number

	repo.On("SerialNumberExists", "SN-1001", 0).Return(false, nil)
	repo.On("InventoryNumberExists", "WWP-02/0001", 0).Return(true, nil)

	_, err := service.CreateDevice(req)

	assert.Error(t, err)
	assert.True(t, custom_error.IsConflict(err))
	assert.EqualError(t, err, "Device with this inventory number already exists")
}

func TestCreateDeviceCompanyNotFound(t *testing.T) {
	service, repo, catalog, _ := newServiceWithMocks()

	catalog.On("GetCompany", 1).Return(nil, custom_error.NewNotFound("Company not found"))

	_, err := service.CreateDevice(validDeviceRequest())

	assert.Error(t, err)
	assert.True(t, custom_error.IsNotFound(err))
	repo.AssertNotCalled(t, "InsertDevice", mock.Anything, mock.Anything)
}

func TestCreateDeviceEmployeeCustodyNotFound(t *testing.T) {
	service, _, catalog, employees := newServiceWithMocks()

	stubCatalogRefs(catalog)
	employees.On("GetEmployee", 9).Return(nil, custom_error.NewNotFound("Employee not found"))

	req := validDeviceRequest()
	req.Custody = models.EmployeeRef(9)

	_, err := service.CreateDevice(req)

	assert.Error(t, err)
	assert.True(t, custom_error.IsNotFound(err))
	assert.EqualError(t, err, "Employee not found")
}

func TestCreateDeviceInvalidLocationType(t *testing.T) {
	service, _, _, _ := newServiceWithMocks()

	req := validDeviceRequest()
	req.Custody = models.Custody{Type: "datacenter", ID: 1}

	_, err := service.CreateDevice(req)

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
}

func TestUpdateDeviceSerialConflict(t *testing.T) {
	service, repo, _, _ := newServiceWithMocks()

	repo.On("GetDevice", 10).Return(&models.Device{ID: 10, SerialNumber: "SN-1001"}, nil)
	repo.On("SerialNumberExists", "SN-2002", 10).Return(true, nil)

	serial := "SN-2002"
	_, err := service.UpdateDevice(10, models.DevicePatch{SerialNumber: &serial})

	assert.Error(t, err)
	assert.True(t, custom_error.IsConflict(err))
	repo.AssertNotCalled(t, "UpdateDevice", mock.Anything, mock.Anything)
}

func TestUpdateDeviceEmptyPatchReturnsCurrent(t *testing.T) {
	service, repo, _, _ := newServiceWithMocks()

	current := &models.Device{ID: 10, SerialNumber: "SN-1001"}
	repo.On("GetDevice", 10).Return(current, nil)

	device, err := service.UpdateDevice(10, models.DevicePatch{})

	assert.NoError(t, err)
	assert.Equal(t, current, device)
	repo.AssertNotCalled(t, "UpdateDevice", mock.Anything, mock.Anything)
}

func TestDeleteDeviceNotFound(t *testing.T) {
	service, repo, _, _ := newServiceWithMocks()

	repo.On("GetDevice", 99).Return(nil, custom_error.NewNotFound("Device not found"))

	err := service.DeleteDevice(99)

	assert.Error(t, err)
	assert.True(t, custom_error.IsNotFound(err))
	repo.AssertNotCalled(t, "DeleteDevice", mock.Anything)
}
