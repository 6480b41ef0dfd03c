package movements

import (
	"testing"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) GetMovement(id int) (*models.Movement, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movement), args.Error(1)
}

func (m *MockMovementRepository) ListMovements(filter models.MovementFilter) ([]models.Movement, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Movement), args.Error(1)
}

func (m *MockMovementRepository) RecordMove(deviceID int, from models.Custody, to models.Custody, movedBy int) (*models.Movement, error) {
	args := m.Called(deviceID, from, to, movedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movement), args.Error(1)
}

type MockDeviceRegistry struct {
	mock.Mock
}

func (m *MockDeviceRegistry) GetDevice(id int) (*models.Device, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Device), args.Error(1)
}

func (m *MockDeviceRegistry) HasInventoryNumberAt(custody models.Custody, inventoryNumber string, excludeDeviceID int) (bool, error) {
	args := m.Called(custody, inventoryNumber, excludeDeviceID)
	return args.Bool(0), args.Error(1)
}

type MockWarehouseLookup struct {
	mock.Mock
}

func (m *MockWarehouseLookup) GetWarehouse(id int) (*models.Warehouse, error) {
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

func newServiceWithMocks() (*MovementService, *MockMovementRepository, *MockDeviceRegistry, *MockWarehouseLookup, *MockEmployeeLookup) {
	repo := new(MockMovementRepository)
	devices := new(MockDeviceRegistry)
	warehouses := new(MockWarehouseLookup)
	employees := new(MockEmployeeLookup)
	return NewService(repo, devices, warehouses, employees), repo, devices, warehouses, employees
}

func deviceAtWarehouse() *models.Device {
	return &models.Device{
		ID:              7,
		InventoryNumber: "WWP-02/0005",
		Custody:         models.WarehouseRef(1),
	}
}

func TestMoveToEmployee(t *testing.T) {
	service, repo, devices, _, employees := newServiceWithMocks()

	device := deviceAtWarehouse()
	to := models.EmployeeRef(3)

	devices.On("GetDevice", 7).Return(device, nil)
	employees.On("GetEmployee", 3).Return(&models.Employee{ID: 3, Status: models.EmployeeStatusActive}, nil)
	devices.On("HasInventoryNumberAt", to, "WWP-02/0005", 7).Return(false, nil)
	repo.On("RecordMove", 7, device.Custody, to, 42).
		Return(&models.Movement{ID: 100, DeviceID: 7, To: to, MovedBy: 42}, nil)

	movement, err := service.Move(models.MovementRequest{DeviceID: 7, To: to}, 42)

	assert.NoError(t, err)
	assert.Equal(t, 100, movement.ID)
	assert.Equal(t, to, movement.To)
	repo.AssertExpectations(t)
}

func TestMoveToSameLocation(t *testing.T) {
	service, repo, devices, _, _ := newServiceWithMocks()

	devices.On("GetDevice", 7).Return(deviceAtWarehouse(), nil)

	_, err := service.Move(models.MovementRequest{DeviceID: 7, To: models.WarehouseRef(1)}, 42)

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
	assert.EqualError(t, err, "Device is already in that location")
	repo.AssertNotCalled(t, "RecordMove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveToFiredEmployee(t *testing.T) {
	service, repo, devices, _, employees := newServiceWithMocks()

	devices.On("GetDevice", 7).Return(deviceAtWarehouse(), nil)
	employees.On("GetEmployee", 3).Return(&models.Employee{ID: 3, Status: models.EmployeeStatusFired}, nil)

	_, err := service.Move(models.MovementRequest{DeviceID: 7, To: models.EmployeeRef(3)}, 42)

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
	assert.EqualError(t, err, "Cannot move device to fired employee")
	repo.AssertNotCalled(t, "RecordMove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveToMissingWarehouse(t *testing.T) {
	service, repo, devices, warehouses, _ := newServiceWithMocks()

	devices.On("GetDevice", 7).Return(deviceAtWarehouse(), nil)
	warehouses.On("GetWarehouse", 9).Return(nil, custom_error.NewNotFound("Warehouse not found"))

	_, err := service.Move(models.MovementRequest{DeviceID: 7, To: models.WarehouseRef(9)}, 42)

	assert.Error(t, err)
	assert.True(t, custom_error.IsNotFound(err))
	repo.AssertNotCalled(t, "RecordMove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveInventoryNumberCollisionAtTarget(t *testing.T) {
	service, repo, devices, warehouses, _ := newServiceWithMocks()

	device := deviceAtWarehouse()
	to := models.WarehouseRef(2)

	devices.On("GetDevice", 7).Return(device, nil)
	warehouses.On("GetWarehouse", 2).Return(&models.Warehouse{ID: 2, Name: "Annex"}, nil)
	devices.On("HasInventoryNumberAt", to, "WWP-02/0005", 7).Return(true, nil)

	_, err := service.Move(models.MovementRequest{DeviceID: 7, To: to}, 42)

	assert.Error(t, err)
	assert.True(t, custom_error.IsConflict(err))
	repo.AssertNotCalled(t, "RecordMove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveMissingDevice(t *testing.T) {
	service, _, devices, _, _ := newServiceWithMocks()

	devices.On("GetDevice", 99).Return(nil, custom_error.NewNotFound("Device not found"))

	_, err := service.Move(models.MovementRequest{DeviceID: 99, To: models.WarehouseRef(1)}, 42)

	assert.Error(t, err)
	assert.True(t, custom_error.IsNotFound(err))
}

func TestMoveInvalidLocationType(t *testing.T) {
	service, _, _, _, _ := newServiceWithMocks()

	_, err := service.Move(models.MovementRequest{
		DeviceID: 7,
		To:       models.Custody{Type: "datacenter", ID: 1},
	}, 42)

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
}
