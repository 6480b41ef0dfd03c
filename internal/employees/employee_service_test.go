package employees

import (
	"testing"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) GetEmployee(id int) (*models.Employee, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployees(offset, limit int) ([]models.Employee, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByPhoneExtension(extension string, excludeID int) (*models.Employee, error) {
	args := m.Called(extension, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) InsertEmployee(req models.EmployeeRequest) (*models.Employee, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) UpdateEmployee(id int, patch models.EmployeePatch) (*models.Employee, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) DeleteEmployee(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockDeviceHoldings struct {
	mock.Mock
}

func (m *MockDeviceHoldings) CountDevicesAt(custody models.Custody) (int, error) {
	args := m.Called(custody)
	return args.Int(0), args.Error(1)
}

func (m *MockDeviceHoldings) ListDevicesAt(custody models.Custody) ([]models.Device, error) {
	args := m.Called(custody)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Device), args.Error(1)
}

func newServiceWithMocks() (*EmployeeService, *MockEmployeeRepository, *MockDeviceHoldings) {
	repo := new(MockEmployeeRepository)
	holdings := new(MockDeviceHoldings)
	return NewService(repo, holdings), repo, holdings
}

func TestCreateEmployeePhoneExtensionConflict(t *testing.T) {
	service, repo, _ := newServiceWithMocks()

	repo.On("FindByPhoneExtension", "1234", 0).
		Return(&models.Employee{ID: 3, FullName: "Aliya Bekova", PhoneExtension: "1234"}, nil)

	_, err := service.CreateEmployee(models.EmployeeRequest{FullName: "Ivan Petrov", PhoneExtension: "1234"})

	assert.Error(t, err)
	assert.True(t, custom_error.IsConflict(err))
	assert.EqualError(t, err, "Phone extension 1234 is already assigned to employee: Aliya Bekova (ID: 3)")
	repo.AssertNotCalled(t, "InsertEmployee", mock.Anything)
}

func TestCreateEmployee(t *testing.T) {
	service, repo, _ := newServiceWithMocks()

	req := models.EmployeeRequest{FullName: "Ivan Petrov", PhoneExtension: "1234"}

	repo.On("FindByPhoneExtension", "1234", 0).Return(nil, nil)
	repo.On("InsertEmployee", req).
		Return(&models.Employee{ID: 1, FullName: "Ivan Petrov", PhoneExtension: "1234", Status: models.EmployeeStatusActive}, nil)

	employee, err := service.CreateEmployee(req)

	assert.NoError(t, err)
	assert.Equal(t, models.EmployeeStatusActive, employee.Status)
	repo.AssertExpectations(t)
}

func TestFireEmployeeWithDevices(t *testing.T) {
	service, repo, holdings := newServiceWithMocks()

	repo.On("GetEmployee", 1).Return(&models.Employee{ID: 1, Status: models.EmployeeStatusActive}, nil)
	holdings.On("CountDevicesAt", models.EmployeeRef(1)).Return(2, nil)

	fired := models.EmployeeStatusFired
	_, err := service.UpdateEmployee(1, models.EmployeePatch{Status: &fired})

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
	assert.EqualError(t, err, "Cannot fire employee: employee has 2 device(s) assigned. Please move devices first.")
	repo.AssertNotCalled(t, "UpdateEmployee", mock.Anything, mock.Anything)
}

func TestFireEmployeeWithoutDevices(t *testing.T) {
	service, repo, holdings := newServiceWithMocks()

	fired := models.EmployeeStatusFired
	patch := models.EmployeePatch{Status: &fired}

	repo.On("GetEmployee", 1).Return(&models.Employee{ID: 1, Status: models.EmployeeStatusActive}, nil)
	holdings.On("CountDevicesAt", models.EmployeeRef(1)).Return(0, nil)
	repo.On("UpdateEmployee", 1, patch).
		Return(&models.Employee{ID: 1, Status: models.EmployeeStatusFired}, nil)

	employee, err := service.UpdateEmployee(1, patch)

	assert.NoError(t, err)
	assert.Equal(t, models.EmployeeStatusFired, employee.Status)
}

func TestDeleteEmployeeWithDevices(t *testing.T) {
	service, repo, holdings := newServiceWithMocks()

	repo.On("GetEmployee", 1).Return(&models.Employee{ID: 1}, nil)
	holdings.On("CountDevicesAt", models.EmployeeRef(1)).Return(1, nil)

	err := service.DeleteEmployee(1)

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
	assert.EqualError(t, err, "Cannot delete employee: employee has 1 device(s) assigned. Please move devices first.")
	repo.AssertNotCalled(t, "DeleteEmployee", mock.Anything)
}

func TestDeleteEmployeeWithoutDevices(t *testing.T) {
	service, repo, holdings := newServiceWithMocks()

	repo.On("GetEmployee", 1).Return(&models.Employee{ID: 1}, nil)
	holdings.On("CountDevicesAt", models.EmployeeRef(1)).Return(0, nil)
	repo.On("DeleteEmployee", 1).Return(nil)

	err := service.DeleteEmployee(1)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestEmployeeDevices(t *testing.T) {
	service, repo, holdings := newServiceWithMocks()

	repo.On("GetEmployee", 1).Return(&models.Employee{ID: 1}, nil)
	holdings.On("ListDevicesAt", models.EmployeeRef(1)).
		Return([]models.Device{{ID: 7, InventoryNumber: "WWP-02/0005"}}, nil)

	devices, err := service.EmployeeDevices(1)

	assert.NoError(t, err)
	assert.Len(t, devices, 1)
}

func TestUpdateEmployeeInvalidStatus(t *testing.T) {
	service, repo, _ := newServiceWithMocks()

	repo.On("GetEmployee", 1).Return(&models.Employee{ID: 1}, nil)

	bogus := models.EmployeeStatus("retired")
	_, err := service.UpdateEmployee(1, models.EmployeePatch{Status: &bogus})

	assert.Error(t, err)
	assert.True(t, custom_error.IsInvalidOperation(err))
}
