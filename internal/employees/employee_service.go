package employees

import (
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"
)

type EmployeeRepository interface {
	GetEmployee(id int) (*models.Employee, error)
	ListEmployees(offset, limit int) ([]models.Employee, error)
	FindByPhoneExtension(extension string, excludeID int) (*models.Employee, error)
	InsertEmployee(req models.EmployeeRequest) (*models.Employee, error)
	UpdateEmployee(id int, patch models.EmployeePatch) (*models.Employee, error)
	DeleteEmployee(id int) error
}

// DeviceHoldings answers what a custody target currently holds; backed by
// the device registry.
type DeviceHoldings interface {
	CountDevicesAt(custody models.Custody) (int, error)
	ListDevicesAt(custody models.Custody) ([]models.Device, error)
}

type EmployeeService struct {
	repo     EmployeeRepository
	holdings DeviceHoldings
}

func NewService(repo EmployeeRepository, holdings DeviceHoldings) *EmployeeService {
	return &EmployeeService{repo: repo, holdings: holdings}
}

func (s *EmployeeService) GetEmployee(id int) (*models.Employee, error) {
	return s.repo.GetEmployee(id)
}

func (s *EmployeeService) ListEmployees(offset, limit int) ([]models.Employee, error) {
	return s.repo.ListEmployees(offset, limit)
}

func (s *EmployeeService) CreateEmployee(req models.EmployeeRequest) (*models.Employee, error) {
	existing, err := s.repo.FindByPhoneExtension(req.PhoneExtension, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, custom_error.NewConflict(
			"Phone extension %s is already assigned to employee: %s (ID: %d)",
			req.PhoneExtension, existing.FullName, existing.ID,
		)
	}

	return s.repo.InsertEmployee(req)
}

func (s *EmployeeService) UpdateEmployee(id int, patch models.EmployeePatch) (*models.Employee, error) {
	if _, err := s.repo.GetEmployee(id); err != nil {
		return nil, err
	}

	if patch.PhoneExtension != nil {
		existing, err := s.repo.FindByPhoneExtension(*patch.PhoneExtension, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, custom_error.NewConflict(
				"Phone extension %s is already assigned to employee: %s (ID: %d)",
				*patch.PhoneExtension, existing.FullName, existing.ID,
			)
		}
	}

	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, custom_error.NewInvalidOperation("Employee status %s is not valid", *patch.Status)
		}
		// Firing is blocked while the employee still holds devices.
		if *patch.Status == models.EmployeeStatusFired {
			count, err := s.holdings.CountDevicesAt(models.EmployeeRef(id))
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, custom_error.NewInvalidOperation(
					"Cannot fire employee: employee has %d device(s) assigned. Please move devices first.", count,
				)
			}
		}
	}

	return s.repo.UpdateEmployee(id, patch)
}

func (s *EmployeeService) DeleteEmployee(id int) error {
	if _, err := s.repo.GetEmployee(id); err != nil {
		return err
	}

	count, err := s.holdings.CountDevicesAt(models.EmployeeRef(id))
	if err != nil {
		return err
	}
	if count > 0 {
		return custom_error.NewInvalidOperation(
			"Cannot delete employee: employee has %d device(s) assigned. Please move devices first.", count,
		)
	}

	return s.repo.DeleteEmployee(id)
}

// EmployeeDevices lists the devices currently in the employee's custody.
func (s *EmployeeService) EmployeeDevices(id int) ([]models.Device, error) {
	if _, err := s.repo.GetEmployee(id); err != nil {
		return nil, err
	}

	return s.holdings.ListDevicesAt(models.EmployeeRef(id))
}
