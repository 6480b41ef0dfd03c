package movements

import (
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"
)

type MovementRepository interface {
	GetMovement(id int) (*models.Movement, error)
	ListMovements(filter models.MovementFilter) ([]models.Movement, error)
	RecordMove(deviceID int, from models.Custody, to models.Custody, movedBy int) (*models.Movement, error)
}

// DeviceRegistry is the slice of the device repository a move needs: the
// device itself plus the inventory-number collision check at the target.
type DeviceRegistry interface {
	GetDevice(id int) (*models.Device, error)
	HasInventoryNumberAt(custody models.Custody, inventoryNumber string, excludeDeviceID int) (bool, error)
}

type WarehouseLookup interface {
	GetWarehouse(id int) (*models.Warehouse, error)
}

type EmployeeLookup interface {
	GetEmployee(id int) (*models.Employee, error)
}

type MovementService struct {
	repo       MovementRepository
	devices    DeviceRegistry
	warehouses WarehouseLookup
	employees  EmployeeLookup
}

func NewService(repo MovementRepository, devices DeviceRegistry, warehouses WarehouseLookup, employees EmployeeLookup) *MovementService {
	return &MovementService{
		repo:       repo,
		devices:    devices,
		warehouses: warehouses,
		employees:  employees,
	}
}

func (s *MovementService) GetMovement(id int) (*models.Movement, error) {
	return s.repo.GetMovement(id)
}

func (s *MovementService) ListMovements(filter models.MovementFilter) ([]models.Movement, error) {
	if filter.DeviceID != nil {
		if _, err := s.devices.GetDevice(*filter.DeviceID); err != nil {
			return nil, err
		}
	}

	return s.repo.ListMovements(filter)
}

// Move validates the transfer and appends it to the ledger. movedBy is the
// authenticated user taken from the request token.
func (s *MovementService) Move(req models.MovementRequest, movedBy int) (*models.Movement, error) {
	if err := req.To.Validate(); err != nil {
		return nil, custom_error.NewInvalidOperation("%s", err.Error())
	}

	device, err := s.devices.GetDevice(req.DeviceID)
	if err != nil {
		return nil, err
	}

	if device.Custody.Equal(req.To) {
		return nil, custom_error.NewInvalidOperation("Device is already in that location")
	}

	if err := s.validateTarget(req.To); err != nil {
		return nil, err
	}

	taken, err := s.devices.HasInventoryNumberAt(req.To, device.InventoryNumber, device.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, custom_error.NewConflict(
			"Device with inventory number %s already exists at the target location", device.InventoryNumber,
		)
	}

	return s.repo.RecordMove(device.ID, device.Custody, req.To, movedBy)
}

func (s *MovementService) validateTarget(to models.Custody) error {
	switch to.Type {
	case models.LocationTypeWarehouse:
		_, err := s.warehouses.GetWarehouse(to.ID)
		return err
	case models.LocationTypeEmployee:
		employee, err := s.employees.GetEmployee(to.ID)
		if err != nil {
			return err
		}
		if employee.Status == models.EmployeeStatusFired {
			return custom_error.NewInvalidOperation("Cannot move device to fired employee")
		}
		return nil
	default:
		return custom_error.NewInvalidOperation("Location type %s is not valid", to.Type)
	}
}
