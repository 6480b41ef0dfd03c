package devices

import (
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/metadata"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"
)

type DeviceRepository interface {
	GetDevice(id int) (*models.Device, error)
	FindByInventoryNumber(inventoryNumber string) (*models.Device, error)
	ListDevices(filter models.DeviceFilter) ([]models.Device, error)
	SerialNumberExists(serialNumber string, excludeID int) (bool, error)
	InventoryNumberExists(inventoryNumber string, excludeID int) (bool, error)
	ListInventoryNumbers(companyID, deviceTypeID int) ([]string, error)
	InsertDevice(req models.DeviceRequest, inventoryNumber string) (*models.Device, error)
	UpdateDevice(id int, patch models.DevicePatch) (*models.Device, error)
	DeleteDevice(id int) error
}

// CatalogLookup resolves the reference data a device points at.
type CatalogLookup interface {
	GetCompany(id int) (*models.Company, error)
	GetDeviceType(id int) (*models.DeviceType, error)
	GetBrand(id int) (*models.Brand, error)
	GetModel(id int) (*models.Model, error)
	GetWarehouse(id int) (*models.Warehouse, error)
}

type EmployeeLookup interface {
	GetEmployee(id int) (*models.Employee, error)
}

type DeviceService struct {
	repo      DeviceRepository
	catalog   CatalogLookup
	employees EmployeeLookup
}

func NewService(repo DeviceRepository, catalog CatalogLookup, employees EmployeeLookup) *DeviceService {
	return &DeviceService{repo: repo, catalog: catalog, employees: employees}
}

func (s *DeviceService) GetDevice(id int) (*models.Device, error) {
	return s.repo.GetDevice(id)
}

func (s *DeviceService) GetDeviceByInventoryNumber(inventoryNumber string) (*models.Device, error) {
	return s.repo.FindByInventoryNumber(inventoryNumber)
}

func (s *DeviceService) ListDevices(filter models.DeviceFilter) ([]models.Device, error) {
	if filter.LocationType != nil && !filter.LocationType.IsValid() {
		return nil, custom_error.NewInvalidOperation("Location type %s is not valid", *filter.LocationType)
	}
	return s.repo.ListDevices(filter)
}

func (s *DeviceService) CreateDevice(req models.DeviceRequest) (*models.Device, error) {
	if err := req.Custody.Validate(); err != nil {
		return nil, custom_error.NewInvalidOperation("%s", err.Error())
	}

	company, err := s.catalog.GetCompany(req.CompanyID)
	if err != nil {
		return nil, err
	}
	deviceType, err := s.catalog.GetDeviceType(req.DeviceTypeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetBrand(req.BrandID); err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetModel(req.ModelID); err != nil {
		return nil, err
	}

	if err := s.validateCustodyTarget(req.Custody); err != nil {
		return nil, err
	}

	exists, err := s.repo.SerialNumberExists(req.SerialNumber, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, custom_error.NewConflict("Device with this serial number already exists")
	}

	inventoryNumber, err := s.resolveInventoryNumber(req, company.Code, deviceType.Code)
	if err != nil {
		return nil, err
	}

	return s.repo.InsertDevice(req, inventoryNumber)
}

// resolveInventoryNumber takes the caller-supplied number when present,
// otherwise generates the next one for the company/device-type pair.
func (s *DeviceService) resolveInventoryNumber(req models.DeviceRequest, companyCode, deviceTypeCode string) (string, error) {
	if req.InventoryNumber != nil && *req.InventoryNumber != "" {
		exists, err := s.repo.InventoryNumberExists(*req.InventoryNumber, 0)
		if err != nil {
			return "", err
		}
		if exists {
			return "", custom_error.NewConflict("Device with this inventory number already exists")
		}
		return *req.InventoryNumber, nil
	}

	existing, err := s.repo.ListInventoryNumbers(req.CompanyID, req.DeviceTypeID)
	if err != nil {
		return "", err
	}

	return metadata.Generate(companyCode, deviceTypeCode, existing), nil
}

func (s *DeviceService) validateCustodyTarget(custody models.Custody) error {
	switch custody.Type {
	case models.LocationTypeWarehouse:
		_, err := s.catalog.GetWarehouse(custody.ID)
		return err
	case models.LocationTypeEmployee:
		_, err := s.employees.GetEmployee(custody.ID)
		return err
	default:
		return custom_error.NewInvalidOperation("Location type %s is not valid", custody.Type)
	}
}

func (s *DeviceService) UpdateDevice(id int, patch models.DevicePatch) (*models.Device, error) {
	device, err := s.repo.GetDevice(id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return device, nil
	}

	if patch.CompanyID != nil {
		if _, err := s.catalog.GetCompany(*patch.CompanyID); err != nil {
			return nil, err
		}
	}
	if patch.DeviceTypeID != nil {
		if _, err := s.catalog.GetDeviceType(*patch.DeviceTypeID); err != nil {
			return nil, err
		}
	}
	if patch.BrandID != nil {
		if _, err := s.catalog.GetBrand(*patch.BrandID); err != nil {
			return nil, err
		}
	}
	if patch.ModelID != nil {
		if _, err := s.catalog.GetModel(*patch.ModelID); err != nil {
			return nil, err
		}
	}

	if patch.SerialNumber != nil {
		exists, err := s.repo.SerialNumberExists(*patch.SerialNumber, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, custom_error.NewConflict("Device with this serial number already exists")
		}
	}
	if patch.InventoryNumber != nil {
		exists, err := s.repo.InventoryNumberExists(*patch.InventoryNumber, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, custom_error.NewConflict("Device with this inventory number already exists")
		}
	}

	return s.repo.UpdateDevice(id, patch)
}

func (s *DeviceService) DeleteDevice(id int) error {
	if _, err := s.repo.GetDevice(id); err != nil {
		return err
	}

	return s.repo.DeleteDevice(id)
}
