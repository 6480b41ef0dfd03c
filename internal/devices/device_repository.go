package devices

import (
	"fmt"
	"time"

	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type DevicesRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *DevicesRepository {
	return &DevicesRepository{repository: r}
}

var deviceColumns = []interface{}{
	"id", "company_id", "device_type_id", "brand_id", "model_id",
	"serial_number", "inventory_number",
	"current_location_type", "current_location_id",
	"created_at", "updated_at",
}

func (r *DevicesRepository) getDeviceQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From("devices").
		Select(deviceColumns...)
}

func (r *DevicesRepository) fetchDeviceByCondition(condition goqu.Expression, notFoundMessage string) (*models.Device, error) {
	var flat models.FlatDeviceRecord

	found, err := r.getDeviceQuery().Where(condition).Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select device: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("%s", notFoundMessage)
	}

	device := flat.TransformToDevice()
	return &device, nil
}

func (r *DevicesRepository) GetDevice(id int) (*models.Device, error) {
	return r.fetchDeviceByCondition(goqu.Ex{"id": id}, "Device not found")
}

// FindByInventoryNumber serves the QR-scan lookup.
func (r *DevicesRepository) FindByInventoryNumber(inventoryNumber string) (*models.Device, error) {
	return r.fetchDeviceByCondition(
		goqu.Ex{"inventory_number": inventoryNumber},
		fmt.Sprintf("Device with inventory number %s not found", inventoryNumber),
	)
}

func (r *DevicesRepository) ListDevices(filter models.DeviceFilter) ([]models.Device, error) {
	query := r.getDeviceQuery().Order(goqu.I("id").Asc())

	if filter.DeviceTypeID != nil {
		query = query.Where(goqu.Ex{"device_type_id": *filter.DeviceTypeID})
	}
	if filter.BrandID != nil {
		query = query.Where(goqu.Ex{"brand_id": *filter.BrandID})
	}
	if filter.LocationType != nil {
		query = query.Where(goqu.Ex{"current_location_type": string(*filter.LocationType)})
	}
	if filter.LocationID != nil {
		query = query.Where(goqu.Ex{"current_location_id": *filter.LocationID})
	}

	var flatDevices []models.FlatDeviceRecord
	err := repository.Paginate(query, filter.Offset, filter.Limit).Executor().ScanStructs(&flatDevices)
	if err != nil {
		return nil, fmt.Errorf("unable to select devices: %w", err)
	}

	devices := make([]models.Device, 0, len(flatDevices))
	for _, flat := range flatDevices {
		devices = append(devices, flat.TransformToDevice())
	}

	return devices, nil
}

func (r *DevicesRepository) SerialNumberExists(serialNumber string, excludeID int) (bool, error) {
	return r.countDevices(goqu.Ex{"serial_number": serialNumber}, excludeID)
}

func (r *DevicesRepository) InventoryNumberExists(inventoryNumber string, excludeID int) (bool, error) {
	return r.countDevices(goqu.Ex{"inventory_number": inventoryNumber}, excludeID)
}

func (r *DevicesRepository) countDevices(condition goqu.Ex, excludeID int) (bool, error) {
	var count int

	query := r.repository.GoquDBWrapper.
		From("devices").
		Select(goqu.COUNT("*")).
		Where(condition, goqu.C("id").Neq(excludeID))

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("unable to check device uniqueness: %w", err)
	}

	return count > 0, nil
}

// ListInventoryNumbers feeds the inventory-number generator with every
// number registered for the company/device-type pair.
func (r *DevicesRepository) ListInventoryNumbers(companyID, deviceTypeID int) ([]string, error) {
	var numbers []string

	query := r.repository.GoquDBWrapper.
		From("devices").
		Select("inventory_number").
		Where(goqu.Ex{
			"company_id":     companyID,
			"device_type_id": deviceTypeID,
		})

	if err := query.Executor().ScanVals(&numbers); err != nil {
		return nil, fmt.Errorf("unable to select inventory numbers: %w", err)
	}

	return numbers, nil
}

func (r *DevicesRepository) CountDevicesAt(custody models.Custody) (int, error) {
	var count int

	query := r.repository.GoquDBWrapper.
		From("devices").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{
			"current_location_type": string(custody.Type),
			"current_location_id":   custody.ID,
		})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return 0, fmt.Errorf("unable to count devices at location: %w", err)
	}

	return count, nil
}

func (r *DevicesRepository) ListDevicesAt(custody models.Custody) ([]models.Device, error) {
	locationType := custody.Type
	return r.ListDevices(models.DeviceFilter{
		LocationType: &locationType,
		LocationID:   &custody.ID,
	})
}

// HasInventoryNumberAt guards the movement data-integrity edge case: no
// other device at the target custody may carry the same inventory number.
func (r *DevicesRepository) HasInventoryNumberAt(custody models.Custody, inventoryNumber string, excludeDeviceID int) (bool, error) {
	var count int

	query := r.repository.GoquDBWrapper.
		From("devices").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{
			"current_location_type": string(custody.Type),
			"current_location_id":   custody.ID,
			"inventory_number":      inventoryNumber,
		}, goqu.C("id").Neq(excludeDeviceID))

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("unable to check inventory number at location: %w", err)
	}

	return count > 0, nil
}

func (r *DevicesRepository) ListDeviceIDsByTypes(deviceTypeIDs []int) ([]int, error) {
	var ids []int

	query := r.repository.GoquDBWrapper.
		From("devices").
		Select("id").
		Where(goqu.C("device_type_id").In(deviceTypeIDs)).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanVals(&ids); err != nil {
		return nil, fmt.Errorf("unable to select devices by type: %w", err)
	}

	return ids, nil
}

func (r *DevicesRepository) InsertDevice(req models.DeviceRequest, inventoryNumber string) (*models.Device, error) {
	var id int

	query := r.repository.GoquDBWrapper.
		Insert("devices").
		Rows(goqu.Record{
			"company_id":            req.CompanyID,
			"device_type_id":        req.DeviceTypeID,
			"brand_id":              req.BrandID,
			"model_id":              req.ModelID,
			"serial_number":         req.SerialNumber,
			"inventory_number":      inventoryNumber,
			"current_location_type": string(req.Custody.Type),
			"current_location_id":   req.Custody.ID,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.FromDBError(err, "Device with this serial or inventory number already exists")
	}

	return r.GetDevice(id)
}

func (r *DevicesRepository) UpdateDevice(id int, patch models.DevicePatch) (*models.Device, error) {
	record := goqu.Record{}
	if patch.CompanyID != nil {
		record["company_id"] = *patch.CompanyID
	}
	if patch.DeviceTypeID != nil {
		record["device_type_id"] = *patch.DeviceTypeID
	}
	if patch.BrandID != nil {
		record["brand_id"] = *patch.BrandID
	}
	if patch.ModelID != nil {
		record["model_id"] = *patch.ModelID
	}
	if patch.SerialNumber != nil {
		record["serial_number"] = *patch.SerialNumber
	}
	if patch.InventoryNumber != nil {
		record["inventory_number"] = *patch.InventoryNumber
	}

	if len(record) > 0 {
		record["updated_at"] = time.Now().UTC()

		query := r.repository.GoquDBWrapper.
			Update("devices").
			Set(record).
			Where(goqu.Ex{"id": id})

		if _, err := query.Executor().Exec(); err != nil {
			return nil, custom_error.FromDBError(err, "Device with this serial or inventory number already exists")
		}
	}

	return r.GetDevice(id)
}

func (r *DevicesRepository) DeleteDevice(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("devices").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("unable to delete device: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFound("Device not found")
	}

	return nil
}
