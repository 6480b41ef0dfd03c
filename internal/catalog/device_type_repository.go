package catalog

import (
	"fmt"

	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

func (r *Repository) GetDeviceType(id int) (*models.DeviceType, error) {
	var deviceType models.DeviceType

	found, err := r.repository.GoquDBWrapper.
		From("device_types").
		Select("id", "name", "code", "description").
		Where(goqu.Ex{"id": id}).
		Executor().ScanStruct(&deviceType)
	if err != nil {
		return nil, fmt.Errorf("unable to select device type: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("Device type not found")
	}

	return &deviceType, nil
}

func (r *Repository) ListDeviceTypes(offset, limit int) ([]models.DeviceType, error) {
	query := r.repository.GoquDBWrapper.
		From("device_types").
		Select("id", "name", "code", "description").
		Order(goqu.I("id").Asc())

	var deviceTypes []models.DeviceType
	if err := repository.Paginate(query, offset, limit).Executor().ScanStructs(&deviceTypes); err != nil {
		return nil, fmt.Errorf("unable to select device types: %w", err)
	}

	return deviceTypes, nil
}

// CountDeviceTypes reports how many of the given ids exist; session creation
// uses it to reject unknown device types in one round trip.
func (r *Repository) CountDeviceTypes(ids []int) (int, error) {
	var count int

	query := r.repository.GoquDBWrapper.
		From("device_types").
		Select(goqu.COUNT("*")).
		Where(goqu.C("id").In(ids))

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return 0, fmt.Errorf("unable to count device types: %w", err)
	}

	return count, nil
}

func (r *Repository) DeviceTypeExistsByNameOrCode(name, code string, excludeID int) (bool, error) {
	var count int

	query := r.repository.GoquDBWrapper.
		From("device_types").
		Select(goqu.COUNT("*")).
		Where(
			goqu.Or(goqu.Ex{"name": name}, goqu.Ex{"code": code}),
			goqu.C("id").Neq(excludeID),
		)

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("unable to check device type uniqueness: %w", err)
	}

	return count > 0, nil
}

func (r *Repository) DeviceTypeExistsByCode(code string, excludeID int) (bool, error) {
	var count int

	query := r.repository.GoquDBWrapper.
		From("device_types").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"code": code}, goqu.C("id").Neq(excludeID))

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("unable to check device type code uniqueness: %w", err)
	}

	return count > 0, nil
}

func (r *Repository) InsertDeviceType(req models.DeviceTypeRequest) (*models.DeviceType, error) {
	var id int

	query := r.repository.GoquDBWrapper.
		Insert("device_types").
		Rows(goqu.Record{
			"name":        req.Name,
			"code":        req.Code,
			"description": req.Description,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.FromDBError(err, "Device type with this name or code already exists")
	}

	return r.GetDeviceType(id)
}

func (r *Repository) UpdateDeviceType(id int, patch models.DeviceTypePatch) (*models.DeviceType, error) {
	record := goqu.Record{}
	if patch.Name != nil {
		record["name"] = *patch.Name
	}
	if patch.Code != nil {
		record["code"] = *patch.Code
	}
	if patch.Description != nil {
		record["description"] = *patch.Description
	}

	if len(record) > 0 {
		query := r.repository.GoquDBWrapper.
			Update("device_types").
			Set(record).
			Where(goqu.Ex{"id": id})

		if _, err := query.Executor().Exec(); err != nil {
			return nil, custom_error.FromDBError(err, "Device type with this code already exists")
		}
	}

	return r.GetDeviceType(id)
}

func (r *Repository) DeleteDeviceType(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("device_types").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return custom_error.FromDBError(err, "Device type is referenced by existing devices")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFound("Device type not found")
	}

	return nil
}
