package catalog

import (
	"fmt"

	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

func (r *Repository) GetWarehouse(id int) (*models.Warehouse, error) {
	var warehouse models.Warehouse

	found, err := r.repository.GoquDBWrapper.
		From("warehouses").
		Select("id", "name", "address").
		Where(goqu.Ex{"id": id}).
		Executor().ScanStruct(&warehouse)
	if err != nil {
		return nil, fmt.Errorf("unable to select warehouse: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("Warehouse not found")
	}

	return &warehouse, nil
}

func (r *Repository) ListWarehouses(offset, limit int) ([]models.Warehouse, error) {
	query := r.repository.GoquDBWrapper.
		From("warehouses").
		Select("id", "name", "address").
		Order(goqu.I("id").Asc())

	var warehouses []models.Warehouse
	if err := repository.Paginate(query, offset, limit).Executor().ScanStructs(&warehouses); err != nil {
		return nil, fmt.Errorf("unable to select warehouses: %w", err)
	}

	return warehouses, nil
}

func (r *Repository) InsertWarehouse(req models.WarehouseRequest) (*models.Warehouse, error) {
	var id int

	query := r.repository.GoquDBWrapper.
		Insert("warehouses").
		Rows(goqu.Record{
			"name":    req.Name,
			"address": req.Address,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.FromDBError(err, "Warehouse could not be created")
	}

	return r.GetWarehouse(id)
}

func (r *Repository) UpdateWarehouse(id int, patch models.WarehousePatch) (*models.Warehouse, error) {
	record := goqu.Record{}
	if patch.Name != nil {
		record["name"] = *patch.Name
	}
	if patch.Address != nil {
		record["address"] = *patch.Address
	}

	if len(record) > 0 {
		query := r.repository.GoquDBWrapper.
			Update("warehouses").
			Set(record).
			Where(goqu.Ex{"id": id})

		if _, err := query.Executor().Exec(); err != nil {
			return nil, custom_error.FromDBError(err, "Warehouse could not be updated")
		}
	}

	return r.GetWarehouse(id)
}

func (r *Repository) DeleteWarehouse(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("warehouses").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return custom_error.FromDBError(err, "Warehouse still holds devices")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFound("Warehouse not found")
	}

	return nil
}
