package reports

import (
	"fmt"

	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// DeviceReportRow is a device with its catalog references resolved to names,
// ready for on-screen listing or CSV export.
type DeviceReportRow struct {
	ID              int    `json:"id" db:"id"`
	InventoryNumber string `json:"inventory_number" db:"inventory_number"`
	SerialNumber    string `json:"serial_number" db:"serial_number"`
	Company         string `json:"company" db:"company"`
	DeviceType      string `json:"device_type" db:"device_type"`
	Brand           string `json:"brand" db:"brand"`
	Model           string `json:"model" db:"model"`
	LocationType    string `json:"location_type" db:"location_type"`
	LocationName    string `json:"location_name" db:"location_name"`
}

// LocationReportRow summarizes one custody target and how many devices it
// currently holds.
type LocationReportRow struct {
	LocationType string `json:"location_type" db:"location_type"`
	LocationID   int    `json:"location_id" db:"location_id"`
	Name         string `json:"name" db:"name"`
	DeviceCount  int    `json:"device_count" db:"device_count"`
}

type ReportsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ReportsRepository {
	return &ReportsRepository{repository: r}
}

func (r *ReportsRepository) DeviceReport() ([]DeviceReportRow, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("devices").As("d")).
		Select(
			goqu.I("d.id").As("id"),
			goqu.I("d.inventory_number").As("inventory_number"),
			goqu.I("d.serial_number").As("serial_number"),
			goqu.I("c.name").As("company"),
			goqu.I("dt.name").As("device_type"),
			goqu.I("b.name").As("brand"),
			goqu.I("m.name").As("model"),
			goqu.I("d.current_location_type").As("location_type"),
			goqu.COALESCE(goqu.I("w.name"), goqu.I("e.full_name"), goqu.V("")).As("location_name"),
		).
		Join(goqu.T("companies").As("c"), goqu.On(goqu.Ex{"c.id": goqu.I("d.company_id")})).
		Join(goqu.T("device_types").As("dt"), goqu.On(goqu.Ex{"dt.id": goqu.I("d.device_type_id")})).
		Join(goqu.T("brands").As("b"), goqu.On(goqu.Ex{"b.id": goqu.I("d.brand_id")})).
		Join(goqu.T("models").As("m"), goqu.On(goqu.Ex{"m.id": goqu.I("d.model_id")})).
		LeftJoin(goqu.T("warehouses").As("w"), goqu.On(
			goqu.I("d.current_location_type").Eq(string(models.LocationTypeWarehouse)),
			goqu.I("d.current_location_id").Eq(goqu.I("w.id")),
		)).
		LeftJoin(goqu.T("employees").As("e"), goqu.On(
			goqu.I("d.current_location_type").Eq(string(models.LocationTypeEmployee)),
			goqu.I("d.current_location_id").Eq(goqu.I("e.id")),
		)).
		Order(goqu.I("d.id").Asc())

	var rows []DeviceReportRow
	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("unable to build device report: %w", err)
	}

	return rows, nil
}

func (r *ReportsRepository) LocationReport() ([]LocationReportRow, error) {
	warehouses, err := r.locationRows(
		"warehouses", "name", models.LocationTypeWarehouse,
	)
	if err != nil {
		return nil, err
	}

	employees, err := r.locationRows(
		"employees", "full_name", models.LocationTypeEmployee,
	)
	if err != nil {
		return nil, err
	}

	return append(warehouses, employees...), nil
}

func (r *ReportsRepository) locationRows(table, nameColumn string, locationType models.LocationType) ([]LocationReportRow, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T(table).As("l")).
		Select(
			goqu.V(string(locationType)).As("location_type"),
			goqu.I("l.id").As("location_id"),
			goqu.I("l."+nameColumn).As("name"),
			goqu.COUNT(goqu.I("d.id")).As("device_count"),
		).
		LeftJoin(goqu.T("devices").As("d"), goqu.On(
			goqu.I("d.current_location_type").Eq(string(locationType)),
			goqu.I("d.current_location_id").Eq(goqu.I("l.id")),
		)).
		GroupBy(goqu.I("l.id"), goqu.I("l."+nameColumn)).
		Order(goqu.I("l.id").Asc())

	var rows []LocationReportRow
	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("unable to build location report for %s: %w", table, err)
	}

	return rows, nil
}
