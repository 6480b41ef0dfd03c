package catalog

import (
	"fmt"

	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

func (r *Repository) GetBrand(id int) (*models.Brand, error) {
	var brand models.Brand

	found, err := r.repository.GoquDBWrapper.
		From("brands").
		Select("id", "name").
		Where(goqu.Ex{"id": id}).
		Executor().ScanStruct(&brand)
	if err != nil {
		return nil, fmt.Errorf("unable to select brand: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("Brand not found")
	}

	return &brand, nil
}

func (r *Repository) ListBrands(offset, limit int) ([]models.Brand, error) {
	query := r.repository.GoquDBWrapper.
		From("brands").
		Select("id", "name").
		Order(goqu.I("name").Asc())

	var brands []models.Brand
	if err := repository.Paginate(query, offset, limit).Executor().ScanStructs(&brands); err != nil {
		return nil, fmt.Errorf("unable to select brands: %w", err)
	}

	return brands, nil
}

func (r *Repository) BrandExistsByName(name string, excludeID int) (bool, error) {
	var count int

	query := r.repository.GoquDBWrapper.
		From("brands").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"name": name}, goqu.C("id").Neq(excludeID))

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("unable to check brand uniqueness: %w", err)
	}

	return count > 0, nil
}

func (r *Repository) InsertBrand(req models.BrandRequest) (*models.Brand, error) {
	var id int

	query := r.repository.GoquDBWrapper.
		Insert("brands").
		Rows(goqu.Record{"name": req.Name}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.FromDBError(err, "Brand with this name already exists")
	}

	return r.GetBrand(id)
}

func (r *Repository) UpdateBrand(id int, req models.BrandRequest) (*models.Brand, error) {
	query := r.repository.GoquDBWrapper.
		Update("brands").
		Set(goqu.Record{"name": req.Name}).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.FromDBError(err, "Brand with this name already exists")
	}

	return r.GetBrand(id)
}

func (r *Repository) DeleteBrand(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("brands").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return custom_error.FromDBError(err, "Brand is referenced by existing models or devices")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFound("Brand not found")
	}

	return nil
}
