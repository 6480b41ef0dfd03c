package catalog

import (
	"fmt"

	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

func (r *Repository) GetModel(id int) (*models.Model, error) {
	var model models.Model

	found, err := r.repository.GoquDBWrapper.
		From("models").
		Select("id", "brand_id", "name").
		Where(goqu.Ex{"id": id}).
		Executor().ScanStruct(&model)
	if err != nil {
		return nil, fmt.Errorf("unable to select model: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("Model not found")
	}

	return &model, nil
}

func (r *Repository) ListModels(brandID *int, offset, limit int) ([]models.Model, error) {
	query := r.repository.GoquDBWrapper.
		From("models").
		Select("id", "brand_id", "name").
		Order(goqu.I("id").Asc())

	if brandID != nil {
		query = query.Where(goqu.Ex{"brand_id": *brandID})
	}

	var modelList []models.Model
	if err := repository.Paginate(query, offset, limit).Executor().ScanStructs(&modelList); err != nil {
		return nil, fmt.Errorf("unable to select models: %w", err)
	}

	return modelList, nil
}

func (r *Repository) InsertModel(req models.ModelRequest) (*models.Model, error) {
	var id int

	query := r.repository.GoquDBWrapper.
		Insert("models").
		Rows(goqu.Record{
			"brand_id": req.BrandID,
			"name":     req.Name,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.FromDBError(err, "Model could not be created")
	}

	return r.GetModel(id)
}

func (r *Repository) UpdateModel(id int, patch models.ModelPatch) (*models.Model, error) {
	record := goqu.Record{}
	if patch.BrandID != nil {
		record["brand_id"] = *patch.BrandID
	}
	if patch.Name != nil {
		record["name"] = *patch.Name
	}

	if len(record) > 0 {
		query := r.repository.GoquDBWrapper.
			Update("models").
			Set(record).
			Where(goqu.Ex{"id": id})

		if _, err := query.Executor().Exec(); err != nil {
			return nil, custom_error.FromDBError(err, "Model could not be updated")
		}
	}

	return r.GetModel(id)
}

func (r *Repository) DeleteModel(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("models").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return custom_error.FromDBError(err, "Model is referenced by existing devices")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFound("Model not found")
	}

	return nil
}
