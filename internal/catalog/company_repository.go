package catalog

import (
	"fmt"

	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

func (r *Repository) GetCompany(id int) (*models.Company, error) {
	var company models.Company

	found, err := r.repository.GoquDBWrapper.
		From("companies").
		Select("id", "name", "code", "description").
		Where(goqu.Ex{"id": id}).
		Executor().ScanStruct(&company)
	if err != nil {
		return nil, fmt.Errorf("unable to select company: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("Company not found")
	}

	return &company, nil
}

func (r *Repository) ListCompanies(offset, limit int) ([]models.Company, error) {
	query := r.repository.GoquDBWrapper.
		From("companies").
		Select("id", "name", "code", "description").
		Order(goqu.I("id").Asc())

	var companies []models.Company
	if err := repository.Paginate(query, offset, limit).Executor().ScanStructs(&companies); err != nil {
		return nil, fmt.Errorf("unable to select companies: %w", err)
	}

	return companies, nil
}

func (r *Repository) CompanyExistsByNameOrCode(name, code string, excludeID int) (bool, error) {
	var count int

	query := r.repository.GoquDBWrapper.
		From("companies").
		Select(goqu.COUNT("*")).
		Where(
			goqu.Or(goqu.Ex{"name": name}, goqu.Ex{"code": code}),
			goqu.C("id").Neq(excludeID),
		)

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("unable to check company uniqueness: %w", err)
	}

	return count > 0, nil
}

func (r *Repository) InsertCompany(req models.CompanyRequest) (*models.Company, error) {
	var id int

	query := r.repository.GoquDBWrapper.
		Insert("companies").
		Rows(goqu.Record{
			"name":        req.Name,
			"code":        req.Code,
			"description": req.Description,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.FromDBError(err, "Company with this name or code already exists")
	}

	return r.GetCompany(id)
}

func (r *Repository) UpdateCompany(id int, patch models.CompanyPatch) (*models.Company, error) {
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
			Update("companies").
			Set(record).
			Where(goqu.Ex{"id": id})

		if _, err := query.Executor().Exec(); err != nil {
			return nil, custom_error.FromDBError(err, "Company with this name or code already exists")
		}
	}

	return r.GetCompany(id)
}

func (r *Repository) DeleteCompany(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("companies").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return custom_error.FromDBError(err, "Company is referenced by existing devices")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFound("Company not found")
	}

	return nil
}
