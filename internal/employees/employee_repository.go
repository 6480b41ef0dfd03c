package employees

import (
	"fmt"

	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type EmployeesRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *EmployeesRepository {
	return &EmployeesRepository{repository: r}
}

func (r *EmployeesRepository) GetEmployee(id int) (*models.Employee, error) {
	var employee models.Employee

	found, err := r.repository.GoquDBWrapper.
		From("employees").
		Select("id", "full_name", "phone_extension", "status").
		Where(goqu.Ex{"id": id}).
		Executor().ScanStruct(&employee)
	if err != nil {
		return nil, fmt.Errorf("unable to select employee: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("Employee not found")
	}

	return &employee, nil
}

func (r *EmployeesRepository) ListEmployees(offset, limit int) ([]models.Employee, error) {
	query := r.repository.GoquDBWrapper.
		From("employees").
		Select("id", "full_name", "phone_extension", "status").
		Order(goqu.I("id").Asc())

	var employees []models.Employee
	if err := repository.Paginate(query, offset, limit).Executor().ScanStructs(&employees); err != nil {
		return nil, fmt.Errorf("unable to select employees: %w", err)
	}

	return employees, nil
}

// FindByPhoneExtension returns the employee holding the extension, or nil.
// The conflict message names the holder, so the whole row is fetched.
func (r *EmployeesRepository) FindByPhoneExtension(extension string, excludeID int) (*models.Employee, error) {
	var employee models.Employee

	found, err := r.repository.GoquDBWrapper.
		From("employees").
		Select("id", "full_name", "phone_extension", "status").
		Where(goqu.Ex{"phone_extension": extension}, goqu.C("id").Neq(excludeID)).
		Executor().ScanStruct(&employee)
	if err != nil {
		return nil, fmt.Errorf("unable to check phone extension: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &employee, nil
}

func (r *EmployeesRepository) InsertEmployee(req models.EmployeeRequest) (*models.Employee, error) {
	var id int

	query := r.repository.GoquDBWrapper.
		Insert("employees").
		Rows(goqu.Record{
			"full_name":       req.FullName,
			"phone_extension": req.PhoneExtension,
			"status":          string(models.EmployeeStatusActive),
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.FromDBError(err, "Phone extension is already assigned to another employee")
	}

	return r.GetEmployee(id)
}

func (r *EmployeesRepository) UpdateEmployee(id int, patch models.EmployeePatch) (*models.Employee, error) {
	record := goqu.Record{}
	if patch.FullName != nil {
		record["full_name"] = *patch.FullName
	}
	if patch.PhoneExtension != nil {
		record["phone_extension"] = *patch.PhoneExtension
	}
	if patch.Status != nil {
		record["status"] = string(*patch.Status)
	}

	if len(record) > 0 {
		query := r.repository.GoquDBWrapper.
			Update("employees").
			Set(record).
			Where(goqu.Ex{"id": id})

		if _, err := query.Executor().Exec(); err != nil {
			return nil, custom_error.FromDBError(err, "Phone extension is already assigned to another employee")
		}
	}

	return r.GetEmployee(id)
}

func (r *EmployeesRepository) DeleteEmployee(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("employees").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("unable to delete employee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFound("Employee not found")
	}

	return nil
}
