package users

import (
	"fmt"

	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type UserRepository interface {
	PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error)
	GetUser(id int) (*models.User, error)
	GetUsers(offset, limit int) ([]models.User, error)
	UpdateUser(id int, record goqu.Record) (*models.User, error)
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error) {
	var id int

	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"username":      req.Username,
			"email":         req.Email,
			"password_hash": string(hashedPassword),
			"role":          req.Role,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, custom_error.FromDBError(err, "User with this username or email already exists")
	}

	return r.GetUser(id)
}

func (r *userRepositoryImpl) GetUser(id int) (*models.User, error) {
	var user models.User

	found, err := r.repository.GoquDBWrapper.
		Select("id", "username", "email", "role").
		From("users").
		Where(goqu.Ex{"id": id}).
		Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("unable to select user: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("User not found")
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUsers(offset, limit int) ([]models.User, error) {
	query := r.repository.GoquDBWrapper.
		Select("id", "username", "email", "role").
		From("users").
		Order(goqu.I("id").Asc())

	var users []models.User
	if err := repository.Paginate(query, offset, limit).Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("unable to select users: %w", err)
	}

	return users, nil
}

func (r *userRepositoryImpl) UpdateUser(id int, record goqu.Record) (*models.User, error) {
	if len(record) > 0 {
		query := r.repository.GoquDBWrapper.
			Update("users").
			Set(record).
			Where(goqu.Ex{"id": id})

		if _, err := query.Executor().Exec(); err != nil {
			return nil, custom_error.FromDBError(err, "User with this username or email already exists")
		}
	}

	return r.GetUser(id)
}
