package catalog

import (
	"github.com/rakhatutebayev/wwp-inventory/internal/repository"
)

// Repository serves the five reference catalogs: companies, device types,
// brands, models and warehouses. They share nothing beyond business-key
// uniqueness, so they live as method groups on one repository.
type Repository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *Repository {
	return &Repository{repository: r}
}
