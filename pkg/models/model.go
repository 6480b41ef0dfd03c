package models

// Model is a concrete product of a brand.
type Model struct {
	ID      int    `json:"id" db:"id"`
	BrandID int    `json:"brand_id" db:"brand_id"`
	Name    string `json:"name" db:"name"`
}

type ModelRequest struct {
	BrandID int    `json:"brand_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type ModelPatch struct {
	BrandID *int    `json:"brand_id"`
	Name    *string `json:"name"`
}
