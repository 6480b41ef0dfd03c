package models

// Company owns devices; its short code is the first segment of generated
// inventory numbers, e.g. "WWP".
type Company struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Code        string  `json:"code" db:"code"`
	Description *string `json:"description" db:"description"`
}

type CompanyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required,max=3"`
	Description *string `json:"description"`
}

type CompanyPatch struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}
