package models

type Warehouse struct {
	ID      int     `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	Address *string `json:"address" db:"address"`
}

type WarehouseRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
}

type WarehousePatch struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}
