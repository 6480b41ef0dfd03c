package models

import "fmt"

// LocationType discriminates the two places a device can be.
type LocationType string

const (
	LocationTypeWarehouse LocationType = "warehouse"
	LocationTypeEmployee  LocationType = "employee"
)

func (t LocationType) IsValid() bool {
	switch t {
	case LocationTypeWarehouse, LocationTypeEmployee:
		return true
	default:
		return false
	}
}

func (t LocationType) String() string {
	return string(t)
}

// Custody is the tagged union over the two possible holders of a device.
// A device always has exactly one custody; referential integrity to the
// warehouse or employee row is enforced in application logic because the
// schema cannot express a polymorphic foreign key.
type Custody struct {
	Type LocationType `json:"type" binding:"required"`
	ID   int          `json:"id" binding:"required"`
}

func WarehouseRef(id int) Custody {
	return Custody{Type: LocationTypeWarehouse, ID: id}
}

func EmployeeRef(id int) Custody {
	return Custody{Type: LocationTypeEmployee, ID: id}
}

func (c Custody) Equal(other Custody) bool {
	return c.Type == other.Type && c.ID == other.ID
}

func (c Custody) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("location type %q is not valid, only valid values are: %s, %s", c.Type, LocationTypeWarehouse, LocationTypeEmployee)
	}
	if c.ID <= 0 {
		return fmt.Errorf("location id must be a positive integer")
	}
	return nil
}
