package models

type EmployeeStatus string

const (
	EmployeeStatusActive EmployeeStatus = "active"
	EmployeeStatusFired  EmployeeStatus = "fired"
)

func (s EmployeeStatus) IsValid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusFired:
		return true
	default:
		return false
	}
}

// Employee can hold devices while active. Firing or deleting an employee is
// blocked while any device is still assigned to them.
type Employee struct {
	ID             int            `json:"id" db:"id"`
	FullName       string         `json:"full_name" db:"full_name"`
	PhoneExtension string         `json:"phone_extension" db:"phone_extension"`
	Status         EmployeeStatus `json:"status" db:"status"`
}

type EmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	PhoneExtension string `json:"phone_extension" binding:"required,max=20"`
}

type EmployeePatch struct {
	FullName       *string         `json:"full_name"`
	PhoneExtension *string         `json:"phone_extension"`
	Status         *EmployeeStatus `json:"status"`
}
