package models

// Student defines the student model based on the 'students' table
type Student struct {
	Number         string `json:"number" db:"number" example:"12345678"` // 8 digit student number
	FirstName      string `json:"firstName" db:"first_name" example:"John"`
	LastName       string `json:"lastName" db:"last_name" example:"Smith"`
	Email          string `json:"email" db:"email" example:"john.smith@example.com"`
	DepartmentCode string `json:"departmentCode" db:"department_code" example:"CS1234"`

	// Relations (populated when needed)
	LectureNames []string `json:"lectures,omitempty"`
}
