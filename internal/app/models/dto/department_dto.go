package dto

import "github.com/yigit/studentrecords/internal/app/models"

// DepartmentResponse represents department information
type DepartmentResponse struct {
	Code     string   `json:"code" example:"CS1234"`
	Name     string   `json:"name" example:"ComputerScience"`
	Lectures []string `json:"lectures"`
}

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Code string `json:"code" binding:"required,deptcode"`
	Name string `json:"name" binding:"required"`
}

// ToModel converts the request to a department model
func (r CreateDepartmentRequest) ToModel() *models.Department {
	return &models.Department{Code: r.Code, Name: r.Name}
}

// FromDepartment converts a department model to its response
func FromDepartment(department *models.Department) DepartmentResponse {
	lectures := department.LectureNames
	if lectures == nil {
		lectures = []string{}
	}
	return DepartmentResponse{
		Code:     department.Code,
		Name:     department.Name,
		Lectures: lectures,
	}
}

// FromDepartments converts a department list
func FromDepartments(departments []*models.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		out = append(out, FromDepartment(department))
	}
	return out
}
