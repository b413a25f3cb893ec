package dto

import "github.com/yigit/studentrecords/internal/app/models"

// CreateStudentRequest represents student registration data
type CreateStudentRequest struct {
	Number         string `json:"number" binding:"required,studentnumber"`
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	Email          string `json:"email" binding:"required"`
	DepartmentCode string `json:"departmentCode" binding:"required,deptcode"`
}

// ToModel converts the request to a student model
func (r CreateStudentRequest) ToModel() *models.Student {
	return &models.Student{
		Number:         r.Number,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		DepartmentCode: r.DepartmentCode,
	}
}

// TransferStudentRequest moves a student to another department
type TransferStudentRequest struct {
	DepartmentCode string `json:"departmentCode" binding:"required,deptcode"`
}

// StudentFilterRequest represents student list query parameters
type StudentFilterRequest struct {
	Department string `form:"department"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	Size       int    `form:"size,default=10" binding:"min=1,max=100"`
}

// StudentResponse represents student information
type StudentResponse struct {
	Number         string   `json:"number" example:"12345678"`
	FirstName      string   `json:"firstName" example:"John"`
	LastName       string   `json:"lastName" example:"Smith"`
	Email          string   `json:"email" example:"john.smith@example.com"`
	DepartmentCode string   `json:"departmentCode" example:"CS1234"`
	Lectures       []string `json:"lectures"`
}

// StudentListResponse is one page of students
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// FromStudent converts a student model to its response
func FromStudent(student *models.Student) StudentResponse {
	lectures := student.LectureNames
	if lectures == nil {
		lectures = []string{}
	}
	return StudentResponse{
		Number:         student.Number,
		FirstName:      student.FirstName,
		LastName:       student.LastName,
		Email:          student.Email,
		DepartmentCode: student.DepartmentCode,
		Lectures:       lectures,
	}
}

// FromStudents converts a student list
func FromStudents(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		out = append(out, FromStudent(student))
	}
	return out
}
