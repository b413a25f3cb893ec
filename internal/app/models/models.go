package models

// Weekday is the canonical English name of a teaching day, Monday to Friday
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
)

// DepartmentLecture links a lecture to a department offering it
type DepartmentLecture struct {
	DepartmentCode string `json:"departmentCode" db:"department_code"`
	LectureName    string `json:"lectureName" db:"lecture_name"`
}

// StudentLecture links a student to a lecture they attend
type StudentLecture struct {
	StudentNumber string `json:"studentNumber" db:"student_number"`
	LectureName   string `json:"lectureName" db:"lecture_name"`
}
