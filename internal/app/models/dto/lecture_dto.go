package dto

import "github.com/yigit/studentrecords/internal/app/models"

// LectureResponse represents lecture information
type LectureResponse struct {
	Name        string   `json:"name" example:"Algorithms"`
	Time        string   `json:"time" example:"10:00-11:30"`
	Weekday     *string  `json:"weekday,omitempty" example:"Monday"`
	Departments []string `json:"departments"`
}

// CreateLectureRequest represents lecture creation data
type CreateLectureRequest struct {
	Name        string   `json:"name" binding:"required"`
	Time        string   `json:"time" binding:"required,lecturetime"`
	Weekday     *string  `json:"weekday" binding:"omitempty,weekday"`
	Departments []string `json:"departments" binding:"omitempty,dive,deptcode"`
}

// ToModel converts the request to a lecture model
func (r CreateLectureRequest) ToModel() *models.Lecture {
	lecture := &models.Lecture{
		Name:            r.Name,
		Time:            r.Time,
		DepartmentCodes: r.Departments,
	}
	if r.Weekday != nil && *r.Weekday != "" {
		day := models.Weekday(*r.Weekday)
		lecture.Weekday = &day
	}
	return lecture
}

// FromLecture converts a lecture model to its response
func FromLecture(lecture *models.Lecture) LectureResponse {
	resp := LectureResponse{
		Name:        lecture.Name,
		Time:        lecture.Time,
		Departments: lecture.DepartmentCodes,
	}
	if resp.Departments == nil {
		resp.Departments = []string{}
	}
	if day := lecture.WeekdayString(); day != "" {
		resp.Weekday = &day
	}
	return resp
}

// FromLectures converts a lecture list
func FromLectures(lectures []*models.Lecture) []LectureResponse {
	out := make([]LectureResponse, 0, len(lectures))
	for _, lecture := range lectures {
		out = append(out, FromLecture(lecture))
	}
	return out
}
