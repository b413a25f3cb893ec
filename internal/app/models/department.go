package models

// Department represents an organizational unit identified by a fixed-length code
type Department struct {
	Code string `json:"code" db:"code" example:"CS1234"`
	Name string `json:"name" db:"name" example:"ComputerScience"`

	// Relations (populated when needed)
	LectureNames []string `json:"lectures,omitempty"`
}
