package models

// Lecture is a scheduled course offering. Name is its key.
type Lecture struct {
	Name    string   `json:"name" db:"name" example:"Algorithms"`
	Time    string   `json:"time" db:"time_range" example:"10:00-11:30"`
	Weekday *Weekday `json:"weekday,omitempty" db:"weekday" example:"Monday"` // nil means every weekday

	// Relations (populated when needed)
	DepartmentCodes []string `json:"departments,omitempty"`
}

// WeekdayString returns the weekday name, or "" when the lecture runs every weekday
func (l *Lecture) WeekdayString() string {
	if l.Weekday == nil {
		return ""
	}
	return string(*l.Weekday)
}
