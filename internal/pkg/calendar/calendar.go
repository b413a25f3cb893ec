// Package calendar renders a department timetable as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/pkg/validation"
)

const (
	productID   = "-//studentrecords//timetable//EN"
	floatLayout = "20060102T150405"
)

var byDay = map[string]string{
	"Monday":    "MO",
	"Tuesday":   "TU",
	"Wednesday": "WE",
	"Thursday":  "TH",
	"Friday":    "FR",
}

// Render builds a weekly recurring event for every lecture, starting in the week that contains from.
// A lecture without a weekday recurs Monday to Friday. Times are floating local times.
func Render(department *models.Department, lectures []*models.Lecture, from time.Time) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(fmt.Sprintf("%s (%s)", department.Name, department.Code))

	monday := weekStart(from)
	stamp := from.UTC()

	for _, lecture := range lectures {
		timeRange, err := validation.ParseTimeRange(lecture.Time)
		if err != nil {
			return "", fmt.Errorf("lecture %s: %w", lecture.Name, err)
		}

		days := validation.Weekdays
		offset := 0
		if day := lecture.WeekdayString(); day != "" {
			days = []string{day}
			offset = dayOffset(day)
		}
		codes := make([]string, 0, len(days))
		for _, day := range days {
			codes = append(codes, byDay[day])
		}

		date := monday.AddDate(0, 0, offset)
		start := date.Add(time.Duration(timeRange.Start) * time.Minute)
		end := date.Add(time.Duration(timeRange.End) * time.Minute)

		event := cal.AddEvent(fmt.Sprintf("%s-%s@studentrecords", department.Code, strings.ReplaceAll(lecture.Name, " ", "-")))
		event.SetDtStampTime(stamp)
		event.SetSummary(lecture.Name)
		event.SetDescription(fmt.Sprintf("%s %s", department.Code, lecture.Time))
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(floatLayout))
		event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(floatLayout))
		event.AddRrule("FREQ=WEEKLY;BYDAY=" + strings.Join(codes, ","))
	}

	return cal.Serialize(), nil
}

// weekStart returns midnight of the Monday on or before t, in t's location
func weekStart(t time.Time) time.Time {
	back := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -back).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayOffset(day string) int {
	for i, name := range validation.Weekdays {
		if name == day {
			return i
		}
	}
	return 0
}
