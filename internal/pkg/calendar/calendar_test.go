package calendar

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentrecords/internal/app/models"
)

func TestRender(t *testing.T) {
	tuesday := models.Tuesday
	department := &models.Department{Code: "CS1234", Name: "ComputerScience"}
	lectures := []*models.Lecture{
		{Name: "Algorithms", Time: "10:00-11:30"},
		{Name: "DataStructures", Time: "14:00-15:30", Weekday: &tuesday},
	}
	// Thursday
	from := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

	out, err := Render(department, lectures, from)
	require.NoError(t, err)

	assert.Contains(t, out, "X-WR-CALNAME:ComputerScience (CS1234)")
	assert.Contains(t, out, "SUMMARY:Algorithms")
	assert.Contains(t, out, "DTSTART:20261012T100000")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR")
	assert.Contains(t, out, "DTSTART:20261013T140000")
	assert.Contains(t, out, "DTEND:20261013T153000")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;BYDAY=TU")

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 2)
}

func TestRender_MidnightEnd(t *testing.T) {
	friday := models.Friday
	department := &models.Department{Code: "CS1234", Name: "ComputerScience"}
	lectures := []*models.Lecture{{Name: "NightLab", Time: "22:00-24:00", Weekday: &friday}}

	out, err := Render(department, lectures, time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, out, "DTSTART:20261016T220000")
	assert.Contains(t, out, "DTEND:20261017T000000")
}

func TestRender_BadStoredTime(t *testing.T) {
	_, err := Render(&models.Department{Code: "CS1234", Name: "ComputerScience"},
		[]*models.Lecture{{Name: "Broken", Time: "soon"}}, time.Now())
	assert.Error(t, err)
}

func TestWeekStart(t *testing.T) {
	sunday := time.Date(2026, time.October, 18, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC), weekStart(sunday))

	monday := time.Date(2026, time.October, 12, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC), weekStart(monday))
}
