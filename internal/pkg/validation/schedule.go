package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LectureTimePattern matches "HH:MM-HH:MM"
var LectureTimePattern = regexp.MustCompile(`^(\d{2}):(\d{2})-(\d{2}):(\d{2})$`)

// Weekdays are the days a lecture may be scheduled on, in calendar order
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TimeRange is a half-open interval of minutes since midnight
type TimeRange struct {
	Start int
	End   int
}

// ParseTimeRange parses "HH:MM-HH:MM". Both bounds must be within 00:00-24:00 and end must be after start.
func ParseTimeRange(value string) (TimeRange, error) {
	m := LectureTimePattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return TimeRange{}, fmt.Errorf("time %q is not in HH:MM-HH:MM format", value)
	}

	start, err := clockMinutes(m[1], m[2])
	if err != nil {
		return TimeRange{}, fmt.Errorf("start of %q: %w", value, err)
	}
	end, err := clockMinutes(m[3], m[4])
	if err != nil {
		return TimeRange{}, fmt.Errorf("end of %q: %w", value, err)
	}
	if end <= start {
		return TimeRange{}, fmt.Errorf("time %q ends before it starts", value)
	}

	return TimeRange{Start: start, End: end}, nil
}

func clockMinutes(hh, mm string) (int, error) {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 24 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%s:%s is outside 00:00-24:00", hh, mm)
	}
	return h*60 + m, nil
}

// IsValidLectureTime reports whether value parses as a lecture time range
func IsValidLectureTime(value string) bool {
	_, err := ParseTimeRange(value)
	return err == nil
}

// Overlaps reports whether the two ranges share any minute
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// String formats the range back to "HH:MM-HH:MM"
func (r TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", r.Start/60, r.Start%60, r.End/60, r.End%60)
}

// NormalizeWeekday returns the canonical weekday name for value, matched case-insensitively.
// Weekend days and unknown names are rejected.
func NormalizeWeekday(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, day := range Weekdays {
		if strings.EqualFold(day, value) {
			return day, true
		}
	}
	return "", false
}

// SharesWeekday reports whether two lectures meet on a common day. An empty weekday means every weekday.
func SharesWeekday(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	return strings.EqualFold(a, b)
}
