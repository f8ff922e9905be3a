package schedule

import (
	"fmt"
	"time"

	scheduleerrors "github.com/AIforimpact22/HR-amas/internal/schedule/errors"
)

// GraceMinutes is how far past the expected clock-in a punch may land
// before it counts as late.
const GraceMinutes = 5

const minutesPerDay = 24 * 60

// ParseClock converts an "HH:MM" time of day to minutes since midnight.
func ParseClock(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, scheduleerrors.ErrInvalidClockFormat
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ShiftLengthMinutes is the scheduled shift length. A clock-out earlier in
// the day than the clock-in means the shift wraps past midnight:
// 22:00 to 06:00 is 8 hours, not -16.
func ShiftLengthMinutes(inMinutes, outMinutes int) int {
	if outMinutes >= inMinutes {
		return outMinutes - inMinutes
	}
	return outMinutes + minutesPerDay - inMinutes
}

// RequiredOutMinutes is the time of day an employee is expected to leave:
// expected in plus the shift length, wrapped to the clock.
func RequiredOutMinutes(inMinutes, lengthMinutes int) int {
	return (inMinutes + lengthMinutes) % minutesPerDay
}

// IsLate reports whether a punch-in at the given second of the day lands
// past the expected clock-in plus grace. The boundary itself is on time:
// against an 08:00 shift, 08:05:00 is not late and 08:05:01 is.
func IsLate(punchSecondOfDay int, expectedInMinutes int) bool {
	return punchSecondOfDay > expectedInMinutes*60+GraceMinutes*60
}

// SecondOfDay is the punch timestamp reduced to seconds since midnight UTC.
func SecondOfDay(t time.Time) int {
	t = t.UTC()
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// ResolvedShift is the schedule expectation for one employee on one date.
// Found is false when no record covers the date; every field is then zero
// and the day carries no expectation.
type ResolvedShift struct {
	InMinutes       int
	OutMinutes      int
	LengthMinutes   int
	WorkDaysPerWeek int
	OffDay          int
	Found           bool
}

// IsOffDay reports whether the date falls on the schedule's weekly off day.
// Weekday numbering matches time.Weekday: Sunday is 0.
func (rs ResolvedShift) IsOffDay(d time.Time) bool {
	return rs.Found && int(d.Weekday()) == rs.OffDay
}

func resolveShift(ws *WorkSchedule) (ResolvedShift, error) {
	if ws == nil {
		return ResolvedShift{}, nil
	}
	in, err := ParseClock(ws.ClockIn)
	if err != nil {
		return ResolvedShift{}, err
	}
	out, err := ParseClock(ws.ClockOut)
	if err != nil {
		return ResolvedShift{}, err
	}
	return ResolvedShift{
		InMinutes:       in,
		OutMinutes:      out,
		LengthMinutes:   ShiftLengthMinutes(in, out),
		WorkDaysPerWeek: ws.WorkDaysPerWeek,
		OffDay:          ws.OffDay,
		Found:           true,
	}, nil
}
