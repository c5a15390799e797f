package schedule

import "time"

// Frequency says how often a recurring system task repeats.
type Frequency string

const (
	FrequencyDaily        Frequency = "daily"
	FrequencyWeekly       Frequency = "weekly"
	FrequencyMonthly      Frequency = "monthly"
	FrequencyYearly       Frequency = "yearly"
	FrequencyEvery3Months Frequency = "every_3_months"
	FrequencyEvery6Months Frequency = "every_6_months"
)

// Sentinel values for Template.DayOfMonth.
const (
	DayLastOfMonth     = 0  // last calendar day of the month
	DayFirstWorkingDay = -1 // first weekday of the month, skipping Sat/Sun
)

// ValidFrequency reports whether f is one of the supported frequencies.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly,
		FrequencyEvery3Months, FrequencyEvery6Months:
		return true
	}
	return false
}

// Template carries the calendar rules of a recurring system task.
// All fields except Frequency are optional; missing fields fall back to
// safe defaults so the evaluator is total over its inputs.
type Template struct {
	Frequency   Frequency
	DaysOfWeek  []int // Monday=0 .. Sunday=6, used for weekly templates
	DayOfWeek   *int  // legacy single-day field, honored when DaysOfWeek is empty
	DayOfMonth  *int  // 1..31, or one of the Day* sentinels; nil defaults to day 1
	MonthOfYear *int  // 1..12, anchors yearly and interval frequencies
}

// nextOccurrenceHorizon bounds the forward scan in NextOccurrence. A yearly
// template is at most ~366 days away from its next occurrence.
const nextOccurrenceHorizon = 400

// WeekdayIndex returns the Monday-based weekday index of t (Monday=0,
// Sunday=6). time.Weekday is Sunday-first, so the index is rotated.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// dateOnly strips the time of day and normalizes to UTC so occurrence
// comparisons are pure calendar-day comparisons.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// shiftToWorkday moves a weekend date backward to the preceding Friday.
// The shift is always backward so an occurrence never slips into the next
// scheduling period.
func shiftToWorkday(t time.Time) time.Time {
	for isWeekend(t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// ScheduledDateForMonth resolves the template's occurrence inside the given
// month. The second return value is false when a literal day does not exist
// in that month (e.g. day 31 in April): the template simply has no
// occurrence there. This is distinct from the DayLastOfMonth sentinel,
// which always resolves.
func (tpl Template) ScheduledDateForMonth(year int, month time.Month) (time.Time, bool) {
	day := 1
	if tpl.DayOfMonth != nil {
		day = *tpl.DayOfMonth
	}

	switch {
	case day == DayFirstWorkingDay:
		// Already a weekday by construction, so no backward shift here.
		d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		for isWeekend(d) {
			d = d.AddDate(0, 0, 1)
		}
		return d, true
	case day == DayLastOfMonth:
		d := time.Date(year, month, daysInMonth(year, month), 0, 0, 0, 0, time.UTC)
		return shiftToWorkday(d), true
	default:
		if day < 1 || day > daysInMonth(year, month) {
			return time.Time{}, false
		}
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		return shiftToWorkday(d), true
	}
}

// monthMatches reports whether the frequency schedules an occurrence in the
// given month at all.
func (tpl Template) monthMatches(month time.Month) bool {
	switch tpl.Frequency {
	case FrequencyMonthly:
		return true
	case FrequencyYearly:
		if tpl.DayOfMonth != nil && *tpl.DayOfMonth == DayLastOfMonth {
			// Year-end sentinel: Dec 31, regardless of MonthOfYear.
			return month == time.December
		}
		if tpl.MonthOfYear != nil {
			return int(month) == *tpl.MonthOfYear
		}
		return true
	case FrequencyEvery3Months:
		return tpl.intervalMonthMatches(month, 3)
	case FrequencyEvery6Months:
		return tpl.intervalMonthMatches(month, 6)
	}
	return false
}

// intervalMonthMatches gates interval frequencies: anchored to MonthOfYear
// when set, otherwise to calendar months evenly divisible by the interval.
func (tpl Template) intervalMonthMatches(month time.Month, every int) bool {
	if tpl.MonthOfYear != nil {
		diff := int(month) - *tpl.MonthOfYear
		return ((diff%every)+every)%every == 0
	}
	return int(month)%every == 0
}

// IsDue reports whether the template's recurring task is scheduled on the
// given date. Time of day is ignored. The function never fails: templates
// with missing or inconsistent fields evaluate to false rather than error.
func (tpl Template) IsDue(date time.Time) bool {
	day := dateOnly(date)

	switch tpl.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		idx := WeekdayIndex(day)
		if len(tpl.DaysOfWeek) > 0 {
			for _, d := range tpl.DaysOfWeek {
				if d == idx {
					return true
				}
			}
			return false
		}
		return tpl.DayOfWeek != nil && *tpl.DayOfWeek == idx
	case FrequencyMonthly, FrequencyYearly, FrequencyEvery3Months, FrequencyEvery6Months:
		return tpl.dueOnResolvedDay(day)
	}
	return false
}

// dueOnResolvedDay checks the date against the resolved occurrence of its
// own month and of the following month. The second check catches occurrences
// that the weekend shift moved backward across a month boundary (a literal
// day 1 or 2 landing on a weekend).
func (tpl Template) dueOnResolvedDay(day time.Time) bool {
	firstOfMonth := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	candidates := [2]time.Time{firstOfMonth, firstOfMonth.AddDate(0, 1, 0)}
	for _, c := range candidates {
		year, month, _ := c.Date()
		if !tpl.monthMatches(month) {
			continue
		}
		if occ, ok := tpl.ScheduledDateForMonth(year, month); ok && occ.Equal(day) {
			return true
		}
	}
	return false
}

// NextOccurrence returns the first date on or after from on which the
// template is due. The false return only happens for templates that never
// fire (e.g. a weekly template with no day configured).
func (tpl Template) NextOccurrence(from time.Time) (time.Time, bool) {
	d := dateOnly(from)
	for i := 0; i < nextOccurrenceHorizon; i++ {
		if tpl.IsDue(d) {
			return d, true
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// Occurrences returns up to count due dates starting at from, for upcoming
// occurrence views.
func (tpl Template) Occurrences(from time.Time, count int) []time.Time {
	var out []time.Time
	d := dateOnly(from)
	for len(out) < count {
		next, ok := tpl.NextOccurrence(d)
		if !ok {
			break
		}
		out = append(out, next)
		d = next.AddDate(0, 0, 1)
	}
	return out
}
