package schedule

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestDailyAlwaysDue(t *testing.T) {
	tpl := Template{Frequency: FrequencyDaily}
	d := date(2025, time.January, 1)
	for i := 0; i < 365; i++ {
		if !tpl.IsDue(d) {
			t.Fatalf("daily template not due on %s", d.Format("2006-01-02"))
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestIsDueDeterministic(t *testing.T) {
	tpl := Template{Frequency: FrequencyMonthly, DayOfMonth: intPtr(15)}
	d := date(2025, time.June, 13)
	first := tpl.IsDue(d)
	second := tpl.IsDue(d)
	if first != second {
		t.Fatalf("IsDue not deterministic: %v then %v", first, second)
	}
}

func TestWeeklyDaysOfWeek(t *testing.T) {
	// Wednesday in the Monday-based indexing is 2.
	tpl := Template{Frequency: FrequencyWeekly, DaysOfWeek: []int{2}}

	wednesday := date(2025, time.August, 20)
	if WeekdayIndex(wednesday) != 2 {
		t.Fatalf("2025-08-20 should index to 2, got %d", WeekdayIndex(wednesday))
	}
	if !tpl.IsDue(wednesday) {
		t.Fatalf("expected due on Wednesday %s", wednesday)
	}
	for off := 1; off <= 6; off++ {
		d := wednesday.AddDate(0, 0, off)
		if tpl.IsDue(d) {
			t.Fatalf("unexpected due on %s (%s)", d.Format("2006-01-02"), d.Weekday())
		}
	}
}

func TestWeeklyLegacySingleDayFallback(t *testing.T) {
	// Legacy dayOfWeek=5 is Saturday; no modern set present.
	tpl := Template{Frequency: FrequencyWeekly, DayOfWeek: intPtr(5)}

	saturday := date(2025, time.August, 23)
	if !tpl.IsDue(saturday) {
		t.Fatalf("expected due on Saturday %s", saturday)
	}
	for off := 1; off <= 6; off++ {
		if tpl.IsDue(saturday.AddDate(0, 0, off)) {
			t.Fatalf("legacy fallback fired off-day at offset %d", off)
		}
	}

	// The modern set wins when present.
	both := Template{Frequency: FrequencyWeekly, DaysOfWeek: []int{0}, DayOfWeek: intPtr(5)}
	if both.IsDue(saturday) {
		t.Fatal("daysOfWeek set should shadow the legacy field")
	}
	monday := date(2025, time.August, 25)
	if !both.IsDue(monday) {
		t.Fatal("expected due on Monday from daysOfWeek")
	}
}

func TestWeeklyWithoutAnyDayNeverDue(t *testing.T) {
	tpl := Template{Frequency: FrequencyWeekly}
	d := date(2025, time.March, 1)
	for i := 0; i < 14; i++ {
		if tpl.IsDue(d) {
			t.Fatalf("weekly template with no day configured fired on %s", d)
		}
		d = d.AddDate(0, 0, 1)
	}
	if _, ok := tpl.NextOccurrence(date(2025, time.March, 1)); ok {
		t.Fatal("NextOccurrence should report no occurrence")
	}
}

func TestMonthlyLiteralDayMissingFromShortMonth(t *testing.T) {
	// Day 31 does not exist in April: no occurrence at all that month.
	tpl := Template{Frequency: FrequencyMonthly, DayOfMonth: intPtr(31)}
	d := date(2025, time.April, 1)
	for d.Month() == time.April {
		if tpl.IsDue(d) {
			t.Fatalf("day-31 template fired in April on %s", d.Format("2006-01-02"))
		}
		d = d.AddDate(0, 0, 1)
	}

	// The last-day sentinel is a different rule: April 30 exactly.
	last := Template{Frequency: FrequencyMonthly, DayOfMonth: intPtr(DayLastOfMonth)}
	if !last.IsDue(date(2025, time.April, 30)) {
		t.Fatal("last-day sentinel should fire on April 30")
	}
	if last.IsDue(date(2025, time.April, 29)) {
		t.Fatal("last-day sentinel fired a day early")
	}
}

func TestMonthlyFirstWorkingDayShiftsForward(t *testing.T) {
	// February 2025 starts on a Saturday; the first working day is Monday
	// the 3rd. Unlike literal days this never shifts backward.
	tpl := Template{Frequency: FrequencyMonthly, DayOfMonth: intPtr(DayFirstWorkingDay)}

	occ, ok := tpl.ScheduledDateForMonth(2025, time.February)
	if !ok || !occ.Equal(date(2025, time.February, 3)) {
		t.Fatalf("expected 2025-02-03, got %v (ok=%v)", occ, ok)
	}
	if !tpl.IsDue(date(2025, time.February, 3)) {
		t.Fatal("expected due on the resolved Monday")
	}
	for _, d := range []time.Time{
		date(2025, time.January, 31),
		date(2025, time.February, 1),
		date(2025, time.February, 2),
		date(2025, time.February, 4),
	} {
		if tpl.IsDue(d) {
			t.Fatalf("first-working-day template fired on %s", d.Format("2006-01-02"))
		}
	}
}

func TestMonthlyLiteralDayWeekendShiftsBack(t *testing.T) {
	// 2025-06-15 is a Sunday; the occurrence lands on Friday the 13th.
	tpl := Template{Frequency: FrequencyMonthly, DayOfMonth: intPtr(15)}

	if !tpl.IsDue(date(2025, time.June, 13)) {
		t.Fatal("expected due on the preceding Friday")
	}
	for _, day := range []int{14, 15, 16} {
		if tpl.IsDue(date(2025, time.June, day)) {
			t.Fatalf("unexpected due on June %d", day)
		}
	}
}

func TestMonthlyBackShiftAcrossMonthBoundary(t *testing.T) {
	// 2025-02-01 is a Saturday, so a day-1 occurrence for February lands on
	// Friday January 31.
	tpl := Template{Frequency: FrequencyMonthly, DayOfMonth: intPtr(1)}

	if !tpl.IsDue(date(2025, time.January, 31)) {
		t.Fatal("expected February occurrence on January 31")
	}
	if tpl.IsDue(date(2025, time.February, 1)) {
		t.Fatal("February 1 itself falls on a Saturday and must not fire")
	}
}

func TestYearlyMonthAnchoredDay(t *testing.T) {
	tpl := Template{Frequency: FrequencyYearly, MonthOfYear: intPtr(6), DayOfMonth: intPtr(1)}

	// 2026-06-01 is a Monday.
	if !tpl.IsDue(date(2026, time.June, 1)) {
		t.Fatal("expected due on 2026-06-01")
	}
	// 2025-06-01 is a Sunday, back-shifted to Friday 2025-05-30.
	if !tpl.IsDue(date(2025, time.May, 30)) {
		t.Fatal("expected weekend-shifted occurrence on 2025-05-30")
	}
	if tpl.IsDue(date(2025, time.June, 1)) {
		t.Fatal("unshifted Sunday date must not fire")
	}
	// No other month fires regardless of day.
	for m := time.January; m <= time.December; m++ {
		if m == time.June || m == time.May {
			continue
		}
		if tpl.IsDue(date(2026, m, 1)) {
			t.Fatalf("yearly template fired in %s", m)
		}
	}
}

func TestYearlyYearEndSentinel(t *testing.T) {
	tpl := Template{Frequency: FrequencyYearly, DayOfMonth: intPtr(DayLastOfMonth)}

	// 2027-12-31 is a Friday.
	if !tpl.IsDue(date(2027, time.December, 31)) {
		t.Fatal("expected due on 2027-12-31")
	}
	// 2028-12-31 is a Sunday; shifted back to Friday the 29th.
	if !tpl.IsDue(date(2028, time.December, 29)) {
		t.Fatal("expected shifted year-end occurrence on 2028-12-29")
	}
	if tpl.IsDue(date(2028, time.December, 31)) {
		t.Fatal("weekend year-end must not fire unshifted")
	}
	if tpl.IsDue(date(2027, time.June, 30)) {
		t.Fatal("year-end sentinel fired outside December")
	}
}

func TestEveryThreeMonthsUnanchored(t *testing.T) {
	// 2025-03-10, -06-10, -09-10 and -12-10 are all weekdays.
	tpl := Template{Frequency: FrequencyEvery3Months, DayOfMonth: intPtr(10)}

	for m := time.January; m <= time.December; m++ {
		due := tpl.IsDue(date(2025, m, 10))
		want := m == time.March || m == time.June || m == time.September || m == time.December
		if due != want {
			t.Fatalf("month %s: due=%v want=%v", m, due, want)
		}
	}
}

func TestEverySixMonthsAnchored(t *testing.T) {
	// Anchored to February: February and August.
	tpl := Template{Frequency: FrequencyEvery6Months, MonthOfYear: intPtr(2), DayOfMonth: intPtr(10)}

	// 2025-02-10 and 2025-08-...: Aug 10 2025 is a Sunday, shifted to Friday the 8th.
	if !tpl.IsDue(date(2025, time.February, 10)) {
		t.Fatal("expected due on 2025-02-10")
	}
	if !tpl.IsDue(date(2025, time.August, 8)) {
		t.Fatal("expected shifted occurrence on 2025-08-08")
	}
	if tpl.IsDue(date(2025, time.May, 9)) {
		t.Fatal("unanchored month fired")
	}
}

func TestEndOfMonthFebruary(t *testing.T) {
	tpl := Template{Frequency: FrequencyMonthly, DayOfMonth: intPtr(DayLastOfMonth)}

	// 2023 is not a leap year; 2023-02-28 is a Tuesday.
	if !tpl.IsDue(date(2023, time.February, 28)) {
		t.Fatal("expected due on 2023-02-28")
	}
	// 2024 is a leap year; 2024-02-29 is a Thursday.
	if tpl.IsDue(date(2024, time.February, 28)) {
		t.Fatal("leap-year February must not fire on the 28th")
	}
	if !tpl.IsDue(date(2024, time.February, 29)) {
		t.Fatal("expected due on 2024-02-29")
	}
}

func TestMissingDayOfMonthDefaultsToFirst(t *testing.T) {
	tpl := Template{Frequency: FrequencyMonthly}
	// 2025-07-01 is a Tuesday.
	if !tpl.IsDue(date(2025, time.July, 1)) {
		t.Fatal("expected default day-1 occurrence on 2025-07-01")
	}
	if tpl.IsDue(date(2025, time.July, 2)) {
		t.Fatal("default day-1 template fired on the 2nd")
	}
}

func TestNextOccurrenceAndOccurrences(t *testing.T) {
	tpl := Template{Frequency: FrequencyMonthly, DayOfMonth: intPtr(15)}

	next, ok := tpl.NextOccurrence(date(2025, time.June, 14))
	if !ok || !next.Equal(date(2025, time.July, 15)) {
		// June's occurrence was Friday the 13th, already past.
		t.Fatalf("expected 2025-07-15, got %v (ok=%v)", next, ok)
	}

	occs := tpl.Occurrences(date(2025, time.July, 1), 3)
	want := []time.Time{
		date(2025, time.July, 15),
		date(2025, time.August, 15),
		date(2025, time.September, 15),
	}
	if len(occs) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(occs))
	}
	for i := range want {
		if !occs[i].Equal(want[i]) {
			t.Fatalf("occurrence %d: expected %v, got %v", i, want[i], occs[i])
		}
	}
}

func TestWeekdayIndexIsMondayBased(t *testing.T) {
	// 2025-08-18 is a Monday.
	monday := date(2025, time.August, 18)
	for i := 0; i < 7; i++ {
		if got := WeekdayIndex(monday.AddDate(0, 0, i)); got != i {
			t.Fatalf("day offset %d: expected index %d, got %d", i, i, got)
		}
	}
}

func TestTimeOfDayIgnored(t *testing.T) {
	tpl := Template{Frequency: FrequencyMonthly, DayOfMonth: intPtr(15)}
	noon := time.Date(2025, time.July, 15, 12, 30, 45, 0, time.Local)
	if !tpl.IsDue(noon) {
		t.Fatal("time of day should not affect the predicate")
	}
}
