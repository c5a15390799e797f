package controllers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/elsaferati/Primex-TaskManager-sub003/models"
	"github.com/elsaferati/Primex-TaskManager-sub003/schedule"
)

func intRef(v int) *int { return &v }

func TestSystemTasksCSVRoundTrip(t *testing.T) {
	in := []models.SystemTaskTemplate{
		{
			DepartmentID: 1,
			Title:        "Backup check",
			Description:  "Verify nightly backup finished",
			Frequency:    string(schedule.FrequencyWeekly),
			DaysOfWeek:   []int{0, 2, 4},
			IsActive:     true,
		},
		{
			DepartmentID: 2,
			Title:        "Invoice run",
			Frequency:    string(schedule.FrequencyMonthly),
			DayOfMonth:   intRef(schedule.DayLastOfMonth),
			IsActive:     false,
		},
		{
			DepartmentID: 2,
			Title:        "License renewal",
			Frequency:    string(schedule.FrequencyYearly),
			DayOfMonth:   intRef(15),
			MonthOfYear:  intRef(6),
			IsActive:     true,
		},
	}

	var buf bytes.Buffer
	if err := WriteSystemTasksCSV(&buf, in); err != nil {
		t.Fatalf("WriteSystemTasksCSV: %v", err)
	}

	out, rowErrs, err := ParseSystemTasksCSV(&buf)
	if err != nil {
		t.Fatalf("ParseSystemTasksCSV: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("expected no row errors, got %v", rowErrs)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d templates, got %d", len(in), len(out))
	}

	if out[0].Title != "Backup check" || len(out[0].DaysOfWeek) != 3 || out[0].DaysOfWeek[1] != 2 {
		t.Errorf("weekly template damaged in round trip: %+v", out[0])
	}
	if out[1].DayOfMonth == nil || *out[1].DayOfMonth != schedule.DayLastOfMonth || out[1].IsActive {
		t.Errorf("monthly template damaged in round trip: %+v", out[1])
	}
	if out[2].MonthOfYear == nil || *out[2].MonthOfYear != 6 {
		t.Errorf("yearly template damaged in round trip: %+v", out[2])
	}
}

func TestParseSystemTasksCSVRejectsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"department_id,title,description,frequency,days_of_week,day_of_week,day_of_month,month_of_year,is_active",
		"1,Good daily,,daily,,,,,true",
		"1,,missing title,daily,,,,,true",
		"1,Bad frequency,,fortnightly,,,,,true",
		"1,Bad day,,weekly,0;9,,,,true",
		"2,Good monthly,,monthly,,,0,,true",
	}, "\n")

	templates, rowErrs, err := ParseSystemTasksCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseSystemTasksCSV: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("expected 2 accepted templates, got %d", len(templates))
	}
	if len(rowErrs) != 3 {
		t.Fatalf("expected 3 rejected rows, got %d: %v", len(rowErrs), rowErrs)
	}
	if rowErrs[0].Line != 3 || rowErrs[1].Line != 4 || rowErrs[2].Line != 5 {
		t.Errorf("unexpected rejected line numbers: %v", rowErrs)
	}
	if templates[1].DayOfMonth == nil || *templates[1].DayOfMonth != schedule.DayLastOfMonth {
		t.Errorf("last-day sentinel not preserved: %+v", templates[1])
	}
}

func TestParseSystemTasksCSVRejectsWrongHeader(t *testing.T) {
	input := "id,name\n1,whatever\n"
	if _, _, err := ParseSystemTasksCSV(strings.NewReader(input)); err == nil {
		t.Fatal("expected header error, got nil")
	}
}
