package controllers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elsaferati/Primex-TaskManager-sub003/models"
	"github.com/elsaferati/Primex-TaskManager-sub003/schedule"
)

// systemTaskCSVHeader is the fixed column order of template exports.
var systemTaskCSVHeader = []string{
	"department_id", "title", "description", "frequency",
	"days_of_week", "day_of_week", "day_of_month", "month_of_year", "is_active",
}

// WriteSystemTasksCSV writes templates in the export column order.
func WriteSystemTasksCSV(w io.Writer, templates []models.SystemTaskTemplate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(systemTaskCSVHeader); err != nil {
		return err
	}
	for i := range templates {
		t := &templates[i]
		record := []string{
			strconv.FormatInt(t.DepartmentID, 10),
			t.Title,
			t.Description,
			t.Frequency,
			joinInts(t.DaysOfWeek),
			formatOptInt(t.DayOfWeek),
			formatOptInt(t.DayOfMonth),
			formatOptInt(t.MonthOfYear),
			strconv.FormatBool(t.IsActive),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVRowError reports one rejected import row. Line numbers are 1-based and
// include the header line.
type CSVRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ParseSystemTasksCSV reads an import file. Rows that fail validation are
// collected as errors instead of aborting the whole parse, so a partially
// broken file can be reported back line by line.
func ParseSystemTasksCSV(r io.Reader) ([]models.SystemTaskTemplate, []CSVRowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(systemTaskCSVHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	for i, col := range systemTaskCSVHeader {
		if strings.TrimSpace(header[i]) != col {
			return nil, nil, fmt.Errorf("unexpected header column %d: got %q, want %q", i+1, header[i], col)
		}
	}

	var templates []models.SystemTaskTemplate
	var rowErrs []CSVRowError
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, CSVRowError{Line: line, Message: err.Error()})
			continue
		}
		t, err := parseSystemTaskRecord(record)
		if err != nil {
			rowErrs = append(rowErrs, CSVRowError{Line: line, Message: err.Error()})
			continue
		}
		templates = append(templates, t)
	}
	return templates, rowErrs, nil
}

func parseSystemTaskRecord(record []string) (models.SystemTaskTemplate, error) {
	var t models.SystemTaskTemplate

	departmentID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return t, fmt.Errorf("bad department_id %q", record[0])
	}
	title := strings.TrimSpace(record[1])
	if title == "" {
		return t, fmt.Errorf("title must not be empty")
	}
	frequency := strings.TrimSpace(record[3])
	if !schedule.ValidFrequency(schedule.Frequency(frequency)) {
		return t, fmt.Errorf("unknown frequency %q", frequency)
	}
	daysOfWeek, err := splitInts(record[4])
	if err != nil {
		return t, fmt.Errorf("bad days_of_week %q", record[4])
	}
	for _, d := range daysOfWeek {
		if d < 0 || d > 6 {
			return t, fmt.Errorf("day of week %d out of range 0..6", d)
		}
	}
	dayOfWeek, err := parseOptInt(record[5])
	if err != nil {
		return t, fmt.Errorf("bad day_of_week %q", record[5])
	}
	if dayOfWeek != nil && (*dayOfWeek < 0 || *dayOfWeek > 6) {
		return t, fmt.Errorf("day of week %d out of range 0..6", *dayOfWeek)
	}
	dayOfMonth, err := parseOptInt(record[6])
	if err != nil {
		return t, fmt.Errorf("bad day_of_month %q", record[6])
	}
	if dayOfMonth != nil && (*dayOfMonth < schedule.DayFirstWorkingDay || *dayOfMonth > 31) {
		return t, fmt.Errorf("day of month %d out of range -1..31", *dayOfMonth)
	}
	monthOfYear, err := parseOptInt(record[7])
	if err != nil {
		return t, fmt.Errorf("bad month_of_year %q", record[7])
	}
	if monthOfYear != nil && (*monthOfYear < 1 || *monthOfYear > 12) {
		return t, fmt.Errorf("month of year %d out of range 1..12", *monthOfYear)
	}
	isActive := true
	if s := strings.TrimSpace(record[8]); s != "" {
		isActive, err = strconv.ParseBool(s)
		if err != nil {
			return t, fmt.Errorf("bad is_active %q", record[8])
		}
	}

	t = models.SystemTaskTemplate{
		DepartmentID: departmentID,
		Title:        title,
		Description:  strings.TrimSpace(record[2]),
		Frequency:    frequency,
		DaysOfWeek:   daysOfWeek,
		DayOfWeek:    dayOfWeek,
		DayOfMonth:   dayOfMonth,
		MonthOfYear:  monthOfYear,
		IsActive:     isActive,
	}
	return t, nil
}

// joinInts renders a day set as "0;2;4". Semicolons keep the cell free of
// CSV quoting.
func joinInts(vals []int) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ";")
}

func splitInts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	vals := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func parseOptInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
