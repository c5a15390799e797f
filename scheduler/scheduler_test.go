package scheduler

import "testing"

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("08:00")
	if err != nil {
		t.Fatalf("buildDailySpec: %v", err)
	}
	if spec != "0 0 8 * * *" {
		t.Errorf("expected %q, got %q", "0 0 8 * * *", spec)
	}

	spec, err = buildDailySpec("23:59")
	if err != nil {
		t.Fatalf("buildDailySpec: %v", err)
	}
	if spec != "0 59 23 * * *" {
		t.Errorf("expected %q, got %q", "0 59 23 * * *", spec)
	}
}

func TestBuildDailySpecRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "8", "24:00", "12:60", "ab:cd", "12:00:00"} {
		if _, err := buildDailySpec(input); err == nil {
			t.Errorf("expected error for %q, got nil", input)
		}
	}
}
