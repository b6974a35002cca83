package trip

import (
	"errors"
	"testing"
)

const today = "2025-06-15"

// TestParams_Validate_DayBounds verifies the inclusive [1,60] range.
func TestParams_Validate_DayBounds(t *testing.T) {
	cases := []struct {
		days int
		want error
	}{
		{0, ErrDayCountRange},
		{1, nil},
		{60, nil},
		{61, ErrDayCountRange},
		{-3, ErrDayCountRange},
	}
	for _, tc := range cases {
		p := Params{Days: tc.days}
		if err := p.Validate(today); !errors.Is(err, tc.want) {
			t.Errorf("days=%d: err = %v, want %v", tc.days, err, tc.want)
		}
	}
}

// TestParams_Validate_StartDate verifies the today-inclusive lower bound
// and the format check.
func TestParams_Validate_StartDate(t *testing.T) {
	cases := []struct {
		start string
		want  error
	}{
		{"", nil},
		{"2025-06-15", nil},
		{"2025-06-16", nil},
		{"2025-06-14", ErrStartDatePast},
		{"15/06/2025", ErrStartDateFormat},
		{"not-a-date", ErrStartDateFormat},
	}
	for _, tc := range cases {
		p := Params{Days: 3, StartDate: tc.start}
		if err := p.Validate(today); !errors.Is(err, tc.want) {
			t.Errorf("start=%q: err = %v, want %v", tc.start, err, tc.want)
		}
	}
}

// TestParams_DisplayTitle verifies trimming and the blank-title default.
func TestParams_DisplayTitle(t *testing.T) {
	if got := (Params{Title: "  Honeymoon  "}).DisplayTitle(); got != "Honeymoon" {
		t.Errorf("DisplayTitle = %q", got)
	}
	if got := (Params{Title: "   "}).DisplayTitle(); got != DefaultTitle {
		t.Errorf("DisplayTitle = %q, want %q", got, DefaultTitle)
	}
}
