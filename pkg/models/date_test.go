package models_test

import (
	"testing"
	"time"

	"github.com/XavierBriggs/Scoreline/pkg/models"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    models.Date
		wantErr bool
	}{
		{"2025-04-01", models.Date{Year: 2025, Month: time.April, Day: 1}, false},
		{"2024-12-31", models.Date{Year: 2024, Month: time.December, Day: 31}, false},
		{"2025-13-01", models.Date{}, true},
		{"04/01/2025", models.Date{}, true},
		{"", models.Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := models.ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateAddDays(t *testing.T) {
	tests := []struct {
		name string
		date models.Date
		n    int
		want models.Date
	}{
		{"same month", models.Date{Year: 2025, Month: time.April, Day: 10}, 5, models.Date{Year: 2025, Month: time.April, Day: 15}},
		{"across month end", models.Date{Year: 2025, Month: time.April, Day: 30}, 1, models.Date{Year: 2025, Month: time.May, Day: 1}},
		{"back across year start", models.Date{Year: 2025, Month: time.January, Day: 1}, -1, models.Date{Year: 2024, Month: time.December, Day: 31}},
		{"leap day", models.Date{Year: 2024, Month: time.February, Day: 28}, 1, models.Date{Year: 2024, Month: time.February, Day: 29}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.AddDays(tt.n); got != tt.want {
				t.Errorf("%v.AddDays(%d) = %v, want %v", tt.date, tt.n, got, tt.want)
			}
		})
	}
}

func TestDateMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		date      models.Date
		wantFirst models.Date
		wantLast  models.Date
	}{
		{"april", models.Date{Year: 2025, Month: time.April, Day: 17}, models.Date{Year: 2025, Month: time.April, Day: 1}, models.Date{Year: 2025, Month: time.April, Day: 30}},
		{"leap february", models.Date{Year: 2024, Month: time.February, Day: 3}, models.Date{Year: 2024, Month: time.February, Day: 1}, models.Date{Year: 2024, Month: time.February, Day: 29}},
		{"december", models.Date{Year: 2025, Month: time.December, Day: 25}, models.Date{Year: 2025, Month: time.December, Day: 1}, models.Date{Year: 2025, Month: time.December, Day: 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := tt.date.MonthRange()
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("MonthRange() = (%v, %v), want (%v, %v)", first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestDateOrdering(t *testing.T) {
	earlier := models.Date{Year: 2025, Month: time.March, Day: 31}
	later := models.Date{Year: 2025, Month: time.April, Day: 1}

	if !earlier.Before(later) {
		t.Errorf("%v.Before(%v) = false, want true", earlier, later)
	}
	if later.Before(earlier) {
		t.Errorf("%v.Before(%v) = true, want false", later, earlier)
	}
	if !later.After(earlier) {
		t.Errorf("%v.After(%v) = false, want true", later, earlier)
	}
	if earlier.Before(earlier) {
		t.Error("a date must not be before itself")
	}
}

func TestDateString(t *testing.T) {
	d := models.Date{Year: 2025, Month: time.April, Day: 5}
	if got := d.String(); got != "2025-04-05" {
		t.Errorf("String() = %q, want %q", got, "2025-04-05")
	}
}
