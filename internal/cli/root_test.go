package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{"mon", []time.Weekday{time.Monday}, false},
		{"mon,wed,fri", []time.Weekday{time.Monday, time.Wednesday, time.Friday}, false},
		{"Monday, Friday", []time.Weekday{time.Monday, time.Friday}, false},
		{"0,6", []time.Weekday{time.Sunday, time.Saturday}, false},
		{"daily", []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}, false},
		{"all", []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}, false},
		{"7", nil, true},
		{"someday", nil, true},
		{"mon,bogus", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekdays(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatWeekdays(t *testing.T) {
	tests := []struct {
		name string
		days []time.Weekday
		want string
	}{
		{"all seven", []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}, "daily"},
		{"sorted output", []time.Weekday{time.Friday, time.Monday}, "Mon,Fri"},
		{"single", []time.Weekday{time.Wednesday}, "Wed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWeekdays(tt.days); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
