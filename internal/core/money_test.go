package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{".5", "0.5", true},
		{"5.", "5", true},
		{"1.005", "1.01", true}, // half-up rounding
		{"12.344", "12.34", true},
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"+1", "", false},
		{"0", "", false},
		{"0.004", "", false}, // rounds to zero
		{"abc", "", false},
		{"1.2.3", "", false},
		{"1 000", "", false},
		{".", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err != ErrInvalidAmount {
				t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
			}
		}
	}
}

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(decimal.RequireFromString("0.01")); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := ValidateAmount(decimal.Zero); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := ValidateAmount(decimal.NewFromInt(-3)); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestParseBalance(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"100", "100", true},
		{"0", "0", true},
		{"-15,25", "-15.25", true},
		{" -0.005 ", "-0.01", true},
		{"--1", "", false},
		{"+5", "", false},
		{"", "", false},
		{"-", "", false},
		{"ten", "", false},
	}
	for _, tc := range cases {
		got, err := ParseBalance(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}
