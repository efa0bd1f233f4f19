package pricing

import "testing"

func TestParseToMinorUnits(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"50", 5000, true},
		{"14,7", 1470, true},
		{"14,70", 1470, true},
		{"14.70", 1470, true},
		{"R$ 14,70", 1470, true},
		{"R$14,70", 1470, true},
		{"1.234,56", 123456, true},
		{"1,234.56", 123456, true},
		{"2.500.000,00", 250000000, true},
		{"0,05", 5, true},
		{"12,345", 1234, true}, // third decimal digit truncated
		{"1,2,3", 0, false},
		{"12,34,56", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"R$", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseToMinorUnits(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseToMinorUnits(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseToMinorUnits(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatMinorUnits(t *testing.T) {
	if got := FormatMinorUnits(1470); got != "R$ 14,70" {
		t.Errorf("FormatMinorUnits(1470) = %q, want %q", got, "R$ 14,70")
	}
	if got := FormatMinorUnits(5); got != "R$ 0,05" {
		t.Errorf("FormatMinorUnits(5) = %q, want %q", got, "R$ 0,05")
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	samples := []int64{0, 5, 99, 100, 1470, 5000, 123456, 250000000}
	for _, cents := range samples {
		display := FormatMinorUnits(cents)
		back, ok := ParseToMinorUnits(display)
		if !ok {
			t.Fatalf("ParseToMinorUnits(%q) unexpectedly invalid", display)
		}
		if back != cents {
			t.Errorf("round trip %d → %q → %d", cents, display, back)
		}
	}
}

func TestToMinorUnits(t *testing.T) {
	if got := ToMinorUnits(27.50); got != 2750 {
		t.Errorf("ToMinorUnits(27.50) = %d, want 2750", got)
	}
	if got := ToMinorUnits(0); got != 0 {
		t.Errorf("ToMinorUnits(0) = %d, want 0", got)
	}
}
