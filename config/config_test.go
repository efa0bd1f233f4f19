package config

import (
	"testing"

	"garupa/models"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty enables everything",
			raw:  "",
			want: models.AllServiceTypes,
		},
		{
			name: "subset",
			raw:  "moto-taxi,delivery-bike",
			want: []string{"moto-taxi", "delivery-bike"},
		},
		{
			name: "whitespace tolerated",
			raw:  " moto-taxi , passenger-car ",
			want: []string{"moto-taxi", "passenger-car"},
		},
		{
			name: "unknown entries dropped",
			raw:  "moto-taxi,helicopter",
			want: []string{"moto-taxi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseServices(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("parseServices(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseServices(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}
