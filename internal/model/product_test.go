package model

import "testing"

func TestStatusFor(t *testing.T) {
	const threshold = 10

	tests := []struct {
		name     string
		quantity int
		want     string
	}{
		{
			name:     "zero quantity",
			quantity: 0,
			want:     StatusOutOfStock,
		},
		{
			name:     "negative quantity",
			quantity: -1,
			want:     StatusOutOfStock,
		},
		{
			name:     "below threshold",
			quantity: 5,
			want:     StatusLowStock,
		},
		{
			name:     "just below threshold",
			quantity: 9,
			want:     StatusLowStock,
		},
		{
			name:     "at threshold",
			quantity: 10,
			want:     StatusInStock,
		},
		{
			name:     "well stocked",
			quantity: 250,
			want:     StatusInStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.quantity, threshold); got != tt.want {
				t.Errorf("StatusFor(%d, %d) = %q, want %q", tt.quantity, threshold, got, tt.want)
			}
		})
	}
}
