package domain

import "testing"

func TestValidRoast(t *testing.T) {
	tests := []struct {
		name  string
		roast string
		valid bool
	}{
		{"valid light", "light", true},
		{"valid medium", "medium", true},
		{"valid medium-dark", "medium-dark", true},
		{"valid dark", "dark", true},
		{"valid espresso", "espresso", true},
		{"valid decaf", "decaf", true},
		{"invalid empty", "", false},
		{"invalid unknown", "burnt", false},
		{"invalid capitalized", "Dark", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidRoast(tt.roast); got != tt.valid {
				t.Errorf("ValidRoast(%q) = %v, want %v", tt.roast, got, tt.valid)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents int
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{1850, "$18.50"},
		{100000, "$1000.00"},
		{-250, "-$2.50"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.cents); got != tt.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestOrderItemCount(t *testing.T) {
	o := Order{Items: []OrderItem{{Quantity: 2}, {Quantity: 1}, {Quantity: 3}}}
	if got := o.ItemCount(); got != 6 {
		t.Errorf("ItemCount() = %d, want 6", got)
	}
	if got := (Order{}).ItemCount(); got != 0 {
		t.Errorf("empty ItemCount() = %d, want 0", got)
	}
}
