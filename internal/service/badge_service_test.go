package service

import "testing"

func TestBadgeNameForHours(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0, "Fresh Starter"},
		{19.75, "Fresh Starter"},
		{20, "Street Guardian"},
		{49.5, "Street Guardian"},
		{50, "Eco Champion"},
		{100, "Green Warrior"},
		{199.75, "Green Warrior"},
		{200, "Green Legend"},
		{500, "Green Legend"},
	}
	for _, tc := range cases {
		if got := badgeNameForHours(tc.hours); got != tc.want {
			t.Fatalf("badgeNameForHours(%v) = %q, want %q", tc.hours, got, tc.want)
		}
	}
}
