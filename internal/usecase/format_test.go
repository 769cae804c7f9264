package usecase

import "testing"

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0"},
		{in: 999, want: "999"},
		{in: 1000, want: "1 000"},
		{in: 123456, want: "123 456"},
		{in: 1234567, want: "1 234 567"},
		{in: -1234, want: "-1 234"},
	}

	for _, tc := range cases {
		if got := FormatPrice(tc.in); got != tc.want {
			t.Errorf("FormatPrice(%d) got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatEnhancement(t *testing.T) {
	t.Parallel()

	if got := FormatEnhancement(0); got != "+0" {
		t.Fatalf("got %q, want %q", got, "+0")
	}
	if got := FormatEnhancement(15); got != "+15" {
		t.Fatalf("got %q, want %q", got, "+15")
	}
}
