package validators

import "testing"

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		" Anna@Example.COM ":      "anna@example.com",
		"not-an-email":            "",
		"Anna <anna@example.com>": "",
	}
	for in, want := range cases {
		if got := NormalizeEmail(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestNormalizeUsername(t *testing.T) {
	cases := map[string]bool{
		"Anna_01":                true,
		"abc":                    false,
		"anna-01":                false,
		"a_very_long_username_x": false,
		"анна":                   false,
	}
	for in, ok := range cases {
		if _, got := NormalizeUsername(in); got != ok {
			t.Fatalf("%q: expected %v", in, ok)
		}
	}
}
