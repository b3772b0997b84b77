package randx

import "testing"

func TestConfirmationCode(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		code, err := ConfirmationCode()
		if err != nil {
			t.Fatalf("ConfirmationCode: %v", err)
		}
		if !IsValidConfirmationCode(code) {
			t.Errorf("generated code %q fails its own validation", code)
		}
		seen[code] = struct{}{}
	}

	if len(seen) < 50 {
		t.Errorf("generated %d distinct codes out of 50", len(seen))
	}
}

func TestIsValidConfirmationCode(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"Ab3xYz01", true},
		{"short", false},
		{"toolongcode1", false},
		{"bad-ch4r", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsValidConfirmationCode(tc.code); got != tc.want {
			t.Errorf("IsValidConfirmationCode(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}
