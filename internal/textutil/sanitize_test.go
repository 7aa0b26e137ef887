package textutil

import "testing"

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Half-Life 2", "Half-Life 2"},
		{"accents dropped", "Café Simulator", "Caf Simulator"},
		{"cjk dropped then trimmed", "ゲーム Deluxe", "Deluxe"},
		{"trademark dropped", "DOOM™", "DOOM"},
		{"control chars dropped", "a\tb\nc", "abc"},
		{"empty", "", ""},
		{"all non ascii", "日本語", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeName(tc.in); got != tc.want {
				t.Fatalf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
