package core

import (
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "trims and lowercases", in: "  Warm  ", want: "warm"},
		{name: "collapses interior whitespace", in: "warm \t\n hearted", want: "warm hearted"},
		{name: "hangul unchanged", in: "따뜻한", want: "따뜻한"},
		{name: "drops control characters", in: "따뜻\x00한\x07", want: "따뜻한"},
		{name: "only whitespace", in: " \t ", want: ""},
		{name: "composes decomposed hangul", in: norm.NFD.String("깊이있는"), want: "깊이있는"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKeyword(tt.in); got != tt.want {
				t.Errorf("NormalizeKeyword(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeKeyword_Idempotent(t *testing.T) {
	for _, in := range []string{" A  b ", "성장 소설", "Dystopia\n"} {
		once := NormalizeKeyword(in)
		if twice := NormalizeKeyword(once); twice != once {
			t.Errorf("NormalizeKeyword not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestStripSpaces(t *testing.T) {
	if got := StripSpaces(" 어린  왕자 "); got != "어린왕자" {
		t.Errorf("StripSpaces() = %q", got)
	}
}
