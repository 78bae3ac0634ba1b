package prompt

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func stdioWith(input string) (*Stdio, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Stdio{in: bufio.NewReader(strings.NewReader(input)), out: out}, out
}

func TestYesNoDefaults(t *testing.T) {
	cases := []struct {
		input string
		def   bool
		want  bool
	}{
		{"\n", true, true},
		{"\n", false, false},
		{"y\n", false, true},
		{"Y\n", false, true},
		{"n\n", true, false},
		{"whatever\n", true, false},
	}
	for _, c := range cases {
		s, _ := stdioWith(c.input)
		got, err := s.YesNo("Continue?", c.def)
		if err != nil {
			t.Fatalf("YesNo(%q) error: %v", c.input, err)
		}
		if got != c.want {
			t.Errorf("YesNo(%q, def=%v) = %v, want %v", c.input, c.def, got, c.want)
		}
	}
}

func TestIntDefaultOnEmptyAndGarbage(t *testing.T) {
	for _, input := range []string{"\n", "abc\n"} {
		s, _ := stdioWith(input)
		got, err := s.Int("How many?", 5)
		if err != nil || got != 5 {
			t.Errorf("Int(%q) = %d, %v, want 5", input, got, err)
		}
	}

	s, _ := stdioWith("12\n")
	got, err := s.Int("How many?", 5)
	if err != nil || got != 12 {
		t.Errorf("Int(12) = %d, %v", got, err)
	}
}

func TestChooseRepromptsOnInvalid(t *testing.T) {
	s, out := stdioWith("9\nzero\n2\n")
	got, err := s.Choose("Pick one", []string{"Jan 2026", "Feb 2026", "Mar 2026"})
	if err != nil {
		t.Fatalf("Choose error: %v", err)
	}
	if got != 1 {
		t.Errorf("Choose = %d, want 1", got)
	}
	if !strings.Contains(out.String(), "Invalid selection") {
		t.Errorf("expected reprompt message, got %q", out.String())
	}
}
