package money

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1,234.50", "1234.5", true},
		{"$1,234.50", "1234.5", true},
		{`"$12,000.00"`, "12000", true},
		{"  450.25 ", "450.25", true},
		{"0", "0", true},
		{"", "", false},
		{"abc", "", false},
	}

	for _, c := range cases {
		got, err := Parse(c.in)
		if c.ok != (err == nil) {
			t.Errorf("Parse(%q) error = %v, want ok=%v", c.in, err, c.ok)
			continue
		}
		if c.ok && got.String() != c.want {
			t.Errorf("Parse(%q) = %s, want %s", c.in, got.String(), c.want)
		}
	}
}

func TestEqualIsExact(t *testing.T) {
	displayed, _ := Parse("1,234.50")
	expected, _ := Parse("$1,234.50")
	if !Equal(displayed, expected) {
		t.Errorf("expected %s == %s", displayed, expected)
	}

	offByOne, _ := Parse("$1,234.51")
	if Equal(displayed, offByOne) {
		t.Errorf("expected %s != %s", displayed, offByOne)
	}
}
