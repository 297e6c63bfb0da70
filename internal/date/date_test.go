package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseLayouts(t *testing.T) {
	want := New(2021, time.March, 4)
	for _, in := range []string{
		"2021-03-04",
		"2021-3-4",
		" 2021-03-04 ",
		"3/4/2021",
		"2021/03/04",
		"2021-03-04 16:30:00",
		"2021-03-04T16:30:00",
		"2021-03-04T16:30:00Z",
	} {
		got, err := Parse(in)
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2021-13-45", "04.03.2021"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected an error", in)
		}
	}
}

func TestNewNormalizes(t *testing.T) {
	if got := New(2020, time.February, 30); got != New(2020, time.March, 1) {
		t.Errorf("New(2020, 2, 30) = %v, want 2020-03-01", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2010, time.January, 5)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2010-01-05"` {
		t.Errorf("Marshal = %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("Unmarshal = %v, want %v", back, d)
	}
}
