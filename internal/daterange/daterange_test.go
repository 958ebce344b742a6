package daterange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want FirstLast
	}{
		{"", FirstLast{Placeholder, Placeholder}},
		{"   ", FirstLast{Placeholder, Placeholder}},
		{"1825", FirstLast{"1825", Placeholder}},
		{"1825-1845", FirstLast{"1825", "1845"}},
		{" 1825 - 1845 ", FirstLast{"1825", "1845"}},
		{"1825-", FirstLast{"1825", Placeholder}},
		{"-1845", FirstLast{Placeholder, "1845"}},
		{"circa-1845", FirstLast{"circa", "1845"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.in))
		})
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		in   string
		want Range
	}{
		{"1825-1845", Range{Year{1825, true}, Year{1845, true}}},
		{"1810", Range{Year{1810, true}, Year{1810, true}}},
		{" 1810 ", Range{Year{1810, true}, Year{1810, true}}},
		{"1810s-1820s", Range{Year{1810, true}, Year{1820, true}}},
		{"", Range{}},
		{"unknown", Range{}},
		{"ca-1840", Range{Year{}, Year{1840, true}}},
		{"1840-?", Range{Year{1840, true}, Year{}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Bounds(tt.in))
		})
	}
}

func TestParseYear(t *testing.T) {
	assert.Equal(t, Year{1820, true}, ParseYear("1820"))
	assert.Equal(t, Year{1820, true}, ParseYear("+1820"))
	assert.Equal(t, Year{1820, true}, ParseYear(" 1820abc"))
	assert.Equal(t, Year{}, ParseYear(""))
	assert.Equal(t, Year{}, ParseYear("abc"))
	assert.Equal(t, Year{}, ParseYear("+"))
}

func TestRange_InvalidYearNeverMatchesBound(t *testing.T) {
	bound := ParseYear("1820")
	for _, s := range []string{"", "unknown", "n/a-n/a"} {
		r := Bounds(s)
		assert.False(t, r.AtLeast(bound), "AtLeast %q", s)
		assert.False(t, r.AtMost(bound), "AtMost %q", s)
	}
}

func TestRange_InvalidBoundMatchesNothing(t *testing.T) {
	r := Bounds("1825-1845")
	assert.False(t, r.AtLeast(ParseYear("abc")))
	assert.False(t, r.AtMost(ParseYear("abc")))
}

func TestRange_Comparisons(t *testing.T) {
	r := Bounds("1825-1845")
	assert.True(t, r.AtLeast(Year{1845, true}))
	assert.False(t, r.AtLeast(Year{1846, true}))
	assert.True(t, r.AtMost(Year{1825, true}))
	assert.False(t, r.AtMost(Year{1824, true}))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "1825-1845", Join("1825", "1845"))
	assert.Equal(t, "1825", Join(" 1825 ", ""))
	assert.Equal(t, "1825", Join("1825", Placeholder))
	assert.Equal(t, "-1845", Join("", "1845"))
	assert.Equal(t, "", Join("", ""))
}

func TestDisplay_RoundTrip(t *testing.T) {
	for _, s := range []string{"1825-1845", " 1801 -1802", "1700-1799"} {
		d := Display(s)
		assert.Equal(t, d, Display(Join(d.FirstSeen, d.LastSeen)), s)
	}
}

func TestYear_String(t *testing.T) {
	assert.Equal(t, "1825", Year{1825, true}.String())
	assert.Equal(t, Placeholder, Year{}.String())
}
