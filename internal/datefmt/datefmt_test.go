package datefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatterFormat(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	f := New(ist)

	cases := map[string]string{
		"":                          "",
		"2024-03-05T10:15:00Z":      "05/03/2024, 15:45",
		"2024-03-05T10:15:00.123Z":  "05/03/2024, 15:45",
		"2024-03-05T10:15:00+01:00": "05/03/2024, 14:45",
		"2024-03-05T10:15:00":       "05/03/2024, 10:15",
		"2024-03-05T10:15":          "05/03/2024, 10:15",
		"2024-03-05":                "05/03/2024, 05:30",
		"yesterday":                 InvalidDate,
		" ":                         InvalidDate,
	}
	for in, want := range cases {
		assert.Equal(t, want, f.Format(in), "input %q", in)
	}
}

func TestFormatUsesLocalZone(t *testing.T) {
	want := time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC).In(time.Local).Format(displayLayout)
	assert.Equal(t, want, Format("2024-01-02T03:04:00Z"))
}
