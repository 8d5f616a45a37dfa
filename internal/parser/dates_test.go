package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindDateRange(t *testing.T) {
	tests := []struct {
		line  string
		start string
		end   string
		ok    bool
	}{
		{"Jan 2020 - Mar 2022", "Jan 2020", "Mar 2022", true},
		{"January 2020 - March 2022", "January 2020", "March 2022", true},
		{"01/2020 - 03/2021", "01/2020", "03/2021", true},
		{"2018 - 2022", "2018", "2022", true},
		{"2018 to 2022", "2018", "2022", true},
		{"May 2021 - Present", "May 2021", "Present", true},
		{"May 2021 - current", "May 2021", "Present", true},
		{"Sep 2019 - now", "Sep 2019", "Present", true},
		{"Software Engineer at Google", "", "", false},
		{"Since 2020", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		start, end, ok := FindDateRange(tt.line)
		assert.Equal(t, tt.ok, ok, "line=%q", tt.line)
		assert.Equal(t, tt.start, start, "line=%q", tt.line)
		assert.Equal(t, tt.end, end, "line=%q", tt.line)
	}
}

func TestFindDateRangeEmbedded(t *testing.T) {
	start, end, ok := FindDateRange("Acme Corp | Jun 2016 - Dec 2019 | Berlin")
	assert.True(t, ok)
	assert.Equal(t, "Jun 2016", start)
	assert.Equal(t, "Dec 2019", end)
}

func TestCountDateRanges(t *testing.T) {
	assert.Equal(t, 0, CountDateRanges(""))
	assert.Equal(t, 0, CountDateRanges("no dates here"))
	assert.Equal(t, 2, CountDateRanges("Jan 2020 - Present\nand 2014 - 2018 elsewhere"))
}

func TestStripDateRange(t *testing.T) {
	assert.Equal(t, "Engineer at Acme", StripDateRange("Engineer at Acme Jan 2020 - Present"))
	assert.Equal(t, "untouched line", StripDateRange("untouched line"))
}

func TestFindYear(t *testing.T) {
	assert.Equal(t, "2021", FindYear("AWS Certified (2021)"))
	assert.Equal(t, "", FindYear("no year"))
	// 超出合理范围的数字不算年份
	assert.Equal(t, "", FindYear("room 3021"))
}
