package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContactHeaderFull(t *testing.T) {
	header := strings.Join([]string{
		"Jane Doe",
		"Senior Software Engineer",
		"San Francisco, California",
		"jane.doe@example.com | +1 (555) 123-4567",
		"linkedin.com/in/janedoe | github.com/janedoe",
		"janedoe.dev",
	}, "\n")

	basics := ParseContactHeader(header)
	require.NotNil(t, basics)

	assert.Equal(t, "Jane Doe", basics.Name)
	assert.Equal(t, "Senior Software Engineer", basics.Label)
	assert.Equal(t, "jane.doe@example.com", basics.Email)
	assert.Equal(t, "+15551234567", basics.Phone)
	assert.Equal(t, "janedoe.dev", basics.URL)

	require.NotNil(t, basics.Location)
	assert.Equal(t, "San Francisco", basics.Location.City)
	assert.Equal(t, "California", basics.Location.Region)

	require.Len(t, basics.Profiles, 2)
	assert.Equal(t, "LinkedIn", basics.Profiles[0].Network)
	assert.Equal(t, "janedoe", basics.Profiles[0].Username)
	assert.Equal(t, "https://linkedin.com/in/janedoe", basics.Profiles[0].URL)
	assert.Equal(t, "GitHub", basics.Profiles[1].Network)
	assert.Equal(t, "janedoe", basics.Profiles[1].Username)
	assert.Equal(t, "https://github.com/janedoe", basics.Profiles[1].URL)
}

func TestParseContactHeaderEmpty(t *testing.T) {
	basics := ParseContactHeader("")
	require.NotNil(t, basics)
	assert.Empty(t, basics.Name)
	assert.Empty(t, basics.Email)
	assert.Nil(t, basics.Profiles)
}

func TestParseContactHeaderNameHeuristics(t *testing.T) {
	// 全小写、过多词数、含数字的行都不算姓名
	for _, header := range []string{
		"jane doe",
		"Jane Doe Alice Bob Carol",
		"Jane 2 Doe",
		"Results-driven engineer with 10 years of experience",
	} {
		basics := ParseContactHeader(header)
		assert.Empty(t, basics.Name, "header=%q", header)
	}

	assert.Equal(t, "Mary-Jane O'Connor", ParseContactHeader("Mary-Jane O'Connor").Name)
	assert.Equal(t, "Jane A. Doe", ParseContactHeader("Jane A. Doe").Name)
}

func TestParseContactHeaderPhoneNormalization(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"(555) 123-4567", "5551234567"},
		{"+44 20 7946 0958", "+442079460958"},
		{"555 12", ""}, // 位数不足
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseContactHeader(tt.header).Phone, "header=%q", tt.header)
	}
}

func TestParseContactHeaderPhoneIgnoresEmailDigits(t *testing.T) {
	basics := ParseContactHeader("jane12345678@example.com")
	assert.Empty(t, basics.Phone)
	assert.Equal(t, "jane12345678@example.com", basics.Email)
}

func TestParseContactHeaderProfileVariants(t *testing.T) {
	basics := ParseContactHeader("https://www.linkedin.com/in/jane-doe/ and GitHub: https://github.com/jane-doe")
	require.Len(t, basics.Profiles, 2)
	assert.Equal(t, "jane-doe", basics.Profiles[0].Username)
	assert.Equal(t, "jane-doe", basics.Profiles[1].Username)
}

func TestParseContactHeaderURLAvoidsDottedWords(t *testing.T) {
	// 普通的人名缩写不应被当作个人网址
	basics := ParseContactHeader("Jane Doe\nworked at Initech Inc. previously")
	assert.Empty(t, basics.URL)
}

func TestParseContactHeaderURLInParentheses(t *testing.T) {
	// 括号包裹的链接不应带上右括号
	basics := ParseContactHeader("Jane Doe\nPortfolio (janedoe.dev/work)")
	assert.Equal(t, "janedoe.dev/work", basics.URL)
}
