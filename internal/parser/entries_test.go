package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkSectionTwoEntries(t *testing.T) {
	content := strings.Join([]string{
		"Software Engineer at Google",
		"Jan 2020 - Present",
		"• Built the widget pipeline",
		"• Cut processing latency by 40%",
		"",
		"Data Analyst - Initech",
		"Jun 2016 - Dec 2019",
		"• Automated weekly reporting",
	}, "\n")

	entries := ParseWorkSection(content)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "Software Engineer", first.Position)
	assert.Equal(t, "Google", first.Company)
	assert.Equal(t, "Jan 2020", first.StartDate)
	assert.Equal(t, "Present", first.EndDate)
	require.Len(t, first.Highlights, 2)
	assert.Equal(t, "Built the widget pipeline", first.Highlights[0])

	second := entries[1]
	assert.Equal(t, "Data Analyst", second.Position)
	assert.Equal(t, "Initech", second.Company)
	assert.Equal(t, "Jun 2016", second.StartDate)
	assert.Equal(t, "Dec 2019", second.EndDate)
	assert.Len(t, second.Highlights, 1)
}

func TestParseWorkSectionHeaderWithInlineDates(t *testing.T) {
	content := "Backend Engineer at Acme | Mar 2021 - Present\n• Shipped the payments service"
	entries := ParseWorkSection(content)
	require.Len(t, entries, 1)
	assert.Equal(t, "Backend Engineer", entries[0].Position)
	assert.Equal(t, "Acme", entries[0].Company)
	assert.Equal(t, "Mar 2021", entries[0].StartDate)
	assert.Equal(t, "Present", entries[0].EndDate)
}

func TestParseWorkSectionProseSummary(t *testing.T) {
	content := strings.Join([]string{
		"Engineer at Beta Corp",
		"2018 - 2020",
		"Owned the ingestion system end to end.",
		"Mentored two junior engineers.",
	}, "\n")
	entries := ParseWorkSection(content)
	require.Len(t, entries, 1)
	assert.Equal(t, "Owned the ingestion system end to end. Mentored two junior engineers.", entries[0].Summary)
}

func TestParseWorkSectionEmpty(t *testing.T) {
	assert.Empty(t, ParseWorkSection(""))
	assert.Empty(t, ParseWorkSection("  \n \n"))
}

func TestParseWorkSectionManualDashBullets(t *testing.T) {
	content := "Developer at Shop\n- built the storefront\n* fixed the cart"
	entries := ParseWorkSection(content)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"built the storefront", "fixed the cart"}, entries[0].Highlights)
}

func TestParseEducationSectionSingleEntry(t *testing.T) {
	content := strings.Join([]string{
		"B.S. in Computer Science",
		"University of Somewhere",
		"2014 - 2018",
		"GPA: 3.8/4.0",
	}, "\n")

	entries := ParseEducationSection(content)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "University of Somewhere", e.Institution)
	assert.Equal(t, "B.S.", e.StudyType)
	assert.Equal(t, "Computer Science", e.Area)
	assert.Equal(t, "2014", e.StartDate)
	assert.Equal(t, "2018", e.EndDate)
	assert.Equal(t, "3.8/4.0", e.Score)
}

func TestParseEducationSectionCombinedLine(t *testing.T) {
	// 院校与学位同一行
	entries := ParseEducationSection("University of Somewhere - Master of Science in Data Engineering\n2019 - 2021")
	require.Len(t, entries, 1)
	assert.Equal(t, "University of Somewhere", entries[0].Institution)
	assert.Equal(t, "Master of Science", entries[0].StudyType)
	assert.Equal(t, "Data Engineering", entries[0].Area)
	assert.Equal(t, "2019", entries[0].StartDate)
}

func TestParseEducationSectionTwoEntries(t *testing.T) {
	content := strings.Join([]string{
		"M.S. in Machine Learning",
		"Stanford University",
		"2018 - 2020",
		"B.S. in Mathematics",
		"State College",
		"2014 - 2018",
	}, "\n")

	entries := ParseEducationSection(content)
	require.Len(t, entries, 2)
	assert.Equal(t, "Stanford University", entries[0].Institution)
	assert.Equal(t, "M.S.", entries[0].StudyType)
	assert.Equal(t, "State College", entries[1].Institution)
	assert.Equal(t, "Mathematics", entries[1].Area)
}

func TestParseEducationSectionEmpty(t *testing.T) {
	assert.Empty(t, ParseEducationSection(""))
}

func TestSplitJobHeader(t *testing.T) {
	tests := []struct {
		header   string
		position string
		company  string
	}{
		{"Software Engineer at Google", "Software Engineer", "Google"},
		{"Data Analyst - Initech", "Data Analyst", "Initech"},
		{"SRE | Netflix", "SRE", "Netflix"},
		{"Just A Title", "Just A Title", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		position, company := splitJobHeader(tt.header)
		assert.Equal(t, tt.position, position, "header=%q", tt.header)
		assert.Equal(t, tt.company, company, "header=%q", tt.header)
	}
}
