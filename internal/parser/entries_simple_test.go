package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkillsSectionNamedGroups(t *testing.T) {
	content := strings.Join([]string{
		"Languages: Go, Python, SQL",
		"Tools: Docker; Kubernetes",
	}, "\n")

	groups := ParseSkillsSection(content)
	require.Len(t, groups, 2)
	assert.Equal(t, "Languages", groups[0].Name)
	assert.Equal(t, []string{"Go", "Python", "SQL"}, groups[0].Keywords)
	assert.Equal(t, "Tools", groups[1].Name)
	assert.Equal(t, []string{"Docker", "Kubernetes"}, groups[1].Keywords)
}

func TestParseSkillsSectionLooseKeywords(t *testing.T) {
	groups := ParseSkillsSection("Go, Python\n• Terraform | Ansible")
	require.Len(t, groups, 1)
	assert.Empty(t, groups[0].Name)
	assert.Equal(t, []string{"Go", "Python", "Terraform", "Ansible"}, groups[0].Keywords)
}

func TestParseSkillsSectionEmpty(t *testing.T) {
	assert.Empty(t, ParseSkillsSection(""))
	assert.Empty(t, ParseSkillsSection("  \n\n "))
}

func TestParseProjectsSection(t *testing.T) {
	content := strings.Join([]string{
		"Chess Engine - A UCI-compatible engine (github.com/janedoe/chess)",
		"• Wrote the search in Go",
		"Home Dashboard",
		"• Raspberry Pi sensors",
	}, "\n")

	projects := ParseProjectsSection(content)
	require.Len(t, projects, 2)

	assert.Equal(t, "Chess Engine", projects[0].Name)
	assert.Equal(t, "A UCI-compatible engine", projects[0].Description)
	assert.Equal(t, "github.com/janedoe/chess", projects[0].URL)
	assert.Equal(t, []string{"Wrote the search in Go"}, projects[0].Highlights)

	assert.Equal(t, "Home Dashboard", projects[1].Name)
	assert.Empty(t, projects[1].URL)
	assert.Len(t, projects[1].Highlights, 1)
}

func TestParseCertificatesSection(t *testing.T) {
	content := strings.Join([]string{
		"AWS Certified Solutions Architect - Amazon Web Services (2021)",
		"• CKA, Cloud Native Computing Foundation",
	}, "\n")

	certs := ParseCertificatesSection(content)
	require.Len(t, certs, 2)

	assert.Equal(t, "AWS Certified Solutions Architect", certs[0].Name)
	assert.Equal(t, "Amazon Web Services", certs[0].Issuer)
	assert.Equal(t, "2021", certs[0].Date)

	assert.Equal(t, "CKA", certs[1].Name)
	assert.Equal(t, "Cloud Native Computing Foundation", certs[1].Issuer)
	assert.Empty(t, certs[1].Date)
}

func TestParseLanguagesSection(t *testing.T) {
	content := strings.Join([]string{
		"English - Native",
		"Spanish: Professional",
		"Japanese (Conversational)",
		"French, German",
	}, "\n")

	langs := ParseLanguagesSection(content)
	require.Len(t, langs, 5)
	assert.Equal(t, "English", langs[0].Language)
	assert.Equal(t, "Native", langs[0].Fluency)
	assert.Equal(t, "Spanish", langs[1].Language)
	assert.Equal(t, "Professional", langs[1].Fluency)
	assert.Equal(t, "Japanese", langs[2].Language)
	assert.Equal(t, "Conversational", langs[2].Fluency)
	assert.Equal(t, "French", langs[3].Language)
	assert.Empty(t, langs[3].Fluency)
	assert.Equal(t, "German", langs[4].Language)
}

func TestParseAwardsSection(t *testing.T) {
	awards := ParseAwardsSection("Employee of the Year - Initech (2019)\nDean's List")
	require.Len(t, awards, 2)
	assert.Equal(t, "Employee of the Year", awards[0].Title)
	assert.Equal(t, "Initech", awards[0].Awarder)
	assert.Equal(t, "2019", awards[0].Date)
	assert.Equal(t, "Dean's List", awards[1].Title)
}

func TestParseInterestsSectionDeduplicates(t *testing.T) {
	interests := ParseInterestsSection("Hiking, Photography\n• hiking, Chess")
	require.Len(t, interests, 3)
	assert.Equal(t, "Hiking", interests[0].Name)
	assert.Equal(t, "Photography", interests[1].Name)
	assert.Equal(t, "Chess", interests[2].Name)
}

func TestParsePublicationsSection(t *testing.T) {
	pubs := ParsePublicationsSection("Fast Widget Assembly - Journal of Widgets (2020)\nAnother Paper Title")
	require.Len(t, pubs, 2)
	assert.Equal(t, "Fast Widget Assembly", pubs[0].Name)
	assert.Equal(t, "Journal of Widgets", pubs[0].Publisher)
	assert.Equal(t, "Another Paper Title", pubs[1].Name)
	assert.Empty(t, pubs[1].Publisher)
}

func TestParseReferencesSection(t *testing.T) {
	refs := ParseReferencesSection("References available upon request")
	require.Len(t, refs, 1)
	assert.Empty(t, refs[0].Name)
	assert.Contains(t, refs[0].Reference, "available upon request")

	refs = ParseReferencesSection("Dr. Alice Smith\nalice@university.edu\nBob Jones\n+1 555 000 1111")
	require.Len(t, refs, 2)
	assert.Equal(t, "Dr. Alice Smith", refs[0].Name)
	assert.Equal(t, "alice@university.edu", refs[0].Reference)
	assert.Equal(t, "Bob Jones", refs[1].Name)
	assert.Equal(t, "+1 555 000 1111", refs[1].Reference)
}

func TestSimpleSectionsEmptyInput(t *testing.T) {
	assert.Empty(t, ParseProjectsSection(""))
	assert.Empty(t, ParseCertificatesSection(""))
	assert.Empty(t, ParseLanguagesSection(""))
	assert.Empty(t, ParseAwardsSection(""))
	assert.Empty(t, ParseInterestsSection(""))
	assert.Empty(t, ParsePublicationsSection(""))
	assert.Empty(t, ParseReferencesSection(""))
}
