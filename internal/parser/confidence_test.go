package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-import-go/internal/types"
)

func TestScoreConfidenceNil(t *testing.T) {
	conf := ScoreConfidence(nil)
	assert.Equal(t, 0, conf.Overall)
	assert.Empty(t, conf.Sections)
}

func TestScoreConfidenceEmptyData(t *testing.T) {
	conf := ScoreConfidence(&types.ParsedResumeData{})
	assert.Equal(t, 0, conf.Overall)

	// 四个核心区块即使为空也必须出现在分区得分表中
	for _, key := range []string{"basics", "work", "education", "skills"} {
		score, ok := conf.Sections[key]
		require.True(t, ok, "missing section %q", key)
		assert.Equal(t, 0, score)
	}
	assert.NotContains(t, conf.Sections, "projects")
}

func TestScoreConfidenceFullData(t *testing.T) {
	data := &types.ParsedResumeData{
		Basics: &types.Basics{
			Name:  "Jane Doe",
			Email: "jane@example.com",
			Phone: "+15551234567",
			Label: "Engineer",
		},
		Work: []types.WorkEntry{{
			Company:    "Google",
			Position:   "Engineer",
			StartDate:  "Jan 2020",
			Highlights: []string{"did things"},
		}},
		Education: []types.EducationEntry{{
			Institution: "University of Somewhere",
			StudyType:   "B.S.",
			StartDate:   "2014",
		}},
		Skills: []types.SkillGroup{{Keywords: []string{"Go", "Python"}}},
	}

	conf := ScoreConfidence(data)
	assert.Equal(t, 100, conf.Sections["basics"])
	assert.Equal(t, 100, conf.Sections["work"])
	assert.Equal(t, 100, conf.Sections["education"])
	assert.Equal(t, 68, conf.Sections["skills"])
	// 0.3*100 + 0.3*100 + 0.2*100 + 0.1*68 = 86.8
	assert.Equal(t, 86, conf.Overall)
}

func TestScoreConfidencePartialWork(t *testing.T) {
	data := &types.ParsedResumeData{
		Work: []types.WorkEntry{
			{Company: "Acme", Position: "Engineer", StartDate: "2020", Summary: "x"},
			{Company: "Beta"},
		},
	}
	conf := ScoreConfidence(data)
	// (100 + 30) / 2 = 65
	assert.Equal(t, 65, conf.Sections["work"])
}

func TestScoreConfidenceExtras(t *testing.T) {
	data := &types.ParsedResumeData{
		Certificates: []types.Certificate{{Name: "CKA"}},
		Languages: []types.Language{
			{Language: "English"}, {Language: "Spanish"}, {Language: "French"},
		},
	}
	conf := ScoreConfidence(data)
	assert.Equal(t, 75, conf.Sections["certificates"])
	assert.Equal(t, 100, conf.Sections["languages"], "附加分区得分封顶100")
	assert.NotContains(t, conf.Sections, "awards")
}

func TestScoreConfidenceRange(t *testing.T) {
	// 任何输入下总分都在 0-100 内
	datasets := []*types.ParsedResumeData{
		nil,
		{},
		{Basics: &types.Basics{Name: "A B", Email: "a@b.co", Phone: "+12345678", Summary: "s"}},
	}
	for _, data := range datasets {
		conf := ScoreConfidence(data)
		assert.GreaterOrEqual(t, conf.Overall, 0)
		assert.LessOrEqual(t, conf.Overall, 100)
	}
}
