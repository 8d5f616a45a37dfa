package parser

import (
	"strings"

	"resume-import-go/internal/types"
)

// 版式分类器。纯启发式、确定性：相同输入必得相同结果。
// 置信度封顶95，启发式没有满分。
const (
	maxClassifierConfidence = 95
	creativeConfidence      = 30
)

// ClassifyFormat 根据结构信号判定简历版式。
// 判定优先级：无结构→creative；学术信号→academic/chronological；
// 技能前置→combination/functional；有章节有日期→chronological。
func ClassifyFormat(text string) types.FormatClassification {
	if strings.TrimSpace(text) == "" {
		return types.FormatClassification{Format: types.FormatUnknown, Confidence: 0}
	}

	sections := DetectSections(text)
	traits := collectTraits(text, sections)
	dateRanges := traits.DateRangeCount

	// 工作章节内部的日期范围数，衡量经历条目的结构完整度
	workDated := 0
	academicSections := 0
	for _, s := range sections {
		switch s.Kind {
		case types.SectionWork:
			workDated += CountDateRanges(s.Content)
		case types.SectionPublications, types.SectionAwards:
			academicSections++
		}
	}

	format := types.FormatCreative
	switch {
	case len(sections) <= 1:
		format = types.FormatCreative
	case traits.HasAcademicSections && dateRanges >= 2:
		// 学术章节与完整的按时间经历并存时，经历信号明显占优才判chronological
		if workDated >= academicSections+2 {
			format = types.FormatChronological
		} else {
			format = types.FormatAcademic
		}
	case traits.SkillsBeforeWork && dateRanges >= 2:
		if workDated >= 2 {
			format = types.FormatCombination
		} else {
			format = types.FormatFunctional
		}
	case dateRanges >= 1:
		format = types.FormatChronological
	}

	return types.FormatClassification{
		Format:     format,
		Confidence: scoreClassification(format, traits),
		Traits:     traits,
	}
}

// collectTraits 汇总分类所需的结构信号
func collectTraits(text string, sections []types.DetectedSection) types.FormatTraits {
	traits := types.FormatTraits{
		SectionCount:   len(sections),
		DateRangeCount: CountDateRanges(text),
	}

	firstSkills, firstWork := -1, -1
	for i, s := range sections {
		switch s.Kind {
		case types.SectionSkills:
			if firstSkills < 0 {
				firstSkills = i
			}
		case types.SectionWork:
			if firstWork < 0 {
				firstWork = i
			}
		case types.SectionPublications, types.SectionAwards:
			traits.HasAcademicSections = true
		}
	}
	traits.SkillsBeforeWork = firstSkills >= 0 && (firstWork < 0 || firstSkills < firstWork)

	header := HeaderRegion(text, sections)
	traits.HasContactHeader = emailRe.MatchString(header) || phoneRe.MatchString(header)
	return traits
}

// scoreClassification 将结构信号折算为0-95的置信度
func scoreClassification(format types.ResumeFormat, traits types.FormatTraits) int {
	if format == types.FormatUnknown {
		return 0
	}
	if format == types.FormatCreative {
		return creativeConfidence
	}

	score := 25
	score += 10 * minInt(traits.SectionCount, 5)
	score += 5 * minInt(traits.DateRangeCount, 4)
	if traits.HasContactHeader {
		score += 10
	}
	if traits.SkillsBeforeWork &&
		(format == types.FormatFunctional || format == types.FormatCombination) {
		score += 5
	}
	if traits.HasAcademicSections && format == types.FormatAcademic {
		score += 5
	}
	if score > maxClassifierConfidence {
		score = maxClassifierConfidence
	}
	return score
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
