package parser

import (
	"resume-import-go/internal/types"
)

// 置信度评分。分数只反映"提取到了多少应有的字段"，
// 不评价内容本身的质量；0-100，仅用于提示用户复核。

// 核心区块的整体权重
const (
	weightBasics    = 0.30
	weightWork      = 0.30
	weightEducation = 0.20
	weightSkills    = 0.10
	weightExtras    = 0.10
)

// ScoreConfidence 为解析结果打分。
// 四个核心区块（basics/work/education/skills）恒出现在分区得分表中，
// 附加区块只在解析出内容时计入。
func ScoreConfidence(data *types.ParsedResumeData) types.Confidence {
	conf := types.Confidence{Sections: map[string]int{}}
	if data == nil {
		return conf
	}

	conf.Sections["basics"] = scoreBasics(data.Basics)
	conf.Sections["work"] = scoreWork(data.Work)
	conf.Sections["education"] = scoreEducation(data.Education)
	conf.Sections["skills"] = scoreSkills(data.Skills)

	extras := []struct {
		name  string
		count int
	}{
		{"projects", len(data.Projects)},
		{"certificates", len(data.Certificates)},
		{"languages", len(data.Languages)},
		{"interests", len(data.Interests)},
		{"publications", len(data.Publications)},
		{"awards", len(data.Awards)},
		{"references", len(data.References)},
	}
	extraTotal, extraCount := 0, 0
	for _, e := range extras {
		if e.count == 0 {
			continue
		}
		score := minInt(100, 50+25*e.count)
		conf.Sections[e.name] = score
		extraTotal += score
		extraCount++
	}
	extraAvg := 0
	if extraCount > 0 {
		extraAvg = extraTotal / extraCount
	}

	overall := weightBasics*float64(conf.Sections["basics"]) +
		weightWork*float64(conf.Sections["work"]) +
		weightEducation*float64(conf.Sections["education"]) +
		weightSkills*float64(conf.Sections["skills"]) +
		weightExtras*float64(extraAvg)
	conf.Overall = clampScore(int(overall))
	return conf
}

func scoreBasics(b *types.Basics) int {
	if b == nil {
		return 0
	}
	score := 0
	if b.Name != "" {
		score += 40
	}
	if b.Email != "" {
		score += 30
	}
	if b.Phone != "" {
		score += 20
	}
	if b.Label != "" || b.Summary != "" {
		score += 10
	}
	return score
}

// scoreWork 条目平均分：公司30、职位30、起始日期20、内容20
func scoreWork(entries []types.WorkEntry) int {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, e := range entries {
		s := 0
		if e.Company != "" {
			s += 30
		}
		if e.Position != "" {
			s += 30
		}
		if e.StartDate != "" {
			s += 20
		}
		if len(e.Highlights) > 0 || e.Summary != "" {
			s += 20
		}
		total += s
	}
	return total / len(entries)
}

// scoreEducation 条目平均分：院校40、学位或专业30、日期30
func scoreEducation(entries []types.EducationEntry) int {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, e := range entries {
		s := 0
		if e.Institution != "" {
			s += 40
		}
		if e.StudyType != "" || e.Area != "" {
			s += 30
		}
		if e.StartDate != "" || e.EndDate != "" {
			s += 30
		}
		total += s
	}
	return total / len(entries)
}

// scoreSkills 60分保底加词汇量加成
func scoreSkills(groups []types.SkillGroup) int {
	if len(groups) == 0 {
		return 0
	}
	keywords := 0
	for _, g := range groups {
		keywords += len(g.Keywords)
	}
	if keywords == 0 {
		return 0
	}
	return minInt(100, 60+4*keywords)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
