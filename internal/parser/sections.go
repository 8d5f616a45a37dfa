package parser

import (
	"strings"

	"resume-import-go/internal/types"
)

// maxHeadingLength 章节标题行的最大长度，超出视为正文
const maxHeadingLength = 60

// headerRegionMaxLines 无任何章节标题时头部区域的兜底行数
const headerRegionMaxLines = 15

// headingSynonyms 章节标题同义词表。匹配不区分大小写，
// 允许行尾冒号。新增同义词只需改这张表。
var headingSynonyms = map[types.SectionKind][]string{
	types.SectionSummary: {
		"summary", "professional summary", "profile", "professional profile",
		"objective", "career objective", "about", "about me",
	},
	types.SectionWork: {
		"experience", "work experience", "professional experience",
		"employment history", "employment", "work history", "career history",
		"relevant experience",
	},
	types.SectionEducation: {
		"education", "academic background", "academic history",
		"education and training", "education & training", "qualifications",
	},
	types.SectionSkills: {
		"skills", "technical skills", "core competencies", "competencies",
		"skills & abilities", "areas of expertise", "expertise", "technologies",
	},
	types.SectionProjects: {
		"projects", "personal projects", "selected projects", "portfolio",
		"side projects",
	},
	types.SectionCertificates: {
		"certificates", "certifications", "licenses",
		"licenses & certifications", "licenses and certifications",
	},
	types.SectionLanguages: {
		"languages", "language skills",
	},
	types.SectionInterests: {
		"interests", "hobbies", "hobbies & interests", "hobbies and interests",
	},
	types.SectionPublications: {
		"publications", "research", "research experience", "papers",
		"selected publications",
	},
	types.SectionAwards: {
		"awards", "honors", "honours", "achievements", "awards & honors",
		"awards and honors",
	},
	types.SectionReferences: {
		"references", "referees",
	},
	types.SectionVolunteer: {
		"volunteer", "volunteering", "volunteer experience",
		"community involvement",
	},
}

// headingLookup 小写标题到章节类型的反查表，init时构建
var headingLookup = map[string]types.SectionKind{}

func init() {
	for kind, names := range headingSynonyms {
		for _, name := range names {
			headingLookup[name] = kind
		}
	}
}

// MatchHeading 判断一行是否为章节标题行
func MatchHeading(line string) (types.SectionKind, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > maxHeadingLength {
		return types.SectionUnknown, false
	}
	if strings.HasPrefix(trimmed, "•") {
		return types.SectionUnknown, false
	}
	trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ":"))
	kind, ok := headingLookup[strings.ToLower(trimmed)]
	return kind, ok
}

// DetectSections 按标题行把归一化文本切分为章节。
// 章节按出现顺序返回，内容不含标题行本身；EndLine为开区间。
func DetectSections(text string) []types.DetectedSection {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	var sections []types.DetectedSection
	for i, line := range lines {
		kind, ok := MatchHeading(line)
		if !ok {
			continue
		}
		if n := len(sections); n > 0 {
			sections[n-1].EndLine = i
		}
		sections = append(sections, types.DetectedSection{
			Kind:      kind,
			Heading:   strings.TrimSpace(line),
			StartLine: i + 1,
		})
	}
	if n := len(sections); n > 0 {
		sections[n-1].EndLine = len(lines)
	}

	for i := range sections {
		s := &sections[i]
		if s.StartLine >= s.EndLine {
			s.Content = ""
			continue
		}
		s.Content = strings.TrimSpace(strings.Join(lines[s.StartLine:s.EndLine], "\n"))
	}
	return sections
}

// HeaderRegion 返回首个章节标题之前的头部区域（通常含姓名与联系方式）。
// 文档没有任何章节标题时取开头若干行。
func HeaderRegion(text string, sections []types.DetectedSection) string {
	lines := strings.Split(text, "\n")
	end := len(lines)
	if len(sections) > 0 {
		end = sections[0].StartLine - 1
	} else if end > headerRegionMaxLines {
		end = headerRegionMaxLines
	}
	if end < 0 {
		end = 0
	}
	return strings.TrimSpace(strings.Join(lines[:end], "\n"))
}
