package parser

import (
	"regexp"
	"strings"

	"resume-import-go/internal/types"
)

// 经历条目解析。输入是单个章节的内容（不含标题行），
// 全部启发式尽力而为：解析不出的行宽容跳过，绝不报错。

// bulletPrefixes 条目要点行的前缀。归一化后项目符号是 '•'，
// 但手打的 '-'、'*' 也要认。
var bulletPrefixes = []string{"• ", "- ", "* ", "•", "o "}

const (
	maxJobHeaderLength = 90
	maxJobHeaderWords  = 12
	maxCompanyLineLen  = 60
)

// jobSeparators 职位与公司的常见分隔写法，按优先级排列
var jobSeparators = []string{" at ", " | ", " - ", " — ", ", "}

func isBulletLine(line string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func stripBullet(line string) string {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return strings.TrimSpace(strings.TrimPrefix(line, p))
		}
	}
	return line
}

// looksLikeJobHeader 判断一行是否开启新的工作条目：
// 含日期范围，或短行且带职位/公司分隔符。
func looksLikeJobHeader(line string) bool {
	if isBulletLine(line) {
		return false
	}
	if _, _, ok := FindDateRange(line); ok {
		return true
	}
	if len(line) > maxJobHeaderLength || len(strings.Fields(line)) > maxJobHeaderWords {
		return false
	}
	for _, sep := range jobSeparators[:4] {
		if strings.Contains(line, sep) {
			return true
		}
	}
	return false
}

// ParseWorkSection 把工作章节切成条目。
// 条目以头部行开界，要点行归入Highlights，其余散文并入Summary。
func ParseWorkSection(content string) []types.WorkEntry {
	var entries []types.WorkEntry
	var current *types.WorkEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if isBulletLine(line) {
			if current == nil {
				current = &types.WorkEntry{}
			}
			current.Highlights = append(current.Highlights, stripBullet(line))
			continue
		}

		if looksLikeJobHeader(line) {
			start, end, hasDates := FindDateRange(line)
			rest := StripDateRange(line)
			rest = strings.Trim(rest, " |,-–")

			// 单独的日期行补充到缺日期的当前条目，不另起条目
			if hasDates && rest == "" && current != nil && current.StartDate == "" {
				current.StartDate, current.EndDate = start, end
				continue
			}

			flush()
			current = &types.WorkEntry{}
			if hasDates {
				current.StartDate, current.EndDate = start, end
			}
			position, company := splitJobHeader(rest)
			current.Position = position
			current.Company = company
			continue
		}

		if current == nil {
			// 章节开头的散文在没有条目前无处安放，跳过
			continue
		}
		switch {
		case current.Company == "" && len(line) <= maxCompanyLineLen && !strings.HasSuffix(line, "."):
			current.Company = line
		case current.Summary == "":
			current.Summary = line
		default:
			current.Summary += " " + line
		}
	}
	flush()
	return entries
}

// splitJobHeader 按分隔符把头部行拆为职位与公司。
// "Software Engineer at Google" 形式职位在前；
// 其他分隔符同样按"左职位右公司"的约定处理。
func splitJobHeader(header string) (position, company string) {
	if header == "" {
		return "", ""
	}
	for _, sep := range jobSeparators {
		if idx := strings.Index(header, sep); idx > 0 {
			left := strings.TrimSpace(header[:idx])
			right := strings.TrimSpace(header[idx+len(sep):])
			if left != "" && right != "" {
				return left, right
			}
		}
	}
	return header, ""
}

var (
	// degreeKeywordRe 学历条目的学位关键词
	degreeKeywordRe = regexp.MustCompile(`(?i)\b(bachelor|master|ph\.?d|doctor|associate|diploma|b\.?s\.?c?|b\.?a\.?|b\.?e\.?|m\.?s\.?c?|m\.?a\.?|mba|m\.?eng|b\.?tech|m\.?tech)\b`)
	// institutionRe 院校名关键词
	institutionRe = regexp.MustCompile(`(?i)\b(university|college|institute|school|academy|polytechnic)\b`)
	// gpaRe GPA写法："GPA: 3.8"、"GPA 3.8/4.0"
	gpaRe = regexp.MustCompile(`(?i)\bgpa[:\s]*([0-4](?:\.\d{1,2})?(?:\s*/\s*[45](?:\.\d)?)?)`)
	// degreeInRe "Bachelor of Science in Computer Science" 的拆分
	degreeInRe = regexp.MustCompile(`(?i)^(.+?)\s+in\s+(.+)$`)
)

// ParseEducationSection 解析教育章节。
// 条目以学位行或院校行开界，GPA与日期在条目内任意行识别。
func ParseEducationSection(content string) []types.EducationEntry {
	var entries []types.EducationEntry
	var current *types.EducationEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(stripBullet(strings.TrimSpace(rawLine)))
		if line == "" {
			continue
		}

		start, end, hasDates := FindDateRange(line)
		rest := strings.Trim(StripDateRange(line), " |,-–")
		hasDegree := degreeKeywordRe.MatchString(rest)
		hasInstitution := institutionRe.MatchString(rest)

		// 单独的日期行补充到当前条目
		if hasDates && rest == "" {
			if current != nil && current.StartDate == "" {
				current.StartDate, current.EndDate = start, end
			}
			continue
		}

		opensEntry := hasDegree || hasInstitution || hasDates
		if opensEntry && current != nil && entryWantsLine(current, hasDegree, hasInstitution) {
			opensEntry = false
		}
		if opensEntry {
			flush()
			current = &types.EducationEntry{}
		}
		if current == nil {
			continue
		}

		if hasDates && current.StartDate == "" {
			current.StartDate, current.EndDate = start, end
		}
		if m := gpaRe.FindStringSubmatch(line); m != nil && current.Score == "" {
			current.Score = strings.TrimSpace(m[1])
			rest = strings.Trim(strings.Replace(rest, m[0], "", 1), " |,-–")
		}
		applyEducationLine(current, rest, hasDegree, hasInstitution)
	}
	flush()
	return entries
}

// entryWantsLine 当前条目仍缺这一行能补上的字段时不另起条目
func entryWantsLine(e *types.EducationEntry, hasDegree, hasInstitution bool) bool {
	if hasDegree && e.StudyType == "" {
		return true
	}
	if hasInstitution && e.Institution == "" {
		return true
	}
	return false
}

// applyEducationLine 把一行内容归入学历条目的对应字段
func applyEducationLine(e *types.EducationEntry, rest string, hasDegree, hasInstitution bool) {
	if rest == "" {
		return
	}

	// 同一行既有院校又有学位时先按分隔符拆开
	if hasDegree && hasInstitution {
		for _, sep := range []string{" | ", " - ", ", "} {
			if idx := strings.Index(rest, sep); idx > 0 {
				left := strings.TrimSpace(rest[:idx])
				right := strings.TrimSpace(rest[idx+len(sep):])
				if institutionRe.MatchString(left) {
					setInstitution(e, left)
					applyDegreeText(e, right)
				} else {
					setInstitution(e, right)
					applyDegreeText(e, left)
				}
				return
			}
		}
	}

	switch {
	case hasDegree:
		applyDegreeText(e, rest)
	case hasInstitution:
		setInstitution(e, rest)
	case e.Institution == "" && len(rest) <= maxCompanyLineLen:
		e.Institution = rest
	}
}

func setInstitution(e *types.EducationEntry, s string) {
	if e.Institution == "" {
		e.Institution = s
	}
}

// applyDegreeText 拆分 "B.S. in Computer Science" / "Bachelor of Science, CS"
func applyDegreeText(e *types.EducationEntry, s string) {
	if s == "" || e.StudyType != "" {
		return
	}
	if m := degreeInRe.FindStringSubmatch(s); m != nil {
		e.StudyType = strings.TrimSpace(m[1])
		e.Area = strings.TrimSpace(m[2])
		return
	}
	if idx := strings.Index(s, ","); idx > 0 {
		e.StudyType = strings.TrimSpace(s[:idx])
		e.Area = strings.TrimSpace(s[idx+1:])
		return
	}
	e.StudyType = s
}
