package parser

import (
	"regexp"
	"strings"

	"resume-import-go/internal/types"
)

// 扁平章节的解析。共同约定：逐行处理、去项目符号、
// 解析不出的行跳过，空章节返回nil。

// keywordSplitRe 技能/兴趣列表的分隔符
var keywordSplitRe = regexp.MustCompile(`\s*[,;|/•]\s*`)

const maxSkillGroupNameLen = 40

// splitKeywords 按常见分隔符拆开并去掉空项
func splitKeywords(s string) []string {
	var out []string
	for _, part := range keywordSplitRe.Split(s, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ParseSkillsSection 解析技能章节。
// "Languages: Go, Python" 形式的行成为命名分组，
// 散落的技能词汇并入一个未命名分组。
func ParseSkillsSection(content string) []types.SkillGroup {
	var groups []types.SkillGroup
	var loose []string

	for _, rawLine := range strings.Split(content, "\n") {
		line := stripBullet(strings.TrimSpace(rawLine))
		if line == "" {
			continue
		}
		if idx := strings.Index(line, ":"); idx > 0 && idx <= maxSkillGroupNameLen {
			name := strings.TrimSpace(line[:idx])
			keywords := splitKeywords(line[idx+1:])
			if name != "" && len(keywords) > 0 {
				groups = append(groups, types.SkillGroup{Name: name, Keywords: keywords})
				continue
			}
		}
		loose = append(loose, splitKeywords(line)...)
	}

	if len(loose) > 0 {
		groups = append(groups, types.SkillGroup{Keywords: loose})
	}
	return groups
}

// ParseProjectsSection 解析项目章节。
// 非要点行开启新项目，要点行归入Highlights，URL从名称行剥离。
func ParseProjectsSection(content string) []types.ProjectEntry {
	var projects []types.ProjectEntry
	var current *types.ProjectEntry

	flush := func() {
		if current != nil {
			projects = append(projects, *current)
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
				current = &types.ProjectEntry{}
			}
			current.Highlights = append(current.Highlights, stripBullet(line))
			continue
		}

		flush()
		current = &types.ProjectEntry{}
		if u := urlRe.FindString(line); u != "" && hasKnownTLD(strings.ToLower(u)) {
			current.URL = u
			line = strings.TrimSpace(strings.Trim(strings.Replace(line, u, "", 1), " |,-–()"))
		}
		if idx := strings.Index(line, " - "); idx > 0 {
			current.Name = strings.TrimSpace(line[:idx])
			current.Description = strings.TrimSpace(line[idx+3:])
		} else {
			current.Name = line
		}
	}
	flush()
	return projects
}

// certSeparators 证书行中名称与颁发方的分隔写法
var certSeparators = []string{" - ", " | ", ", "}

// ParseCertificatesSection 每行一条证书，尽力拆出颁发方与年份
func ParseCertificatesSection(content string) []types.Certificate {
	var certs []types.Certificate
	for _, rawLine := range strings.Split(content, "\n") {
		line := stripBullet(strings.TrimSpace(rawLine))
		if line == "" {
			continue
		}
		cert := types.Certificate{}
		if y := FindYear(line); y != "" {
			cert.Date = y
			line = strings.TrimSpace(strings.Trim(strings.Replace(line, y, "", 1), " |,-–()"))
		}
		cert.Name = line
		for _, sep := range certSeparators {
			if idx := strings.Index(line, sep); idx > 0 {
				cert.Name = strings.TrimSpace(line[:idx])
				cert.Issuer = strings.TrimSpace(line[idx+len(sep):])
				break
			}
		}
		if cert.Name != "" {
			certs = append(certs, cert)
		}
	}
	return certs
}

// languageLineRe "English - Fluent" / "English: Fluent" / "English (Native)"
var languageLineRe = regexp.MustCompile(`^([A-Za-z][A-Za-z ]*?)\s*(?:[-:|]\s*(.+)|\((.+)\))?$`)

// ParseLanguagesSection 每行或每个逗号分项一门语言，熟练度可选
func ParseLanguagesSection(content string) []types.Language {
	var langs []types.Language
	for _, rawLine := range strings.Split(content, "\n") {
		line := stripBullet(strings.TrimSpace(rawLine))
		if line == "" {
			continue
		}
		items := []string{line}
		if !strings.ContainsAny(line, ":-|(") {
			items = splitKeywords(line)
		}
		for _, item := range items {
			m := languageLineRe.FindStringSubmatch(strings.TrimSpace(item))
			if m == nil || strings.TrimSpace(m[1]) == "" {
				continue
			}
			fluency := strings.TrimSpace(m[2])
			if fluency == "" {
				fluency = strings.TrimSpace(m[3])
			}
			langs = append(langs, types.Language{
				Language: strings.TrimSpace(m[1]),
				Fluency:  fluency,
			})
		}
	}
	return langs
}

// ParseAwardsSection 每行一条奖项，尽力拆出颁发方与年份
func ParseAwardsSection(content string) []types.Award {
	var awards []types.Award
	for _, rawLine := range strings.Split(content, "\n") {
		line := stripBullet(strings.TrimSpace(rawLine))
		if line == "" {
			continue
		}
		award := types.Award{}
		if y := FindYear(line); y != "" {
			award.Date = y
			line = strings.TrimSpace(strings.Trim(strings.Replace(line, y, "", 1), " |,-–()"))
		}
		award.Title = line
		if idx := strings.Index(line, " - "); idx > 0 {
			award.Title = strings.TrimSpace(line[:idx])
			award.Awarder = strings.TrimSpace(line[idx+3:])
		}
		if award.Title != "" {
			awards = append(awards, award)
		}
	}
	return awards
}

// ParseInterestsSection 兴趣按行与分隔符展开为词汇列表
func ParseInterestsSection(content string) []types.Interest {
	var interests []types.Interest
	seen := map[string]bool{}
	for _, rawLine := range strings.Split(content, "\n") {
		line := stripBullet(strings.TrimSpace(rawLine))
		if line == "" {
			continue
		}
		for _, item := range splitKeywords(line) {
			key := strings.ToLower(item)
			if seen[key] {
				continue
			}
			seen[key] = true
			interests = append(interests, types.Interest{Name: item})
		}
	}
	return interests
}

// ParsePublicationsSection 每个非要点行开启一条论文记录
func ParsePublicationsSection(content string) []types.Publication {
	var pubs []types.Publication
	for _, rawLine := range strings.Split(content, "\n") {
		line := stripBullet(strings.TrimSpace(rawLine))
		if line == "" {
			continue
		}
		pub := types.Publication{Name: line}
		// 末段 " - " 右侧按出版方处理
		if idx := strings.LastIndex(line, " - "); idx > 0 {
			pub.Name = strings.TrimSpace(line[:idx])
			pub.Publisher = strings.TrimSpace(strings.Trim(line[idx+3:], " ,()"+"0123456789"))
		}
		pubs = append(pubs, pub)
	}
	return pubs
}

// availableOnRequestRe 引荐人章节的常见占位语
var availableOnRequestRe = regexp.MustCompile(`(?i)available\s+(?:up)?on\s+request`)

// ParseReferencesSection 非要点行开启引荐人，后续行并入评语。
// "Available upon request" 整体作为一条占位记录。
func ParseReferencesSection(content string) []types.Reference {
	var refs []types.Reference
	var current *types.Reference

	flush := func() {
		if current != nil {
			refs = append(refs, *current)
			current = nil
		}
	}

	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if availableOnRequestRe.MatchString(line) {
			flush()
			refs = append(refs, types.Reference{Reference: line})
			continue
		}
		if isBulletLine(line) || hasContactInfo(line) {
			if current != nil {
				text := stripBullet(line)
				if current.Reference == "" {
					current.Reference = text
				} else {
					current.Reference += " " + text
				}
			}
			continue
		}
		flush()
		current = &types.Reference{Name: line}
	}
	flush()
	return refs
}
