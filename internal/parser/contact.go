package parser

import (
	"regexp"
	"strings"

	"resume-import-go/internal/types"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
	// 路径部分排除括号，否则 "(github.com/user/repo)" 会把右括号卷进链接
	urlRe   = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)?[a-z0-9\-]+(?:\.[a-z]{2,})+(?:/[^\s,;()]*)?`)

	linkedinRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/([A-Za-z0-9_\-]+)/?`)
	githubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/([A-Za-z0-9_\-]+)/?`)

	// nameTokenRe 姓名候选行中单个词的形态
	nameTokenRe = regexp.MustCompile(`^[A-Z][A-Za-z.'\-]*$`)
	// locationRe "City, Region" 形式的地址行
	locationRe = regexp.MustCompile(`^([A-Z][A-Za-z .'\-]+),\s*([A-Z][A-Za-z .'\-]+)$`)
)

// ParseContactHeader 从头部区域提取基本信息。
// 全部字段尽力而为，缺失即留空，绝不猜测。
func ParseContactHeader(header string) *types.Basics {
	basics := &types.Basics{}
	if strings.TrimSpace(header) == "" {
		return basics
	}

	basics.Email = emailRe.FindString(header)
	basics.Phone = normalizePhone(findPhone(header))
	basics.Profiles = findProfiles(header)
	basics.URL = findPersonalURL(header, basics.Email)

	lines := strings.Split(header, "\n")
	nameLine := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || hasContactInfo(trimmed) {
			continue
		}
		if nameLine < 0 && looksLikeName(trimmed) {
			basics.Name = trimmed
			nameLine = i
			continue
		}
		if m := locationRe.FindStringSubmatch(trimmed); m != nil && basics.Location == nil {
			basics.Location = &types.Location{
				City:   strings.TrimSpace(m[1]),
				Region: strings.TrimSpace(m[2]),
			}
			continue
		}
		// 紧跟姓名之后的非联系方式行按头衔处理
		if nameLine >= 0 && basics.Label == "" && len(trimmed) <= maxHeadingLength {
			basics.Label = trimmed
		}
	}
	return basics
}

// looksLikeName 2-4个词、每个词首字母大写且不含数字
func looksLikeName(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) < 2 || len(tokens) > 4 {
		return false
	}
	for _, tok := range tokens {
		if !nameTokenRe.MatchString(tok) {
			return false
		}
	}
	return true
}

func hasContactInfo(line string) bool {
	return emailRe.MatchString(line) || phoneRe.MatchString(line) ||
		strings.Contains(line, "linkedin.com") || strings.Contains(line, "github.com") ||
		strings.Contains(line, "http://") || strings.Contains(line, "https://")
}

// findPhone 找出首个不在邮箱/URL里的电话候选
func findPhone(header string) string {
	cleaned := emailRe.ReplaceAllString(header, " ")
	cleaned = linkedinRe.ReplaceAllString(cleaned, " ")
	cleaned = githubRe.ReplaceAllString(cleaned, " ")
	return phoneRe.FindString(cleaned)
}

// normalizePhone 只保留数字和前导加号
func normalizePhone(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	if n := len(strings.TrimPrefix(b.String(), "+")); n < 7 || n > 15 {
		return ""
	}
	return b.String()
}

// findProfiles 识别社交档案链接，当前支持LinkedIn与GitHub
func findProfiles(header string) []types.Profile {
	var profiles []types.Profile
	seen := map[string]bool{}
	add := func(network, username string) {
		username = strings.TrimSuffix(username, "/")
		key := network + "/" + strings.ToLower(username)
		if username == "" || seen[key] {
			return
		}
		seen[key] = true
		host := map[string]string{
			"LinkedIn": "https://linkedin.com/in/",
			"GitHub":   "https://github.com/",
		}[network]
		profiles = append(profiles, types.Profile{
			Network:  network,
			Username: username,
			URL:      host + username,
		})
	}
	for _, m := range linkedinRe.FindAllStringSubmatch(header, -1) {
		add("LinkedIn", m[1])
	}
	for _, m := range githubRe.FindAllStringSubmatch(header, -1) {
		add("GitHub", m[1])
	}
	return profiles
}

// knownURLTLDs 个人链接识别允许的顶级域，避免把带点的普通词当成网址
var knownURLTLDs = map[string]bool{
	"com": true, "org": true, "net": true, "io": true, "dev": true,
	"me": true, "co": true, "ai": true, "app": true, "tech": true,
	"info": true, "edu": true, "xyz": true, "site": true,
}

// findPersonalURL 找出既不是社交档案也不是邮箱域名的个人链接
func findPersonalURL(header, email string) string {
	emailDomain := ""
	if at := strings.LastIndex(email, "@"); at >= 0 {
		emailDomain = strings.ToLower(email[at+1:])
	}
	for _, candidate := range urlRe.FindAllString(header, -1) {
		lower := strings.ToLower(candidate)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		if strings.Contains(lower, "@") {
			continue
		}
		if emailDomain != "" && strings.Contains(lower, emailDomain) {
			continue
		}
		if !hasKnownTLD(lower) {
			continue
		}
		return candidate
	}
	return ""
}

func hasKnownTLD(lower string) bool {
	host := lower
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	i := strings.LastIndex(host, ".")
	if i < 0 {
		return false
	}
	return knownURLTLDs[host[i+1:]]
}
