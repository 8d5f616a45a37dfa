package parser

import (
	"regexp"
	"strings"
)

// columnGapRe 列间隙标记：行内≥4个连续空格
var columnGapRe = regexp.MustCompile(` {4,}`)

// ReorderColumns 检测双栏排版并重排为单栏阅读顺序。
// 触发条件：超过50%的非空行含有≥4空格的列间隙。
// 未触发时原样返回，绝不修改内容。
func ReorderColumns(text string) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	nonBlank := 0
	qualifying := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonBlank++
		if columnGapRe.MatchString(line) {
			qualifying++
		}
	}
	if nonBlank == 0 || qualifying*2 <= nonBlank {
		return text
	}

	// 在最宽的间隙处切分，左右两列各自保持行序，先左后右
	var left, right []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		l, r, ok := splitAtWidestGap(line)
		if !ok {
			left = append(left, line)
			continue
		}
		if l != "" {
			left = append(left, l)
		}
		if r != "" {
			right = append(right, r)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(left, "\n"))
	if len(right) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(right, "\n"))
	}
	return b.String()
}

// splitAtWidestGap 在行内最宽的列间隙处一分为二
func splitAtWidestGap(line string) (string, string, bool) {
	matches := columnGapRe.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return line, "", false
	}
	widest := matches[0]
	for _, m := range matches[1:] {
		if m[1]-m[0] > widest[1]-widest[0] {
			widest = m
		}
	}
	return strings.TrimSpace(line[:widest[0]]), strings.TrimSpace(line[widest[1]:]), true
}
