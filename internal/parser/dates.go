package parser

import (
	"regexp"
	"strings"
)

// 日期范围识别。输入是归一化文本，各类横线已统一为 '-'。
// 支持 "Jan 2020 - Mar 2022"、"01/2020 - 03/2021"、
// "2018 - 2022"、"May 2021 - Present" 等常见写法。
const (
	monthYearPat = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s+(?:19|20)\d{2}`
	numDatePat   = `\d{1,2}/(?:19|20)\d{2}`
	yearPat      = `(?:19|20)\d{2}`
	presentPat   = `(?:present|current|now|today|ongoing)`
)

var (
	dateRangeRe = regexp.MustCompile(`(?i)\b(` + monthYearPat + `|` + numDatePat + `|` + yearPat + `)\s*(?:-|to|until|through)\s*(` + monthYearPat + `|` + numDatePat + `|` + yearPat + `|` + presentPat + `)\b`)
	presentRe   = regexp.MustCompile(`(?i)^` + presentPat + `$`)
	yearOnlyRe  = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// CountDateRanges 统计文本中出现的日期范围个数
func CountDateRanges(text string) int {
	return len(dateRangeRe.FindAllString(text, -1))
}

// FindDateRange 在一行中查找首个日期范围。
// 结束端的 present/current 等写法统一为 "Present"。
func FindDateRange(line string) (start, end string, ok bool) {
	m := dateRangeRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	start = strings.TrimSpace(m[1])
	end = strings.TrimSpace(m[2])
	if presentRe.MatchString(end) {
		end = "Present"
	}
	return start, end, true
}

// StripDateRange 去掉一行中的首个日期范围，返回剩余文本
func StripDateRange(line string) string {
	return strings.TrimSpace(dateRangeRe.ReplaceAllString(line, ""))
}

// FindYear 提取一行中出现的首个四位年份
func FindYear(line string) string {
	return yearOnlyRe.FindString(line)
}
