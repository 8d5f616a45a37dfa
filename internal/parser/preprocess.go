package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// 预处理使用的字符替换表。全部做成数据表而不是内联分支，
// 便于单独测试和扩展。

// dashVariants 各类横线字符统一为ASCII连字符
var dashVariants = map[rune]rune{
	'‐': '-', // hyphen
	'‑': '-', // non-breaking hyphen
	'‒': '-', // figure dash
	'–': '-', // en dash
	'—': '-', // em dash
	'―': '-', // horizontal bar
	'−': '-', // minus sign
}

// quoteVariants 弯引号统一为直引号
var quoteVariants = map[rune]rune{
	'‘': '\'',
	'’': '\'',
	'‚': '\'',
	'‛': '\'',
	'“': '"',
	'”': '"',
	'„': '"',
	'‟': '"',
}

// bulletVariants 各类项目符号统一为规范的 '•'
var bulletVariants = map[rune]rune{
	'●': '•', // ●
	'○': '•', // ○
	'‣': '•', // ‣
	'∙': '•', // ∙
	'▪': '•', // ▪
	'▫': '•', // ▫
	'◦': '•', // ◦
	'⁃': '•', // ⁃
	'■': '•', // ■
	'▸': '•', // ▸
	'►': '•', // ►
	'·': '•', // ·
}

// ligatureVariants 常见连字展开。NFKC已覆盖大部分，这里兜底。
var ligatureVariants = map[rune]string{
	'ﬀ': "ff",
	'ﬁ': "fi",
	'ﬂ': "fl",
	'ﬃ': "ffi",
	'ﬄ': "ffl",
	'ﬅ': "st",
	'ﬆ': "st",
	'Œ': "OE",
	'œ': "oe",
}

// spaceVariants 不换行空格等变体统一为普通空格
var spaceVariants = map[rune]rune{
	' ': ' ',
	' ': ' ',
	' ': ' ',
	' ': ' ',
	' ': ' ',
	' ': ' ',
	' ': ' ',
	' ': ' ',
	' ': ' ',
	' ': ' ',
	' ': ' ',
	' ': ' ',
	' ': ' ',
	' ': ' ',
	'　': ' ',
}

// ocrHeadingTokens OCR常把标题词拆开（"Exper ience"）。
// 这是一份封闭的标题词修复字典，不做通用拼写纠错。
var ocrHeadingTokens = []string{
	"Experience",
	"Education",
	"Skills",
	"Summary",
	"Objective",
	"Projects",
	"Employment",
	"Professional",
	"Certifications",
	"Certificates",
	"Qualifications",
	"Languages",
	"References",
	"Publications",
	"Awards",
	"Interests",
	"Volunteer",
}

var (
	ocrFixPatterns []*ocrFixPattern

	lineEdgeSpaceRe = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	dehyphenRe      = regexp.MustCompile(`([\p{L}\p{N}])-\n([\p{L}\p{N}])`)
	pageFurnitureRe = regexp.MustCompile(`(?i)^page\s+\d+(\s+of\s+\d+)?$`)
	blankLinesRe    = regexp.MustCompile(`\n{3,}`)
)

type ocrFixPattern struct {
	re          *regexp.Regexp
	replacement string
}

func init() {
	for _, token := range ocrHeadingTokens {
		if p := buildSplitTokenPattern(token); p != nil {
			ocrFixPatterns = append(ocrFixPatterns, p)
		}
	}
}

// buildSplitTokenPattern 为标题词生成"任意单处断开"的匹配模式，
// 例如 Experience → Ex perience / Exp erience / ... 的并集。
func buildSplitTokenPattern(token string) *ocrFixPattern {
	if len(token) < 4 {
		return nil
	}
	var alts []string
	for i := 2; i <= len(token)-2; i++ {
		alts = append(alts, regexp.QuoteMeta(token[:i])+`[ \t]+`+regexp.QuoteMeta(token[i:]))
	}
	re := regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
	return &ocrFixPattern{re: re, replacement: token}
}

// NormalizeText 将提取出的原始文本归一化为规范形式。
// 纯函数、确定性、幂等：NormalizeText(NormalizeText(t)) == NormalizeText(t)。
// 步骤顺序即正确性的一部分，调整前先看测试。
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}

	// 1. Unicode规范化（NFKC）
	text := norm.NFKC.String(raw)

	// 2-3. 字符替换表：横线/引号/项目符号/连字/空格变体
	text = replaceTableRunes(text)

	// 4. 统一换行并剥离 \n、\t 以外的控制字符
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = stripControlChars(text)

	// 5. 先剥离换行两侧的行内空白，否则 "word- \ncont" 会掩盖断词连字符，
	// 破坏幂等性；随后修复换行断词："word-\ncontinuation" → "wordcontinuation"
	text = lineEdgeSpaceRe.ReplaceAllString(text, "\n")
	text = dehyphenRe.ReplaceAllString(text, "$1$2")

	// 6. 修复标题词的OCR拆分
	for _, p := range ocrFixPatterns {
		text = p.re.ReplaceAllString(text, p.replacement)
	}

	// 7-8. 删除页脚行与纯装饰分隔线
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if pageFurnitureRe.MatchString(trimmed) {
			continue
		}
		if isDecorativeLine(trimmed) {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	// 9. 折叠行内多余空格（保留≥4空格的列间隙），压缩空行
	outLines := strings.Split(text, "\n")
	for i, line := range outLines {
		outLines[i] = strings.TrimSpace(collapseNarrowSpaceRuns(line))
	}
	text = strings.Join(outLines, "\n")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")

	// 10. 整体修剪
	return strings.TrimSpace(text)
}

// replaceTableRunes 按替换表逐字符重写
func replaceTableRunes(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if repl, ok := dashVariants[r]; ok {
			b.WriteRune(repl)
			continue
		}
		if repl, ok := quoteVariants[r]; ok {
			b.WriteRune(repl)
			continue
		}
		if repl, ok := bulletVariants[r]; ok {
			b.WriteRune(repl)
			continue
		}
		if repl, ok := ligatureVariants[r]; ok {
			b.WriteString(repl)
			continue
		}
		if repl, ok := spaceVariants[r]; ok {
			b.WriteRune(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stripControlChars 删除除 \n、\t 之外的控制字符
func stripControlChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// decorativeRunes 装饰分隔线允许出现的字符
const decorativeRunes = "-_=~*•.·#+|<>^ \t"

// isDecorativeLine 判断是否为无字母数字内容的装饰线
func isDecorativeLine(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if !strings.ContainsRune(decorativeRunes, r) {
			return false
		}
	}
	return true
}

// collapseNarrowSpaceRuns 折叠恰好3个空格的行内空格串为单个空格；
// ≥4个空格视为列间隙原样保留，交给多栏重排处理。
func collapseNarrowSpaceRuns(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	runLen := 0
	flush := func() {
		switch {
		case runLen == 3:
			b.WriteByte(' ')
		case runLen > 0:
			b.WriteString(strings.Repeat(" ", runLen))
		}
		runLen = 0
	}
	for _, r := range line {
		if r == ' ' {
			runLen++
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return b.String()
}
