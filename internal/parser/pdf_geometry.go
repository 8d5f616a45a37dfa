package parser

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// defaultGlyphWidth 文本片段宽度信息缺失时的回退字形宽度
const defaultGlyphWidth = 5.0

// wideGapMarker 行内宽间隙（疑似列间隙）的占位符，供多栏检测使用
const wideGapMarker = "    "

// TextRun 携带页面定位信息的一段PDF文本
type TextRun struct {
	Text   string
	X      float64 // 左边缘横坐标
	Y      float64 // 基线纵坐标（PDF坐标系，向上增大）
	Width  float64
	Height float64 // 字号
}

// reconLine 重组过程中的一行。基准Y取首个片段，
// 行高取成员片段的最大字号。
type reconLine struct {
	y      float64
	height float64
	runs   []TextRun
}

// reconstructLines 把乱序的定位文本片段重组为自上而下的行序列。
// 纵向距离不超过 max(行高, 片段字号)×0.5 的片段归入同一行，
// 保证上下标、脚注标记不会被拆成独立行。
func reconstructLines(runs []TextRun) []reconLine {
	var lines []reconLine
	for _, run := range runs {
		if run.Text == "" {
			continue
		}
		idx := -1
		for i := range lines {
			tol := lines[i].height
			if run.Height > tol {
				tol = run.Height
			}
			if abs(run.Y-lines[i].y) <= tol*0.5 {
				idx = i
				break
			}
		}
		if idx < 0 {
			lines = append(lines, reconLine{y: run.Y, height: run.Height, runs: []TextRun{run}})
			continue
		}
		lines[idx].runs = append(lines[idx].runs, run)
		if run.Height > lines[idx].height {
			lines[idx].height = run.Height
		}
	}

	// PDF纵坐标向上增大，Y降序即阅读顺序
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].y > lines[j].y
	})
	for i := range lines {
		sortRunsByX(lines[i].runs)
	}
	return lines
}

// AssemblePageText 将一页的定位文本片段拼装为纯文本。
// 行内片段间隔超过3倍平均字形宽度时插入宽间隙标记，
// 否则在需要时补一个普通空格。
func AssemblePageText(runs []TextRun) string {
	lines := reconstructLines(runs)
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, joinLineRuns(line.runs))
	}
	return strings.Join(parts, "\n")
}

func joinLineRuns(runs []TextRun) string {
	var b strings.Builder
	prevEnd := 0.0
	for i, run := range runs {
		if i > 0 {
			gap := run.X - prevEnd
			if gap >= 3*avgGlyphWidth(run) {
				b.WriteString(wideGapMarker)
			} else if needsSpace(b.String(), run.Text) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(run.Text)
		prevEnd = run.X + run.Width
	}
	return b.String()
}

// avgGlyphWidth 片段的平均字形宽度，宽度或内容缺失时回退默认值
func avgGlyphWidth(run TextRun) float64 {
	n := utf8.RuneCountInString(run.Text)
	if n == 0 || run.Width <= 0 {
		return defaultGlyphWidth
	}
	return run.Width / float64(n)
}

func needsSpace(left, right string) bool {
	if left == "" || right == "" {
		return false
	}
	return !strings.HasSuffix(left, " ") && !strings.HasPrefix(right, " ")
}

func sortRunsByX(runs []TextRun) {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].X < runs[j].X
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
