package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderColumnsBelowThresholdUnchanged(t *testing.T) {
	// 6个非空行中只有1行含列间隙，未过半，原样返回
	input := strings.Join([]string{
		"Jane Doe",
		"Software Engineer",
		"Experience    Skills",
		"Worked on backend services",
		"Led a small team",
		"Education",
	}, "\n")
	assert.Equal(t, input, ReorderColumns(input))
}

func TestReorderColumnsAllLinesSplit(t *testing.T) {
	input := strings.Join([]string{
		"left1    right1",
		"left2    right2",
		"left3    right3",
		"left4    right4",
		"left5    right5",
		"left6    right6",
	}, "\n")
	got := ReorderColumns(input)

	// 左栏内容整体先于右栏，且各自保持原有行序
	for i := 1; i <= 6; i++ {
		leftIdx := strings.Index(got, "left"+string(rune('0'+i)))
		require.GreaterOrEqual(t, leftIdx, 0)
	}
	lastLeft := strings.LastIndex(got, "left6")
	firstRight := strings.Index(got, "right1")
	assert.Greater(t, firstRight, lastLeft, "左栏必须完整出现在右栏之前")

	for i := 1; i < 6; i++ {
		a := "left" + string(rune('0'+i))
		b := "left" + string(rune('0'+i+1))
		assert.Less(t, strings.Index(got, a), strings.Index(got, b))
		a = "right" + string(rune('0'+i))
		b = "right" + string(rune('0'+i+1))
		assert.Less(t, strings.Index(got, a), strings.Index(got, b))
	}
}

func TestReorderColumnsSplitsAtWidestGap(t *testing.T) {
	// 行内多个间隙时在最宽处切分
	input := strings.Join([]string{
		"alpha    beta        gamma",
		"one    two        three",
	}, "\n")
	got := ReorderColumns(input)

	assert.Contains(t, got, "alpha    beta")
	assert.Contains(t, got, "gamma")
	lastLeft := strings.Index(got, "one    two")
	assert.Greater(t, strings.Index(got, "gamma"), lastLeft)
}

func TestReorderColumnsEmptyAndNoGaps(t *testing.T) {
	assert.Equal(t, "", ReorderColumns(""))

	input := "just a line\nanother line"
	assert.Equal(t, input, ReorderColumns(input))
}
