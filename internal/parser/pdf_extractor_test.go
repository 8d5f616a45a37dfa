package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualityWarningsCleanText(t *testing.T) {
	e := NewGeometricPDFExtractor()
	text := strings.Repeat("This resume has plenty of perfectly extractable text. ", 10)
	require.Greater(t, len(text), defaultScannedMinCharsPerPage)

	warnings := e.qualityWarnings(text, 1)
	assert.Empty(t, warnings)
}

func TestQualityWarningsScannedDocument(t *testing.T) {
	// 平均每页字符数低于阈值，疑似扫描件
	e := NewGeometricPDFExtractor()
	warnings := e.qualityWarnings("Jane Doe", 3)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "scanned")
}

func TestQualityWarningsScannedThresholdOption(t *testing.T) {
	e := NewGeometricPDFExtractor(WithScannedMinCharsPerPage(2))
	warnings := e.qualityWarnings("Jane Doe", 1)
	assert.Empty(t, warnings, "阈值调低后短文本不应再触发扫描件告警")
}

func TestQualityWarningsGarbageText(t *testing.T) {
	// 私用区字符占绝对多数：文本够长不算扫描件，但乱码占比超限
	e := NewGeometricPDFExtractor()
	text := "abc" + strings.Repeat("", 300)
	require.Greater(t, len(text), defaultScannedMinCharsPerPage)

	warnings := e.qualityWarnings(text, 1)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unreadable")
}

func TestQualityWarningsScannedAndGarbage(t *testing.T) {
	e := NewGeometricPDFExtractor()
	warnings := e.qualityWarnings("", 1)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "scanned")
	assert.Contains(t, warnings[1], "unreadable")
}

func TestQualityWarningsZeroPages(t *testing.T) {
	e := NewGeometricPDFExtractor()
	assert.Nil(t, e.qualityWarnings("", 0))
}

func TestGarbageRatio(t *testing.T) {
	assert.Equal(t, 0.0, garbageRatio(""))
	assert.Equal(t, 0.0, garbageRatio("Plain resume text, with punctuation: 100%!"))

	// 3 个乱码字符对 1 个字母
	ratio := garbageRatio("a")
	assert.InDelta(t, 0.75, ratio, 0.001)
}
