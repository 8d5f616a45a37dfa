package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"resume-import-go/internal/logger"
)

const (
	// defaultScannedMinCharsPerPage 平均每页字符数低于该值视为疑似扫描件
	defaultScannedMinCharsPerPage = 200
	// defaultGarbageRatioLimit 乱码字符占比超过该值视为提取质量差
	defaultGarbageRatioLimit = 0.5
)

// GeometricPDFExtractor 基于字形几何信息的PDF文本提取器。
// 逐页取出带坐标的文本片段，按纵向距离重组成行，
// 不依赖PDF内部的内容流顺序。
type GeometricPDFExtractor struct {
	minCharsPerPage   int
	garbageRatioLimit float64
	logger            zerolog.Logger
}

// GeometricPDFExtractorOption 提取器选项
type GeometricPDFExtractorOption func(*GeometricPDFExtractor)

// WithScannedMinCharsPerPage 设置扫描件判定的每页字符数阈值
func WithScannedMinCharsPerPage(n int) GeometricPDFExtractorOption {
	return func(e *GeometricPDFExtractor) {
		if n > 0 {
			e.minCharsPerPage = n
		}
	}
}

// WithPDFLogger 设置提取器日志记录器
func WithPDFLogger(l zerolog.Logger) GeometricPDFExtractorOption {
	return func(e *GeometricPDFExtractor) {
		e.logger = l
	}
}

// NewGeometricPDFExtractor 创建PDF文本提取器
func NewGeometricPDFExtractor(opts ...GeometricPDFExtractorOption) *GeometricPDFExtractor {
	e := &GeometricPDFExtractor{
		minCharsPerPage:   defaultScannedMinCharsPerPage,
		garbageRatioLimit: defaultGarbageRatioLimit,
		logger:            logger.Logger.With().Str("component", "pdf_extractor").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractTextFromBytes 从PDF字节流提取纯文本。
// 返回值依次为：拼装后的文本、非致命告警、致命错误。
// 扫描件或乱码只产生告警，不产生错误。
func (e *GeometricPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte) (text string, warnings []string, err error) {
	// ledongthuc/pdf 对损坏文件可能panic，这里兜底转为错误
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Msg("PDF解析panic")
			text = ""
			warnings = nil
			err = fmt.Errorf("failed to parse PDF document: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to open PDF document: %w", err)
	}

	pageCount := reader.NumPage()
	pages := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		select {
		case <-ctx.Done():
			return "", nil, ctx.Err()
		default:
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		runs := make([]TextRun, 0, len(content.Text))
		for _, t := range content.Text {
			if t.S == "" {
				continue
			}
			runs = append(runs, TextRun{
				Text:   t.S,
				X:      t.X,
				Y:      t.Y,
				Width:  t.W,
				Height: t.FontSize,
			})
		}
		pages = append(pages, strings.TrimSpace(AssemblePageText(runs)))
	}

	text = strings.TrimSpace(strings.Join(pages, "\n\n"))
	warnings = e.qualityWarnings(text, len(pages))

	e.logger.Debug().
		Int("page_count", len(pages)).
		Int("text_length", len(text)).
		Int("warning_count", len(warnings)).
		Msg("PDF文本提取完成")
	return text, warnings, nil
}

// qualityWarnings 评估提取质量，返回面向用户的英文告警
func (e *GeometricPDFExtractor) qualityWarnings(text string, pageCount int) []string {
	if pageCount == 0 {
		return nil
	}
	var warnings []string
	avgChars := len(text) / pageCount
	if avgChars < e.minCharsPerPage {
		warnings = append(warnings,
			"This document appears to be a scanned or image-based PDF; very little text could be extracted. "+
				"OCR is not performed, so results may be incomplete.")
	}
	if ratio := garbageRatio(text); ratio > e.garbageRatioLimit {
		warnings = append(warnings,
			"The extracted text contains a high proportion of unreadable characters; "+
				"the document may use an unsupported font encoding.")
	}
	return warnings
}

// garbageRatio 非可读字符（字母、数字、空白、常用标点之外）的占比
func garbageRatio(text string) float64 {
	if text == "" {
		return 0
	}
	total := 0
	garbage := 0
	for _, r := range text {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
			unicode.IsPunct(r) || unicode.IsSymbol(r) && r < 0x2200 {
			continue
		}
		garbage++
	}
	if total == 0 {
		return 0
	}
	return float64(garbage) / float64(total)
}
