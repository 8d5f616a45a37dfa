package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"resume-import-go/internal/logger"
	"resume-import-go/internal/parser"
	"resume-import-go/internal/types"
)

// Stage 导入管线的处理阶段
type Stage string

const (
	StageReceived          Stage = "received"
	StageExtracting        Stage = "extracting"
	StagePreprocessing     Stage = "preprocessing"
	StageReordering        Stage = "reordering"
	StageClassifying       Stage = "classifying"
	StageDetectingSections Stage = "detecting_sections"
	StageParsingEntries    Stage = "parsing_entries"
	StageScoring           Stage = "scoring"
	StageDone              Stage = "done"
	StageFailed            Stage = "failed"
)

// defaultLowConfidenceThreshold 整体置信度低于该值时追加复核提示
const defaultLowConfidenceThreshold = 50

var importerTracer = otel.Tracer("resume-import-go/internal/importer")

// Components 聚合导入管线的功能组件依赖，便于测试替换
type Components struct {
	PDFExtractor  PDFTextExtractor
	DOCXExtractor DOCXTextExtractor
}

// Importer 简历导入编排器。
// 串行推进各阶段；只有提取阶段的失败是致命的，
// 之后的每个阶段都必须对任意残缺输入给出可用输出。
type Importer struct {
	pdf  PDFTextExtractor
	docx DOCXTextExtractor

	lowConfidence int
	logger        zerolog.Logger
}

// ImporterOption 编排器选项
type ImporterOption func(*Importer)

// WithLowConfidenceThreshold 设置低置信度提示阈值
func WithLowConfidenceThreshold(n int) ImporterOption {
	return func(im *Importer) {
		if n > 0 {
			im.lowConfidence = n
		}
	}
}

// WithLogger 设置编排器日志记录器
func WithLogger(l zerolog.Logger) ImporterOption {
	return func(im *Importer) {
		im.logger = l
	}
}

// NewImporter 创建导入编排器
func NewImporter(components Components, opts ...ImporterOption) *Importer {
	im := &Importer{
		pdf:           components.PDFExtractor,
		docx:          components.DOCXExtractor,
		lowConfidence: defaultLowConfidenceThreshold,
		logger:        logger.Logger.With().Str("component", "importer").Logger(),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import 执行完整的导入管线。
// 永不panic、永不返回error：一切失败都折叠进ImportResult。
// Success 为 false 当且仅当提取阶段未得到任何可用文本。
func (im *Importer) Import(ctx context.Context, data []byte, kind types.FileKind) *types.ImportResult {
	ctx, span := importerTracer.Start(ctx, "Importer.Import",
		trace.WithAttributes(
			attribute.String("import.file_kind", string(kind)),
			attribute.Int("import.file_size", len(data)),
		))
	defer span.End()

	result := &types.ImportResult{
		Warnings: []string{},
		Errors:   []string{},
	}
	stage := StageReceived
	advance := func(next Stage) {
		stage = next
		span.AddEvent("stage", trace.WithAttributes(attribute.String("stage", string(next))))
	}

	// 提取阶段，唯一可能致命的阶段
	advance(StageExtracting)
	text, rawHTML, extractWarnings, err := im.extract(ctx, data, kind)
	if err != nil {
		advance(StageFailed)
		extractErr := NewExtractError("", err.Error())
		span.RecordError(extractErr)
		span.SetStatus(codes.Error, "extraction failed")
		im.logger.Warn().Err(extractErr).Str("file_kind", string(kind)).Msg("文档提取失败")
		result.Success = false
		result.Errors = append(result.Errors,
			"Could not read the document content.",
			"Try re-saving the file in its original application, or convert it to DOCX and upload again.")
		return result
	}
	result.Warnings = append(result.Warnings, extractWarnings...)
	result.SourceHTML = rawHTML

	if strings.TrimSpace(text) == "" {
		advance(StageFailed)
		emptyErr := NewEmptyContentError("")
		span.RecordError(emptyErr)
		span.SetStatus(codes.Error, "empty content")
		im.logger.Warn().Err(emptyErr).Str("file_kind", string(kind)).Msg("文档无可提取文本")
		result.Success = false
		result.RawText = ""
		result.Errors = append(result.Errors,
			"Could not extract any text from the document.",
			"If this is a scanned document, upload a version with selectable text instead.")
		return result
	}

	// 提取成功后所有阶段都必须走完，残缺输入只降置信度不致命
	advance(StagePreprocessing)
	normalized := parser.NormalizeText(text)

	if kind == types.FileKindPDF {
		advance(StageReordering)
		normalized = parser.ReorderColumns(normalized)
	}
	result.RawText = normalized

	advance(StageClassifying)
	classification := parser.ClassifyFormat(normalized)
	result.Classification = &classification

	advance(StageDetectingSections)
	sections := parser.DetectSections(normalized)
	header := parser.HeaderRegion(normalized, sections)

	advance(StageParsingEntries)
	data2, parseWarnings := im.parseSections(header, sections)
	result.Data = data2
	result.Warnings = append(result.Warnings, parseWarnings...)

	advance(StageScoring)
	result.Confidence = parser.ScoreConfidence(data2)
	if result.Confidence.Overall < im.lowConfidence {
		result.Warnings = append(result.Warnings,
			"Extraction confidence is low; please review the imported fields carefully.")
	}

	advance(StageDone)
	result.Success = true
	span.SetStatus(codes.Ok, "")
	span.SetAttributes(
		attribute.String("import.format", string(classification.Format)),
		attribute.Int("import.confidence", result.Confidence.Overall),
		attribute.Int("import.section_count", len(sections)),
	)
	im.logger.Info().
		Str("file_kind", string(kind)).
		Str("stage", string(stage)).
		Str("format", string(classification.Format)).
		Int("confidence", result.Confidence.Overall).
		Int("sections", len(sections)).
		Int("warnings", len(result.Warnings)).
		Msg("导入管线完成")
	return result
}

// extract 按声明的文件类型分派到对应提取器
func (im *Importer) extract(ctx context.Context, data []byte, kind types.FileKind) (text, rawHTML string, warnings []string, err error) {
	switch kind {
	case types.FileKindPDF:
		if im.pdf == nil {
			return "", "", nil, fmt.Errorf("no PDF extractor configured")
		}
		text, warnings, err = im.pdf.ExtractTextFromBytes(ctx, data)
		return text, "", warnings, err
	case types.FileKindDOCX:
		if im.docx == nil {
			return "", "", nil, fmt.Errorf("no DOCX extractor configured")
		}
		return im.docx.ExtractAll(ctx, data)
	default:
		return "", "", nil, fmt.Errorf("unsupported file kind %q", kind)
	}
}

// parsedSectionKinds 会真正尝试解析的章节类型
var parsedSectionKinds = map[types.SectionKind]bool{
	types.SectionSummary:      true,
	types.SectionWork:         true,
	types.SectionEducation:    true,
	types.SectionSkills:       true,
	types.SectionProjects:     true,
	types.SectionCertificates: true,
	types.SectionLanguages:    true,
	types.SectionInterests:    true,
	types.SectionPublications: true,
	types.SectionAwards:       true,
	types.SectionReferences:   true,
}

// parseSections 从头部与各章节提取结构化数据。
// 同类章节出现多次时条目按顺序合并。
func (im *Importer) parseSections(header string, sections []types.DetectedSection) (*types.ParsedResumeData, []string) {
	data := &types.ParsedResumeData{}
	var warnings []string

	basics := parser.ParseContactHeader(header)
	for _, s := range sections {
		// 空内容的章节照常进入解析：各解析器对空串都是全函数，
		// 零条目会触发下面的告警，提醒用户该章节没有解析出任何条目
		parsed := true
		switch s.Kind {
		case types.SectionSummary:
			if basics.Summary == "" {
				basics.Summary = s.Content
			}
		case types.SectionWork:
			entries := parser.ParseWorkSection(s.Content)
			parsed = len(entries) > 0
			data.Work = append(data.Work, entries...)
		case types.SectionEducation:
			entries := parser.ParseEducationSection(s.Content)
			parsed = len(entries) > 0
			data.Education = append(data.Education, entries...)
		case types.SectionSkills:
			groups := parser.ParseSkillsSection(s.Content)
			parsed = len(groups) > 0
			data.Skills = append(data.Skills, groups...)
		case types.SectionProjects:
			entries := parser.ParseProjectsSection(s.Content)
			parsed = len(entries) > 0
			data.Projects = append(data.Projects, entries...)
		case types.SectionCertificates:
			certs := parser.ParseCertificatesSection(s.Content)
			parsed = len(certs) > 0
			data.Certificates = append(data.Certificates, certs...)
		case types.SectionLanguages:
			langs := parser.ParseLanguagesSection(s.Content)
			parsed = len(langs) > 0
			data.Languages = append(data.Languages, langs...)
		case types.SectionInterests:
			items := parser.ParseInterestsSection(s.Content)
			parsed = len(items) > 0
			data.Interests = append(data.Interests, items...)
		case types.SectionPublications:
			pubs := parser.ParsePublicationsSection(s.Content)
			parsed = len(pubs) > 0
			data.Publications = append(data.Publications, pubs...)
		case types.SectionAwards:
			awards := parser.ParseAwardsSection(s.Content)
			parsed = len(awards) > 0
			data.Awards = append(data.Awards, awards...)
		case types.SectionReferences:
			refs := parser.ParseReferencesSection(s.Content)
			parsed = len(refs) > 0
			data.References = append(data.References, refs...)
		default:
			// volunteer等暂不结构化的章节只参与版式分类
			continue
		}
		if !parsed && parsedSectionKinds[s.Kind] {
			warnings = append(warnings, fmt.Sprintf(
				"Found a %s section but could not parse any entries from it.", s.Kind))
		}
	}

	if basics.Name == "" {
		warnings = append(warnings,
			"Could not identify a name in the document header; please fill it in manually.")
	}
	data.Basics = basics
	return data, warnings
}
