package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"resume-import-go/internal/logger"
)

// docxDocumentPath OOXML包内主文档的固定路径
const docxDocumentPath = "word/document.xml"

// knownParagraphStyles 能够映射到输出结构的段落样式
var knownParagraphStyles = map[string]bool{
	"Normal":        true,
	"Title":         true,
	"Subtitle":      true,
	"Heading1":      true,
	"Heading2":      true,
	"Heading3":      true,
	"Heading4":      true,
	"Heading5":      true,
	"Heading6":      true,
	"ListParagraph": true,
	"NoSpacing":     true,
	"Quote":         true,
	"BodyText":      true,
}

// DOCXExtractor 基于OOXML包结构的DOCX提取器。
// 直接解压word/document.xml做流式XML解析，不落盘。
type DOCXExtractor struct {
	logger zerolog.Logger
}

// NewDOCXExtractor 创建DOCX提取器
func NewDOCXExtractor() *DOCXExtractor {
	return &DOCXExtractor{
		logger: logger.Logger.With().Str("component", "docx_extractor").Logger(),
	}
}

// ExtractTextFromBytes 从DOCX字节流提取纯文本，段落间以换行符分隔
func (e *DOCXExtractor) ExtractTextFromBytes(ctx context.Context, data []byte) (string, []string, error) {
	select {
	case <-ctx.Done():
		return "", nil, ctx.Err()
	default:
	}
	text, warnings, err := convertDocxText(data)
	if err != nil {
		return "", nil, err
	}
	e.logger.Debug().Int("text_length", len(text)).Msg("DOCX文本提取完成")
	return text, warnings, nil
}

// ExtractHTMLFromBytes 从DOCX字节流生成简化HTML。
// 标题样式映射为h1-h6，加粗映射为strong，其余段落映射为p。
func (e *DOCXExtractor) ExtractHTMLFromBytes(ctx context.Context, data []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	return convertDocxHTML(data)
}

// ExtractAll 并发执行文本与HTML两路转换。
// 两路都只读原始字节，互不依赖；告警来自文本一路。
func (e *DOCXExtractor) ExtractAll(ctx context.Context, data []byte) (text string, rawHTML string, warnings []string, err error) {
	var (
		wg      sync.WaitGroup
		htmlOut string
		htmlErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		htmlOut, htmlErr = e.ExtractHTMLFromBytes(ctx, data)
	}()

	text, warnings, err = e.ExtractTextFromBytes(ctx, data)
	wg.Wait()
	if err != nil {
		return "", "", nil, err
	}
	if htmlErr != nil {
		// 文本一路成功即可继续，HTML失败降级为告警
		e.logger.Warn().Err(htmlErr).Msg("DOCX转HTML失败")
		warnings = append(warnings, "Could not build an HTML preview of the document.")
		return text, "", warnings, nil
	}
	return text, htmlOut, warnings, nil
}

// openDocumentXML 打开OOXML包并定位主文档流
func openDocumentXML(data []byte) (io.ReadCloser, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX archive: %w", err)
	}
	for _, f := range reader.File {
		if f.Name == docxDocumentPath {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", docxDocumentPath, err)
			}
			return rc, nil
		}
	}
	return nil, fmt.Errorf("invalid DOCX: missing %s", docxDocumentPath)
}

// docxParagraph 解析出的一个段落
type docxParagraph struct {
	style string
	spans []docxSpan
}

type docxSpan struct {
	text string
	bold bool
}

func (p docxParagraph) plainText() string {
	var b strings.Builder
	for _, s := range p.spans {
		b.WriteString(s.text)
	}
	return b.String()
}

// parseDocxParagraphs 流式解析document.xml为段落序列。
// 只识别 w:p / w:pStyle / w:r / w:b / w:t / w:br / w:tab，
// 其余标签（表格、图形锚点等）按内嵌文本处理。
func parseDocxParagraphs(data []byte) ([]docxParagraph, []string, error) {
	rc, err := openDocumentXML(data)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var (
		paragraphs    []docxParagraph
		current       docxParagraph
		inParagraph   bool
		inRunProps    bool
		runBold       bool
		inText        bool
		unknownStyles = map[string]bool{}
	)
	appendText := func(s string) {
		if s == "" {
			return
		}
		n := len(current.spans)
		if n > 0 && current.spans[n-1].bold == runBold {
			current.spans[n-1].text += s
			return
		}
		current.spans = append(current.spans, docxSpan{text: s, bold: runBold})
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse %s: %w", docxDocumentPath, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				current = docxParagraph{}
				inParagraph = true
				runBold = false
			case "pStyle":
				current.style = xmlAttr(t, "val")
				if current.style != "" && !knownParagraphStyles[current.style] &&
					!strings.HasPrefix(current.style, "Heading") {
					unknownStyles[current.style] = true
				}
			case "rPr":
				inRunProps = true
			case "r":
				runBold = false
			case "b":
				if inRunProps && xmlBoolAttr(t, "val") {
					runBold = true
				}
			case "t":
				inText = true
			case "br":
				if inParagraph {
					appendText("\n")
				}
			case "tab":
				if inParagraph {
					appendText("\t")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inParagraph {
					paragraphs = append(paragraphs, current)
					inParagraph = false
				}
			case "rPr":
				inRunProps = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inParagraph && inText {
				appendText(string(t))
			}
		}
	}

	warnings := make([]string, 0, len(unknownStyles))
	styles := make([]string, 0, len(unknownStyles))
	for s := range unknownStyles {
		styles = append(styles, s)
	}
	sort.Strings(styles)
	for _, s := range styles {
		warnings = append(warnings, fmt.Sprintf("Unsupported paragraph style %q; its formatting was ignored.", s))
	}
	return paragraphs, warnings, nil
}

// convertDocxText 文本一路的转换
func convertDocxText(data []byte) (string, []string, error) {
	paragraphs, warnings, err := parseDocxParagraphs(data)
	if err != nil {
		return "", nil, err
	}
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		lines = append(lines, p.plainText())
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), warnings, nil
}

// convertDocxHTML HTML一路的转换
func convertDocxHTML(data []byte) (string, error) {
	paragraphs, _, err := parseDocxParagraphs(data)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, p := range paragraphs {
		inner := spansToHTML(p.spans)
		if strings.TrimSpace(inner) == "" {
			continue
		}
		tag := paragraphTag(p.style)
		b.WriteString("<")
		b.WriteString(tag)
		b.WriteString(">")
		b.WriteString(inner)
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteString(">\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// paragraphTag 段落样式到HTML标签的映射
func paragraphTag(style string) string {
	switch style {
	case "Title", "Heading1":
		return "h1"
	case "Heading2":
		return "h2"
	case "Heading3":
		return "h3"
	case "Heading4":
		return "h4"
	case "Heading5":
		return "h5"
	case "Heading6":
		return "h6"
	default:
		return "p"
	}
}

func spansToHTML(spans []docxSpan) string {
	var b strings.Builder
	for _, s := range spans {
		escaped := strings.ReplaceAll(html.EscapeString(s.text), "\n", "<br>")
		if s.bold {
			b.WriteString("<strong>")
			b.WriteString(escaped)
			b.WriteString("</strong>")
			continue
		}
		b.WriteString(escaped)
	}
	return b.String()
}

// xmlAttr 读取忽略命名空间的属性值
func xmlAttr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// xmlBoolAttr OOXML布尔属性：缺省为真，"0"/"false"/"none"为假
func xmlBoolAttr(el xml.StartElement, name string) bool {
	v := strings.ToLower(xmlAttr(el, name))
	return v != "0" && v != "false" && v != "none"
}
