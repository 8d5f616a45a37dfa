package importer

import (
	"context"
)

// PDFTextExtractor PDF文本提取能力的抽象。
// 返回值依次为：提取文本、非致命告警、致命错误。
type PDFTextExtractor interface {
	ExtractTextFromBytes(ctx context.Context, data []byte) (text string, warnings []string, err error)
}

// DOCXTextExtractor DOCX提取能力的抽象。
// 文本与HTML两路独立转换，HTML失败不构成致命错误。
type DOCXTextExtractor interface {
	ExtractAll(ctx context.Context, data []byte) (text string, rawHTML string, warnings []string, err error)
}
