package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestDocx 用给定的document.xml在内存中拼一个最小DOCX包
func buildTestDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:pStyle w:val="Heading1"/></w:pPr>
      <w:r><w:t>Jane Doe</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:rPr><w:b/></w:rPr><w:t>Experience</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>Engineer at </w:t></w:r>
      <w:r><w:t>Google</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`

func TestDOCXExtractTextFromBytes(t *testing.T) {
	data := buildTestDocx(t, testDocumentXML)
	extractor := NewDOCXExtractor()

	text, warnings, err := extractor.ExtractTextFromBytes(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nExperience\nEngineer at Google", text)
	assert.Empty(t, warnings)
}

func TestDOCXExtractHTMLFromBytes(t *testing.T) {
	data := buildTestDocx(t, testDocumentXML)
	extractor := NewDOCXExtractor()

	rawHTML, err := extractor.ExtractHTMLFromBytes(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t,
		"<h1>Jane Doe</h1>\n<p><strong>Experience</strong></p>\n<p>Engineer at Google</p>",
		rawHTML)
}

func TestDOCXUnknownStyleWarning(t *testing.T) {
	documentXML := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:pPr><w:pStyle w:val="FancySidebar"/></w:pPr><w:r><w:t>Decorated text</w:t></w:r></w:p>
</w:body>
</w:document>`
	data := buildTestDocx(t, documentXML)
	extractor := NewDOCXExtractor()

	text, warnings, err := extractor.ExtractTextFromBytes(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Decorated text", text)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "FancySidebar")
}

func TestDOCXBoldValFalse(t *testing.T) {
	documentXML := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:rPr><w:b w:val="0"/></w:rPr><w:t>plain</w:t></w:r></w:p>
</w:body>
</w:document>`
	data := buildTestDocx(t, documentXML)
	extractor := NewDOCXExtractor()

	rawHTML, err := extractor.ExtractHTMLFromBytes(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "<p>plain</p>", rawHTML)
}

func TestDOCXBreakAndTab(t *testing.T) {
	documentXML := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>first</w:t><w:br/><w:t>second</w:t></w:r></w:p>
</w:body>
</w:document>`
	data := buildTestDocx(t, documentXML)
	extractor := NewDOCXExtractor()

	text, _, err := extractor.ExtractTextFromBytes(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", text)
}

func TestDOCXHTMLEscapesContent(t *testing.T) {
	documentXML := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Less &lt;than&gt; &amp; more</w:t></w:r></w:p>
</w:body>
</w:document>`
	data := buildTestDocx(t, documentXML)
	extractor := NewDOCXExtractor()

	rawHTML, err := extractor.ExtractHTMLFromBytes(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "<p>Less &lt;than&gt; &amp; more</p>", rawHTML)
}

func TestDOCXExtractAll(t *testing.T) {
	data := buildTestDocx(t, testDocumentXML)
	extractor := NewDOCXExtractor()

	text, rawHTML, warnings, err := extractor.ExtractAll(context.Background(), data)
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, rawHTML, "<h1>Jane Doe</h1>")
	assert.Empty(t, warnings)
}

func TestDOCXInvalidArchive(t *testing.T) {
	extractor := NewDOCXExtractor()

	_, _, err := extractor.ExtractTextFromBytes(context.Background(), []byte("not a zip file"))
	assert.Error(t, err)

	// 合法zip但缺少主文档流
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("other.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, _, err = extractor.ExtractTextFromBytes(context.Background(), buf.Bytes())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}
