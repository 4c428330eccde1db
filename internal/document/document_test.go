package document

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPDF struct {
	docs []*schema.Document
	err  error
	read []byte
}

func (s *stubPDF) Parse(_ context.Context, r io.Reader, _ ...einoParser.Option) ([]*schema.Document, error) {
	s.read, _ = io.ReadAll(r)
	return s.docs, s.err
}

func newExtractor(t *testing.T, p einoParser.Parser) *Extractor {
	t.Helper()
	e, err := New(context.Background(), WithPDFParser(p))
	require.NoError(t, err)
	return e
}

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(docxBody)
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"resume.pdf":      FormatPDF,
		".PDF":            FormatPDF,
		"application/pdf": FormatPDF,
		"cv.docx":         FormatDOCX,
		"docx":            FormatDOCX,
		"notes.txt":       FormatText,
		"text/plain":      FormatText,
	}
	for hint, want := range cases {
		got, err := DetectFormat(hint)
		require.NoError(t, err, hint)
		assert.Equal(t, want, got, hint)
	}

	_, err := DetectFormat("resume.doc")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractTextPlain(t *testing.T) {
	e := newExtractor(t, &stubPDF{})

	text, err := e.ExtractText(context.Background(), []byte("  Python developer\n"), "resume.txt")
	require.NoError(t, err)
	assert.Equal(t, "Python developer", text)

	_, err = e.ExtractText(context.Background(), []byte{0xff, 0xfe}, "txt")
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, FormatText, extErr.Format)
}

func TestExtractTextPDFJoinsDocuments(t *testing.T) {
	p := &stubPDF{docs: []*schema.Document{
		{Content: "Jane Doe\n"},
		nil,
		{Content: "  "},
		{Content: "Skills: Go, SQL"},
	}}
	e := newExtractor(t, p)

	text, err := e.ExtractText(context.Background(), []byte("%PDF-1.4"), "resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSkills: Go, SQL", text)
	assert.Equal(t, []byte("%PDF-1.4"), p.read)
}

func TestExtractTextPDFParserError(t *testing.T) {
	cause := errors.New("broken xref")
	e := newExtractor(t, &stubPDF{err: cause})

	_, err := e.ExtractText(context.Background(), []byte("junk"), "application/pdf")
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, FormatPDF, extErr.Format)
	assert.ErrorIs(t, err, cause)
}

func TestExtractTextDOCX(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane</w:t></w:r><w:r><w:t xml:space="preserve"> Doe</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go</w:t></w:r></w:p>
  </w:body>
</w:document>`
	e := newExtractor(t, &stubPDF{})

	text, err := e.ExtractText(context.Background(), buildDOCX(t, body), "cv.docx")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills:\tGo", text)
}

func TestExtractTextDOCXCorrupt(t *testing.T) {
	e := newExtractor(t, &stubPDF{})

	_, err := e.ExtractText(context.Background(), []byte("not a zip"), "cv.docx")
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, FormatDOCX, extErr.Format)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err = zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = e.ExtractText(context.Background(), buf.Bytes(), "cv.docx")
	require.ErrorAs(t, err, &extErr)
}

func TestExtractTextUnsupported(t *testing.T) {
	e := newExtractor(t, &stubPDF{})

	_, err := e.ExtractText(context.Background(), []byte("x"), "image/png")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
