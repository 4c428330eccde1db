// Package document turns uploaded resume files into plain text.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"go.uber.org/zap"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

const defaultParseTimeout = 30 * time.Second

// ErrUnsupportedFormat is returned for file types the extractor cannot read.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractionError wraps a failure to read a document of a supported format.
type ExtractionError struct {
	Format Format
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s text: %v", e.Format, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

type Extractor struct {
	pdf     einoParser.Parser
	logger  *zap.Logger
	timeout time.Duration
}

type Option func(*Extractor)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPDFParser replaces the default eino PDF parser.
func WithPDFParser(p einoParser.Parser) Option {
	return func(e *Extractor) {
		e.pdf = p
	}
}

func New(ctx context.Context, opts ...Option) (*Extractor, error) {
	e := &Extractor{logger: zap.NewNop(), timeout: defaultParseTimeout}
	for _, opt := range opts {
		opt(e)
	}

	if e.pdf == nil {
		p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
		if err != nil {
			return nil, fmt.Errorf("create pdf parser: %w", err)
		}
		e.pdf = p
	}

	return e, nil
}

// DetectFormat maps a file name, extension or MIME type to a format.
func DetectFormat(hint string) (Format, error) {
	h := strings.ToLower(strings.TrimSpace(hint))
	switch h {
	case "application/pdf":
		return FormatPDF, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX, nil
	case "text/plain", "text/markdown":
		return FormatText, nil
	}

	if ext := filepath.Ext(h); ext != "" {
		h = ext
	}
	switch strings.TrimPrefix(h, ".") {
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	case "txt", "text", "md":
		return FormatText, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, hint)
}

// ExtractText returns the text of the document. formatHint is a file name,
// extension or MIME type.
func (e *Extractor) ExtractText(ctx context.Context, data []byte, formatHint string) (string, error) {
	format, err := DetectFormat(formatHint)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = e.extractPDF(ctx, data, formatHint)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatText:
		if !utf8.Valid(data) {
			err = errors.New("text is not valid UTF-8")
		}
		text = string(data)
	}
	if err != nil {
		return "", &ExtractionError{Format: format, Cause: err}
	}

	text = strings.TrimSpace(text)
	e.logger.Debug("document text extracted",
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
		zap.Int("text_length", utf8.RuneCountInString(text)),
	)

	return text, nil
}

func (e *Extractor) extractPDF(ctx context.Context, data []byte, uri string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	docs, err := e.pdf.Parse(ctx, bytes.NewReader(data), einoParser.WithURI(uri))
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", errors.New("parser returned no documents")
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if content := strings.TrimSpace(doc.Content); content != "" {
			parts = append(parts, content)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
