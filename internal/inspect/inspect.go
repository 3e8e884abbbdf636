// Package inspect reads produced documents back: structural validation and
// page count with pdfcpu, text and document info with ledongthuc/pdf.
package inspect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	ErrEmpty    = errors.New("inspect: document is empty")
	ErrTooLarge = errors.New("inspect: document too large")
	ErrNotPDF   = errors.New("inspect: not a PDF document")
	ErrPages    = errors.New("inspect: unexpected page count")
)

// Report describes one document.
type Report struct {
	Path            string `json:"path,omitempty"`
	Size            int64  `json:"size"`
	Pages           int    `json:"pages"`
	Valid           bool   `json:"valid"`
	ValidationError string `json:"validation_error,omitempty"`
	Title           string `json:"title,omitempty"`
	Author          string `json:"author,omitempty"`
	Creator         string `json:"creator,omitempty"`
	Producer        string `json:"producer,omitempty"`
	Text            string `json:"text,omitempty"`
	Truncated       bool   `json:"truncated,omitempty"`
}

// Inspector inspects documents up to a maximum size.
type Inspector struct {
	maxFileSize int64
	maxTextSize int
}

// NewInspector creates an inspector that refuses documents larger than maxFileSize.
func NewInspector(maxFileSize int64) *Inspector {
	return &Inspector{
		maxFileSize: maxFileSize,
		maxTextSize: 1024 * 1024,
	}
}

// InspectFile inspects the PDF at path.
func (i *Inspector) InspectFile(ctx context.Context, path string) (*Report, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, path)
	}
	if err := i.checkSize(info.Size()); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	report, err := i.InspectBytes(ctx, data)
	if err != nil {
		return nil, err
	}
	report.Path = path
	return report, nil
}

// InspectBytes inspects an in-memory PDF. A document that pdfcpu rejects is
// reported with Valid=false rather than as an error, as long as its page
// tree can be read.
func (i *Inspector) InspectBytes(ctx context.Context, data []byte) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := i.checkSize(int64(len(data))); err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}

	report := &Report{Size: int64(len(data))}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read PDF context: %v", ErrNotPDF, err)
	}
	if err := pctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: failed to ensure page count: %v", ErrNotPDF, err)
	}
	report.Pages = pctx.PageCount

	if err := api.ValidateContext(pctx); err != nil {
		report.ValidationError = err.Error()
	} else {
		report.Valid = true
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// pdfcpu could read it; text extraction is best effort.
		return report, nil //nolint:nilerr
	}
	i.extractText(r, report)
	extractInfo(r, report)

	return report, nil
}

// Verify checks that data is a valid PDF with the given number of pages.
func (i *Inspector) Verify(ctx context.Context, data []byte, pages int) error {
	report, err := i.InspectBytes(ctx, data)
	if err != nil {
		return err
	}
	if !report.Valid {
		return fmt.Errorf("%w: %s", ErrNotPDF, report.ValidationError)
	}
	if report.Pages != pages {
		return fmt.Errorf("%w: got %d, want %d", ErrPages, report.Pages, pages)
	}
	return nil
}

func (i *Inspector) checkSize(size int64) error {
	if size == 0 {
		return ErrEmpty
	}
	if i.maxFileSize > 0 && size > i.maxFileSize {
		return fmt.Errorf("%w: %d bytes (max: %d bytes)", ErrTooLarge, size, i.maxFileSize)
	}
	return nil
}

func (i *Inspector) extractText(r *pdf.Reader, report *Report) {
	defer func() {
		// ledongthuc/pdf panics on some malformed content streams.
		if recover() != nil {
			report.Truncated = true
		}
	}()

	var b strings.Builder
	for n := 1; n <= r.NumPage(); n++ {
		page := r.Page(n)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if b.Len()+len(content) > i.maxTextSize {
			if remaining := i.maxTextSize - b.Len(); remaining > 0 {
				b.WriteString(content[:remaining])
			}
			report.Truncated = true
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(content)
	}
	report.Text = b.String()
}

func extractInfo(r *pdf.Reader, report *Report) {
	defer func() {
		_ = recover()
	}()

	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return
	}
	field := func(key string) string {
		v := info.Key(key)
		if v.IsNull() {
			return ""
		}
		return strings.TrimSpace(v.Text())
	}
	report.Title = field("Title")
	report.Author = field("Author")
	report.Creator = field("Creator")
	report.Producer = field("Producer")
}
