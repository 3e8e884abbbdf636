// Package compose turns validated form records into documents. Composition
// is a pure function from a record to a layout.Artifact; the Service wires
// it to rendering, the save sink and the notification observer.
package compose

import (
	"fmt"

	"github.com/a3tai/mcp-field-reports/internal/layout"
)

// Template names a document template. The name is also the document title
// and the filename stem.
type Template string

const (
	WorkOrderTemplate   Template = "Leistungsauftrag"
	DailyReportTemplate Template = "Tagesbericht"
)

// Document is a record bound to the template that lays it out.
type Document interface {
	Template() Template
	// Date is the record's date field as entered (yyyy-mm-dd) or empty.
	Date() string

	validate() *ValidationError
	layout(m layout.Measurer, a *layout.Artifact)
}

// Filename derives the download name from the template and the record date.
// An absent date is replaced by "neu".
func Filename(t Template, date string) string {
	if date == "" {
		date = "neu"
	}
	return fmt.Sprintf("%s_%s.pdf", t, date)
}

// FilenameOf returns Filename for doc.
func FilenameOf(doc Document) string {
	return Filename(doc.Template(), doc.Date())
}

// Compose validates doc and lays it out. On a validation failure it returns
// a *ValidationError and no artifact. doc is never modified.
func Compose(m layout.Measurer, doc Document) (*layout.Artifact, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrUnknownTemplate)
	}
	if verr := doc.validate(); verr != nil {
		return nil, verr
	}
	a := layout.NewArtifact(string(doc.Template()))
	doc.layout(m, a)
	return a, nil
}

// successMessage is the text shown once a document was handed to the sink.
func successMessage(t Template) string {
	return fmt.Sprintf("Ihr %s wurde heruntergeladen.", t)
}
