package compose

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/a3tai/mcp-field-reports/internal/layout"
	"github.com/a3tai/mcp-field-reports/internal/notify"
)

// Renderer turns an artifact into document bytes.
type Renderer interface {
	Render(a *layout.Artifact) ([]byte, error)
}

// Sink stores a finished document under filename and returns where it went.
type Sink interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

// Verifier reads a rendered document back and checks it has the expected
// number of pages.
type Verifier interface {
	Verify(ctx context.Context, data []byte, pages int) error
}

// Result describes a document handed to the sink.
type Result struct {
	Template Template `json:"template"`
	Filename string   `json:"filename"`
	Location string   `json:"location"`
	Pages    int      `json:"pages"`
	Size     int      `json:"size"`
}

// Service runs a submission: validate, compose, render, optionally verify,
// save, notify.
type Service struct {
	measurer layout.Measurer
	renderer Renderer
	sink     Sink
	observer notify.Observer
	verifier Verifier
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithVerifier reads every rendered document back before it is saved.
func WithVerifier(v Verifier) ServiceOption {
	return func(s *Service) { s.verifier = v }
}

// WithObserver sets the notification observer.
func WithObserver(o notify.Observer) ServiceOption {
	return func(s *Service) { s.observer = o }
}

// NewService creates a Service. Without WithObserver, notifications go to
// the standard logger.
func NewService(m layout.Measurer, r Renderer, sink Sink, opts ...ServiceOption) *Service {
	s := &Service{
		measurer: m,
		renderer: r,
		sink:     sink,
		observer: notify.LogObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit produces doc and saves it to the service's sink.
func (s *Service) Submit(ctx context.Context, doc Document) (*Result, error) {
	return s.SubmitTo(ctx, doc, s.sink)
}

// SubmitTo produces doc and saves it to sink. A validation failure is
// reported to the observer and returned as *ValidationError; nothing is
// rendered or saved in that case. The success notification is sent exactly
// once, after the sink accepted the document.
func (s *Service) SubmitTo(ctx context.Context, doc Document, sink Sink) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, errors.New("compose: no sink configured")
	}

	a, err := Compose(s.measurer, doc)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.observer.Notify(verr.Notification())
		}
		return nil, err
	}

	data, err := s.renderer.Render(a)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", doc.Template(), err)
	}

	if s.verifier != nil {
		if err := s.verifier.Verify(ctx, data, a.Pages); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrVerify, err)
		}
	}

	filename := FilenameOf(doc)
	location, err := sink.Save(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", filename, err)
	}
	log.Printf("Saved %s (%d pages, %d bytes) to %s", filename, a.Pages, len(data), location)

	s.observer.Notify(notify.Notification{
		Severity: notify.Success,
		Title:    "PDF erfolgreich erstellt!",
		Message:  successMessage(doc.Template()),
	})

	return &Result{
		Template: doc.Template(),
		Filename: filename,
		Location: location,
		Pages:    a.Pages,
		Size:     len(data),
	}, nil
}
