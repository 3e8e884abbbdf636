// Package sink stores finished documents: in an output directory, or as a
// download on an HTTP response.
package sink

import (
	"context"
	"fmt"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Directory writes documents into one directory. An existing file with the
// same name is replaced, as a repeated browser download would be.
type Directory struct {
	guard *pathGuard
}

// NewDirectory creates the directory if it is missing.
func NewDirectory(dir string) (*Directory, error) {
	g, err := newPathGuard(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(g.dir, 0o750); err != nil {
		return nil, fmt.Errorf("sink: cannot create output directory: %w", err)
	}
	return &Directory{guard: g}, nil
}

// Dir returns the absolute output directory.
func (d *Directory) Dir() string { return d.guard.dir }

// Save writes data to filename and returns the absolute path. The file is
// written to a temporary name first so readers never see a partial document.
func (d *Directory) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target, err := d.guard.resolve(filename)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(d.guard.dir, ".partial-*")
	if err != nil {
		return "", fmt.Errorf("sink: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("sink: write %s: %w", filepath.Base(target), err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("sink: close %s: %w", filepath.Base(target), err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("sink: rename %s: %w", filepath.Base(target), err)
	}
	return target, nil
}

// Resolve returns the absolute path of a document filename inside the directory.
func (d *Directory) Resolve(filename string) (string, error) {
	return d.guard.resolve(filename)
}

// Document is a PDF found in the output directory.
type Document struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// List returns the PDF documents in the directory, newest first.
func (d *Directory) List() ([]Document, error) {
	entries, err := os.ReadDir(d.guard.dir)
	if err != nil {
		return nil, fmt.Errorf("sink: read output directory: %w", err)
	}
	var docs []Document
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		docs = append(docs, Document{Name: e.Name(), Size: info.Size(), Modified: info.ModTime()})
	}
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Modified.Equal(docs[j].Modified) {
			return docs[i].Name < docs[j].Name
		}
		return docs[i].Modified.After(docs[j].Modified)
	})
	return docs, nil
}

// Response sends a document as an attachment on an HTTP response. It is
// meant for a single request.
type Response struct {
	w    http.ResponseWriter
	sent bool
}

// NewResponse wraps w.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Sent reports whether the response headers have been written. After that
// the caller can no longer send an error status.
func (r *Response) Sent() bool { return r.sent }

// Save writes the download headers and the document body. The returned
// location is the attachment filename.
func (r *Response) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := cleanName(filename)
	if name == "" {
		return "", fmt.Errorf("sink: invalid filename %q", filename)
	}

	h := r.w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set("Cache-Control", "no-store")
	r.w.WriteHeader(http.StatusOK)
	r.sent = true

	if _, err := r.w.Write(data); err != nil {
		// Headers are gone; the client sees a truncated download.
		log.Printf("Warning: failed to write %s: %v", name, err)
		return "", fmt.Errorf("sink: write response: %w", err)
	}
	return name, nil
}
