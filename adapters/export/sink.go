package export

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Sink delivers bytes as a named file to wherever the host environment
// saves downloads. Keeping delivery behind this interface leaves the
// formatting logic pure and testable.
type Sink interface {
	Deliver(name, mimeType string, data []byte) error
}

// HTTPSink streams a file to an HTTP response as an attachment download.
// It is single-use: one sink per response.
type HTTPSink struct {
	w http.ResponseWriter
}

// NewHTTPSink wraps a response writer for attachment delivery.
func NewHTTPSink(w http.ResponseWriter) *HTTPSink {
	return &HTTPSink{w: w}
}

// Deliver writes the download headers and body.
func (s *HTTPSink) Deliver(name, mimeType string, data []byte) error {
	s.w.Header().Set("Content-Type", mimeType)
	s.w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	s.w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	_, err := s.w.Write(data)
	return err
}

// DirSink writes delivered files into a directory on disk.
type DirSink struct {
	dir string
}

// NewDirSink creates a sink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Deliver writes the file under the sink directory, creating it if needed.
func (s *DirSink) Deliver(name, mimeType string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// SanitizeFileName lowercases name, replaces any character outside
// [a-z0-9_-.] with an underscore, and appends ext unless the name already
// carries it (case-insensitive).
func SanitizeFileName(name, ext string) string {
	lower := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lower) + len(ext))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	sanitized := b.String()
	if sanitized == "" || sanitized == ext {
		sanitized = "export"
	}
	if !strings.HasSuffix(sanitized, strings.ToLower(ext)) {
		sanitized += strings.ToLower(ext)
	}
	return sanitized
}
