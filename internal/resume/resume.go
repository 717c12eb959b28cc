// Package resume prepares résumé files for upload.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

// Accepted content types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnreadable is returned when a file claims an accepted type but its
// contents cannot be opened as that type.
var ErrUnreadable = errors.New("unreadable résumé")

var extensionTypes = map[string]string{
	".pdf":  MIMEPDF,
	".docx": MIMEDOCX,
}

// Allowed reports whether contentType is PDF or DOCX. Parameters such as
// charset are ignored.
func Allowed(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	return mediaType == MIMEPDF || mediaType == MIMEDOCX
}

// DetectType returns the content type a browser would report for name,
// sniffing data when the extension is unknown.
func DetectType(name string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

// Load reads path into an upload. Files of an accepted type are checked
// with Inspect; other types are returned as-is so the caller can report
// the type error.
func Load(path string) (api.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.File{}, fmt.Errorf("reading %s: %w", path, err)
	}
	f := api.File{
		Name:        filepath.Base(path),
		ContentType: DetectType(path, data),
		Data:        data,
	}
	if Allowed(f.ContentType) {
		if err := Inspect(f); err != nil {
			return api.File{}, err
		}
	}
	return f, nil
}

// Inspect opens f with the parser for its type.
func Inspect(f api.File) (err error) {
	// The PDF parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrUnreadable, f.Name, r)
		}
	}()

	r := bytes.NewReader(f.Data)
	switch mediaType(f.ContentType) {
	case MIMEPDF:
		doc, err := pdf.NewReader(r, int64(len(f.Data)))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrUnreadable, f.Name, err)
		}
		if doc.NumPage() == 0 {
			return fmt.Errorf("%w: %s: no pages", ErrUnreadable, f.Name)
		}
	case MIMEDOCX:
		doc, err := docx.ReadDocxFromMemory(r, int64(len(f.Data)))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrUnreadable, f.Name, err)
		}
		doc.Close()
	default:
		return fmt.Errorf("unsupported content type %q", f.ContentType)
	}
	return nil
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}
	return mt
}
