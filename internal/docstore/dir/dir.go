package dir

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"manualrag/internal/domain"
)

// DefaultExtensions lists the file extensions read when none are configured.
var DefaultExtensions = []string{".txt"}

// ErrInvalidEncoding is wrapped in an IOError when a file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8 content")

const bom = "\ufeff"

// Storage reads every eligible file directly inside one directory.
// Files are returned in filename order, which is the document order.
type Storage struct {
	dir        string
	extensions map[string]struct{}
}

// NewStorage creates a store over dir. Extensions are matched case-insensitively
// and may be given with or without the leading dot.
func NewStorage(dir string, extensions ...string) *Storage {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	ext := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		ext[e] = struct{}{}
	}
	return &Storage{dir: dir, extensions: ext}
}

// Dir returns the directory this store reads from.
func (s *Storage) Dir() string { return s.dir }

// LoadAll reads all eligible documents. A missing directory is not an error.
func (s *Storage) LoadAll() ([]domain.Document, error) {
	info, err := os.Stat(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Document{}, nil
		}
		return nil, &domain.IOError{Path: s.dir, Err: err}
	}
	if !info.IsDir() {
		return []domain.Document{}, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &domain.IOError{Path: s.dir, Err: err}
	}
	documents := make([]domain.Document, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !s.eligible(e.Name()) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &domain.IOError{Path: path, Err: err}
		}
		if !utf8.Valid(data) {
			return nil, &domain.IOError{Path: path, Err: ErrInvalidEncoding}
		}
		documents = append(documents, domain.Document{
			ID:      e.Name(),
			Path:    path,
			Content: strings.TrimPrefix(string(data), bom),
		})
	}
	return documents, nil
}

func (s *Storage) eligible(name string) bool {
	_, ok := s.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
