package document

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// Extension is the file extension of document files.
const Extension = ".yml"

// Ensure stores implement the interface.
var (
	_ driven.DocumentStore = (*FileStore)(nil)
	_ driven.DocumentStore = (*DirStore)(nil)
)

// FileStore keeps a whole document in one YAML file.
type FileStore struct {
	fs    billy.Filesystem
	path  string
	codec *YAMLCodec
}

// NewFileStore creates a single-file store at path within fs.
func NewFileStore(fs billy.Filesystem, path string, codec *YAMLCodec) *FileStore {
	return &FileStore{fs: fs, path: path, codec: codec}
}

// Load reads the document. Returns domain.ErrNotFound if the file does not exist.
func (s *FileStore) Load(_ context.Context) (*domain.Document, error) {
	data, err := util.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	doc, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return doc, nil
}

// Save writes the document, creating parent directories as needed.
func (s *FileStore) Save(_ context.Context, doc *domain.Document) error {
	data, err := s.codec.Encode(doc)
	if err != nil {
		return err
	}
	if dir := path.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Path returns the document file path.
func (s *FileStore) Path() string {
	return s.path
}

// DirStore keeps one <handle>.yml file per data type inside a directory.
type DirStore struct {
	fs    billy.Filesystem
	dir   string
	codec *YAMLCodec
}

// NewDirStore creates a split store rooted at dir within fs.
func NewDirStore(fs billy.Filesystem, dir string, codec *YAMLCodec) *DirStore {
	return &DirStore{fs: fs, dir: dir, codec: codec}
}

// Load reads every <handle>.yml file in lexical order.
// Returns domain.ErrNotFound if the directory does not exist.
func (s *DirStore) Load(_ context.Context) (*domain.Document, error) {
	entries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.dir, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	doc := domain.NewDocument()
	for _, name := range names {
		file := path.Join(s.dir, name)
		data, err := util.ReadFile(s.fs, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		fragment, err := s.codec.DecodeFragment(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		doc.Set(strings.TrimSuffix(name, Extension), fragment)
	}
	return doc, nil
}

// Save writes one file per data type and removes files of data types
// no longer in the document.
func (s *DirStore) Save(_ context.Context, doc *domain.Document) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}

	for _, handle := range doc.Handles() {
		fragment, _ := doc.Get(handle)
		data, err := s.codec.EncodeFragment(fragment)
		if err != nil {
			return fmt.Errorf("encode %s: %w", handle, err)
		}
		file := path.Join(s.dir, handle+Extension)
		if err := util.WriteFile(s.fs, file, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", file, err)
		}
	}

	entries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) {
			continue
		}
		if doc.Has(strings.TrimSuffix(name, Extension)) {
			continue
		}
		if err := s.fs.Remove(path.Join(s.dir, name)); err != nil {
			return fmt.Errorf("remove stale %s: %w", name, err)
		}
	}
	return nil
}

// Path returns the document directory.
func (s *DirStore) Path() string {
	return s.dir
}
